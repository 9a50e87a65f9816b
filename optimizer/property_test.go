package optimizer_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lrnxzz/csv-filter/ast"
	"github.com/lrnxzz/csv-filter/eval"
	"github.com/lrnxzz/csv-filter/optimizer"
)

// randomTree builds a small, possibly-unbalanced predicate tree for
// property testing, extended with a tiny generator since the pipeline's
// invariants must hold across a combinatorial set of input shapes.
func randomTree(r *rand.Rand, depth int) ast.Node {
	fields := []string{"a", "b", "n"}
	if depth <= 0 || r.Intn(3) == 0 {
		switch r.Intn(4) {
		case 0:
			return ast.Comparison(fields[r.Intn(len(fields))], ast.Equals, fmt.Sprint(r.Intn(5)))
		case 1:
			return ast.Comparison("n", []ast.CmpOp{ast.GreaterThan, ast.LessThan, ast.GreaterThanOrEqual, ast.LessThanOrEqual}[r.Intn(4)], fmt.Sprint(r.Intn(20)))
		case 2:
			return ast.Constant(r.Intn(2) == 0)
		default:
			return ast.Comparison(fields[r.Intn(len(fields))], ast.Contains, "z")
		}
	}

	switch r.Intn(3) {
	case 0:
		return ast.NewNot(randomTree(r, depth-1))
	case 1, 2:
		op := ast.And
		if r.Intn(2) == 0 {
			op = ast.Or
		}
		n := 2 + r.Intn(2)
		children := make([]ast.Node, n)
		for i := range children {
			children[i] = randomTree(r, depth-1)
		}
		return ast.Composite(op, children)
	}
	panic("unreachable")
}

var sampleRows = []eval.Row{
	{"a": "0", "b": "1", "n": "5"},
	{"a": "1", "b": "0", "n": "15"},
	{"a": "2", "b": "2", "n": "0"},
	{"a": "3", "b": "3", "n": "19"},
	{},
}

func TestPropertySemanticPreservationAndIdempotence(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		tree := randomTree(r, 4)
		opt := optimizer.Optimize(tree)

		for _, row := range sampleRows {
			require.Equal(t, eval.Evaluate(tree, row), eval.Evaluate(opt, row),
				"tree %s optimized to %s disagrees on row %v", tree, opt, row)
		}

		twice := optimizer.Optimize(opt)
		require.True(t, opt.Equal(twice), "not idempotent: %s vs %s", opt, twice)

		assertShape(t, opt)
	}
}
