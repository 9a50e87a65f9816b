package rangealg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lrnxzz/csv-filter/ast"
	"github.com/lrnxzz/csv-filter/rangealg"
)

func mustRange(t *testing.T, op ast.CmpOp, value string) rangealg.Range {
	t.Helper()
	r, ok := rangealg.FromComparison("n", op, value)
	require.True(t, ok)
	return r
}

func TestFromComparison(t *testing.T) {
	r := mustRange(t, ast.GreaterThanOrEqual, "10")
	require.NotNil(t, r.Lower)
	require.Equal(t, 10.0, *r.Lower)
	require.True(t, r.LowerInc)
	require.Nil(t, r.Upper)
}

func TestFromComparisonRejectsNonRangeOp(t *testing.T) {
	_, ok := rangealg.FromComparison("n", ast.Contains, "10")
	require.False(t, ok)
}

func TestFromComparisonRejectsUnparseable(t *testing.T) {
	_, ok := rangealg.FromComparison("n", ast.GreaterThan, "not-a-number")
	require.False(t, ok)
}

func TestIntersect(t *testing.T) {
	a := mustRange(t, ast.GreaterThanOrEqual, "10")
	b := mustRange(t, ast.LessThan, "20")
	c := mustRange(t, ast.LessThanOrEqual, "15")

	got := rangealg.Intersect(rangealg.Intersect(a, b), c)
	require.False(t, got.IsEmpty())
	require.Equal(t, 10.0, *got.Lower)
	require.True(t, got.LowerInc)
	require.Equal(t, 15.0, *got.Upper)
	require.True(t, got.UpperInc)
}

func TestIntersectEmptyWhenCrossed(t *testing.T) {
	a := mustRange(t, ast.GreaterThan, "10")
	b := mustRange(t, ast.LessThan, "5")
	got := rangealg.Intersect(a, b)
	require.True(t, got.IsEmpty())
}

func TestIntersectEmptyWhenTouchingExclusive(t *testing.T) {
	a := mustRange(t, ast.GreaterThanOrEqual, "10")
	b := mustRange(t, ast.LessThan, "10")
	got := rangealg.Intersect(a, b)
	require.True(t, got.IsEmpty())
}

func TestUnionNeverEmptyForNonEmptyInputs(t *testing.T) {
	a := mustRange(t, ast.LessThan, "5")
	b := mustRange(t, ast.GreaterThan, "10")
	got := rangealg.Union(a, b)
	require.False(t, got.IsEmpty())
	require.Nil(t, got.Lower)
	require.Nil(t, got.Upper)
}

func TestUnionTieBreaksToLooserInclusivity(t *testing.T) {
	a := mustRange(t, ast.GreaterThan, "10")
	b := mustRange(t, ast.GreaterThanOrEqual, "10")
	got := rangealg.Union(a, b)
	require.Equal(t, 10.0, *got.Lower)
	require.True(t, got.LowerInc)
}

func TestToNodeEmpty(t *testing.T) {
	n := rangealg.ToNode("n", rangealg.EMPTY)
	require.True(t, n.Equal(ast.FALSE))
}

func TestToNodeUnbounded(t *testing.T) {
	n := rangealg.ToNode("n", rangealg.Unbounded)
	require.True(t, n.Equal(ast.TRUE))
}

func TestToNodeEquality(t *testing.T) {
	r := mustRange(t, ast.Equals, "10")
	n := rangealg.ToNode("n", r)
	require.Equal(t, ast.KindComparison, n.Kind)
	require.Equal(t, ast.Equals, n.Comparison.Op)
	require.Equal(t, "10.0", n.Comparison.Value)
}

func TestToNodeBetween(t *testing.T) {
	r := rangealg.Intersect(mustRange(t, ast.GreaterThanOrEqual, "10"), mustRange(t, ast.LessThanOrEqual, "15"))
	n := rangealg.ToNode("n", r)
	require.Equal(t, ast.KindBetween, n.Kind)
	require.Equal(t, "10.0", n.Between.Lower)
	require.Equal(t, "15.0", n.Between.Upper)
	require.True(t, n.Between.LowerInclusive)
	require.True(t, n.Between.UpperInclusive)
}
