package ast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lrnxzz/csv-filter/ast"
)

func TestConstantSingletons(t *testing.T) {
	require.True(t, ast.Constant(true).Equal(ast.TRUE))
	require.True(t, ast.Constant(false).Equal(ast.FALSE))
	require.False(t, ast.TRUE.Equal(ast.FALSE))
}

func TestNotNoSimplification(t *testing.T) {
	inner := ast.NewNot(ast.Comparison("a", ast.Equals, "1"))
	doubled := ast.NewNot(inner)
	require.Equal(t, ast.KindNot, doubled.Kind)
	require.Equal(t, ast.KindNot, doubled.Not.Child.Kind)
}

func TestEqualStructural(t *testing.T) {
	a := ast.Comparison("x", ast.Equals, "1")
	b := ast.Comparison("x", ast.Equals, "1")
	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())

	c := ast.Comparison("x", ast.Equals, "2")
	require.False(t, a.Equal(c))
}

func TestEqualCompositeOrderMatters(t *testing.T) {
	left := ast.Composite(ast.And, []ast.Node{
		ast.Comparison("a", ast.Equals, "1"),
		ast.Comparison("b", ast.Equals, "2"),
	})
	right := ast.Composite(ast.And, []ast.Node{
		ast.Comparison("b", ast.Equals, "2"),
		ast.Comparison("a", ast.Equals, "1"),
	})
	require.False(t, left.Equal(right), "structural equality is order-sensitive on children")
}

func TestInListPreservesOrder(t *testing.T) {
	n := ast.InListNode("x", []string{"c", "a", "b"})
	require.Equal(t, []string{"c", "a", "b"}, n.InList.Values)
}

func TestCaseInsensitiveNeverEqualsComparison(t *testing.T) {
	a := ast.Comparison("x", ast.Equals, "1")
	b := ast.CaseInsensitiveComparison("x", ast.Equals, "1")
	require.False(t, a.Equal(b))
}
