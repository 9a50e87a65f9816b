package optimizer

import (
	"sort"

	"github.com/lrnxzz/csv-filter/ast"
)

// EstimateCost is the integer heuristic cost table used to reorder
// Composite children, with AND costed as the max of its children's cost
// (short-circuit) and OR costed as the sum, since each connective is
// tagged on the node itself.
func EstimateCost(node ast.Node) int {
	switch node.Kind {
	case ast.KindComparison, ast.KindCaseInsensitiveComparison:
		switch node.Comparison.Op {
		case ast.Equals, ast.NotEquals:
			return 1
		case ast.GreaterThan, ast.LessThan, ast.GreaterThanOrEqual, ast.LessThanOrEqual:
			return 2
		case ast.Contains, ast.StartsWith, ast.EndsWith:
			return 5
		case ast.Matches:
			return 10
		default:
			return 3
		}
	case ast.KindComposite:
		if len(node.Composite.Children) == 0 {
			return 1
		}
		if node.Composite.Op == ast.And {
			max := EstimateCost(node.Composite.Children[0])
			for _, c := range node.Composite.Children[1:] {
				if cost := EstimateCost(c); cost > max {
					max = cost
				}
			}
			return max
		}
		sum := 0
		for _, c := range node.Composite.Children {
			sum += EstimateCost(c)
		}
		return sum
	case ast.KindNot:
		return EstimateCost(node.Not.Child)
	default:
		// Constant, Between, InList, DateBetween: flat cost of 1, the
		// default for nodes not otherwise classified.
		return 1
	}
}

// reorder recursively reorders Composite children by
// non-decreasing cost with a stable sort, so equal-cost children keep their
// pre-sort relative order.
func reorder(node ast.Node) ast.Node {
	switch node.Kind {
	case ast.KindNot:
		return ast.NewNot(reorder(node.Not.Child))
	case ast.KindComposite:
		children := make([]ast.Node, len(node.Composite.Children))
		for i, c := range node.Composite.Children {
			children[i] = reorder(c)
		}
		sort.SliceStable(children, func(i, j int) bool {
			return EstimateCost(children[i]) < EstimateCost(children[j])
		})
		return ast.Composite(node.Composite.Op, children)
	default:
		return node
	}
}
