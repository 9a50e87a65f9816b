package optimizer

import "github.com/lrnxzz/csv-filter/ast"

// flatten associatively flattens same-operator nesting.
// Recurses first, then splices a same-operator
// Composite child's grandchildren into the outer child list. Not nodes are
// carried through without flattening since Not does not associate.
func flatten(node ast.Node) ast.Node {
	switch node.Kind {
	case ast.KindNot:
		return ast.NewNot(flatten(node.Not.Child))
	case ast.KindComposite:
		op := node.Composite.Op
		var merged []ast.Node
		for _, c := range node.Composite.Children {
			fc := flatten(c)
			if fc.Kind == ast.KindComposite && fc.Composite.Op == op {
				merged = append(merged, fc.Composite.Children...)
			} else {
				merged = append(merged, fc)
			}
		}
		if len(merged) == 1 {
			return merged[0]
		}
		return ast.Composite(op, merged)
	default:
		return node
	}
}
