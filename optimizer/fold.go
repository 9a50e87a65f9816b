package optimizer

import "github.com/lrnxzz/csv-filter/ast"

// foldConstants drops identity constants, collapses to the
// annihilator when one appears, and collapse single-child/empty
// composites.
func foldConstants(node ast.Node) ast.Node {
	switch node.Kind {
	case ast.KindNot:
		child := foldConstants(node.Not.Child)
		if child.Kind == ast.KindConstant {
			return ast.Constant(!child.Constant.Value)
		}
		return ast.NewNot(child)
	case ast.KindComposite:
		op := node.Composite.Op
		annihilator := ast.Constant(op == ast.Or) // FALSE annihilates AND, TRUE annihilates OR

		var kept []ast.Node
		for _, c := range node.Composite.Children {
			folded := foldConstants(c)
			if folded.Kind == ast.KindConstant {
				if folded.Equal(annihilator) {
					return annihilator
				}
				// folded is the identity constant for op: drop it.
				continue
			}
			kept = append(kept, folded)
		}

		if len(kept) == 0 {
			return ast.Constant(op == ast.And)
		}
		if len(kept) == 1 {
			return kept[0]
		}
		return ast.Composite(op, kept)
	default:
		return node
	}
}
