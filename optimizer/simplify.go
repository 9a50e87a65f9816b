package optimizer

import "github.com/lrnxzz/csv-filter/ast"

// simplify performs double-negation elimination and De Morgan pushdown.
// Comparison-level negation (flipping a leaf's op) is deliberately not
// performed: Not over a leaf remains a Not.
func simplify(node ast.Node) ast.Node {
	switch node.Kind {
	case ast.KindNot:
		child := simplify(node.Not.Child)
		switch child.Kind {
		case ast.KindNot:
			return simplify(child.Not.Child)
		case ast.KindComposite:
			negated := make([]ast.Node, len(child.Composite.Children))
			for i, c := range child.Composite.Children {
				negated[i] = simplify(ast.NewNot(c))
			}
			dual := ast.Or
			if child.Composite.Op == ast.Or {
				dual = ast.And
			}
			return ast.Composite(dual, negated)
		default:
			return ast.NewNot(child)
		}
	case ast.KindComposite:
		children := make([]ast.Node, len(node.Composite.Children))
		for i, c := range node.Composite.Children {
			children[i] = simplify(c)
		}
		return ast.Composite(node.Composite.Op, children)
	default:
		return node
	}
}
