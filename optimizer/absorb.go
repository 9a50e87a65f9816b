package optimizer

import "github.com/lrnxzz/csv-filter/ast"

// absorb implements A AND (A OR B) -> A. In a Composite with operator AND,
// if some child is itself a Composite with operator OR and at least one of
// that OR's children structurally equals another child of the outer AND,
// the OR child is absorbed and dropped, leaving the rest of the AND's
// children, including the shared child itself, untouched. Applied bottom-up. The dual A OR (A AND B) -> A
// is deliberately not implemented; only the AND direction is handled.
func absorb(node ast.Node) ast.Node {
	switch node.Kind {
	case ast.KindNot:
		return ast.NewNot(absorb(node.Not.Child))
	case ast.KindComposite:
		children := make([]ast.Node, len(node.Composite.Children))
		for i, c := range node.Composite.Children {
			children[i] = absorb(c)
		}
		if node.Composite.Op != ast.And {
			return ast.Composite(node.Composite.Op, children)
		}
		for i, candidate := range children {
			if candidate.Kind != ast.KindComposite || candidate.Composite.Op != ast.Or {
				continue
			}
			absorbed := false
			for _, orChild := range candidate.Composite.Children {
				for j, outer := range children {
					if j != i && outer.Equal(orChild) {
						absorbed = true
						break
					}
				}
				if absorbed {
					break
				}
			}
			if !absorbed {
				continue
			}
			remaining := make([]ast.Node, 0, len(children)-1)
			remaining = append(remaining, children[:i]...)
			remaining = append(remaining, children[i+1:]...)
			if len(remaining) == 1 {
				return remaining[0]
			}
			return ast.Composite(ast.And, remaining)
		}
		return ast.Composite(ast.And, children)
	default:
		return node
	}
}
