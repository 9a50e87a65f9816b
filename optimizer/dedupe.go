package optimizer

import "github.com/lrnxzz/csv-filter/ast"

// dedupe collapses, within one Composite, structurally equal
// non-negated duplicates to one, and collapse to the connective's
// annihilator when both x and Not(x) appear. Recurses bottom-up first, so
// the predicate applies after children have already been simplified.
// Complementary detection is structural equality only — it does not reason
// across nested connectives.
func dedupe(node ast.Node) ast.Node {
	switch node.Kind {
	case ast.KindNot:
		return ast.NewNot(dedupe(node.Not.Child))
	case ast.KindComposite:
		op := node.Composite.Op
		children := make([]ast.Node, len(node.Composite.Children))
		for i, c := range node.Composite.Children {
			children[i] = dedupe(c)
		}

		var positives, negatives []ast.Node
		seenPos := func(n ast.Node) bool {
			for _, p := range positives {
				if p.Equal(n) {
					return true
				}
			}
			return false
		}
		seenNeg := func(n ast.Node) bool {
			for _, p := range negatives {
				if p.Equal(n) {
					return true
				}
			}
			return false
		}

		for _, c := range children {
			if c.Kind == ast.KindNot {
				inner := c.Not.Child
				if seenPos(inner) {
					return ast.Constant(op == ast.Or)
				}
				if !seenNeg(inner) {
					negatives = append(negatives, inner)
				}
			} else {
				if seenNeg(c) {
					return ast.Constant(op == ast.Or)
				}
				if !seenPos(c) {
					positives = append(positives, c)
				}
			}
		}

		rebuilt := make([]ast.Node, 0, len(positives)+len(negatives))
		rebuilt = append(rebuilt, positives...)
		for _, n := range negatives {
			rebuilt = append(rebuilt, ast.NewNot(n))
		}

		if len(rebuilt) == 1 {
			return rebuilt[0]
		}
		return ast.Composite(op, rebuilt)
	default:
		return node
	}
}
