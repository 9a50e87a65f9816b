package optimizer

import (
	"github.com/lrnxzz/csv-filter/ast"
	"github.com/lrnxzz/csv-filter/rangealg"
)

// coalesceComposites applies the per-field coalescer
// to each Composite, recursively. Non-Comparison children pass through
// unchanged after their own recursion.
func coalesceComposites(node ast.Node) ast.Node {
	switch node.Kind {
	case ast.KindNot:
		return ast.NewNot(coalesceComposites(node.Not.Child))
	case ast.KindComposite:
		op := node.Composite.Op
		children := make([]ast.Node, len(node.Composite.Children))
		for i, c := range node.Composite.Children {
			children[i] = coalesceComposites(c)
		}
		return coalesceField(op, children)
	default:
		return node
	}
}

// coalesceField groups children into per-field Comparison buckets and
// merges each bucket, leaving non-Comparison children (and
// CaseInsensitiveComparison, which is never coalesced) untouched.
func coalesceField(op ast.CompositeOp, children []ast.Node) ast.Node {
	byField := map[string][]ast.Node{}
	var fieldOrder []string
	var other []ast.Node

	for _, c := range children {
		if c.Kind == ast.KindComparison {
			f := c.Comparison.Field
			if _, ok := byField[f]; !ok {
				fieldOrder = append(fieldOrder, f)
			}
			byField[f] = append(byField[f], c)
		} else {
			other = append(other, c)
		}
	}

	var result []ast.Node
	for _, f := range fieldOrder {
		group := byField[f]
		if len(group) < 2 {
			result = append(result, group...)
			continue
		}
		merged := coalesceOneField(op, f, group)
		// A field group collapsing to the connective's annihilator
		// short-circuits the whole composite, the same way a literal
		// constant child would in constant folding.
		if len(merged) == 1 {
			if op == ast.And && merged[0].Equal(ast.FALSE) {
				return ast.FALSE
			}
			if op == ast.Or && merged[0].Equal(ast.TRUE) {
				return ast.TRUE
			}
		}
		result = append(result, merged...)
	}
	result = append(result, other...)

	if len(result) == 0 {
		return ast.Constant(op == ast.And)
	}
	if len(result) == 1 {
		return result[0]
	}
	return ast.Composite(op, result)
}

// coalesceOneField merges the Comparison group for a single field under op,
// implementing the equality/range/passthrough merge in four steps.
func coalesceOneField(op ast.CompositeOp, field string, group []ast.Node) []ast.Node {
	var equalities []ast.Node
	var rangeOps []ast.Node
	var passthrough []ast.Node

	for _, c := range group {
		switch {
		case c.Comparison.Op == ast.Equals:
			equalities = append(equalities, c)
		case c.Comparison.Op.IsRangeOp():
			rangeOps = append(rangeOps, c)
		default:
			passthrough = append(passthrough, c)
		}
	}

	// Step 1: equality handling first.
	var equalityContribution ast.Node
	haveEquality := false
	if len(equalities) > 0 {
		if op == ast.And {
			first := equalities[0].Comparison.Value
			same := true
			for _, e := range equalities[1:] {
				if e.Comparison.Value != first {
					same = false
					break
				}
			}
			if !same {
				// Contradictory equalities under AND: the whole field
				// group collapses to FALSE, which short-circuits the
				// outer AND regardless of its other comparisons.
				return []ast.Node{ast.FALSE}
			}
			// Equalities collapse to one; AND still combines with any
			// range/other comparisons on this field below (step 2/3) —
			// unlike the OR case, nothing here is discarded, since a
			// non-contradictory equality doesn't make the rest moot.
			haveEquality = true
			equalityContribution = ast.Comparison(field, ast.Equals, first)
		} else {
			// OR: collapse equalities to an InList, preserving order and
			// dropping duplicate values. Deliberate deviation point: when
			// range ops are also present on this field under OR, the
			// source discards the range fold once equalities are seen —
			// this implementation preserves that behavior, keeping range
			// ops (and other ops) beside the InList rather than folding
			// them in.
			seen := map[string]bool{}
			var values []string
			for _, e := range equalities {
				if !seen[e.Comparison.Value] {
					seen[e.Comparison.Value] = true
					values = append(values, e.Comparison.Value)
				}
			}
			out := []ast.Node{ast.InListNode(field, values)}
			out = append(out, rangeOps...)
			out = append(out, passthrough...)
			return out
		}
	}

	// Step 2: range handling.
	var rangeContribution ast.Node
	haveRange := false
	var opaqueRanges []ast.Node
	if len(rangeOps) > 0 {
		var acc rangealg.Range
		started := false
		for _, r := range rangeOps {
			rg, ok := rangealg.FromComparison(field, r.Comparison.Op, r.Comparison.Value)
			if !ok {
				opaqueRanges = append(opaqueRanges, r)
				continue
			}
			if !started {
				acc = rg
				started = true
				continue
			}
			if op == ast.And {
				acc = rangealg.Intersect(acc, rg)
			} else {
				acc = rangealg.Union(acc, rg)
			}
		}
		if started {
			haveRange = true
			rangeContribution = rangealg.ToNode(field, acc)
		}
	}

	// Step 4: join contributions by op with other-comparison leftovers.
	var out []ast.Node
	if haveEquality {
		out = append(out, equalityContribution)
	}
	if haveRange {
		if rangeContribution.Equal(ast.FALSE) && op == ast.And {
			return []ast.Node{ast.FALSE}
		}
		if rangeContribution.Equal(ast.TRUE) && op == ast.Or {
			return []ast.Node{ast.TRUE}
		}
		out = append(out, rangeContribution)
	}
	out = append(out, opaqueRanges...)
	out = append(out, passthrough...)
	if len(out) == 0 {
		return group
	}
	return out
}
