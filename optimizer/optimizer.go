// Package optimizer rewrites a predicate ast.Node tree into an equivalent,
// smaller, cheaper-to-evaluate tree. It runs as a fixed eight-pass
// pipeline (simplify, fold constants, dedupe, coalesce, range identity,
// absorb, flatten, reorder), where every pass is a pure function that
// recurses structurally and returns a new tree without mutating its input;
// the passes rebuild every Composite they visit, changed or not.
package optimizer

import "github.com/lrnxzz/csv-filter/ast"

// Optimize runs the fixed eight-pass pipeline over node exactly once, in
// the fixed order below. There is no fixed-point loop: each pass
// recurses structurally over a finite tree, so the whole pipeline
// terminates in one traversal per pass.
func Optimize(node ast.Node) ast.Node {
	node = simplify(node)
	node = foldConstants(node)
	node = dedupe(node)
	node = coalesceComposites(node)
	node = simplifyRanges(node)
	node = absorb(node)
	node = flatten(node)
	node = reorder(node)
	return node
}
