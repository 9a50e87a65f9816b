package optimizer

import "github.com/lrnxzz/csv-filter/ast"

// simplifyRanges is an identity hook reserved for future range-specific
// extension. Range merging itself is fully the coalescer's job; this pass
// must preserve the tree exactly.
func simplifyRanges(node ast.Node) ast.Node {
	return node
}
