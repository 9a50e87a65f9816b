// Package rangealg implements the numeric interval algebra the optimizer
// uses to coalesce inequality comparisons on the same field, factored out
// into its own package separate from the rewrite passes that call it.
package rangealg

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/lrnxzz/csv-filter/ast"
)

// Range is a canonical numeric interval: nil bounds denote infinity.
type Range struct {
	Lower    *float64
	LowerInc bool
	Upper    *float64
	UpperInc bool
}

// EMPTY is the designated empty range value.
var EMPTY = Range{Lower: ptr(1), LowerInc: false, Upper: ptr(0), UpperInc: false}

func ptr(f float64) *float64 { return &f }

// Unbounded is the range matching every value; ToNode lowers it to TRUE.
var Unbounded = Range{}

// errUnsupportedRangeOp and errNumericParse name the two failure kinds this
// package distinguishes. FromComparison never returns an error value: it
// reports either failure only as ok=false, so the caller (the coalescer) can
// leave the offending comparison as an opaque leaf instead of failing the
// fold.
var (
	errUnsupportedRangeOp = errors.New("rangealg: unsupported range op")
	errNumericParse       = errors.New("rangealg: value does not parse as a float")
)

// FromComparison maps a single Comparison node on a numeric-parseable value
// to a Range. The caller must only pass a range op or Equals; any other op
// is a programmer error reported via ok=false, named
// UnsupportedRangeOp: the fold is abandoned for that comparison, not
// propagated as an error.
func FromComparison(field string, op ast.CmpOp, value string) (r Range, ok bool) {
	if !op.IsRangeOp() && op != ast.Equals {
		return Range{}, false
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return Range{}, false
	}
	switch op {
	case ast.GreaterThan:
		return Range{Lower: &v, LowerInc: false}, true
	case ast.GreaterThanOrEqual:
		return Range{Lower: &v, LowerInc: true}, true
	case ast.LessThan:
		return Range{Upper: &v, UpperInc: false}, true
	case ast.LessThanOrEqual:
		return Range{Upper: &v, UpperInc: true}, true
	case ast.Equals:
		return Range{Lower: &v, LowerInc: true, Upper: &v, UpperInc: true}, true
	default:
		return Range{}, false
	}
}

// IsEmpty reports whether r denotes no value at all: both bounds finite and
// lower exceeds upper, or lower equals upper with at least one exclusive
// end.
func (r Range) IsEmpty() bool {
	if r.Lower == nil || r.Upper == nil {
		return false
	}
	if *r.Lower > *r.Upper {
		return true
	}
	if *r.Lower == *r.Upper && (!r.LowerInc || !r.UpperInc) {
		return true
	}
	return false
}

func isEmptySentinel(r Range) bool {
	return r.Lower != nil && r.Upper != nil && !r.LowerInc && !r.UpperInc && *r.Lower > *r.Upper
}

// Intersect picks the tighter lower bound and tighter upper bound of a and
// b. Equal bounds tie-break to the stricter (AND of inclusivities). If the
// resulting interval is empty, Intersect returns EMPTY.
func Intersect(a, b Range) Range {
	if isEmptySentinel(a) || isEmptySentinel(b) {
		return EMPTY
	}
	out := Range{}

	switch {
	case a.Lower == nil:
		out.Lower, out.LowerInc = b.Lower, b.LowerInc
	case b.Lower == nil:
		out.Lower, out.LowerInc = a.Lower, a.LowerInc
	case *a.Lower > *b.Lower:
		out.Lower, out.LowerInc = a.Lower, a.LowerInc
	case *b.Lower > *a.Lower:
		out.Lower, out.LowerInc = b.Lower, b.LowerInc
	default:
		v := *a.Lower
		out.Lower, out.LowerInc = &v, a.LowerInc && b.LowerInc
	}

	switch {
	case a.Upper == nil:
		out.Upper, out.UpperInc = b.Upper, b.UpperInc
	case b.Upper == nil:
		out.Upper, out.UpperInc = a.Upper, a.UpperInc
	case *a.Upper < *b.Upper:
		out.Upper, out.UpperInc = a.Upper, a.UpperInc
	case *b.Upper < *a.Upper:
		out.Upper, out.UpperInc = b.Upper, b.UpperInc
	default:
		v := *a.Upper
		out.Upper, out.UpperInc = &v, a.UpperInc && b.UpperInc
	}

	if out.IsEmpty() {
		return EMPTY
	}
	return out
}

// Union picks the looser lower bound and looser upper bound of a and b (nil
// is looser than any finite bound). Equal bounds tie-break to the looser
// (OR of inclusivities). Union of two non-empty ranges is never empty.
func Union(a, b Range) Range {
	if isEmptySentinel(a) {
		return b
	}
	if isEmptySentinel(b) {
		return a
	}
	out := Range{}

	switch {
	case a.Lower == nil || b.Lower == nil:
		out.Lower, out.LowerInc = nil, false
	case *a.Lower < *b.Lower:
		out.Lower, out.LowerInc = a.Lower, a.LowerInc
	case *b.Lower < *a.Lower:
		out.Lower, out.LowerInc = b.Lower, b.LowerInc
	default:
		v := *a.Lower
		out.Lower, out.LowerInc = &v, a.LowerInc || b.LowerInc
	}

	switch {
	case a.Upper == nil || b.Upper == nil:
		out.Upper, out.UpperInc = nil, false
	case *a.Upper > *b.Upper:
		out.Upper, out.UpperInc = a.Upper, a.UpperInc
	case *b.Upper > *a.Upper:
		out.Upper, out.UpperInc = b.Upper, b.UpperInc
	default:
		v := *a.Upper
		out.Upper, out.UpperInc = &v, a.UpperInc || b.UpperInc
	}

	return out
}

// ToNode lowers r back into the AST for field.
func ToNode(field string, r Range) ast.Node {
	if isEmptySentinel(r) {
		return ast.FALSE
	}
	if r.Lower == nil && r.Upper == nil {
		return ast.TRUE
	}
	if r.Lower != nil && r.Upper != nil && *r.Lower == *r.Upper && r.LowerInc && r.UpperInc {
		return ast.Comparison(field, ast.Equals, formatFloat(*r.Lower))
	}
	if r.Lower != nil && r.Upper != nil {
		return ast.Between(field, formatFloat(*r.Lower), formatFloat(*r.Upper), r.LowerInc, r.UpperInc)
	}
	if r.Lower != nil {
		op := ast.GreaterThan
		if r.LowerInc {
			op = ast.GreaterThanOrEqual
		}
		return ast.Comparison(field, op, formatFloat(*r.Lower))
	}
	op := ast.LessThan
	if r.UpperInc {
		op = ast.LessThanOrEqual
	}
	return ast.Comparison(field, op, formatFloat(*r.Upper))
}

// formatFloat re-stringifies a bound using a canonical "N.N" representation
// (e.g. "10.0", not "10"), a representation choice left open elsewhere.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return s
		}
	}
	return s + ".0"
}
