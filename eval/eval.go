// Package eval evaluates a predicate ast.Node against a row. It is a
// collaborator external to the optimizer core, implementing per-op
// semantics (numeric-first comparison with a string fallback, regex
// MATCHES, field-presence IS_NULL).
package eval

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lrnxzz/csv-filter/ast"
)

// Row is a mapping from field name to cell value, the input shape a
// predicate is evaluated against.
type Row map[string]string

// Evaluate applies node to row and returns whether the row matches.
func Evaluate(node ast.Node, row Row) bool {
	switch node.Kind {
	case ast.KindConstant:
		return node.Constant.Value
	case ast.KindNot:
		return !Evaluate(node.Not.Child, row)
	case ast.KindComposite:
		if node.Composite.Op == ast.And {
			for _, c := range node.Composite.Children {
				if !Evaluate(c, row) {
					return false
				}
			}
			return true
		}
		for _, c := range node.Composite.Children {
			if Evaluate(c, row) {
				return true
			}
		}
		return false
	case ast.KindComparison:
		return evalComparison(row[node.Comparison.Field], node.Comparison.Op, node.Comparison.Value, hasField(row, node.Comparison.Field), false)
	case ast.KindCaseInsensitiveComparison:
		return evalComparison(row[node.Comparison.Field], node.Comparison.Op, node.Comparison.Value, hasField(row, node.Comparison.Field), true)
	case ast.KindBetween:
		return evalBetween(node, row)
	case ast.KindInList:
		v, present := row[node.InList.Field]
		if !present {
			return false
		}
		for _, want := range node.InList.Values {
			if v == want {
				return true
			}
		}
		return false
	case ast.KindDateBetween:
		return evalDateBetween(node, row)
	}
	return false
}

func hasField(row Row, field string) bool {
	_, ok := row[field]
	return ok
}

func evalComparison(cell string, op ast.CmpOp, value string, present, caseInsensitive bool) bool {
	if op == ast.IsNull {
		return !present
	}
	if op == ast.IsNotNull {
		return present
	}
	if !present {
		return false
	}
	if caseInsensitive {
		cell = strings.ToLower(cell)
		value = strings.ToLower(value)
	}

	switch op {
	case ast.Equals:
		return cell == value
	case ast.NotEquals:
		return cell != value
	case ast.Contains:
		return strings.Contains(cell, value)
	case ast.StartsWith:
		return strings.HasPrefix(cell, value)
	case ast.EndsWith:
		return strings.HasSuffix(cell, value)
	case ast.Matches:
		re, err := regexp.Compile(value)
		if err != nil {
			return false
		}
		return re.MatchString(cell)
	case ast.GreaterThan, ast.LessThan, ast.GreaterThanOrEqual, ast.LessThanOrEqual:
		cf, cerr := strconv.ParseFloat(cell, 64)
		vf, verr := strconv.ParseFloat(value, 64)
		if cerr == nil && verr == nil {
			return compareNumeric(cf, op, vf)
		}
		return compareString(cell, op, value)
	}
	return false
}

func compareNumeric(a float64, op ast.CmpOp, b float64) bool {
	switch op {
	case ast.GreaterThan:
		return a > b
	case ast.LessThan:
		return a < b
	case ast.GreaterThanOrEqual:
		return a >= b
	case ast.LessThanOrEqual:
		return a <= b
	}
	return false
}

func compareString(a string, op ast.CmpOp, b string) bool {
	switch op {
	case ast.GreaterThan:
		return a > b
	case ast.LessThan:
		return a < b
	case ast.GreaterThanOrEqual:
		return a >= b
	case ast.LessThanOrEqual:
		return a <= b
	}
	return false
}

func evalBetween(node ast.Node, row Row) bool {
	cell, present := row[node.Between.Field]
	if !present {
		return false
	}
	cf, cerr := strconv.ParseFloat(cell, 64)
	lf, lerr := strconv.ParseFloat(node.Between.Lower, 64)
	uf, uerr := strconv.ParseFloat(node.Between.Upper, 64)
	if cerr == nil && lerr == nil && uerr == nil {
		lowOK := cf > lf || (node.Between.LowerInclusive && cf == lf)
		highOK := cf < uf || (node.Between.UpperInclusive && cf == uf)
		return lowOK && highOK
	}
	lowOK := cell > node.Between.Lower || (node.Between.LowerInclusive && cell == node.Between.Lower)
	highOK := cell < node.Between.Upper || (node.Between.UpperInclusive && cell == node.Between.Upper)
	return lowOK && highOK
}

func evalDateBetween(node ast.Node, row Row) bool {
	cell, present := row[node.DateRange.Field]
	if !present {
		return false
	}
	layout := node.DateRange.FormatterID
	if layout == "" {
		layout = time.RFC3339
	}
	cellT, err := time.Parse(layout, cell)
	if err != nil {
		return false
	}
	startT, err := time.Parse(layout, node.DateRange.Start)
	if err != nil {
		return false
	}
	endT, err := time.Parse(layout, node.DateRange.End)
	if err != nil {
		return false
	}
	return !cellT.Before(startT) && !cellT.After(endT)
}
