// Package builder is the fluent predicate-construction surface, a
// collaborator external to the optimizer core: build small nodes,
// combine them with And/Or/Not, then Build to optimize the result.
package builder

import (
	"github.com/pkg/errors"

	"github.com/lrnxzz/csv-filter/ast"
	"github.com/lrnxzz/csv-filter/optimizer"
)

// Filter accumulates predicate nodes to be ANDed together, then combined
// with other filters via And/Or/Not. Start one with New, which matches
// every row; the zero value holds no valid node and is not usable.
type Filter struct {
	node ast.Node
	err  error
}

// New starts a new, always-matching Filter.
func New() *Filter {
	return &Filter{node: ast.TRUE}
}

func fromNode(node ast.Node) *Filter {
	return &Filter{node: node}
}

func (f *Filter) fail(err error) *Filter {
	if f.err == nil {
		f.err = err
	}
	return f
}

// Where adds field op value as a conjunct.
func (f *Filter) Where(field string, op ast.CmpOp, value string) *Filter {
	return f.and(ast.Comparison(field, op, value))
}

// WhereCI adds a case-insensitive comparison as a conjunct.
func (f *Filter) WhereCI(field string, op ast.CmpOp, value string) *Filter {
	return f.and(ast.CaseInsensitiveComparison(field, op, value))
}

// Between adds a range conjunct. Both bounds default to inclusive; pass
// BetweenOptions to change that.
func (f *Filter) Between(field, lower, upper string, opts ...BetweenOption) *Filter {
	cfg := betweenConfig{lowerInclusive: true, upperInclusive: true}
	for _, o := range opts {
		o(&cfg)
	}
	return f.and(ast.Between(field, lower, upper, cfg.lowerInclusive, cfg.upperInclusive))
}

type betweenConfig struct {
	lowerInclusive, upperInclusive bool
}

// BetweenOption configures inclusivity for Filter.Between.
type BetweenOption func(*betweenConfig)

// ExclusiveLower makes the lower bound of a Between exclusive.
func ExclusiveLower() BetweenOption { return func(c *betweenConfig) { c.lowerInclusive = false } }

// ExclusiveUpper makes the upper bound of a Between exclusive.
func ExclusiveUpper() BetweenOption { return func(c *betweenConfig) { c.upperInclusive = false } }

// In adds a membership conjunct.
func (f *Filter) In(field string, values ...string) *Filter {
	if len(values) == 0 {
		return f.fail(errors.Errorf("builder: In(%q) requires at least one value", field))
	}
	return f.and(ast.InListNode(field, values))
}

// DateBetween adds a date-range conjunct, opaque to the optimizer core.
// layout is a time.Parse-style reference layout string, matching the
// treatment of date formatting as an external collaborator concern.
func (f *Filter) DateBetween(field, start, end, layout string) *Filter {
	return f.and(ast.DateBetween(field, start, end, layout))
}

// Not negates the accumulated filter.
func (f *Filter) Not() *Filter {
	if f.err != nil {
		return f
	}
	return &Filter{node: ast.NewNot(f.node)}
}

// And conjoins other filters with this one.
func (f *Filter) And(others ...*Filter) *Filter {
	return f.combine(ast.And, others)
}

// Or disjoins other filters with this one.
func (f *Filter) Or(others ...*Filter) *Filter {
	return f.combine(ast.Or, others)
}

func (f *Filter) combine(op ast.CompositeOp, others []*Filter) *Filter {
	children := []ast.Node{f.node}
	err := f.err
	for _, o := range others {
		if o == nil {
			continue
		}
		if o.err != nil && err == nil {
			err = o.err
		}
		children = append(children, o.node)
	}
	if err != nil {
		return &Filter{err: err}
	}
	return &Filter{node: ast.Composite(op, children)}
}

func (f *Filter) and(leaf ast.Node) *Filter {
	if f.err != nil {
		return f
	}
	if f.node.Equal(ast.TRUE) {
		return fromNode(leaf)
	}
	return fromNode(ast.Composite(ast.And, []ast.Node{f.node, leaf}))
}

// Build finishes construction and runs the optimizer over the assembled
// tree, once, on the completed expression — rather than after every
// intermediate method, since intermediate trees are not yet a complete
// boolean expression worth optimizing.
func (f *Filter) Build() (ast.Node, error) {
	if f.err != nil {
		return ast.Node{}, errors.Wrap(f.err, "builder: invalid filter")
	}
	return optimizer.Optimize(f.node), nil
}

// MustBuild is Build but panics on error, for tests and top-level wiring
// where a malformed filter is a programmer error.
func (f *Filter) MustBuild() ast.Node {
	node, err := f.Build()
	if err != nil {
		panic(err)
	}
	return node
}
