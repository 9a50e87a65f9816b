// Command csvfilter is a small demo CLI: a single cobra.Command with
// RunE, flags bound in init, and Execute(ctx) as the package's only
// exported entry point. It reads a CSV file, builds a predicate from
// repeated --where flags, and prints the matching rows.
package main

import (
	"context"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lrnxzz/csv-filter/ast"
	"github.com/lrnxzz/csv-filter/builder"
	"github.com/lrnxzz/csv-filter/eval"
	"github.com/lrnxzz/csv-filter/rowsource"
)

var wheres []string

var rootCmd = &cobra.Command{
	Use:   "csvfilter <file.csv>",
	Short: "Filter a CSV file with a predicate optimizer.",
	Args:  cobra.ExactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), args[0], wheres)
	},
}

func init() {
	rootCmd.Flags().StringArrayVar(&wheres, "where", nil, `Filter clause "field op value", e.g. --where "age >= 18". May be repeated; clauses are ANDed together.`)
}

func Execute(ctx context.Context) {
	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}

func run(ctx context.Context, path string, clauses []string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "couldn't open %s", path)
	}
	defer f.Close()

	fb := builder.New()
	for _, clause := range clauses {
		field, op, value, err := parseClause(clause)
		if err != nil {
			return errors.Wrapf(err, "couldn't parse clause %q", clause)
		}
		fb = fb.Where(field, op, value)
	}
	node, err := fb.Build()
	if err != nil {
		return errors.Wrap(err, "couldn't build filter")
	}

	src := rowsource.New(f)
	rows, err := rowsource.All(src)
	if err != nil {
		return errors.Wrap(err, "couldn't read rows")
	}
	header := src.Header()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	for _, row := range rows {
		if !eval.Evaluate(node, row) {
			continue
		}
		record := make([]string, len(header))
		for i, h := range header {
			record[i] = row[h]
		}
		table.Append(record)
	}
	table.Render()
	return nil
}

var clauseOps = map[string]ast.CmpOp{
	"==":          ast.Equals,
	"=":           ast.Equals,
	"!=":          ast.NotEquals,
	">":           ast.GreaterThan,
	"<":           ast.LessThan,
	">=":          ast.GreaterThanOrEqual,
	"<=":          ast.LessThanOrEqual,
	"contains":    ast.Contains,
	"starts_with": ast.StartsWith,
	"ends_with":   ast.EndsWith,
	"matches":     ast.Matches,
}

func parseClause(clause string) (field string, op ast.CmpOp, value string, err error) {
	parts := strings.SplitN(clause, " ", 3)
	if len(parts) != 3 {
		return "", 0, "", errors.New(`expected "field op value"`)
	}
	op, ok := clauseOps[parts[1]]
	if !ok {
		return "", 0, "", errors.Errorf("unknown operator %q", parts[1])
	}
	return parts[0], op, parts[2], nil
}

func main() {
	Execute(context.Background())
}
