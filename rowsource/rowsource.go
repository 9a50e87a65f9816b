// Package rowsource streams rows out of a CSV file. It is explicitly
// outside the optimizer's scope (row ingestion, I/O, and tabular-file
// parsing are an external collaborator's concern), but is realized here
// as the domain-stack home for the module's CSV/IO dependencies: a small
// streaming Next iterator over an underlying reader rather than a
// pluggable multi-format datasource registry, since this module only
// ever reads CSV.
package rowsource

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"

	"github.com/lrnxzz/csv-filter/eval"
)

// Source streams eval.Row values off a CSV reader, using the first record
// as the header row.
type Source struct {
	reader  *csv.Reader
	header  []string
	started bool
}

// New wraps r as a row Source.
func New(r io.Reader) *Source {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return &Source{reader: cr}
}

// Header returns the column names in file order. It is only valid after the
// first call to Next.
func (s *Source) Header() []string {
	return s.header
}

// Next returns the next row, or io.EOF when the source is exhausted.
func (s *Source) Next() (eval.Row, error) {
	if !s.started {
		header, err := s.reader.Read()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, errors.Wrap(err, "rowsource: reading header")
		}
		s.header = header
		s.started = true
	}

	record, err := s.reader.Read()
	if err != nil {
		return nil, err
	}

	row := make(eval.Row, len(s.header))
	for i, name := range s.header {
		if i < len(record) {
			row[name] = record[i]
		}
	}
	return row, nil
}

// All reads every remaining row from s.
func All(s *Source) ([]eval.Row, error) {
	var rows []eval.Row
	for {
		row, err := s.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "rowsource: reading row")
		}
		rows = append(rows, row)
	}
}
