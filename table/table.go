// Copyright 2023 The puppetdb-go Authors

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package table renders query results as aligned text or CSV.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/stockparfait/errors"
)

// Row is a single renderable result row.
type Row interface {
	CSV() []string // an encoding/csv compatible representation
}

// Table is an ordered list of rows with an optional header.
type Table struct {
	Header []string
	Rows   []Row
}

// New creates a table with optional column headers. When present, the number
// of headers must match the number of cells in each row.
func New(header ...string) *Table {
	return &Table{Header: header}
}

// Add appends one or more rows to the table.
func (t *Table) Add(rows ...Row) {
	t.Rows = append(t.Rows, rows...)
}

// Options control rendering.
type Options struct {
	Limit    int  // max. number of rows to write; 0 = all
	NoHeader bool // suppress the header row
}

// limited returns the rows to render under o.Limit.
func (t *Table) limited(o Options) []Row {
	if o.Limit > 0 && o.Limit < len(t.Rows) {
		return t.Rows[:o.Limit]
	}
	return t.Rows
}

// WriteCSV writes the table to w in CSV format.
func (t *Table) WriteCSV(w io.Writer, o Options) error {
	cw := csv.NewWriter(w)
	if !o.NoHeader && len(t.Header) > 0 {
		if err := cw.Write(t.Header); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
	}
	for _, r := range t.limited(o) {
		if err := cw.Write(r.CSV()); err != nil {
			return errors.Annotate(err, "failed to write row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Annotate(err, "failed to flush rows")
	}
	return nil
}

// WriteText writes the table to w as left-aligned columns separated by " | ",
// with a dashed line under the header.
func (t *Table) WriteText(w io.Writer, o Options) error {
	var cells [][]string
	if !o.NoHeader && len(t.Header) > 0 {
		cells = append(cells, t.Header)
	}
	for _, r := range t.limited(o) {
		cells = append(cells, r.CSV())
	}
	if len(cells) == 0 {
		return nil
	}
	widths := make([]int, len(cells[0]))
	for _, row := range cells {
		if len(row) != len(widths) {
			return errors.Reason("row size [%d] != expected size [%d]",
				len(row), len(widths))
		}
		for i, s := range row {
			if widths[i] < len(s) {
				widths[i] = len(s)
			}
		}
	}
	write := func(row []string) error {
		padded := make([]string, len(row))
		for i, s := range row {
			padded[i] = s + strings.Repeat(" ", widths[i]-len(s))
		}
		_, err := fmt.Fprintf(w, "%s\n",
			strings.TrimRight(strings.Join(padded, " | "), " "))
		return err
	}
	if !o.NoHeader && len(t.Header) > 0 {
		if err := write(t.Header); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
		dashes := make([]string, len(widths))
		for i, n := range widths {
			dashes[i] = strings.Repeat("-", n)
		}
		if err := write(dashes); err != nil {
			return errors.Annotate(err, "failed to write header separator")
		}
		cells = cells[1:]
	}
	for _, row := range cells {
		if err := write(row); err != nil {
			return errors.Annotate(err, "failed to write row")
		}
	}
	return nil
}
