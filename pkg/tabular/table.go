// SPDX-License-Identifier: Apache-2.0

// Package tabular holds the in-memory table model and its CSV encoding.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Table is an ordered header plus an ordered sequence of rows. Every row
// has exactly the header's arity; Read enforces it and the rest of the
// package preserves it.
type Table struct {
	Columns []string
	Rows    [][]string
}

var (
	ErrInvalidColumnOrder = errors.New("column order is not a permutation of the table columns")
	ErrMissingHeader      = errors.New("input table has no header row")
)

// Read parses a delimited table with a header row. Arity mismatches are
// reported by the csv reader with the offending line number.
func Read(r io.Reader) (*Table, error) {
	csvReader := csv.NewReader(r)

	columns, err := csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingHeader
		}
		return nil, fmt.Errorf("reading header row: %w", err)
	}

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading table rows: %w", err)
	}

	return &Table{
		Columns: columns,
		Rows:    rows,
	}, nil
}

// Write encodes the table back to the delimited format, header first.
func (t *Table) Write(w io.Writer) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(t.Columns); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}
	if err := csvWriter.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("writing table rows: %w", err)
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// Reorder projects the header and every row onto the requested column
// order. The order must be a permutation of the table columns; transforms
// configured per column are unaffected by reordering.
func (t *Table) Reorder(order []string) error {
	if len(order) == 0 {
		return nil
	}

	indices, err := t.columnIndices(order)
	if err != nil {
		return err
	}

	t.Columns = order
	for i, row := range t.Rows {
		reordered := make([]string, len(indices))
		for j, idx := range indices {
			reordered[j] = row[idx]
		}
		t.Rows[i] = reordered
	}

	return nil
}

// ValidateOrder checks that the given order is a valid permutation of the
// table columns without modifying the table.
func (t *Table) ValidateOrder(order []string) error {
	if len(order) == 0 {
		return nil
	}
	_, err := t.columnIndices(order)
	return err
}

func (t *Table) columnIndices(order []string) ([]int, error) {
	if len(order) != len(t.Columns) {
		return nil, fmt.Errorf("%w: got %d columns, table has %d", ErrInvalidColumnOrder, len(order), len(t.Columns))
	}

	position := make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		position[col] = i
	}

	indices := make([]int, len(order))
	seen := make(map[string]struct{}, len(order))
	for i, col := range order {
		idx, found := position[col]
		if !found {
			return nil, fmt.Errorf("%w: column %q not in table", ErrInvalidColumnOrder, col)
		}
		if _, duplicate := seen[col]; duplicate {
			return nil, fmt.Errorf("%w: column %q repeated", ErrInvalidColumnOrder, col)
		}
		seen[col] = struct{}{}
		indices[i] = idx
	}

	return indices, nil
}
