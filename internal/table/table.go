// Package table provides the in-memory row table used by the transformation
// pipeline. A table is an ordered sequence of named columns of string values;
// the empty string is the missing-value marker. Duplicate column names are
// allowed and remain positionally distinct until serialization.
package table

import "fmt"

// Column is a single named slot of per-row values.
type Column struct {
	Name   string
	Values []string
}

// Table is a column-ordered, row-uniform table.
type Table struct {
	Columns []Column
}

// New creates an empty table.
func New() *Table {
	return &Table{}
}

// NumRows returns the number of rows. All columns have the same length.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// NumColumns returns the number of column slots, counting duplicates.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// Names returns the column names in order, including duplicates.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Lookup returns the first column slot with the given name.
func (t *Table) Lookup(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

// Row returns row i as a name-to-value map. When column names repeat, the
// first slot wins; use Columns directly for positional access.
func (t *Table) Row(i int) map[string]string {
	row := make(map[string]string, len(t.Columns))
	for _, c := range t.Columns {
		if _, seen := row[c.Name]; seen {
			continue
		}
		if i < len(c.Values) {
			row[c.Name] = c.Values[i]
		} else {
			row[c.Name] = ""
		}
	}
	return row
}

// AppendColumn adds a column slot. The column is padded or truncated to the
// table's row count unless the table is empty, in which case it sets it.
func (t *Table) AppendColumn(name string, values []string) {
	if len(t.Columns) > 0 {
		n := t.NumRows()
		values = resize(values, n)
	}
	t.Columns = append(t.Columns, Column{Name: name, Values: values})
}

// FilterRows returns a new table containing only the rows for which keep
// returns true. Column order and names are preserved.
func (t *Table) FilterRows(keep func(i int) bool) *Table {
	out := &Table{Columns: make([]Column, len(t.Columns))}
	for ci, c := range t.Columns {
		out.Columns[ci] = Column{Name: c.Name}
	}
	for i := 0; i < t.NumRows(); i++ {
		if !keep(i) {
			continue
		}
		for ci, c := range t.Columns {
			out.Columns[ci].Values = append(out.Columns[ci].Values, c.Values[i])
		}
	}
	return out
}

// Normalize pads every column to the table's longest column so the tabular
// regularity invariant holds.
func (t *Table) Normalize() {
	n := 0
	for _, c := range t.Columns {
		if len(c.Values) > n {
			n = len(c.Values)
		}
	}
	for i := range t.Columns {
		t.Columns[i].Values = resize(t.Columns[i].Values, n)
	}
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{Columns: make([]Column, len(t.Columns))}
	for i, c := range t.Columns {
		vals := make([]string, len(c.Values))
		copy(vals, c.Values)
		out.Columns[i] = Column{Name: c.Name, Values: vals}
	}
	return out
}

// Equal reports structural equality: same column slots in the same order with
// the same values.
func (t *Table) Equal(other *Table) bool {
	if other == nil || len(t.Columns) != len(other.Columns) {
		return false
	}
	for i, c := range t.Columns {
		oc := other.Columns[i]
		if c.Name != oc.Name || len(c.Values) != len(oc.Values) {
			return false
		}
		for j, v := range c.Values {
			if v != oc.Values[j] {
				return false
			}
		}
	}
	return true
}

// Validate checks the tabular regularity invariant.
func (t *Table) Validate() error {
	n := t.NumRows()
	for _, c := range t.Columns {
		if len(c.Values) != n {
			return fmt.Errorf("column %q has %d values, expected %d", c.Name, len(c.Values), n)
		}
	}
	return nil
}

func resize(values []string, n int) []string {
	if len(values) == n {
		return values
	}
	if len(values) > n {
		return values[:n]
	}
	out := make([]string, n)
	copy(out, values)
	return out
}
