package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	return &Table{Columns: []Column{
		{Name: "ID", Values: []string{"1", "2", "3"}},
		{Name: "Title", Values: []string{"a", "b", "c"}},
	}}
}

func TestTableShape(t *testing.T) {
	tbl := sampleTable()

	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumColumns())
	assert.Equal(t, []string{"ID", "Title"}, tbl.Names())
	assert.NoError(t, tbl.Validate())
}

func TestLookup(t *testing.T) {
	tbl := sampleTable()

	col, ok := tbl.Lookup("Title")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, col.Values)

	_, ok = tbl.Lookup("Missing")
	assert.False(t, ok)
}

func TestRowFirstSlotWins(t *testing.T) {
	tbl := &Table{Columns: []Column{
		{Name: "Labels", Values: []string{"first"}},
		{Name: "Labels", Values: []string{"second"}},
	}}

	row := tbl.Row(0)
	assert.Equal(t, "first", row["Labels"])
}

func TestFilterRows(t *testing.T) {
	tbl := sampleTable()

	filtered := tbl.FilterRows(func(i int) bool { return i != 1 })

	assert.Equal(t, 2, filtered.NumRows())
	col, _ := filtered.Lookup("Title")
	assert.Equal(t, []string{"a", "c"}, col.Values)
	// Original untouched
	assert.Equal(t, 3, tbl.NumRows())
}

func TestNormalizePadsShortColumns(t *testing.T) {
	tbl := &Table{Columns: []Column{
		{Name: "A", Values: []string{"1", "2"}},
		{Name: "B", Values: []string{"x"}},
	}}
	require.Error(t, tbl.Validate())

	tbl.Normalize()

	assert.NoError(t, tbl.Validate())
	col, _ := tbl.Lookup("B")
	assert.Equal(t, []string{"x", ""}, col.Values)
}

func TestCloneAndEqual(t *testing.T) {
	tbl := sampleTable()
	clone := tbl.Clone()

	assert.True(t, tbl.Equal(clone))

	clone.Columns[0].Values[0] = "changed"
	assert.False(t, tbl.Equal(clone))
	assert.Equal(t, "1", tbl.Columns[0].Values[0], "clone must be deep")
}

func TestAppendColumnResizes(t *testing.T) {
	tbl := sampleTable()

	tbl.AppendColumn("Short", []string{"only-one"})
	col, _ := tbl.Lookup("Short")
	assert.Equal(t, []string{"only-one", "", ""}, col.Values)

	tbl.AppendColumn("Long", []string{"1", "2", "3", "4", "5"})
	col, _ = tbl.Lookup("Long")
	assert.Len(t, col.Values, 3)
}
