package table

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteQuotesEveryField(t *testing.T) {
	tbl := &Table{Columns: []Column{
		{Name: "Summary", Values: []string{"plain", `has "quotes"`}},
		{Name: "Description", Values: []string{"multi\nline", ""}},
	}}

	var buf bytes.Buffer
	require.NoError(t, Write(tbl, &buf))

	out := buf.String()
	assert.Equal(t, `"Summary","Description"`+"\n", out[:len(`"Summary","Description"`)+1])
	assert.Contains(t, out, `"has ""quotes"""`)
	assert.Contains(t, out, "\"multi\nline\"")
}

func TestWriteDuplicateHeaders(t *testing.T) {
	tbl := &Table{Columns: []Column{
		{Name: "Labels", Values: []string{"a"}},
		{Name: "Labels", Values: []string{"b"}},
	}}

	var buf bytes.Buffer
	require.NoError(t, Write(tbl, &buf))
	assert.Contains(t, buf.String(), `"Labels","Labels"`)
}

func TestRoundTrip(t *testing.T) {
	tbl := &Table{Columns: []Column{
		{Name: "Summary", Values: []string{"one", "two"}},
		{Name: "Description", Values: []string{"line1\nline2", "with, comma"}},
		{Name: "Labels", Values: []string{"x", ""}},
		{Name: "Labels", Values: []string{"", "y"}},
	}}

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteFile(tbl, path))

	back, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, tbl.NumRows(), back.NumRows())
	assert.Equal(t, tbl.Names(), back.Names())
	// Non-duplicate columns are addressable by name and identical.
	for _, name := range []string{"Summary", "Description"} {
		want, _ := tbl.Lookup(name)
		got, _ := back.Lookup(name)
		assert.Equal(t, want.Values, got.Values, name)
	}
	// Duplicate-named slots keep positional values.
	assert.Equal(t, tbl.Columns[2].Values, back.Columns[2].Values)
	assert.Equal(t, tbl.Columns[3].Values, back.Columns[3].Values)
}
