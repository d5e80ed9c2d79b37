package transform

import (
	"testing"

	"github.com/bridgeworks-labs/testbridge/internal/config"
	"github.com/bridgeworks-labs/testbridge/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInput() *table.Table {
	return &table.Table{Columns: []table.Column{
		{Name: "ID", Values: []string{"1", "2", "3"}},
		{Name: "Title", Values: []string{"Login works", "Logout works", "Export works"}},
		{Name: "Priority", Values: []string{"high", "medium", "critical"}},
		{Name: "Section", Values: []string{"UI > Login", "UI > Login", "Reporting"}},
		{Name: "Preconditions", Values: []string{"User exists", "Logged in", "Data present"}},
	}}
}

func TestTransformDefaultMapping(t *testing.T) {
	eng, err := New(config.DefaultMapping(), nil)
	require.NoError(t, err)

	out, stats, err := eng.Transform(testInput())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.OriginalRows)
	assert.Equal(t, 3, stats.FilteredRows)
	assert.Empty(t, stats.Warnings)

	assert.Equal(t, []string{
		"Summary", "Issue Type", "Priority", "Component",
		"Description", "Project Key", "Labels",
	}, out.Names())

	summary, _ := out.Lookup("Summary")
	assert.Equal(t, []string{"Login works", "Logout works", "Export works"}, summary.Values)

	issueType, _ := out.Lookup("Issue Type")
	assert.Equal(t, []string{"Test", "Test", "Test"}, issueType.Values)

	priority, _ := out.Lookup("Priority")
	assert.Equal(t, []string{"High", "Medium", "Highest"}, priority.Values)

	component, _ := out.Lookup("Component")
	assert.Equal(t, []string{"UI", "UI", "Reporting"}, component.Values)

	projectKey, _ := out.Lookup("Project Key")
	assert.Equal(t, []string{"PROJ", "PROJ", "PROJ"}, projectKey.Values)

	labels, _ := out.Lookup("Labels")
	assert.Equal(t, []string{"", "", ""}, labels.Values)
}

func TestTransformMissingSourceColumn(t *testing.T) {
	m := config.DefaultMapping()
	eng, err := New(m, nil)
	require.NoError(t, err)

	in := &table.Table{Columns: []table.Column{
		{Name: "Title", Values: []string{"only titles"}},
	}}

	out, stats, err := eng.Transform(in)
	require.NoError(t, err)

	priority, _ := out.Lookup("Priority")
	assert.Equal(t, []string{""}, priority.Values)

	require.NotEmpty(t, stats.Warnings)
	joined := ""
	for _, w := range stats.Warnings {
		joined += w + "\n"
	}
	assert.Contains(t, joined, "Priority")
	assert.Contains(t, joined, "not found")
}

func TestTransformNoColumns(t *testing.T) {
	eng, err := New(config.DefaultMapping(), nil)
	require.NoError(t, err)

	_, _, err = eng.Transform(table.New())
	assert.Error(t, err)
}

func TestNewRejectsUnknownTransformation(t *testing.T) {
	m := config.DefaultMapping()
	m.Transformations["Priority"] = "does_not_exist"

	_, err := New(m, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does_not_exist")
}

func TestTransformRecordFunctions(t *testing.T) {
	m := config.DefaultMapping()
	m.ColumnMappings["Summary"] = "Title"
	m.Transformations["Summary"] = "format_summary"
	m.ColumnMappings["Description"] = "Preconditions"
	m.Transformations["Description"] = "format_description"

	eng, err := New(m, nil)
	require.NoError(t, err)

	out, _, err := eng.Transform(testInput())
	require.NoError(t, err)

	summary, _ := out.Lookup("Summary")
	assert.Equal(t, "Login works - C00001", summary.Values[0])

	desc, _ := out.Lookup("Description")
	assert.Contains(t, desc.Values[0], "C00001")
	assert.Contains(t, desc.Values[0], "*Preconditions*\nUser exists")
	assert.Contains(t, desc.Values[0], "*Overview*\nN/A")
}

func TestTransformDropsEmptyRecords(t *testing.T) {
	eng, err := New(config.DefaultMapping(), nil)
	require.NoError(t, err)

	in := &table.Table{Columns: []table.Column{
		{Name: "ID", Values: []string{"1", "", "3"}},
		{Name: "Title", Values: []string{"a", "", "c"}},
		{Name: "Priority", Values: []string{"low", "high", "low"}},
	}}

	out, stats, err := eng.Transform(in)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.OriginalRows)
	assert.Equal(t, 2, stats.FilteredRows)
	assert.Equal(t, 2, out.NumRows())

	summary, _ := out.Lookup("Summary")
	assert.Equal(t, []string{"a", "c"}, summary.Values)
}

func TestTransformDuplicateSchemaSlots(t *testing.T) {
	m := config.DefaultMapping()
	m.JiraFields = []string{"Summary", "Labels", "Labels"}
	m.ColumnMappings["Labels"] = "Section"
	m.Transformations["Labels"] = "generate_labels"

	eng, err := New(m, nil)
	require.NoError(t, err)

	out, _, err := eng.Transform(testInput())
	require.NoError(t, err)

	assert.Equal(t, []string{"Summary", "Labels", "Labels"}, out.Names())
	// Both slots project independently from the same source.
	assert.Equal(t, out.Columns[1].Values, out.Columns[2].Values)
	assert.Equal(t, "section-ui->-login,manual-test", out.Columns[1].Values[0])
}

func TestTransformDoesNotMutateInput(t *testing.T) {
	eng, err := New(config.DefaultMapping(), nil)
	require.NoError(t, err)

	in := testInput()
	before := in.Clone()

	_, _, err = eng.Transform(in)
	require.NoError(t, err)
	assert.True(t, in.Equal(before))
}
