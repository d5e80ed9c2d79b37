package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReportSections(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	input := InputResult{
		Valid:       true,
		RowCount:    42,
		ColumnCount: 7,
		Warnings:    []string{"2 duplicate titles found"},
	}
	output := OutputResult{
		Valid:          false,
		ReadyForImport: false,
		Errors:         []string{"required field missing: Summary"},
	}

	report := generateReportAt(now, input, output)

	lines := strings.Split(report, "\n")
	require.Greater(t, len(lines), 10)
	assert.Equal(t, "CSV TRANSFORMATION VALIDATION REPORT", lines[0])
	assert.Equal(t, reportRule, lines[1])
	assert.Equal(t, "Generated: 2026-03-14 09:26:53", lines[2])

	assert.Contains(t, report, "INPUT DATA VALIDATION:\n  Status: PASS\n  Rows: 42\n  Columns: 7\n")
	assert.Contains(t, report, "  Warnings:\n    - 2 duplicate titles found\n")
	assert.Contains(t, report, "OUTPUT DATA VALIDATION:\n  Status: FAIL\n  Jira Ready: NO\n")
	assert.Contains(t, report, "  Errors:\n    - required field missing: Summary\n")

	// Input section precedes output section; the rule closes the report.
	assert.Less(t,
		strings.Index(report, "INPUT DATA VALIDATION:"),
		strings.Index(report, "OUTPUT DATA VALIDATION:"))
	assert.True(t, strings.HasSuffix(report, reportRule+"\n"))
}

func TestGenerateReportCleanRun(t *testing.T) {
	report := GenerateReport(
		InputResult{Valid: true, RowCount: 1, ColumnCount: 1},
		OutputResult{Valid: true, ReadyForImport: true},
	)

	assert.Contains(t, report, "Status: PASS")
	assert.Contains(t, report, "Jira Ready: YES")
	assert.NotContains(t, report, "Errors:")
	assert.NotContains(t, report, "Warnings:")
}
