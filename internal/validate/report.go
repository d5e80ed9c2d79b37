package validate

import (
	"fmt"
	"strings"
	"time"
)

const reportRule = "=================================================="

// GenerateReport renders both validation results as a human-readable report.
// Section presence and order are stable: title, rule, timestamp, input
// section, output section, closing rule.
func GenerateReport(input InputResult, output OutputResult) string {
	return generateReportAt(time.Now(), input, output)
}

func generateReportAt(now time.Time, input InputResult, output OutputResult) string {
	var b strings.Builder

	b.WriteString("CSV TRANSFORMATION VALIDATION REPORT\n")
	b.WriteString(reportRule + "\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format("2006-01-02 15:04:05"))

	b.WriteString("INPUT DATA VALIDATION:\n")
	fmt.Fprintf(&b, "  Status: %s\n", passFail(input.Valid))
	fmt.Fprintf(&b, "  Rows: %d\n", input.RowCount)
	fmt.Fprintf(&b, "  Columns: %d\n", input.ColumnCount)
	writeFindings(&b, input.Errors, input.Warnings)
	b.WriteString("\n")

	b.WriteString("OUTPUT DATA VALIDATION:\n")
	fmt.Fprintf(&b, "  Status: %s\n", passFail(output.Valid))
	fmt.Fprintf(&b, "  Jira Ready: %s\n", yesNo(output.ReadyForImport))
	writeFindings(&b, output.Errors, output.Warnings)
	b.WriteString("\n")

	b.WriteString(reportRule + "\n")
	return b.String()
}

func writeFindings(b *strings.Builder, errors, warnings []string) {
	if len(errors) > 0 {
		b.WriteString("  Errors:\n")
		for _, e := range errors {
			fmt.Fprintf(b, "    - %s\n", e)
		}
	}
	if len(warnings) > 0 {
		b.WriteString("  Warnings:\n")
		for _, w := range warnings {
			fmt.Fprintf(b, "    - %s\n", w)
		}
	}
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

func yesNo(ok bool) string {
	if ok {
		return "YES"
	}
	return "NO"
}
