// Package validate checks tables before and after transformation and reports
// structured diagnostics. Validation never mutates a table and never fails a
// call for data-quality findings; results are returned by value so concurrent
// batch callers stay independent.
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bridgeworks-labs/testbridge/internal/config"
	"github.com/bridgeworks-labs/testbridge/internal/table"
)

// InputResult is the outcome of validating an input table.
type InputResult struct {
	Valid       bool     `json:"is_valid"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	RowCount    int      `json:"row_count"`
	ColumnCount int      `json:"column_count"`
}

// OutputResult is the outcome of validating a transformed table.
type OutputResult struct {
	Valid          bool     `json:"is_valid"`
	ReadyForImport bool     `json:"ready_for_import"`
	Errors         []string `json:"errors"`
	Warnings       []string `json:"warnings"`
}

// Validator applies the input and output rule sets for one mapping.
type Validator struct {
	mapping *config.Mapping
}

// New creates a validator. A nil mapping falls back to the built-in defaults.
func New(mapping *config.Mapping) *Validator {
	if mapping == nil {
		mapping = config.DefaultMapping()
	}
	return &Validator{mapping: mapping}
}

var (
	emailPattern      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	projectKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
	specialChars      = regexp.MustCompile(`[^\p{L}\p{N}_\s\-.,;:()!?]`)
)

// dateLayouts are the accepted date formats for date-like columns.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
}

// largeTableRows is the row count above which batching is suggested.
const largeTableRows = 10000

// ValidateInput checks an input table's structure, field formats, and
// business rules. Everything but structural defects is advisory.
func (v *Validator) ValidateInput(tbl *table.Table) InputResult {
	var res InputResult
	res.RowCount = tbl.NumRows()
	res.ColumnCount = tbl.NumColumns()

	v.checkStructure(tbl, &res)
	if tbl.NumColumns() > 0 {
		v.checkFieldContent(tbl, &res)
		v.checkBusinessRules(tbl, &res)
	}

	res.Valid = len(res.Errors) == 0
	return res
}

// ValidateOutput checks a transformed table for import compliance.
func (v *Validator) ValidateOutput(tbl *table.Table) OutputResult {
	var res OutputResult

	v.checkRequiredFields(tbl, &res)
	v.checkImportCompliance(tbl, &res)
	v.checkDataQuality(tbl, &res)

	res.Valid = len(res.Errors) == 0
	res.ReadyForImport = res.Valid
	return res
}

func (v *Validator) checkStructure(tbl *table.Table, res *InputResult) {
	if tbl.NumColumns() == 0 {
		res.Errors = append(res.Errors, "table has no columns")
		return
	}
	if tbl.NumRows() == 0 {
		res.Errors = append(res.Errors, "table is empty")
		return
	}

	if dups := duplicateNames(tbl.Names()); len(dups) > 0 {
		res.Errors = append(res.Errors, fmt.Sprintf("duplicate columns found: %s", strings.Join(dups, ", ")))
	}

	var emptyCols []string
	for _, c := range tbl.Columns {
		if allEmpty(c.Values) {
			emptyCols = append(emptyCols, c.Name)
		}
	}
	if len(emptyCols) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("completely empty columns: %s", strings.Join(emptyCols, ", ")))
	}
}

func (v *Validator) checkFieldContent(tbl *table.Table, res *InputResult) {
	var missing []string
	for _, src := range v.mapping.SourceColumns() {
		if !tbl.HasColumn(src) {
			missing = append(missing, src)
		}
	}
	if len(missing) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("expected columns not found: %s", strings.Join(missing, ", ")))
	}

	for _, c := range tbl.Columns {
		v.checkColumnFormat(c, res)
	}
}

func (v *Validator) checkColumnFormat(c table.Column, res *InputResult) {
	values := nonEmpty(c.Values)
	if len(values) == 0 {
		return
	}
	lower := strings.ToLower(c.Name)

	if strings.Contains(lower, "email") {
		invalid := 0
		for _, val := range values {
			if !emailPattern.MatchString(val) {
				invalid++
			}
		}
		if invalid > 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("invalid email formats in %s: %d entries", c.Name, invalid))
		}
	}

	if strings.Contains(lower, "date") || strings.Contains(lower, "created") || strings.Contains(lower, "updated") {
		v.checkDateFormat(c.Name, values, res)
	}

	if strings.Contains(lower, "priority") {
		v.checkPriorityValues(c.Name, values, res)
	}
}

// checkDateFormat samples up to the first 10 values and stops at the first
// one no accepted layout can parse.
func (v *Validator) checkDateFormat(name string, values []string, res *InputResult) {
	sample := values
	if len(sample) > 10 {
		sample = sample[:10]
	}
	for _, val := range sample {
		if parsesAsDate(val) || isNullish(val) {
			continue
		}
		res.Warnings = append(res.Warnings, fmt.Sprintf("unrecognized date format in %s: %s", name, val))
		return
	}
}

func (v *Validator) checkPriorityValues(name string, values []string, res *InputResult) {
	allowed := v.mapping.ValidationRules.AllowedPriorities
	if len(allowed) == 0 {
		return
	}
	allowedSet := make(map[string]bool, len(allowed))
	for _, p := range allowed {
		allowedSet[p] = true
	}

	var invalid []string
	seen := make(map[string]bool)
	for _, val := range values {
		if allowedSet[val] || seen[val] {
			continue
		}
		seen[val] = true
		invalid = append(invalid, val)
		if len(invalid) == 5 {
			break
		}
	}
	if len(invalid) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("invalid priority values in %s: %s", name, strings.Join(invalid, ", ")))
	}
}

func (v *Validator) checkBusinessRules(tbl *table.Table, res *InputResult) {
	if tbl.NumRows() > largeTableRows {
		res.Warnings = append(res.Warnings, fmt.Sprintf("large dataset (%d rows) - consider batch processing", tbl.NumRows()))
	}

	if col, ok := tbl.Lookup("Title"); ok {
		seen := make(map[string]bool, len(col.Values))
		dups := 0
		for _, val := range col.Values {
			if val == "" {
				continue
			}
			if seen[val] {
				dups++
			}
			seen[val] = true
		}
		if dups > 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%d duplicate titles found", dups))
		}
	}
}

func (v *Validator) checkRequiredFields(tbl *table.Table, res *OutputResult) {
	for _, field := range v.mapping.RequiredFields {
		col, ok := tbl.Lookup(field)
		if !ok {
			res.Errors = append(res.Errors, fmt.Sprintf("required field missing: %s", field))
			continue
		}
		empty := 0
		for _, val := range col.Values {
			if strings.TrimSpace(val) == "" {
				empty++
			}
		}
		if empty > 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("required field '%s' has %d empty values", field, empty))
		}
	}
}

func (v *Validator) checkImportCompliance(tbl *table.Table, res *OutputResult) {
	rules := v.mapping.ValidationRules

	if col, ok := tbl.Lookup("Summary"); ok {
		if n := countLonger(col.Values, rules.MaxSummaryLength); n > 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("%d summaries exceed %d characters", n, rules.MaxSummaryLength))
		}
	}

	if col, ok := tbl.Lookup("Description"); ok {
		if n := countLonger(col.Values, rules.MaxDescriptionLength); n > 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("%d descriptions exceed %d characters", n, rules.MaxDescriptionLength))
		}
	}

	if col, ok := tbl.Lookup("Issue Type"); ok && len(rules.RequiredIssueTypes) > 0 {
		allowed := make(map[string]bool, len(rules.RequiredIssueTypes))
		for _, t := range rules.RequiredIssueTypes {
			allowed[t] = true
		}
		for _, val := range col.Values {
			if !allowed[val] {
				res.Errors = append(res.Errors, fmt.Sprintf("invalid issue types found; allowed: %s", strings.Join(rules.RequiredIssueTypes, ", ")))
				break
			}
		}
	}

	if col, ok := tbl.Lookup("Project Key"); ok {
		for _, key := range distinct(nonEmpty(col.Values)) {
			if !projectKeyPattern.MatchString(key) {
				res.Errors = append(res.Errors, fmt.Sprintf("invalid project key format: %s", key))
			}
		}
	}
}

func (v *Validator) checkDataQuality(tbl *table.Table, res *OutputResult) {
	rows := tbl.NumRows()
	if rows == 0 {
		return
	}

	emptyRows := 0
	for i := 0; i < rows; i++ {
		empty := true
		for _, c := range tbl.Columns {
			if strings.TrimSpace(c.Values[i]) != "" {
				empty = false
				break
			}
		}
		if empty {
			emptyRows++
		}
	}
	if emptyRows > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d completely empty rows found", emptyRows))
	}

	for _, c := range tbl.Columns {
		missing := 0
		for _, val := range c.Values {
			if strings.TrimSpace(val) == "" {
				missing++
			}
		}
		if pct := float64(missing) / float64(rows) * 100; pct > 50 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("column '%s' is %.1f%% empty", c.Name, pct))
		}
	}

	for _, name := range []string{"Summary", "Description", "Component"} {
		col, ok := tbl.Lookup(name)
		if !ok {
			continue
		}
		count := 0
		for _, val := range col.Values {
			if val != "" && specialChars.MatchString(val) {
				count++
			}
		}
		if count > 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%d entries in '%s' contain special characters", count, name))
		}
	}
}

func parsesAsDate(value string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

func isNullish(value string) bool {
	switch strings.ToLower(value) {
	case "", "nan", "none":
		return true
	}
	return false
}

func duplicateNames(names []string) []string {
	counts := make(map[string]int, len(names))
	for _, n := range names {
		counts[n]++
	}
	var dups []string
	for n, c := range counts {
		if c > 1 {
			dups = append(dups, n)
		}
	}
	sort.Strings(dups)
	return dups
}

func allEmpty(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func distinct(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// countLonger counts values longer than max. Lengths are in characters, not
// bytes; the import caps are character limits.
func countLonger(values []string, max int) int {
	n := 0
	for _, v := range values {
		if utf8.RuneCountInString(v) > max {
			n++
		}
	}
	return n
}
