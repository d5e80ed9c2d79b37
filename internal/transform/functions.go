package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Input columns consumed by record-level transformations.
const (
	colID            = "ID"
	colTitle         = "Title"
	colOverview      = "Overview"
	colPreconditions = "Preconditions"
	colSection       = "Section"
)

// descriptionPlaceholder stands in for an absent description section.
const descriptionPlaceholder = "N/A"

// ValueFunc converts a single cell value.
type ValueFunc func(value string) string

// RecordFunc builds a cell value from a whole input record. Used by
// transformations that combine more than one source field.
type RecordFunc func(record map[string]string) string

// Transformation is one named entry of the closed transformation vocabulary.
// Exactly one of Value or Record is set.
type Transformation struct {
	Value  ValueFunc
	Record RecordFunc
}

// registry is the closed identifier-to-function table. Extending the
// vocabulary means adding an entry here; identifiers are checked against it
// when an engine is constructed, so a typo in a mapping file fails fast.
var registry = map[string]Transformation{
	"priority_mapping":   {Value: priorityMapping},
	"extract_component":  {Value: extractComponent},
	"format_summary":     {Record: formatSummary},
	"format_description": {Record: formatDescription},
	"generate_labels":    {Record: generateLabels},
}

// lookupTransformation resolves a transformation identifier.
func lookupTransformation(name string) (Transformation, bool) {
	t, ok := registry[name]
	return t, ok
}

// TransformationNames returns the known identifiers, sorted.
func TransformationNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// priorityMap normalizes both numeric and word priority indicators.
var priorityMap = map[string]string{
	"1":        "Low",
	"2":        "Medium",
	"3":        "High",
	"4":        "Highest",
	"low":      "Low",
	"medium":   "Medium",
	"high":     "High",
	"critical": "Highest",
}

// priorityMapping maps a TestRail priority indicator to a Jira priority.
// Unknown or missing input defaults to Medium, so the function is total.
func priorityMapping(value string) string {
	if mapped, ok := priorityMap[strings.ToLower(strings.TrimSpace(value))]; ok {
		return mapped
	}
	return "Medium"
}

// extractComponent returns the first segment of a " > "-separated section
// path, the whole string when it is not hierarchical, and empty for missing
// input.
func extractComponent(value string) string {
	if value == "" {
		return ""
	}
	if before, _, found := strings.Cut(value, " > "); found {
		return before
	}
	return value
}

// normalizeCaseID canonicalizes a TestRail case identifier. IDs already
// prefixed with C pass through untouched, so the normalization is idempotent;
// bare numeric IDs are zero-padded to C00000 form; anything else collapses to
// C00000.
func normalizeCaseID(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, "C") {
		return id
	}
	if n, err := strconv.Atoi(id); err == nil && n >= 0 {
		return fmt.Sprintf("C%05d", n)
	}
	return "C00000"
}

// formatSummary renders "<title> - <case id>". A missing title yields empty
// output regardless of the identifier.
func formatSummary(record map[string]string) string {
	title := strings.TrimSpace(record[colTitle])
	if title == "" {
		return ""
	}
	return title + " - " + normalizeCaseID(record[colID])
}

// formatDescription builds the multi-section Jira description block: the
// normalized case id, then each section under a bold header, joined by blank
// lines. Absent sections render the placeholder so the block shape is stable.
func formatDescription(record map[string]string) string {
	sections := []struct {
		header string
		column string
	}{
		{"Overview", colOverview},
		{"Preconditions", colPreconditions},
	}

	parts := []string{normalizeCaseID(record[colID])}
	for _, s := range sections {
		content := strings.TrimSpace(record[s.column])
		if content == "" {
			content = descriptionPlaceholder
		}
		parts = append(parts, "*"+s.header+"*\n"+content)
	}
	return strings.Join(parts, "\n\n")
}

// generateLabels derives comma-separated labels from the record: a
// section-based label when a section is present, plus the constant
// manual-test marker.
func generateLabels(record map[string]string) string {
	var labels []string
	if section := strings.TrimSpace(record[colSection]); section != "" {
		labels = append(labels, "section-"+strings.ToLower(strings.ReplaceAll(section, " ", "-")))
	}
	labels = append(labels, "manual-test")
	return strings.Join(labels, ",")
}
