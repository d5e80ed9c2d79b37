// Package config provides the mapping configuration model that drives the
// transformation and validation pipeline. A mapping is loaded once, from a
// JSON document or the built-in defaults, and is read-only afterwards.
package config

import "sort"

// Mapping describes how input columns project onto the output schema.
type Mapping struct {
	// ColumnMappings maps output field name to source input column name.
	ColumnMappings map[string]string `koanf:"column_mappings" json:"column_mappings"`

	// StaticValues maps output field name to a literal filled into every
	// record. A static value always wins over a column mapping for the
	// same field.
	StaticValues map[string]string `koanf:"static_values" json:"static_values"`

	// Transformations maps output field name to a named transformation
	// identifier. Only meaningful for fields that also appear in
	// ColumnMappings.
	Transformations map[string]string `koanf:"transformations" json:"transformations"`

	// RequiredFields lists output fields that must be non-empty in every
	// record.
	RequiredFields []string `koanf:"required_fields" json:"required_fields"`

	// JiraFields is the ordered output schema. Names may repeat; repeated
	// slots stay distinct in memory and collapse to one header label at
	// write time.
	JiraFields []string `koanf:"jira_fields" json:"jira_fields"`

	// IdentityColumns is the identity-bearing input column set used by the
	// empty-record prefilter: a record is dropped when all of these are
	// empty.
	IdentityColumns []string `koanf:"identity_columns" json:"identity_columns"`

	ValidationRules ValidationRules `koanf:"validation_rules" json:"validation_rules"`
}

// ValidationRules holds the tunable validator thresholds and allow-lists.
type ValidationRules struct {
	AllowedPriorities    []string `koanf:"allowed_priorities" json:"allowed_priorities"`
	MaxSummaryLength     int      `koanf:"max_summary_length" json:"max_summary_length"`
	MaxDescriptionLength int      `koanf:"max_description_length" json:"max_description_length"`
	RequiredIssueTypes   []string `koanf:"required_issue_types" json:"required_issue_types"`
}

// IsRequired reports whether field is in RequiredFields.
func (m *Mapping) IsRequired(field string) bool {
	for _, f := range m.RequiredFields {
		if f == field {
			return true
		}
	}
	return false
}

// SourceColumns returns the distinct input column names the projection will
// actually read, in stable order. Fields overridden by a static value are
// skipped; their mapped source is never consulted.
func (m *Mapping) SourceColumns() []string {
	cols := make([]string, 0, len(m.ColumnMappings))
	seen := make(map[string]bool, len(m.ColumnMappings))
	for _, field := range sortedKeys(m.ColumnMappings) {
		if _, static := m.StaticValues[field]; static {
			continue
		}
		src := m.ColumnMappings[field]
		if !seen[src] {
			seen[src] = true
			cols = append(cols, src)
		}
	}
	return cols
}

// DoublyConfigured returns output fields present in both StaticValues and
// ColumnMappings. The static value wins for these; the loader flags them.
func (m *Mapping) DoublyConfigured() []string {
	var fields []string
	for _, field := range sortedKeys(m.StaticValues) {
		if _, ok := m.ColumnMappings[field]; ok {
			fields = append(fields, field)
		}
	}
	return fields
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
