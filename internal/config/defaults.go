package config

// Validator defaults.
const (
	DefaultMaxSummaryLength     = 255
	DefaultMaxDescriptionLength = 32767
)

// DefaultMapping returns the built-in TestRail-to-Jira mapping used when no
// mapping file is given or the given one cannot be loaded.
func DefaultMapping() *Mapping {
	return &Mapping{
		ColumnMappings: map[string]string{
			"Summary":     "Title",
			"Issue Type":  "Test",
			"Priority":    "Priority",
			"Component":   "Section",
			"Description": "Preconditions",
		},
		StaticValues: map[string]string{
			"Issue Type":  "Test",
			"Project Key": "PROJ",
		},
		Transformations: map[string]string{
			"Priority":  "priority_mapping",
			"Component": "extract_component",
		},
		RequiredFields: []string{"Summary", "Issue Type"},
		JiraFields: []string{
			"Summary", "Issue Type", "Priority", "Component",
			"Description", "Project Key", "Labels",
		},
		IdentityColumns: []string{"ID", "Title"},
		ValidationRules: ValidationRules{
			MaxSummaryLength:     DefaultMaxSummaryLength,
			MaxDescriptionLength: DefaultMaxDescriptionLength,
		},
	}
}

// ApplyDefaults fills zero-valued tunables on a loaded mapping.
func ApplyDefaults(m *Mapping) {
	if m == nil {
		return
	}
	if m.ValidationRules.MaxSummaryLength == 0 {
		m.ValidationRules.MaxSummaryLength = DefaultMaxSummaryLength
	}
	if m.ValidationRules.MaxDescriptionLength == 0 {
		m.ValidationRules.MaxDescriptionLength = DefaultMaxDescriptionLength
	}
	if len(m.IdentityColumns) == 0 {
		m.IdentityColumns = []string{"ID", "Title"}
	}
}
