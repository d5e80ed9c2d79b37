// Package transform implements the row-wise projection engine that converts
// TestRail-shaped tables into Jira import tables, driven by a mapping
// configuration and a closed vocabulary of named transformations.
package transform

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bridgeworks-labs/testbridge/internal/config"
	"github.com/bridgeworks-labs/testbridge/internal/table"
)

// Engine projects input tables onto the mapping's output schema. It holds no
// per-call state; Transform may be called repeatedly.
type Engine struct {
	mapping *config.Mapping
	logger  *slog.Logger
}

// Stats reports what one Transform call did.
type Stats struct {
	// OriginalRows is the input row count before the empty-record prefilter.
	OriginalRows int
	// FilteredRows is the row count after the prefilter; it equals the
	// output row count.
	FilteredRows int
	// Warnings holds non-fatal per-field degradations, such as a mapped
	// source column missing from the input schema.
	Warnings []string
}

// New creates an engine for the given mapping. Every transformation
// identifier the mapping references must exist in the closed registry;
// an unknown identifier is a configuration bug and fails construction.
func New(mapping *config.Mapping, logger *slog.Logger) (*Engine, error) {
	if mapping == nil {
		return nil, fmt.Errorf("mapping is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	for field, name := range mapping.Transformations {
		if _, ok := lookupTransformation(name); !ok {
			return nil, fmt.Errorf("unknown transformation %q for field %q (known: %s)",
				name, field, strings.Join(TransformationNames(), ", "))
		}
	}
	return &Engine{mapping: mapping, logger: logger}, nil
}

// Transform projects in onto the output schema. The input table is not
// modified. Missing source columns degrade to empty output fields plus a
// warning; only a structurally degenerate input aborts the call.
func (e *Engine) Transform(in *table.Table) (*table.Table, Stats, error) {
	var stats Stats
	if in == nil || in.NumColumns() == 0 {
		return nil, stats, fmt.Errorf("input table has no columns")
	}
	if err := in.Validate(); err != nil {
		return nil, stats, fmt.Errorf("malformed input table: %w", err)
	}

	stats.OriginalRows = in.NumRows()
	filtered := e.dropEmptyRecords(in)
	stats.FilteredRows = filtered.NumRows()
	if dropped := stats.OriginalRows - stats.FilteredRows; dropped > 0 {
		e.logger.Debug("dropped empty records", "count", dropped)
	}

	rows := filtered.NumRows()
	out := table.New()
	for _, field := range e.mapping.JiraFields {
		values, warning := e.projectField(field, filtered, rows)
		if warning != "" {
			stats.Warnings = append(stats.Warnings, warning)
			e.logger.Warn(warning)
		}
		out.AppendColumn(field, values)
	}

	out.Normalize()
	return out, stats, nil
}

// projectField produces the values for one output schema slot.
func (e *Engine) projectField(field string, in *table.Table, rows int) ([]string, string) {
	if literal, ok := e.mapping.StaticValues[field]; ok {
		return repeat(literal, rows), ""
	}

	src, mapped := e.mapping.ColumnMappings[field]
	if !mapped {
		return make([]string, rows), ""
	}

	col, ok := in.Lookup(src)
	if !ok {
		return make([]string, rows), fmt.Sprintf("source column %s not found for %s", src, field)
	}

	values := make([]string, rows)
	copy(values, col.Values)

	if name, ok := e.mapping.Transformations[field]; ok {
		t, _ := lookupTransformation(name)
		switch {
		case t.Record != nil:
			for i := range values {
				values[i] = t.Record(in.Row(i))
			}
		case t.Value != nil:
			for i := range values {
				values[i] = t.Value(values[i])
			}
		}
	}
	return values, ""
}

// dropEmptyRecords removes records whose identity-bearing columns are all
// empty. When none of the identity columns exist in the input the filter is a
// no-op.
func (e *Engine) dropEmptyRecords(in *table.Table) *table.Table {
	var identity []*table.Column
	for _, name := range e.mapping.IdentityColumns {
		if col, ok := in.Lookup(name); ok {
			identity = append(identity, col)
		}
	}
	if len(identity) == 0 {
		return in.Clone()
	}
	return in.FilterRows(func(i int) bool {
		for _, col := range identity {
			if strings.TrimSpace(col.Values[i]) != "" {
				return true
			}
		}
		return false
	})
}

func repeat(value string, n int) []string {
	values := make([]string, n)
	for i := range values {
		values[i] = value
	}
	return values
}
