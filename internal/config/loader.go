package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadMapping loads a mapping document from path. A missing or unparseable
// file is not an error: the built-in defaults are used and the problem is
// logged at warn level. Fields configured both statically and via a column
// mapping are flagged; the static value wins for them.
func LoadMapping(path string, logger *slog.Logger) *Mapping {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if path == "" {
		return DefaultMapping()
	}
	if _, err := os.Stat(path); err != nil {
		logger.Warn("mapping file not found, using defaults", "path", path)
		return DefaultMapping()
	}

	m, err := parseMapping(path)
	if err != nil {
		logger.Warn("failed to load mapping, using defaults", "path", path, "error", err)
		return DefaultMapping()
	}

	ApplyDefaults(m)

	for _, field := range m.DoublyConfigured() {
		logger.Warn("field is both static and mapped; static value wins", "field", field)
	}

	logger.Debug("loaded mapping", "path", path, "output_fields", len(m.JiraFields))
	return m
}

func parseMapping(path string) (*Mapping, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, fmt.Errorf("error reading mapping file %s: %w", path, err)
	}

	var m Mapping
	if err := k.Unmarshal("", &m); err != nil {
		return nil, fmt.Errorf("unable to decode mapping: %w", err)
	}
	return &m, nil
}
