// Package config provides configuration management for the testbridge CLI.
// App-level settings layer defaults, a YAML config file, environment
// variables, and CLI flags, highest last. The mapping document itself is
// handled separately by internal/config.
package config

// Config holds all CLI configuration options.
type Config struct {
	// MappingPath is the default mapping document used by commands when no
	// --mapping flag is given.
	MappingPath string `koanf:"mapping"`

	// OutputFormat selects the renderer mode (auto|text|markdown|json).
	OutputFormat string `koanf:"output"`

	Verbose bool `koanf:"verbose"`

	// PreviewRows is how many rows the preview command samples from each
	// end of the table.
	PreviewRows int `koanf:"preview_rows"`
}

// Default configuration values.
const (
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultPreviewRows = 5
)
