package commands

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/bridgeworks-labs/testbridge/internal/cli/config"
	"github.com/bridgeworks-labs/testbridge/internal/cli/output"
	mapping "github.com/bridgeworks-labs/testbridge/internal/config"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Mapping  *mapping.Mapping
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with the mapping and renderer
// resolved from configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	m := mapping.LoadMapping(cfg.MappingPath, logger)

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Mapping:  m,
		Renderer: r,
	}
}

// getConfig returns the current configuration. It uses
// config.GetCurrentConfig() if available, otherwise falls back to environment
// variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	previewRows := config.DefaultPreviewRows
	if v, err := strconv.Atoi(os.Getenv("TESTBRIDGE_PREVIEW_ROWS")); err == nil && v > 0 {
		previewRows = v
	}

	return &config.Config{
		MappingPath:  os.Getenv("TESTBRIDGE_MAPPING"),
		OutputFormat: getEnvOrDefault("TESTBRIDGE_OUTPUT", config.DefaultOutput),
		Verbose:      os.Getenv("TESTBRIDGE_VERBOSE") == "true",
		PreviewRows:  previewRows,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
