package commands

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates
var templateFS embed.FS

// InitConfigOptions holds options for the init-config command.
type InitConfigOptions struct {
	Template string // Template name: default or zephyr
	Force    bool   // Overwrite an existing file
}

// NewInitConfigCommand creates the init-config command.
func NewInitConfigCommand() *cobra.Command {
	opts := &InitConfigOptions{}
	cmd := &cobra.Command{
		Use:   "init-config <file.json>",
		Short: "Generate a sample mapping configuration",
		Long: `Write a sample mapping configuration to the given path.

Edit the generated file to customize column mappings, static values,
transformations, and validation rules.`,
		Example: `  # Generate the default TestRail mapping
  testbridge init-config mapping.json

  # Generate a Zephyr-flavoured mapping
  testbridge init-config mapping.json --template zephyr`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitConfig(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Template, "template", "default", "Configuration template (default|zephyr)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite an existing file")

	return cmd
}

func runInitConfig(cmd *cobra.Command, path string, opts *InitConfigOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	content, err := templateFS.ReadFile(filepath.Join("templates", opts.Template+".json"))
	if err != nil {
		return fmt.Errorf("unknown template %q (available: default, zephyr)", opts.Template)
	}

	if _, err := os.Stat(path); err == nil && !opts.Force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", path)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	r.Success("configuration file created: " + path)
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Edit the mapping to match your export columns")
	r.Println("  2. Run 'testbridge preview export.csv -m " + path + "'")
	r.Println("  3. Run 'testbridge transform export.csv import.csv -m " + path + "'")

	return nil
}
