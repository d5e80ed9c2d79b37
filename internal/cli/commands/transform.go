package commands

import (
	"fmt"
	"os"

	"github.com/bridgeworks-labs/testbridge/internal/cli/output"
	"github.com/bridgeworks-labs/testbridge/internal/table"
	"github.com/bridgeworks-labs/testbridge/internal/transform"
	"github.com/spf13/cobra"
)

// TransformOptions holds options for the transform command.
type TransformOptions struct {
	Validate bool // Validate the input before transforming
}

// NewTransformCommand creates the transform command.
func NewTransformCommand() *cobra.Command {
	opts := &TransformOptions{}
	cmd := &cobra.Command{
		Use:   "transform <input.csv> <output.csv>",
		Short: "Transform a TestRail CSV export to Jira import format",
		Long: `Transform a TestRail CSV export into a Jira-importable CSV file.

The projection is driven by the mapping configuration: column mappings,
static values, and named transformation functions. The output file is only
written after the full projection succeeds.`,
		Example: `  # Basic transformation
  testbridge transform export.csv import.csv

  # Use a custom mapping
  testbridge transform export.csv import.csv --mapping zephyr.json

  # Validate the input before transforming
  testbridge transform export.csv import.csv --validate`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Validate, "validate", false, "Validate the input file before transforming")

	return cmd
}

func runTransform(cmd *cobra.Command, inputPath, outputPath string, opts *TransformOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	pipeline, err := transform.NewPipeline(cmdCtx.Mapping, cmdCtx.Logger)
	if err != nil {
		return err
	}

	if opts.Validate {
		in, err := table.ReadFile(inputPath)
		if err != nil {
			return err
		}
		inputRes := pipeline.Validator().ValidateInput(in)
		if !inputRes.Valid {
			r.Error("input validation failed")
			for _, e := range inputRes.Errors {
				r.Printf("  - %s\n", e)
			}
			return fmt.Errorf("input validation failed")
		}
		r.Success("input validation passed")
	}

	result := pipeline.TransformFile(inputPath, outputPath)

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(result); err != nil {
			return err
		}
		if !result.Success {
			return fmt.Errorf("transformation failed")
		}
		return nil
	}

	if !result.Success {
		r.Error("transformation failed: " + result.Err)
		for _, e := range result.Errors {
			r.Printf("  - %s\n", e)
		}
		return fmt.Errorf("transformation failed")
	}

	r.Success("transformation completed")
	r.Printf("  Rows processed: %d -> %d\n", result.OriginalRows, result.TransformedRows)
	r.Printf("  Output: %s\n", r.Styles().FilePath.Render(result.OutputFile))
	printFindings(r, result)

	return nil
}

// printFindings prints the non-fatal errors and warnings of a pipeline result.
func printFindings(r *output.Renderer, result transform.Result) {
	if len(result.Errors) > 0 {
		r.Printf("\n")
		r.Warning(fmt.Sprintf("%d validation errors in output:", len(result.Errors)))
		for _, e := range result.Errors {
			r.Printf("  - %s\n", e)
		}
	}
	if len(result.Warnings) > 0 {
		r.Printf("\n")
		r.Warning(fmt.Sprintf("%d warnings:", len(result.Warnings)))
		for _, w := range result.Warnings {
			r.Printf("  - %s\n", w)
		}
	}
}
