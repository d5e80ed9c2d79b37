package commands

import (
	"fmt"
	"os"

	"github.com/bridgeworks-labs/testbridge/internal/cli/output"
	"github.com/bridgeworks-labs/testbridge/internal/table"
	"github.com/bridgeworks-labs/testbridge/internal/validate"
	"github.com/spf13/cobra"
)

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	Report string // Path to save the validation report to
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}
	cmd := &cobra.Command{
		Use:   "validate <input.csv>",
		Short: "Validate a CSV file against the mapping's rule set",
		Long: `Check a CSV file's structure, field formats, and business rules.

Structural defects (empty table, duplicate columns) are errors; data-quality
findings are warnings. The exit code is 1 when validation fails.`,
		Example: `  # Validate an export
  testbridge validate export.csv

  # Save a validation report
  testbridge validate export.csv --report report.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Report, "report", "", "Save validation report to file")

	return cmd
}

func runValidate(cmd *cobra.Command, inputPath string, opts *ValidateOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	tbl, err := table.ReadFile(inputPath)
	if err != nil {
		return err
	}

	validator := validate.New(cmdCtx.Mapping)
	result := validator.ValidateInput(tbl)

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(result); err != nil {
			return err
		}
	} else {
		renderInputResult(r, result)
	}

	if opts.Report != "" {
		// The report pairs input findings with a pass-through output
		// section; a standalone validate run has no transformed table.
		report := validate.GenerateReport(result, validate.OutputResult{
			Valid:          true,
			ReadyForImport: true,
		})
		if err := os.WriteFile(opts.Report, []byte(report), 0600); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		r.Printf("\nValidation report saved to %s\n", opts.Report)
	}

	if !result.Valid {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func renderInputResult(r *output.Renderer, result validate.InputResult) {
	if result.Valid {
		r.Success("validation passed")
	} else {
		r.Error("validation failed")
		r.Printf("\nErrors:\n")
		for _, e := range result.Errors {
			r.Printf("  - %s\n", e)
		}
	}

	if len(result.Warnings) > 0 {
		r.Printf("\nWarnings (%d):\n", len(result.Warnings))
		for _, w := range result.Warnings {
			r.Printf("  - %s\n", w)
		}
	}

	r.Printf("\nFile statistics:\n")
	r.Printf("  Rows: %d\n", result.RowCount)
	r.Printf("  Columns: %d\n", result.ColumnCount)
}
