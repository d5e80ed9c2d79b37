package commands

import (
	"fmt"
	"path/filepath"

	"github.com/bridgeworks-labs/testbridge/internal/cli/output"
	"github.com/bridgeworks-labs/testbridge/internal/transform"
	"github.com/spf13/cobra"
)

// BatchOptions holds options for the batch command.
type BatchOptions struct {
	Pattern string // Glob pattern for input files
}

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	opts := &BatchOptions{}
	cmd := &cobra.Command{
		Use:   "batch <input-dir> <output-dir>",
		Short: "Transform every matching CSV file in a directory",
		Long: `Transform all CSV files in a directory, one output file per input.

Files are processed in lexicographic order. A failing file is reported and
skipped; the remaining files are still processed. The exit code is 1 when any
file failed.`,
		Example: `  # Transform a directory of exports
  testbridge batch exports/ imports/

  # Restrict to a pattern
  testbridge batch exports/ imports/ --pattern 'release-*.csv'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Pattern, "pattern", "p", "*.csv", "File pattern to match")

	return cmd
}

func runBatch(cmd *cobra.Command, inputDir, outputDir string, opts *BatchOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	pipeline, err := transform.NewPipeline(cmdCtx.Mapping, cmdCtx.Logger)
	if err != nil {
		return err
	}

	batch, err := pipeline.RunBatch(inputDir, outputDir, opts.Pattern)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(batch); err != nil {
			return err
		}
	} else {
		renderBatchResult(r, batch)
	}

	if batch.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", batch.Failed, len(batch.Outcomes))
	}
	return nil
}

func renderBatchResult(r *output.Renderer, batch transform.BatchResult) {
	r.Header(2, "Batch Processing")
	for _, o := range batch.Outcomes {
		name := filepath.Base(o.Input)
		if o.Result.Success {
			detail := fmt.Sprintf("%d -> %d rows", o.Result.OriginalRows, o.Result.TransformedRows)
			r.StatusLine(name, "success", detail)
		} else {
			r.StatusLine(name, "error", o.Result.Err)
		}
	}

	r.Printf("\nSummary: %d succeeded, %d failed\n", batch.Succeeded, batch.Failed)
}
