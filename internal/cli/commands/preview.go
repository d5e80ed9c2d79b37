package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/bridgeworks-labs/testbridge/internal/cli/output"
	"github.com/bridgeworks-labs/testbridge/internal/table"
	"github.com/bridgeworks-labs/testbridge/internal/transform"
	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// PreviewOptions holds options for the preview command.
type PreviewOptions struct {
	Rows int // Number of rows to sample from each end
}

// NewPreviewCommand creates the preview command.
func NewPreviewCommand() *cobra.Command {
	opts := &PreviewOptions{}
	cmd := &cobra.Command{
		Use:   "preview <input.csv>",
		Short: "Preview a transformation without writing output",
		Example: `  # Preview with the default mapping
  testbridge preview export.csv

  # Preview more rows
  testbridge preview export.csv --rows 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Rows, "rows", "r", 0, "Number of rows to preview (default from config)")

	return cmd
}

func runPreview(cmd *cobra.Command, inputPath string, opts *PreviewOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	pipeline, err := transform.NewPipeline(cmdCtx.Mapping, cmdCtx.Logger)
	if err != nil {
		return err
	}

	result, out := pipeline.Preview(inputPath)
	if !result.Success {
		return fmt.Errorf("preview failed: %s", result.Err)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(result)
	}

	sample := opts.Rows
	if sample <= 0 {
		sample = cmdCtx.Cfg.PreviewRows
	}

	r.Header(2, "Transformation Preview")
	r.Printf("Rows: %d (from %d)\n", result.TransformedRows, result.OriginalRows)
	r.Printf("Columns: %s\n\n", strings.Join(out.Names(), ", "))

	renderSample(r, out, sample)
	renderColumnStats(r, out)
	printFindings(r, result)

	return nil
}

// renderSample prints the first and last sample rows of the table.
func renderSample(r *output.Renderer, tbl *table.Table, sample int) {
	rows := tbl.NumRows()
	if rows == 0 {
		r.Println("(0 rows)")
		return
	}

	if rows <= sample*2 {
		r.Printf("Rows:\n")
		renderRows(r, tbl, 0, rows)
		return
	}

	r.Printf("First %d rows:\n", sample)
	renderRows(r, tbl, 0, sample)
	r.Printf("\nLast %d rows:\n", sample)
	renderRows(r, tbl, rows-sample, rows)
}

func renderRows(r *output.Renderer, tbl *table.Table, from, to int) {
	t := prettytable.NewWriter()
	t.SetStyle(prettytable.StyleLight)

	header := make(prettytable.Row, tbl.NumColumns())
	for i, name := range tbl.Names() {
		header[i] = name
	}
	t.AppendHeader(header)

	for i := from; i < to; i++ {
		row := make(prettytable.Row, tbl.NumColumns())
		for ci, c := range tbl.Columns {
			row[ci] = c.Values[i]
		}
		t.AppendRow(row)
	}

	r.Println(t.Render())
}

// renderColumnStats prints per-column non-empty counts.
func renderColumnStats(r *output.Renderer, tbl *table.Table) {
	rows := tbl.NumRows()
	r.Printf("\nColumn statistics:\n")
	for _, c := range tbl.Columns {
		nonEmpty := 0
		for _, v := range c.Values {
			if strings.TrimSpace(v) != "" {
				nonEmpty++
			}
		}
		r.Printf("  %s: %d/%d non-empty values\n", c.Name, nonEmpty, rows)
	}
}
