package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// WriteFile serializes a table to path. Every field is quoted unconditionally
// so multi-line cell content survives a round-trip, and duplicate-named column
// slots are written under a repeated header label.
func WriteFile(tbl *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Write(tbl, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Write serializes a table as CSV to w with all fields quoted.
func Write(tbl *Table, w io.Writer) error {
	bw := bufio.NewWriter(w)

	if err := writeRecord(bw, tbl.Names()); err != nil {
		return err
	}
	for i := 0; i < tbl.NumRows(); i++ {
		fields := make([]string, len(tbl.Columns))
		for ci, c := range tbl.Columns {
			fields[ci] = c.Values[i]
		}
		if err := writeRecord(bw, fields); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writeRecord(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(quote(f)); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
