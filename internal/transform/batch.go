package transform

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileOutcome is the per-file result of a batch run.
type FileOutcome struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Result Result `json:"result"`
}

// BatchResult aggregates a directory run.
type BatchResult struct {
	Outcomes  []FileOutcome `json:"outcomes"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}

// RunBatch transforms every file in inputDir matching pattern into outputDir.
// Files are processed in lexicographic order for reproducible summaries, and a
// failing file never stops the remaining ones. The returned error covers only
// setup problems (unreadable directory, no matches).
func (p *Pipeline) RunBatch(inputDir, outputDir, pattern string) (BatchResult, error) {
	var batch BatchResult

	if _, err := os.Stat(inputDir); err != nil {
		return batch, fmt.Errorf("input directory not found: %w", err)
	}
	if pattern == "" {
		pattern = "*.csv"
	}

	matches, err := filepath.Glob(filepath.Join(inputDir, pattern))
	if err != nil {
		return batch, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return batch, fmt.Errorf("no files matching %q found in %s", pattern, inputDir)
	}
	sort.Strings(matches)

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return batch, fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, input := range matches {
		output := filepath.Join(outputDir, outputName(input))
		p.logger.Info("processing batch file", "input", input)

		result := p.TransformFile(input, output)
		if result.Success {
			batch.Succeeded++
		} else {
			batch.Failed++
			p.logger.Warn("batch file failed", "input", input, "error", result.Err)
		}
		batch.Outcomes = append(batch.Outcomes, FileOutcome{
			Input:  input,
			Output: output,
			Result: result,
		})
	}

	return batch, nil
}

func outputName(input string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_transformed.csv"
}
