package transform

import (
	"fmt"
	"log/slog"

	"github.com/bridgeworks-labs/testbridge/internal/config"
	"github.com/bridgeworks-labs/testbridge/internal/table"
	"github.com/bridgeworks-labs/testbridge/internal/validate"
)

// Pipeline wires the reader, engine, validator, and writer into the full
// read-validate-transform-validate-persist flow for one file.
type Pipeline struct {
	engine    *Engine
	validator *validate.Validator
	logger    *slog.Logger
}

// Result summarizes one pipeline run. Validation findings never flip Err;
// structural failures do.
type Result struct {
	Success         bool     `json:"success"`
	OriginalRows    int      `json:"original_rows"`
	TransformedRows int      `json:"transformed_rows"`
	Errors          []string `json:"errors"`
	Warnings        []string `json:"warnings"`
	OutputFile      string   `json:"output_file,omitempty"`
	Err             string   `json:"error,omitempty"`
}

// NewPipeline creates a pipeline for the given mapping. Construction fails
// for the same reasons engine construction does.
func NewPipeline(mapping *config.Mapping, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	eng, err := New(mapping, logger)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		engine:    eng,
		validator: validate.New(mapping),
		logger:    logger,
	}, nil
}

// TransformFile reads inputPath, transforms it, and writes the result to
// outputPath. The output file is only written after the full projection
// succeeds, so a failed run never leaves a partial file behind.
func (p *Pipeline) TransformFile(inputPath, outputPath string) Result {
	res, out := p.run(inputPath)
	if !res.Success {
		return res
	}

	if err := table.WriteFile(out, outputPath); err != nil {
		return fail(res, err)
	}

	res.OutputFile = outputPath
	p.logger.Info("transformation complete",
		"input", inputPath, "output", outputPath,
		"rows", res.TransformedRows)
	return res
}

// Preview runs the pipeline without persisting and returns the transformed
// table alongside the result.
func (p *Pipeline) Preview(inputPath string) (Result, *table.Table) {
	return p.run(inputPath)
}

func (p *Pipeline) run(inputPath string) (Result, *table.Table) {
	var res Result

	p.logger.Info("reading input file", "path", inputPath)
	in, err := table.ReadFile(inputPath)
	if err != nil {
		return fail(res, err), nil
	}

	inputRes := p.validator.ValidateInput(in)
	res.Warnings = append(res.Warnings, inputRes.Warnings...)
	if !inputRes.Valid {
		res.Errors = append(res.Errors, inputRes.Errors...)
		return fail(res, fmt.Errorf("input validation failed: %s", first(inputRes.Errors))), nil
	}

	out, stats, err := p.engine.Transform(in)
	if err != nil {
		return fail(res, err), nil
	}
	res.OriginalRows = stats.OriginalRows
	res.TransformedRows = stats.FilteredRows
	res.Warnings = append(res.Warnings, stats.Warnings...)

	outputRes := p.validator.ValidateOutput(out)
	res.Errors = append(res.Errors, outputRes.Errors...)
	res.Warnings = append(res.Warnings, outputRes.Warnings...)

	res.Success = true
	return res, out
}

// Validator exposes the pipeline's validator for callers that need a
// standalone validation pass.
func (p *Pipeline) Validator() *validate.Validator {
	return p.validator
}

func fail(res Result, err error) Result {
	res.Success = false
	res.Err = err.Error()
	return res
}

func first(msgs []string) string {
	if len(msgs) == 0 {
		return "unknown error"
	}
	return msgs[0]
}
