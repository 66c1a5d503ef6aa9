// Package pipeline sequences text extraction, field parsing, filename
// synthesis, and output placement for SunCHECK report files.
package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/medqa/suncheck-renamer/internal/pdf"
	"github.com/medqa/suncheck-renamer/internal/rename"
	"github.com/medqa/suncheck-renamer/internal/report"
)

// TextExtractor supplies the raw document text for a PDF file.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// Pipeline processes report files one at a time: extract text, parse the
// four required fields, synthesize the canonical filename, and place a copy
// in the output directory. All failures are file-scoped.
type Pipeline struct {
	extractor TextExtractor
	parser    *report.Parser
	placer    *rename.Placer
	outputDir string
	workers   int
}

// New creates a pipeline writing into outputDir. workers controls batch
// fan-out; values below 1 mean sequential processing.
func New(extractor TextExtractor, placer *rename.Placer, outputDir string, workers int) (*Pipeline, error) {
	if extractor == nil {
		return nil, fmt.Errorf("extractor cannot be nil")
	}
	if placer == nil {
		return nil, fmt.Errorf("placer cannot be nil")
	}
	if outputDir == "" {
		return nil, fmt.Errorf("output directory cannot be empty")
	}
	if workers < 1 {
		workers = 1
	}

	return &Pipeline{
		extractor: extractor,
		parser:    report.NewParser(),
		placer:    placer,
		outputDir: outputDir,
		workers:   workers,
	}, nil
}

// OutputDir returns the directory the pipeline writes into.
func (p *Pipeline) OutputDir() string {
	return p.outputDir
}

// ProcessFile runs the full pipeline for one PDF. Callers are expected to
// have filtered out non-PDF files already (ProcessBatch does this); the
// stages here assume a .pdf input.
func (p *Pipeline) ProcessFile(path string) Outcome {
	text, err := p.extractor.ExtractText(path)
	if err != nil {
		return failure(path, KindExtractionFailed, err)
	}

	fields, err := p.parser.Parse(text)
	if err != nil {
		out := failure(path, KindFieldMissing, err)
		var missing *report.MissingFieldError
		if errors.As(err, &missing) {
			out.Field = missing.Field
		}
		return out
	}

	dest, err := p.placer.Place(p.outputDir, rename.Filename(fields), path)
	if err != nil {
		return failure(path, KindIOFailure, err)
	}

	return success(path, dest)
}

// ProcessBatch processes the given files, skipping non-PDFs with a
// KindNotAPDF outcome before extraction is ever attempted. One outcome is
// returned per input, in input order; a failure for one file never aborts
// the others. With workers > 1 files are processed concurrently; the placer
// serializes the collision check per write, so identical synthesized names
// still land on distinct paths.
func (p *Pipeline) ProcessBatch(paths []string) []Outcome {
	outcomes := make([]Outcome, len(paths))

	process := func(i int, path string) {
		if !pdf.IsPDFFile(path) {
			outcomes[i] = failure(path, KindNotAPDF,
				fmt.Errorf("not a PDF file: %s", filepath.Base(path)))
			return
		}
		outcomes[i] = p.ProcessFile(path)
	}

	if p.workers <= 1 || len(paths) <= 1 {
		for i, path := range paths {
			process(i, path)
		}
		return outcomes
	}

	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			process(i, path)
		}(i, path)
	}
	wg.Wait()

	return outcomes
}

// ProcessDirectory enumerates *.pdf entries directly inside dir (sorted
// lexicographically, non-recursive) and processes them as a batch.
func (p *Pipeline) ProcessDirectory(dir string) ([]Outcome, error) {
	paths, err := pdf.ListPDFs(dir)
	if err != nil {
		return nil, err
	}
	return p.ProcessBatch(paths), nil
}
