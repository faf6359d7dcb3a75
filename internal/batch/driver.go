// Copyright PDF Name Checker Contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package batch drives certificate processing over a directory of PDF
// files, one file at a time.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"pdf-name-checker/internal/extractor"
	"pdf-name-checker/internal/locator"
	"pdf-name-checker/internal/normalizer"
	"pdf-name-checker/internal/renamer"
)

// TextExtractor is the extraction backend used per file. *extractor.Extractor
// satisfies it; tests substitute fakes.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (*extractor.TextContent, error)
}

// Mode selects what the driver does with each successfully located name
type Mode int

const (
	// ModePreview prints extracted text and the derived name, writes nothing
	ModePreview Mode = iota
	// ModeRename copies each file into OutputDir under its normalized name
	ModeRename
)

// ErrInputDirMissing is returned when the input directory does not exist or
// is not a directory. It is the only fatal condition; everything else is a
// per-file skip.
var ErrInputDirMissing = errors.New("input directory missing")

// FileResult reports the outcome for one input file
type FileResult struct {
	File       string // base name of the input file
	Name       string // located certification name, if any
	OutputPath string // destination path, rename mode only
	Err        error  // nil on success
}

// Driver iterates the PDF files of one directory and processes them
// sequentially. Failures on individual files are recorded and skipped; the
// batch always runs to the end once started.
type Driver struct {
	Extractor TextExtractor
	InputDir  string
	OutputDir string // rename mode destination
	Verbose   bool   // print full extracted text in rename mode too
	Out       io.Writer
}

// Run processes every *.pdf file (non-recursive) in InputDir in sorted
// directory order. It returns the per-file results, or ErrInputDirMissing
// (wrapped) when InputDir is absent or not a directory. An existing but
// empty input directory is benign: a notice is printed and no results are
// returned.
func (d *Driver) Run(ctx context.Context, mode Mode) ([]FileResult, error) {
	out := d.Out
	if out == nil {
		out = os.Stdout
	}

	info, err := os.Stat(d.InputDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInputDirMissing, d.InputDir)
	}

	pdfFiles, err := filepath.Glob(filepath.Join(d.InputDir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", d.InputDir, err)
	}
	sort.Strings(pdfFiles)

	if len(pdfFiles) == 0 {
		fmt.Fprintf(out, "No PDF files found in '%s'.\n", d.InputDir)
		return nil, nil
	}

	if mode == ModeRename {
		if err := os.MkdirAll(d.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("error creating output directory %s: %w", d.OutputDir, err)
		}
	}

	results := make([]FileResult, 0, len(pdfFiles))
	for _, pdfFile := range pdfFiles {
		fmt.Fprintf(out, "\nProcessing: %s\n", filepath.Base(pdfFile))
		results = append(results, d.processFile(ctx, pdfFile, mode, out))
	}

	return results, nil
}

// processFile runs extraction, name location, and (in rename mode) the copy
// for a single file. Every failure is reported in the result and printed;
// none of them stop the batch.
func (d *Driver) processFile(ctx context.Context, pdfFile string, mode Mode, out io.Writer) FileResult {
	result := FileResult{File: filepath.Base(pdfFile)}

	content, err := d.Extractor.Extract(ctx, pdfFile)
	if err != nil {
		fmt.Fprintf(out, "Failed to extract text from %s: %v\n", result.File, err)
		result.Err = fmt.Errorf("extraction failed: %w", err)
		return result
	}

	if mode == ModePreview || d.Verbose {
		fmt.Fprintln(out, "Extracted text:")
		fmt.Fprintln(out, "----------------------------------------")
		fmt.Fprintln(out, content.Text)
		fmt.Fprintln(out, "----------------------------------------")
	}

	name, found := locator.FindName(content.Text)
	if !found {
		fmt.Fprintf(out, "Could not find certification name in %s\n", result.File)
		result.Err = fmt.Errorf("certification name not found")
		return result
	}
	result.Name = name

	if mode == ModePreview {
		fmt.Fprintf(out, "Found certification name: '%s'\n", name)
		fmt.Fprintf(out, "Snake case version: '%s'\n", normalizer.ToSnakeCase(name))
		return result
	}

	destPath, err := renamer.RenameOrCopy(pdfFile, name, d.OutputDir, renamer.ModeCopy)
	if err != nil {
		fmt.Fprintf(out, "Failed to rename %s: %v\n", result.File, err)
		result.Err = err
		return result
	}
	result.OutputPath = destPath
	fmt.Fprintf(out, "Copied and renamed to: %s\n", destPath)

	return result
}
