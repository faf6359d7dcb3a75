// Copyright PDF Name Checker Contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extractor turns PDF certificate files into text. Embedded text
// objects are tried first; image-only documents fall back to OCR.
package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"pdf-name-checker/internal/observability"
)

// Extraction methods reported in TextContent.Method
const (
	MethodPDFText = "pdf-text"
	MethodPDFOCR  = "pdf-ocr"
)

// TextContent represents the extracted text content of a PDF document
type TextContent struct {
	Filename  string
	Text      string
	Method    string
	PageCount int
	CharCount int
	WordCount int
	LineCount int
}

// Options configures an Extractor. All OCR engine settings are injected here
// rather than read from process-wide state.
type Options struct {
	// TesseractPath overrides the OCR engine executable; empty uses PATH
	TesseractPath string
	// PdftoppmPath overrides the page renderer executable; empty uses PATH
	PdftoppmPath string
	// Language is the OCR language code; empty uses the engine default
	Language string
	// Scale is the render upscaling factor per dimension; <=0 means 2.0
	Scale float64
	// MinTextLength is the minimum trimmed length of embedded text that
	// counts as a successful digital extraction; <=0 means 50
	MinTextLength int
	// MaxPages caps page processing per document; <=0 means 50
	MaxPages int
}

// Extractor extracts text from PDF files, preferring embedded text and
// falling back to OCR for scanned documents
type Extractor struct {
	opts      Options
	engine    *TesseractEngine
	observer  *observability.StandardObserver
	pdfConfig *model.Configuration
}

// New creates an Extractor with the given options. A nil observer disables
// operation logging.
func New(opts Options, observer *observability.StandardObserver) *Extractor {
	if opts.Scale <= 0 {
		opts.Scale = 2.0
	}
	if opts.MinTextLength <= 0 {
		opts.MinTextLength = 50
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = 50
	}
	if observer == nil {
		observer = observability.NewStandardObserver(observability.ObservabilityOff, nil)
	}

	pdfConfig := model.NewDefaultConfiguration()
	pdfConfig.ValidationMode = model.ValidationRelaxed

	return &Extractor{
		opts: opts,
		engine: &TesseractEngine{
			TesseractPath: opts.TesseractPath,
			PdftoppmPath:  opts.PdftoppmPath,
			Language:      opts.Language,
			Scale:         opts.Scale,
			MaxPages:      opts.MaxPages,
		},
		observer:  observer,
		pdfConfig: pdfConfig,
	}
}

// Extract returns the textual content of the PDF at path.
//
// Embedded text extraction runs first; when its trimmed length exceeds the
// configured minimum the document is treated as a digital PDF and no OCR
// happens. Otherwise every page is rendered and OCR'd. Any failure of the
// active backend fails the whole document; there are no partial results.
func (e *Extractor) Extract(ctx context.Context, path string) (*TextContent, error) {
	done := e.observer.StartTiming("extractor", "extract", path)

	content, err := e.extract(ctx, path)
	if err != nil {
		done(false, map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	done(true, map[string]interface{}{
		"method":     content.Method,
		"page_count": content.PageCount,
		"char_count": content.CharCount,
	})
	return content, nil
}

func (e *Extractor) extract(ctx context.Context, path string) (*TextContent, error) {
	// Catch broken files up front with a relaxed structural validation, so
	// the OCR pipeline never runs against something that is not a PDF.
	if err := api.ValidateFile(path, e.pdfConfig); err != nil {
		return nil, fmt.Errorf("invalid PDF %s: %w", filepath.Base(path), err)
	}

	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading page count of %s: %w", filepath.Base(path), err)
	}

	content := &TextContent{
		Filename:  filepath.Base(path),
		PageCount: pageCount,
	}

	// Digital PDF fast path
	text, _, err := extractEmbeddedText(path, e.opts.MaxPages)
	if err == nil && len(strings.TrimSpace(text)) > e.opts.MinTextLength {
		content.Text = text
		content.Method = MethodPDFText
		content.fillCounts()
		return content, nil
	}

	// Embedded text was absent or too thin; treat the document as scanned
	// and OCR the rendered pages.
	ocrDone := e.observer.StartTiming("extractor", "ocr_fallback", path)
	text, err = e.engine.ExtractText(ctx, path)
	if err != nil {
		ocrDone(false, map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("OCR extraction failed for %s: %w", filepath.Base(path), err)
	}
	ocrDone(true, nil)

	content.Text = cleanExtractedText(text)
	content.Method = MethodPDFOCR
	content.fillCounts()
	return content, nil
}

// fillCounts derives the word/char/line statistics from Text
func (c *TextContent) fillCounts() {
	c.CharCount = len(c.Text)
	c.WordCount = len(strings.Fields(c.Text))
	if c.Text == "" {
		c.LineCount = 0
	} else {
		c.LineCount = strings.Count(c.Text, "\n") + 1
	}
}
