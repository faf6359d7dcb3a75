// Copyright PDF Name Checker Contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extractor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Base PDF user-space resolution; the configured scale multiplies this.
const baseDPI = 72

// TesseractEngine runs OCR by rendering PDF pages to images with poppler's
// pdftoppm and feeding each image to the tesseract executable. Both binary
// paths are injected so a local install outside PATH still works.
type TesseractEngine struct {
	// TesseractPath is the OCR executable; empty means "tesseract" on PATH
	TesseractPath string
	// PdftoppmPath is the page renderer executable; empty means "pdftoppm" on PATH
	PdftoppmPath string
	// Language is the tesseract language code, e.g. "eng"
	Language string
	// Scale is the render upscaling factor per dimension; 2.0 renders at 144 dpi
	Scale float64
	// MaxPages caps how many rendered pages are OCR'd; 0 means all
	MaxPages int
}

// tesseractBinary resolves the configured OCR executable
func (e *TesseractEngine) tesseractBinary() string {
	if e.TesseractPath != "" {
		return e.TesseractPath
	}
	return "tesseract"
}

// pdftoppmBinary resolves the configured renderer executable
func (e *TesseractEngine) pdftoppmBinary() string {
	if e.PdftoppmPath != "" {
		return e.PdftoppmPath
	}
	return "pdftoppm"
}

// renderDPI converts the upscaling factor to a pdftoppm resolution
func (e *TesseractEngine) renderDPI() int {
	scale := e.Scale
	if scale <= 0 {
		scale = 2.0
	}
	return int(baseDPI * scale)
}

// ExtractText renders each page of the PDF to a PNG in a temporary directory
// and runs OCR on it, concatenating the per-page results with newlines.
// Page images are deleted before returning.
func (e *TesseractEngine) ExtractText(ctx context.Context, filePath string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "pdf-name-checker-ocr-*")
	if err != nil {
		return "", fmt.Errorf("error creating temp dir for page renders: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pages, err := e.renderPages(ctx, filePath, tmpDir)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for _, page := range pages {
		pageText, err := e.recognizePage(ctx, page)
		if err != nil {
			return "", err
		}
		buf.WriteString(pageText)
		buf.WriteString("\n")
	}

	return buf.String(), nil
}

// renderPages rasterizes the PDF into per-page PNGs and returns their paths
// in page order
func (e *TesseractEngine) renderPages(ctx context.Context, filePath, tmpDir string) ([]string, error) {
	prefix := filepath.Join(tmpDir, "page")

	// pdftoppm -r <dpi> -png <in.pdf> <tmp>/page
	cmd := exec.CommandContext(ctx, e.pdftoppmBinary(), "-r", fmt.Sprintf("%d", e.renderDPI()), "-png", filePath, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("error rendering pages with %s: %v (%s)", e.pdftoppmBinary(), err, strings.TrimSpace(string(out)))
	}

	// pdftoppm names output page-1.png, page-2.png, ... (zero-padded once
	// the document has 10+ pages, so lexical order matches page order)
	pages, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("error listing rendered pages: %w", err)
	}
	sort.Strings(pages)

	if len(pages) == 0 {
		return nil, fmt.Errorf("%s produced no page images for %s", e.pdftoppmBinary(), filepath.Base(filePath))
	}
	if e.MaxPages > 0 && len(pages) > e.MaxPages {
		pages = pages[:e.MaxPages]
	}

	return pages, nil
}

// recognizePage runs the OCR engine on a single rendered page image
func (e *TesseractEngine) recognizePage(ctx context.Context, imagePath string) (string, error) {
	args := []string{imagePath, "stdout"}
	if e.Language != "" {
		args = append(args, "-l", e.Language)
	}

	cmd := exec.CommandContext(ctx, e.tesseractBinary(), args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("error running %s on %s: %v (%s)", e.tesseractBinary(), filepath.Base(imagePath), err, strings.TrimSpace(stderr.String()))
	}

	return string(out), nil
}
