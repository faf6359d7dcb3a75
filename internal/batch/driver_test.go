// Copyright PDF Name Checker Contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-name-checker/internal/extractor"
)

// fakeExtractor maps file base names to canned text or errors
type fakeExtractor struct {
	texts map[string]string
	errs  map[string]error
}

func (f *fakeExtractor) Extract(_ context.Context, path string) (*extractor.TextContent, error) {
	base := filepath.Base(path)
	if err, ok := f.errs[base]; ok {
		return nil, err
	}
	text, ok := f.texts[base]
	if !ok {
		return nil, fmt.Errorf("unexpected file %s", base)
	}
	return &extractor.TextContent{Filename: base, Text: text}, nil
}

func certText(name string) string {
	return "Certificate of Achievement\nThis is to certify that\n" + name + "\nhas completed the course"
}

func writePDF(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4 stub"), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestRun_RenameMode(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "pdf_renamed")
	writePDF(t, inputDir, "cert1.pdf")
	writePDF(t, inputDir, "cert2.pdf")

	d := &Driver{
		Extractor: &fakeExtractor{texts: map[string]string{
			"cert1.pdf": certText("John Quincy Adams"),
			"cert2.pdf": certText("Jane Doe"),
		}},
		InputDir:  inputDir,
		OutputDir: outputDir,
		Out:       &strings.Builder{},
	}

	results, err := d.Run(context.Background(), ModeRename)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		assert.NoError(t, r.Err)
	}
	assert.FileExists(t, filepath.Join(outputDir, "john_quincy_adams.pdf"))
	assert.FileExists(t, filepath.Join(outputDir, "jane_doe.pdf"))

	// Sources are copied, not moved
	assert.FileExists(t, filepath.Join(inputDir, "cert1.pdf"))
	assert.FileExists(t, filepath.Join(inputDir, "cert2.pdf"))
}

func TestRun_CollisionGetsSuffix(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writePDF(t, inputDir, "a.pdf")
	writePDF(t, inputDir, "b.pdf")

	d := &Driver{
		Extractor: &fakeExtractor{texts: map[string]string{
			"a.pdf": certText("Foo"),
			"b.pdf": certText("Foo"),
		}},
		InputDir:  inputDir,
		OutputDir: outputDir,
		Out:       &strings.Builder{},
	}

	results, err := d.Run(context.Background(), ModeRename)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.FileExists(t, filepath.Join(outputDir, "foo.pdf"))
	assert.FileExists(t, filepath.Join(outputDir, "foo_1.pdf"))
}

func TestRun_SkipAndContinueOnFailures(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writePDF(t, inputDir, "broken.pdf")
	writePDF(t, inputDir, "noname.pdf")
	writePDF(t, inputDir, "ok.pdf")

	var out strings.Builder
	d := &Driver{
		Extractor: &fakeExtractor{
			texts: map[string]string{
				"noname.pdf": "Certificate of Participation\nno marker phrase here",
				"ok.pdf":     certText("Jane Doe"),
			},
			errs: map[string]error{
				"broken.pdf": errors.New("corrupt xref table"),
			},
		},
		InputDir:  inputDir,
		OutputDir: outputDir,
		Out:       &out,
	}

	results, err := d.Run(context.Background(), ModeRename)
	require.NoError(t, err, "per-file failures must not fail the batch")
	require.Len(t, results, 3)

	// Sorted order: broken.pdf, noname.pdf, ok.pdf
	assert.Error(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)

	assert.FileExists(t, filepath.Join(outputDir, "jane_doe.pdf"))
	assert.Contains(t, out.String(), "Failed to extract text from broken.pdf")
	assert.Contains(t, out.String(), "Could not find certification name in noname.pdf")
}

func TestRun_PreviewModeWritesNothing(t *testing.T) {
	inputDir := t.TempDir()
	writePDF(t, inputDir, "cert.pdf")

	var out strings.Builder
	d := &Driver{
		Extractor: &fakeExtractor{texts: map[string]string{
			"cert.pdf": certText("John Quincy Adams"),
		}},
		InputDir: inputDir,
		Out:      &out,
	}

	results, err := d.Run(context.Background(), ModePreview)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "John Quincy Adams", results[0].Name)

	assert.Contains(t, out.String(), "Extracted text:")
	assert.Contains(t, out.String(), "Found certification name: 'John Quincy Adams'")
	assert.Contains(t, out.String(), "Snake case version: 'john_quincy_adams'")

	// Preview performs no filesystem writes
	entries, err := os.ReadDir(inputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRun_MissingInputDir(t *testing.T) {
	d := &Driver{
		Extractor: &fakeExtractor{},
		InputDir:  filepath.Join(t.TempDir(), "does-not-exist"),
		Out:       &strings.Builder{},
	}

	_, err := d.Run(context.Background(), ModePreview)
	assert.True(t, errors.Is(err, ErrInputDirMissing), "expected ErrInputDirMissing, got %v", err)
}

func TestRun_EmptyInputDir(t *testing.T) {
	inputDir := t.TempDir()

	var out strings.Builder
	d := &Driver{
		Extractor: &fakeExtractor{},
		InputDir:  inputDir,
		Out:       &out,
	}

	results, err := d.Run(context.Background(), ModePreview)
	require.NoError(t, err, "empty input dir is benign")
	assert.Empty(t, results)
	assert.Contains(t, out.String(), "No PDF files found")
}

func TestRun_NonPDFFilesIgnored(t *testing.T) {
	inputDir := t.TempDir()
	writePDF(t, inputDir, "cert.pdf")
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "notes.txt"), []byte("x"), 0644))

	d := &Driver{
		Extractor: &fakeExtractor{texts: map[string]string{
			"cert.pdf": certText("Jane Doe"),
		}},
		InputDir: inputDir,
		Out:      &strings.Builder{},
	}

	results, err := d.Run(context.Background(), ModePreview)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}
