// Copyright PDF Name Checker Contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Command batch-preview extracts and prints the text and derived name of
// every PDF in the input directory without renaming anything.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"pdf-name-checker/internal/batch"
	"pdf-name-checker/internal/config"
	"pdf-name-checker/internal/extractor"
	"pdf-name-checker/internal/observability"
)

func main() {
	// No flags: the input directory comes from the discovered config file,
	// defaulting to ./pdf
	cfg := config.LoadConfigOrDefault("")

	level := observability.ObservabilityMetrics
	if cfg.Defaults.Debug {
		level = observability.ObservabilityDebug
	}
	observer := observability.NewStandardObserver(level, os.Stderr)

	driver := &batch.Driver{
		Extractor: extractor.New(extractor.Options{
			TesseractPath: cfg.OCR.TesseractPath,
			PdftoppmPath:  cfg.OCR.PdftoppmPath,
			Language:      cfg.OCR.Language,
			Scale:         cfg.OCR.Scale,
			MinTextLength: cfg.OCR.MinTextLength,
			MaxPages:      cfg.OCR.MaxPages,
		}, observer),
		InputDir: cfg.Batch.InputDir,
		Out:      os.Stdout,
	}

	if _, err := driver.Run(context.Background(), batch.ModePreview); err != nil {
		if errors.Is(err, batch.ErrInputDirMissing) {
			fmt.Fprintf(os.Stderr, "Input directory '%s' does not exist.\n", cfg.Batch.InputDir)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
