// Copyright PDF Name Checker Contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Command batch-rename copies every PDF in the input directory whose
// certificate text yields a recipient name into the output directory,
// renamed to the snake_case name with collision suffixes.
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
	// No flags: directories come from the discovered config file,
	// defaulting to ./pdf and ./pdf_renamed
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
		InputDir:  cfg.Batch.InputDir,
		OutputDir: cfg.Batch.OutputDir,
		Verbose:   cfg.Defaults.Verbose,
		Out:       os.Stdout,
	}

	results, err := driver.Run(context.Background(), batch.ModeRename)
	if err != nil {
		if errors.Is(err, batch.ErrInputDirMissing) {
			fmt.Fprintf(os.Stderr, "Input directory '%s' does not exist.\n", cfg.Batch.InputDir)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	renamed := 0
	skipped := 0
	for _, r := range results {
		if r.Err != nil {
			skipped++
		} else {
			renamed++
		}
	}
	if len(results) > 0 {
		fmt.Printf("\nDone: %d renamed, %d skipped.\n", renamed, skipped)
	}
}
