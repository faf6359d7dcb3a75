// Copyright PDF Name Checker Contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"pdf-name-checker/internal/config"
	"pdf-name-checker/internal/extractor"
	"pdf-name-checker/internal/help"
	"pdf-name-checker/internal/locator"
	"pdf-name-checker/internal/normalizer"
	"pdf-name-checker/internal/observability"
	"pdf-name-checker/internal/renamer"
)

// configFlags holds command line flag values
type configFlags struct {
	previewOnly bool
	configFile  string
	verbose     bool
	debug       bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	previewOnly bool
	verbose     bool
	debug       bool
	noColor     bool
}

// resolveConfiguration resolves final values from the config file and
// command line flags; flags win over the file
func resolveConfiguration(cfg *config.Config, flags *configFlags) *finalConfiguration {
	final := &finalConfiguration{
		previewOnly: flags.previewOnly,
		verbose:     flags.verbose || cfg.Defaults.Verbose,
		debug:       flags.debug || cfg.Defaults.Debug,
		noColor:     flags.noColor || cfg.Defaults.NoColor,
	}

	// Disable colors automatically when stdout is not a terminal
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		final.noColor = true
	}

	return final
}

// newExtractor builds the extractor with OCR settings injected from config
func newExtractor(cfg *config.Config, debug bool) *extractor.Extractor {
	level := observability.ObservabilityMetrics
	if debug {
		level = observability.ObservabilityDebug
	}
	observer := observability.NewStandardObserver(level, os.Stderr)

	return extractor.New(extractor.Options{
		TesseractPath: cfg.OCR.TesseractPath,
		PdftoppmPath:  cfg.OCR.PdftoppmPath,
		Language:      cfg.OCR.Language,
		Scale:         cfg.OCR.Scale,
		MinTextLength: cfg.OCR.MinTextLength,
		MaxPages:      cfg.OCR.MaxPages,
	}, observer)
}

func main() {
	flags := &configFlags{}
	flag.BoolVar(&flags.previewOnly, "preview-only", false, "Only extract and preview text without renaming the file")
	flag.StringVar(&flags.configFile, "config", "", "Path to a YAML configuration file")
	flag.BoolVar(&flags.verbose, "verbose", false, "Show extracted text while processing")
	flag.BoolVar(&flags.debug, "debug", false, "Emit JSON operation records to stderr")
	flag.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&flags.showVersion, "version", false, "Print version information and exit")
	flag.BoolVar(&flags.showHelp, "help", false, "Show help")
	flag.Parse()

	cfg := config.LoadConfigOrDefault(flags.configFile)
	final := resolveConfiguration(cfg, flags)

	helpSystem := help.NewSystem(final.noColor)

	if flags.showHelp {
		helpSystem.ShowGeneralHelp()
		os.Exit(0)
	}
	if flags.showVersion {
		helpSystem.ShowVersion()
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one PDF file argument is required")
		fmt.Fprintln(os.Stderr, "Usage: pdf-name-checker [options] <pdf-file>")
		os.Exit(1)
	}
	pdfPath := flag.Arg(0)

	ext := newExtractor(cfg, final.debug)

	var ok bool
	if final.previewOnly {
		ok = previewPDF(ext, pdfPath)
	} else {
		ok = processPDF(ext, pdfPath, final.verbose)
	}
	if !ok {
		os.Exit(1)
	}
}

// checkInputFile validates that the argument exists and looks like a PDF
func checkInputFile(pdfPath string) bool {
	if _, err := os.Stat(pdfPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: File '%s' does not exist\n", pdfPath)
		} else {
			fmt.Fprintf(os.Stderr, "Error: Cannot access '%s': %v\n", pdfPath, err)
		}
		return false
	}
	if !strings.EqualFold(filepath.Ext(pdfPath), ".pdf") {
		fmt.Fprintf(os.Stderr, "Error: '%s' is not a PDF file\n", pdfPath)
		return false
	}
	return true
}

// previewPDF extracts and prints the text and the derived name without
// touching the file
func previewPDF(ext *extractor.Extractor, pdfPath string) bool {
	if !checkInputFile(pdfPath) {
		return false
	}

	content, err := ext.Extract(context.Background(), pdfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to extract text from PDF: %v\n", err)
		return false
	}

	fmt.Println("Extracted text:")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println(content.Text)
	fmt.Println(strings.Repeat("=", 60))

	name, found := locator.FindName(content.Text)
	if !found {
		fmt.Println("Could not find certification phrase or name")
		return true
	}

	fmt.Printf("Found certification name: '%s'\n", name)
	fmt.Printf("Snake case version: '%s'\n", normalizer.ToSnakeCase(name))
	return true
}

// processPDF runs the full pipeline and renames the file in place
func processPDF(ext *extractor.Extractor, pdfPath string, verbose bool) bool {
	if !checkInputFile(pdfPath) {
		return false
	}

	fmt.Printf("Processing PDF: %s\n", pdfPath)

	content, err := ext.Extract(context.Background(), pdfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to extract text from PDF: %v\n", err)
		return false
	}

	if verbose {
		preview := content.Text
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Println("Extracted text preview:")
		fmt.Println(strings.Repeat("-", 50))
		fmt.Println(preview)
		fmt.Println(strings.Repeat("-", 50))
	}

	name, found := locator.FindName(content.Text)
	if !found {
		fmt.Fprintln(os.Stderr, "Could not find certification name in the PDF")
		return false
	}
	fmt.Printf("Extracted certification name: '%s'\n", name)

	destPath, err := renamer.RenameOrCopy(pdfPath, name, filepath.Dir(pdfPath), renamer.ModeMove)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to rename the file: %v\n", err)
		return false
	}

	success := color.New(color.FgGreen)
	success.Printf("Successfully renamed '%s' to '%s'\n", filepath.Base(pdfPath), filepath.Base(destPath))
	return true
}
