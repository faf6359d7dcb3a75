// Copyright PDF Name Checker Contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package help renders the colored usage output of the CLI tools.
package help

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"

	"pdf-name-checker/internal/version"
)

// System manages help output for the application
type System struct {
	colors map[string]*color.Color
}

// NewSystem creates a new help system. When noColor is true all output is
// plain text.
func NewSystem(noColor bool) *System {
	if noColor {
		color.NoColor = true
	}

	return &System{
		colors: map[string]*color.Color{
			"title":   color.New(color.FgWhite, color.Bold),
			"header":  color.New(color.FgBlue, color.Bold),
			"item":    color.New(color.FgCyan),
			"example": color.New(color.FgMagenta),
		},
	}
}

// ShowGeneralHelp displays usage information for the single-file tool
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Println("PDF Name Checker - Certificate Renaming Tool")
	fmt.Println("============================================")
	fmt.Println()
	fmt.Println("Extracts text from a PDF certificate (OCR fallback for scans), finds the")
	fmt.Println("name after \"This is to certify that\", and renames the file accordingly.")
	fmt.Println()

	h.colors["header"].Println("USAGE:")
	fmt.Println("  pdf-name-checker [options] <pdf-file>")
	fmt.Println()

	h.colors["header"].Println("OPTIONS:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --preview-only\tExtract and print text plus the derived name without renaming")
	fmt.Fprintln(w, "  --config <file>\tPath to a YAML configuration file")
	fmt.Fprintln(w, "  --verbose\tShow extracted text while processing")
	fmt.Fprintln(w, "  --debug\tEmit JSON operation records to stderr")
	fmt.Fprintln(w, "  --no-color\tDisable colored output")
	fmt.Fprintln(w, "  --version\tPrint version information and exit")
	fmt.Fprintln(w, "  --help\tShow this help")
	w.Flush()
	fmt.Println()

	h.colors["header"].Println("EXAMPLES:")
	h.colors["example"].Println("  pdf-name-checker certificate.pdf")
	h.colors["example"].Println("  pdf-name-checker --preview-only certificate.pdf")
	h.colors["example"].Println("  pdf-name-checker --config ocr.yaml certificate.pdf")
	fmt.Println()

	h.colors["header"].Println("CONFIGURATION:")
	fmt.Println("  The OCR engine executable can be set via the config file:")
	h.colors["item"].Println("    ocr:")
	h.colors["item"].Println("      tesseract_path: /usr/local/bin/tesseract")
	fmt.Println("  Without configuration, 'tesseract' and 'pdftoppm' are resolved via PATH.")
}

// ShowVersion prints version information
func (h *System) ShowVersion() {
	fmt.Println(version.Info())
}
