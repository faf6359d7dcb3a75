// Copyright PDF Name Checker Contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extractor

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractEmbeddedText reads the text objects embedded in the PDF, page by
// page. Pages with no text contribute nothing. maxPages caps processing for
// very large documents; 0 means no cap.
func extractEmbeddedText(filePath string, maxPages int) (string, int, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	pageCount := r.NumPage()
	limit := pageCount
	if maxPages > 0 && limit > maxPages {
		limit = maxPages
	}

	var buf bytes.Buffer
	for i := 1; i <= limit; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		text, err := extractPageText(p)
		if err != nil {
			// A single unreadable page does not fail the document;
			// the length threshold decides whether OCR runs instead.
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(text)
	}

	return cleanExtractedText(buf.String()), pageCount, nil
}

// extractPageText extracts text from one page using row-based positioning so
// that lines come out in reading order. Certificates put the marker phrase
// above the recipient name, so top-to-bottom ordering matters here.
func extractPageText(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		// Fallback to simple text extraction if row-based fails
		return p.GetPlainText(nil)
	}

	sortedRows := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sortedRows = append(sortedRows, row)
		}
	}

	// PDF Y coordinates grow from the bottom of the page, so higher Y means
	// closer to the top. Descending Y gives top-to-bottom reading order.
	sort.Slice(sortedRows, func(i, j int) bool {
		return averageY(sortedRows[i].Content) > averageY(sortedRows[j].Content)
	})

	var buf bytes.Buffer
	for _, row := range sortedRows {
		rowText := joinRowText(row.Content)
		if strings.TrimSpace(rowText) == "" {
			continue
		}
		buf.WriteString(rowText)
		buf.WriteString("\n")
	}

	return buf.String(), nil
}

// averageY computes the mean Y coordinate of a row's text fragments
func averageY(elements []pdf.Text) float64 {
	if len(elements) == 0 {
		return 0
	}
	var total float64
	for _, el := range elements {
		total += el.Y
	}
	return total / float64(len(elements))
}

// joinRowText assembles the text fragments of a row left to right
func joinRowText(elements []pdf.Text) string {
	sorted := make([]pdf.Text, len(elements))
	copy(sorted, elements)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	var parts []string
	for _, el := range sorted {
		if s := strings.TrimSpace(el.S); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// cleanExtractedText trims each line and collapses in-line whitespace runs
// while preserving the line structure the locator depends on
func cleanExtractedText(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n")
}
