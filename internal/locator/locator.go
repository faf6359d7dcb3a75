// Copyright PDF Name Checker Contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package locator finds the recipient name that follows the certification
// marker phrase in extracted certificate text.
package locator

import (
	"regexp"
	"strings"
)

// The marker phrase is matched case-insensitively with flexible whitespace
// between words, since OCR output frequently mangles spacing.
var (
	markerPattern = regexp.MustCompile(`(?i)this\s+is\s+to\s+certify\s+that`)
	trailingName  = regexp.MustCompile(`(?i)this\s+is\s+to\s+certify\s+that\s+(.+)`)
)

// FindName scans text for the phrase "This is to certify that" and returns
// the recipient name that follows it.
//
// For each occurrence, the name is taken from the remainder of the matching
// line if non-empty, otherwise from the next non-empty line among the two
// lines that follow. If an occurrence yields no name, scanning continues at
// the next line; the first occurrence that yields a name wins. The second
// return value is false when no occurrence yields a name.
func FindName(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	lines := strings.Split(text, "\n")

	for i, line := range lines {
		if !markerPattern.MatchString(line) {
			continue
		}

		// Name on the same line, after the phrase.
		if m := trailingName.FindStringSubmatch(line); m != nil {
			if name := strings.TrimSpace(m[1]); name != "" {
				return name, true
			}
		}

		// Certificates often put the name on its own line below the
		// phrase, sometimes with a blank line in between.
		if i+1 < len(lines) {
			if name := strings.TrimSpace(lines[i+1]); name != "" {
				return name, true
			}
		}
		if i+2 < len(lines) {
			if name := strings.TrimSpace(lines[i+2]); name != "" {
				return name, true
			}
		}

		// This occurrence yielded nothing; a later occurrence may still
		// carry the name.
	}

	return "", false
}
