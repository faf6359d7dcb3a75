// Copyright PDF Name Checker Contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package normalizer converts free-form name text into filesystem-safe
// snake_case tokens.
package normalizer

import (
	"strings"
	"unicode"
)

// ToSnakeCase converts text to a lowercase snake_case token suitable for use
// as a filename. Letters, digits, and underscores are kept; every other
// character is treated as a word separator. Runs of separators collapse to a
// single underscore, and leading/trailing underscores are stripped.
//
// An empty result means the input contained no usable characters; callers
// must treat that as a failure, not as a valid filename.
func ToSnakeCase(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	// Replace everything that is not a word character with a space, then
	// let the whitespace collapse below produce single separators.
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(' ')
		}
	}

	// Collapse whitespace runs and join with underscores.
	token := strings.Join(strings.Fields(b.String()), "_")

	// Underscores kept from the input can still produce runs or dangle at
	// the edges ("__john__" -> "john").
	for strings.Contains(token, "__") {
		token = strings.ReplaceAll(token, "__", "_")
	}
	return strings.Trim(token, "_")
}
