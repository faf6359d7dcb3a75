// Copyright PDF Name Checker Contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package renamer moves or copies PDF files to a destination named after the
// normalized recipient name, never overwriting existing files.
package renamer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pdf-name-checker/internal/normalizer"
)

// Mode selects the filesystem operation performed by RenameOrCopy
type Mode int

const (
	// ModeMove renames the source file in place
	ModeMove Mode = iota
	// ModeCopy copies the source file, preserving permissions and mtime
	ModeCopy
)

// ErrInvalidName is returned when the candidate name normalizes to an empty
// token and therefore cannot form a filename.
var ErrInvalidName = errors.New("candidate name normalizes to an empty token")

// RenameOrCopy derives `<token>.pdf` from candidateName and moves or copies
// sourcePath to that name inside destDir. When the destination already
// exists, `_1`, `_2`, ... suffixes are tried until a free path is found, so
// existing files are never overwritten. The chosen destination path is
// returned.
//
// On failure the source file is left untouched; the destination path is only
// claimed by the final rename/copy itself.
func RenameOrCopy(sourcePath, candidateName, destDir string, mode Mode) (string, error) {
	token := normalizer.ToSnakeCase(candidateName)
	if token == "" {
		return "", ErrInvalidName
	}

	if _, err := os.Stat(sourcePath); err != nil {
		return "", fmt.Errorf("source file not accessible: %w", err)
	}

	destPath := availablePath(destDir, token)

	switch mode {
	case ModeMove:
		if err := os.Rename(sourcePath, destPath); err != nil {
			return "", fmt.Errorf("error renaming %s: %w", filepath.Base(sourcePath), err)
		}
	case ModeCopy:
		if err := copyPreservingMetadata(sourcePath, destPath); err != nil {
			return "", fmt.Errorf("error copying %s: %w", filepath.Base(sourcePath), err)
		}
	default:
		return "", fmt.Errorf("unknown mode %d", mode)
	}

	return destPath, nil
}

// availablePath returns the first non-existing `<token>.pdf`,
// `<token>_1.pdf`, `<token>_2.pdf`, ... path inside destDir
func availablePath(destDir, token string) string {
	destPath := filepath.Join(destDir, token+".pdf")
	for counter := 1; pathExists(destPath); counter++ {
		destPath = filepath.Join(destDir, fmt.Sprintf("%s_%d.pdf", token, counter))
	}
	return destPath
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// copyPreservingMetadata copies src to dst keeping the source's permission
// bits and modification time
func copyPreservingMetadata(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
