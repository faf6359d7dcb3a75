// Copyright PDF Name Checker Contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package renamer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestRenameOrCopy_Move(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "scan0001.pdf")
	writeFile(t, src, "%PDF-1.4 fake")

	dest, err := RenameOrCopy(src, "John Quincy Adams", dir, ModeMove)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "john_quincy_adams.pdf"), dest)
	assert.NoFileExists(t, src)
	assert.FileExists(t, dest)
}

func TestRenameOrCopy_Copy(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	src := filepath.Join(srcDir, "scan0001.pdf")
	writeFile(t, src, "%PDF-1.4 fake content")

	dest, err := RenameOrCopy(src, "Jane Doe", destDir, ModeCopy)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(destDir, "jane_doe.pdf"), dest)
	// Copy leaves the source in place
	assert.FileExists(t, src)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake content", string(got))
}

func TestRenameOrCopy_CollisionSuffix(t *testing.T) {
	dir := t.TempDir()

	// An existing foo.pdf must never be overwritten
	existing := filepath.Join(dir, "foo.pdf")
	writeFile(t, existing, "original")

	src := filepath.Join(dir, "incoming.pdf")
	writeFile(t, src, "second document")

	dest, err := RenameOrCopy(src, "Foo", dir, ModeMove)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "foo_1.pdf"), dest)

	got, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "original", string(got), "existing file must be untouched")

	// A third collision takes the next free suffix
	src2 := filepath.Join(dir, "incoming2.pdf")
	writeFile(t, src2, "third document")

	dest2, err := RenameOrCopy(src2, "foo", dir, ModeMove)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "foo_2.pdf"), dest2)
}

func TestRenameOrCopy_InvalidName(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "scan.pdf")
	writeFile(t, src, "data")

	_, err := RenameOrCopy(src, "!!! ???", dir, ModeMove)
	assert.True(t, errors.Is(err, ErrInvalidName), "expected ErrInvalidName, got %v", err)

	// Failed normalization must not touch the source
	assert.FileExists(t, src)
}

func TestRenameOrCopy_MissingSource(t *testing.T) {
	dir := t.TempDir()

	_, err := RenameOrCopy(filepath.Join(dir, "nope.pdf"), "Jane Doe", dir, ModeMove)
	assert.Error(t, err)
}

func TestRenameOrCopy_CopyPreservesMetadata(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()
	src := filepath.Join(srcDir, "scan.pdf")
	writeFile(t, src, "data")
	require.NoError(t, os.Chmod(src, 0600))

	dest, err := RenameOrCopy(src, "Jane Doe", destDir, ModeCopy)
	require.NoError(t, err)

	srcInfo, err := os.Stat(src)
	require.NoError(t, err)
	destInfo, err := os.Stat(dest)
	require.NoError(t, err)

	assert.Equal(t, srcInfo.Mode().Perm(), destInfo.Mode().Perm())
	assert.Equal(t, srcInfo.ModTime().Unix(), destInfo.ModTime().Unix())
}
