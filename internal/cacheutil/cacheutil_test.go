// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// enable turns caching on and points it at a fresh temp dir.
func enable(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TFSWEEP_CACHE_DIR", dir)
	t.Setenv("TFSWEEP_CACHE", "1")
	return dir
}

func TestDir(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("TFSWEEP_CACHE_DIR", custom)
	dir, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, custom, dir)

	t.Setenv("TFSWEEP_CACHE_DIR", "")
	if dir, ok := Dir(); ok {
		assert.True(t, filepath.IsAbs(dir))
		assert.Equal(t, "tfsweep", filepath.Base(dir))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"yes", false},
		{"1", true},
		{"true", true},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv("TFSWEEP_CACHE", tt.value)
			assert.Equal(t, tt.want, Enabled())
		})
	}
}

func TestEnsureBaseDir(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		t.Setenv("TFSWEEP_CACHE", "")
		path, ok, err := EnsureBaseDir()
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, path)
	})

	t.Run("creates nested base", func(t *testing.T) {
		base := filepath.Join(enable(t), "a", "b")
		t.Setenv("TFSWEEP_CACHE_DIR", base)
		path, ok, err := EnsureBaseDir()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.DirExists(t, path)
	})
}

func TestWriteReadRemove(t *testing.T) {
	enable(t)
	subdirs := []string{"objects"}
	key := "gs://bucket/a/default.tfstate#17"
	data := []byte("{\"resources\":[]}\n")

	_, ok := Read(subdirs, key)
	assert.False(t, ok)

	require.NoError(t, Write(subdirs, key, data))

	entry, ok := Read(subdirs, key)
	require.True(t, ok)
	assert.Equal(t, data, entry.Data, "content is returned byte for byte")
	assert.Equal(t, key, entry.Key)
	assert.Len(t, entry.EncodedKey, 64)

	info, err := os.Stat(entry.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, Remove(subdirs, key))
	_, ok = Read(subdirs, key)
	assert.False(t, ok)

	// Removing a missing entry is fine.
	assert.NoError(t, Remove(subdirs, key))
}

func TestWriteDisabledIsNoop(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TFSWEEP_CACHE_DIR", dir)
	t.Setenv("TFSWEEP_CACHE", "")

	require.NoError(t, Write([]string{"objects"}, "k", []byte("v")))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPurge(t *testing.T) {
	enable(t)
	subdirs := []string{"objects"}

	require.NoError(t, Write(subdirs, "old", []byte("x")))
	require.NoError(t, Write(subdirs, "new", []byte("y")))

	oldPath, _ := EntryPath(subdirs, "old")
	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, stale, stale))

	require.NoError(t, Purge(0))
	assert.FileExists(t, oldPath)

	require.NoError(t, Purge(24))
	assert.NoFileExists(t, oldPath)
	_, ok := Read(subdirs, "new")
	assert.True(t, ok)
}

func TestPurge_MissingBase(t *testing.T) {
	t.Setenv("TFSWEEP_CACHE_DIR", filepath.Join(t.TempDir(), "absent"))
	assert.NoError(t, Purge(1))
}

func TestEncodeKey(t *testing.T) {
	assert.Equal(t, encodeKey("a"), encodeKey("a"))
	assert.NotEqual(t, encodeKey("a"), encodeKey("b"))
}
