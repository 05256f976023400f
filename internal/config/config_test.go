// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withConfig points TFSWEEP_CFG_FILE at a testdata file, reloads the global
// Config and runs fn.
func withConfig(t *testing.T, testFile string, fn func(t *testing.T)) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testFile))
	require.NoError(t, err)
	t.Setenv("TFSWEEP_CFG_FILE", absPath)

	Config = Type{}
	t.Cleanup(func() { Config = Type{} })

	_, _ = Load()
	fn(t)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		testFile string
		wantErr  bool
	}{
		{"simple", "simple.yaml", false},
		{"templates", "templates.yaml", false},
		{"invalid yaml", "invalid.yaml", true},
		{"missing file", "nope.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			absPath, _ := filepath.Abs(filepath.Join("testdata", tt.testFile))
			t.Setenv("TFSWEEP_CFG_FILE", absPath)
			Config = Type{}
			t.Cleanup(func() { Config = Type{} })

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, absPath, cfg.Source)
			assert.NotEmpty(t, cfg.Data)
		})
	}
}

func TestLoad_ExplicitPathWins(t *testing.T) {
	t.Setenv("TFSWEEP_CFG_FILE", "/does/not/exist.yaml")
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })

	cfg, err := Load(filepath.Join("testdata", "simple.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "platform-tf-admin-dev", cfg.Data["bucket"])
}

func TestGetConfigFile_Directory(t *testing.T) {
	t.Setenv("TFSWEEP_CFG_FILE", t.TempDir())

	_, err := getConfigFile()
	assert.ErrorContains(t, err, "points to a directory")
}

func TestGetters(t *testing.T) {
	withConfig(t, "simple.yaml", func(t *testing.T) {
		s, err := GetString("bucket")
		require.NoError(t, err)
		assert.Equal(t, "platform-tf-admin-dev", s)

		b, err := GetBool("dry-run")
		require.NoError(t, err)
		assert.True(t, b)

		i, err := GetInt("cache-hours")
		require.NoError(t, err)
		assert.Equal(t, 24, i)
	})
}

func TestGetters_Defaults(t *testing.T) {
	withConfig(t, "simple.yaml", func(t *testing.T) {
		s, err := GetString("missing", "dflt")
		require.NoError(t, err)
		assert.Equal(t, "dflt", s)

		b, err := GetBool("missing", true)
		require.NoError(t, err)
		assert.True(t, b)

		i, err := GetInt("missing", 7)
		require.NoError(t, err)
		assert.Equal(t, 7, i)

		sl, err := GetStringSlice("missing", []string{".hcl"})
		require.NoError(t, err)
		assert.Equal(t, []string{".hcl"}, sl)

		_, err = GetString("missing")
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestGetters_WrongTypes(t *testing.T) {
	withConfig(t, "wrongtypes.yaml", func(t *testing.T) {
		_, err := GetString("bucket")
		assert.ErrorContains(t, err, "not a string")

		_, err = GetBool("dry-run")
		assert.ErrorContains(t, err, "not a bool")

		_, err = GetInt("cache-hours")
		assert.ErrorContains(t, err, "not an int")

		_, err = GetStringSlice("extensions")
		assert.ErrorContains(t, err, "not a string")

		_, err = GetMap("templates")
		assert.ErrorContains(t, err, "not a map")
	})
}

func TestGetMapAndNestedKeys(t *testing.T) {
	withConfig(t, "templates.yaml", func(t *testing.T) {
		m, err := GetMap("templates")
		require.NoError(t, err)
		assert.Len(t, m, 2)

		s, err := GetString("templates.sandbox.suffix")
		require.NoError(t, err)
		assert.Equal(t, "eu-west-1", s)

		_, err = GetString("templates.dev.suffix")
		assert.True(t, errors.Is(err, ErrNotFound))

		_, err = GetString("bucket.deeper")
		assert.True(t, errors.Is(err, ErrNotFound))

		sl, err := GetStringSlice("extensions")
		require.NoError(t, err)
		assert.Equal(t, []string{".hcl", ".tf"}, sl)
	})
}

func TestPath(t *testing.T) {
	withConfig(t, "simple.yaml", func(t *testing.T) {
		assert.Contains(t, Path(), "simple.yaml")
	})
}
