// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RootSep separates the repo directory from the object-name suffix in a root
// spec, e.g. "infra::eu-west-1".
const RootSep = "::"

// ParseRootDir splits a "dir[::suffix]" root spec into an absolute directory
// and the suffix. Only the first suffix segment counts, trimmed of blanks and
// slashes. The directory must exist.
func ParseRootDir(spec string) (string, string, error) {
	dir, rest, _ := strings.Cut(spec, RootSep)
	if dir == "" {
		return "", "", fmt.Errorf("empty root directory: %w", os.ErrInvalid)
	}
	suffix, _, _ := strings.Cut(rest, RootSep)
	suffix = strings.Trim(strings.TrimSpace(suffix), "/")

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", "", err
	}

	info, err := os.Stat(abs)
	switch {
	case err != nil:
		return "", "", err
	case !info.IsDir():
		return "", "", fmt.Errorf("%s is not a directory: %w", abs, os.ErrInvalid)
	}

	return abs, suffix, nil
}
