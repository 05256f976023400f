// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package scanner

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tfctl/tfsweep/internal/log"
)

const (
	DefaultStateFile   = "default.tfstate"
	DefaultExtension   = ".hcl"
	DefaultCacheMarker = ".terragrunt-cache"
)

// PathSet holds the object names the local repo expects to find in the bucket.
type PathSet map[string]struct{}

// Has reports whether name is expected.
func (s PathSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the names in lexical order.
func (s PathSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type options struct {
	suffix       string
	stateFile    string
	extensions   []string
	cacheMarkers []string
}

// Option customizes a Scan.
type Option func(*options)

// WithSuffix inserts suffix between the unit path and the state file name.
func WithSuffix(suffix string) Option {
	return func(o *options) { o.suffix = strings.Trim(suffix, "/") }
}

// WithStateFile overrides the state file name. Default is default.tfstate.
func WithStateFile(name string) Option {
	return func(o *options) {
		if name != "" {
			o.stateFile = name
		}
	}
}

// WithExtensions sets the file extensions that make a directory a unit.
func WithExtensions(exts ...string) Option {
	return func(o *options) {
		if len(exts) > 0 {
			o.extensions = exts
		}
	}
}

// WithCacheMarkers sets the path fragments whose subtrees are never scanned.
func WithCacheMarkers(markers ...string) Option {
	return func(o *options) {
		if len(markers) > 0 {
			o.cacheMarkers = markers
		}
	}
}

// Scan walks root and returns the expected state object name of every unit
// beneath it. A unit is a directory that directly holds at least one file with
// a recognised extension.
func Scan(root string, opts ...Option) (PathSet, error) {
	o := options{
		stateFile:    DefaultStateFile,
		extensions:   []string{DefaultExtension},
		cacheMarkers: []string{DefaultCacheMarker},
	}
	for _, opt := range opts {
		opt(&o)
	}

	set := PathSet{}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			rel = ""
		}

		if d.IsDir() {
			if o.inCache(rel) {
				log.Tracef("skipping cache dir: %s", rel)
				return filepath.SkipDir
			}
			return nil
		}

		if !o.recognised(d.Name()) {
			return nil
		}

		name := o.expectedName(path.Dir(rel))
		if !set.Has(name) {
			log.Tracef("unit: %s", name)
			set[name] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	log.Debugf("scanned %s: %d units", root, len(set))
	return set, nil
}

func (o options) inCache(rel string) bool {
	for _, m := range o.cacheMarkers {
		if strings.Contains(rel, m) {
			return true
		}
	}
	return false
}

func (o options) recognised(name string) bool {
	for _, ext := range o.extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// expectedName joins dir, suffix and the state file, dropping empty segments.
// dir is "." when the unit is root itself.
func (o options) expectedName(dir string) string {
	var parts []string
	if dir = strings.Trim(dir, "/"); dir != "" && dir != "." {
		parts = append(parts, dir)
	}
	if o.suffix != "" {
		parts = append(parts, o.suffix)
	}
	parts = append(parts, o.stateFile)
	return strings.Join(parts, "/")
}
