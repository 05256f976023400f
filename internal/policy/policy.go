// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tfctl/tfsweep/internal/log"
	"github.com/tfctl/tfsweep/internal/util"
)

var (
	// ErrNoCleanupMode means nothing would be swept. The CLI prints usage and
	// exits 1 without touching the bucket.
	ErrNoCleanupMode = errors.New("no cleanup mode enabled")

	// ErrUnknownTemplate is returned for a template name missing from the table.
	ErrUnknownTemplate = errors.New("unknown template")
)

// Mode is one cleanup pass.
type Mode int

const (
	Empty Mode = iota
	Orphan
	Extra
)

// AllModes lists the passes in the order they always run.
var AllModes = []Mode{Empty, Orphan, Extra}

func (m Mode) String() string {
	switch m {
	case Empty:
		return "empty"
	case Orphan:
		return "orphan"
	case Extra:
		return "extra"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Input is the raw, unresolved option set gathered from flags.
type Input struct {
	Template string

	Bucket string
	Root   string
	Suffix string

	DryRun bool
	Yes    bool

	CleanupEmpty  bool
	CleanupOrphan bool
	CleanupExtra  bool
	CleanupAll    bool

	Download    string
	NoInstances bool
	StateFile   string
}

// RunConfig is the resolved, immutable configuration of one run.
type RunConfig struct {
	Template string

	Bucket string
	// Root is absolute. It is only resolved when the orphan pass runs.
	Root   string
	Suffix string

	DryRun bool
	Yes    bool

	// Modes is ordered empty, orphan, extra.
	Modes []Mode

	Download    string
	NoInstances bool
	StateFile   string
}

// Has reports whether mode m is enabled.
func (rc RunConfig) Has(m Mode) bool {
	for _, mode := range rc.Modes {
		if mode == m {
			return true
		}
	}
	return false
}

// Resolve applies the selected template and the cleanup flags to in. A
// template overwrites bucket and suffix. A relative template root is taken
// below the given root, an absolute one replaces it. No enabled mode is
// ErrNoCleanupMode.
func Resolve(in Input, templates Templates) (RunConfig, error) {
	rc := RunConfig{
		Template:    in.Template,
		Bucket:      in.Bucket,
		Root:        in.Root,
		Suffix:      in.Suffix,
		DryRun:      in.DryRun,
		Yes:         in.Yes,
		Download:    in.Download,
		NoInstances: in.NoInstances,
		StateFile:   in.StateFile,
	}

	if in.Template != "" {
		t, ok := templates[in.Template]
		if !ok {
			return RunConfig{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownTemplate, in.Template, templates.Names())
		}
		if in.Bucket != "" && in.Bucket != t.Bucket {
			log.Warnf("template %s overrides bucket %s with %s", in.Template, in.Bucket, t.Bucket)
		}
		repo, suffix := splitRoot(in.Root)
		if suffix == "" {
			suffix = in.Suffix
		}
		if suffix != "" && suffix != t.Suffix {
			log.Warnf("template %s overrides suffix %s with %q", in.Template, suffix, t.Suffix)
		}
		rc.Bucket, rc.Root, rc.Suffix = t.Bucket, templateRoot(in.Template, repo, t.Root), t.Suffix
	}

	if in.CleanupAll {
		in.CleanupEmpty, in.CleanupOrphan, in.CleanupExtra = true, true, true
	}
	for _, m := range AllModes {
		if (m == Empty && in.CleanupEmpty) || (m == Orphan && in.CleanupOrphan) || (m == Extra && in.CleanupExtra) {
			rc.Modes = append(rc.Modes, m)
		}
	}
	if len(rc.Modes) == 0 {
		return RunConfig{}, ErrNoCleanupMode
	}

	if rc.Bucket == "" {
		return RunConfig{}, fmt.Errorf("no bucket given")
	}

	if rc.Has(Orphan) {
		if rc.Root == "" {
			rc.Root = "."
		}
		dir, suffix, err := util.ParseRootDir(rc.Root)
		if err != nil {
			return RunConfig{}, fmt.Errorf("invalid root %q: %w", rc.Root, err)
		}
		rc.Root = dir
		if suffix != "" {
			rc.Suffix = suffix
		}
	}

	log.Debugf("resolved: template=%s bucket=%s root=%s suffix=%s modes=%v", rc.Template, rc.Bucket, rc.Root, rc.Suffix, rc.Modes)
	return rc, nil
}

// splitRoot separates a "dir[::suffix]" root spec without touching the
// filesystem.
func splitRoot(spec string) (string, string) {
	dir, suffix, _ := strings.Cut(spec, util.RootSep)
	suffix, _, _ = strings.Cut(suffix, util.RootSep)
	return dir, strings.Trim(strings.TrimSpace(suffix), "/")
}

// templateRoot places the template root below repo.
func templateRoot(name, repo, root string) string {
	switch {
	case root == "":
		return repo
	case filepath.IsAbs(root):
		if repo != "" && filepath.Clean(repo) != root {
			log.Warnf("template %s overrides root %s with %s", name, repo, root)
		}
		return root
	case repo == "":
		repo = "."
	}
	return filepath.Join(repo, root)
}
