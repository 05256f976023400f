// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sweep

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tfctl/tfsweep/internal/bucket"
	"github.com/tfctl/tfsweep/internal/classify"
	"github.com/tfctl/tfsweep/internal/filters"
	"github.com/tfctl/tfsweep/internal/log"
	"github.com/tfctl/tfsweep/internal/policy"
	"github.com/tfctl/tfsweep/internal/prompt"
	"github.com/tfctl/tfsweep/internal/scanner"
	"github.com/tfctl/tfsweep/internal/state"
)

// DateFormat is how creation dates are shown.
const DateFormat = "2006-01-02"

// Engine runs the cleanup passes of one invocation.
type Engine struct {
	Bucket   bucket.Bucket
	Config   policy.RunConfig
	Decoder  state.Decoder
	Prompter prompt.Prompter
	Out      io.Writer

	// Filters narrow every listing. Nil keeps everything.
	Filters []filters.Filter
	// Extensions and CacheMarkers tune the repo scan. Empty means defaults.
	Extensions   []string
	CacheMarkers []string
}

// Run executes every enabled pass in order and returns the per-pass counts.
// The first error aborts the run; the summary covers what happened before it.
func (e *Engine) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	for _, mode := range e.Config.Modes {
		pass := Pass{Mode: mode}
		err := e.runPass(ctx, &pass)
		summary.Passes = append(summary.Passes, pass)
		if err != nil {
			return summary, fmt.Errorf("%s cleanup failed: %w", mode, err)
		}
	}

	return summary, nil
}

func (e *Engine) runPass(ctx context.Context, pass *Pass) error {
	log.Debugf("pass start: mode=%s bucket=%s", pass.Mode, e.Bucket.Name())

	var expected scanner.PathSet
	if pass.Mode == policy.Orphan {
		var err error
		if expected, err = e.scan(); err != nil {
			return err
		}
	}

	objs, err := e.Bucket.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", e.Bucket.Name(), err)
	}
	objs = filters.Apply(objs, e.Filters)
	log.Debugf("pass listing: mode=%s objects=%d", pass.Mode, len(objs))

	for _, obj := range objs {
		if err := ctx.Err(); err != nil {
			return err
		}

		match, err := e.matches(ctx, pass.Mode, obj, expected)
		if err != nil {
			return err
		}
		if !match {
			continue
		}
		pass.Matched++

		if pass.Mode == policy.Orphan {
			if err := e.inspectOrphan(ctx, pass, obj); err != nil {
				return err
			}
		}

		if err := e.dispose(ctx, pass, obj); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) scan() (scanner.PathSet, error) {
	opts := []scanner.Option{
		scanner.WithSuffix(e.Config.Suffix),
		scanner.WithStateFile(e.Config.StateFile),
		scanner.WithExtensions(e.Extensions...),
		scanner.WithCacheMarkers(e.CacheMarkers...),
	}
	return scanner.Scan(e.Config.Root, opts...)
}

func (e *Engine) matches(ctx context.Context, mode policy.Mode, obj bucket.Object, expected scanner.PathSet) (bool, error) {
	switch mode {
	case policy.Empty:
		return classify.IsEmpty(ctx, e.Bucket, obj, e.Decoder)
	case policy.Orphan:
		return classify.IsOrphan(obj, expected), nil
	case policy.Extra:
		return classify.IsExtra(obj), nil
	default:
		return false, fmt.Errorf("unknown mode %s", mode)
	}
}

// inspectOrphan downloads the orphan and runs the no-instances report when
// asked. Both happen before the deletion policy.
func (e *Engine) inspectOrphan(ctx context.Context, pass *Pass, obj bucket.Object) error {
	download := e.Config.Download != "" && !e.Config.DryRun
	if e.Config.Download != "" && e.Config.DryRun {
		log.Debugf("dry run, not downloading %s", obj.Name)
	}
	if !download && !e.Config.NoInstances {
		return nil
	}

	doc, err := e.Bucket.Fetch(ctx, obj)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", obj.Name, err)
	}

	if download {
		if err := writeDownload(e.Config.Download, obj, doc); err != nil {
			return err
		}
		pass.Downloaded++
	}

	if e.Config.NoInstances {
		empty, err := classify.NoInstances(doc, e.Decoder)
		if err != nil {
			return fmt.Errorf("failed to inspect %s: %w", obj.Name, err)
		}
		if empty {
			pass.NoInstances++
			fmt.Fprintf(e.Out, "State \"%s\" has no instances\n", obj.Name)
		} else {
			fmt.Fprintf(e.Out, "State \"%s\" has instances\n", obj.Name)
		}
	}

	return nil
}

// writeDownload saves doc at dir/name and stamps it with the object's creation
// time. Existing files are overwritten.
func writeDownload(dir string, obj bucket.Object, doc []byte) error {
	target, err := bucket.JoinPath(dir, obj.Name)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", obj.Name, err)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create download dir: %w", err)
	}
	if err := os.WriteFile(target, doc, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	if !obj.Created.IsZero() {
		if err := os.Chtimes(target, obj.Created, obj.Created); err != nil {
			return fmt.Errorf("failed to set times on %s: %w", target, err)
		}
	}

	log.Debugf("downloaded %s to %s", obj.Name, target)
	return nil
}
