// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package local exposes a directory tree as a bucket. It is handy for sweeping
// a mirrored copy of a state bucket (gsutil rsync, aws s3 sync) before
// touching the real one.
package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tfctl/tfsweep/internal/bucket"
	"github.com/tfctl/tfsweep/internal/log"
)

// Bucket is a filesystem-backed bucket.Bucket rooted at Root.
type Bucket struct {
	Root string
}

var _ bucket.Bucket = (*Bucket)(nil)

// New returns a Bucket rooted at root, which must be an existing directory.
func New(root string) (*Bucket, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("local bucket: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("local bucket: %s is not a directory", abs)
	}
	return &Bucket{Root: abs}, nil
}

// Name implements bucket.Bucket.
func (b *Bucket) Name() string {
	return "file://" + filepath.ToSlash(b.Root)
}

// List implements bucket.Bucket. Files are returned in lexical order of their
// slash-separated names. There is no portable creation time, so Created is the
// file's modification time in UTC.
func (b *Bucket) List(ctx context.Context) ([]bucket.Object, error) {
	var objs []bucket.Object

	err := filepath.WalkDir(b.Root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(b.Root, path)
		if err != nil {
			return err
		}

		objs = append(objs, bucket.Object{
			Name:    filepath.ToSlash(rel),
			Size:    info.Size(),
			Created: info.ModTime().UTC(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", b.Root, err)
	}

	log.Debugf("local list: root=%s objects=%d", b.Root, len(objs))
	return objs, nil
}

// Fetch implements bucket.Bucket.
func (b *Bucket) Fetch(_ context.Context, obj bucket.Object) ([]byte, error) {
	path, err := b.path(obj.Name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("fetch %s: %w", obj.Name, bucket.ErrNotFound)
	}
	return data, err
}

// Delete implements bucket.Bucket.
func (b *Bucket) Delete(_ context.Context, obj bucket.Object) error {
	path, err := b.path(obj.Name)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", obj.Name, bucket.ErrNotFound)
	}
	return err
}

// path maps an object name onto the filesystem, refusing names that would
// escape Root.
func (b *Bucket) path(name string) (string, error) {
	return bucket.JoinPath(b.Root, name)
}
