// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package bucket

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// StateExt is the suffix every state object name carries.
const StateExt = ".tfstate"

// ErrNotFound is returned (wrapped) when an object vanished between listing
// and fetch or delete.
var ErrNotFound = errors.New("object not found")

// ErrEscapesRoot is returned (wrapped) when an object name would map outside
// the directory it is placed under.
var ErrEscapesRoot = errors.New("object name escapes root")

// Object is a listed remote object. Content is fetched on demand.
type Object struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	Created time.Time `json:"created"`
	// Revision is the provider's version marker (GCS generation, S3 ETag). It
	// is empty when the provider has none.
	Revision string `json:"revision,omitempty"`
}

// IsState reports whether the object name carries the state-file extension.
func (o Object) IsState() bool {
	return strings.HasSuffix(o.Name, StateExt)
}

// Bucket is the remote store capability.
type Bucket interface {
	// Name identifies the bucket, e.g. "gs://platform-tf-admin-prod".
	Name() string
	// List returns every object in listing order.
	List(ctx context.Context) ([]Object, error)
	// Fetch returns the full content of obj.
	Fetch(ctx context.Context, obj Object) ([]byte, error)
	// Delete removes obj.
	Delete(ctx context.Context, obj Object) error
}

// Closer is implemented by buckets holding client resources.
type Closer interface {
	Close() error
}

// Close releases b if it holds resources.
func Close(b Bucket) error {
	if c, ok := b.(Closer); ok {
		return c.Close()
	}
	return nil
}

// JoinPath maps the slash-separated object name onto the filesystem below
// root. Names that climb out of root, such as "../x.tfstate", are rejected.
func JoinPath(root, name string) (string, error) {
	root = filepath.Clean(root)
	p := filepath.Join(root, filepath.FromSlash(name))

	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrEscapesRoot, name)
	}
	return p, nil
}
