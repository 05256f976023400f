// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package gcs is the Google Cloud Storage bucket provider.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"

	"github.com/tfctl/tfsweep/internal/bucket"
	"github.com/tfctl/tfsweep/internal/log"
)

// ErrChanged is returned when an object was rewritten after it was listed.
// Fetch and delete are pinned to the listed generation.
var ErrChanged = errors.New("object changed since listing")

// Bucket is a GCS-backed bucket.Bucket.
type Bucket struct {
	client *storage.Client
	name   string
}

var _ bucket.Bucket = (*Bucket)(nil)

// New returns a Bucket for name using client. The bucket takes ownership of
// the client and closes it in Close.
func New(client *storage.Client, name string) *Bucket {
	return &Bucket{client: client, name: name}
}

// Name implements bucket.Bucket.
func (b *Bucket) Name() string {
	return "gs://" + b.name
}

// List implements bucket.Bucket.
func (b *Bucket) List(ctx context.Context) ([]bucket.Object, error) {
	log.Debugf("gcs list: bucket=%s", b.name)

	it := b.client.Bucket(b.name).Objects(ctx, nil)

	var objs []bucket.Object
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list gs://%s: %w", b.name, err)
		}
		// Synthetic prefixes only show up with a delimiter, skip them anyway.
		if attrs.Prefix != "" {
			continue
		}
		objs = append(objs, toObject(attrs))
	}

	log.Debugf("gcs list: bucket=%s objects=%d", b.name, len(objs))
	return objs, nil
}

// Fetch implements bucket.Bucket.
func (b *Bucket) Fetch(ctx context.Context, obj bucket.Object) ([]byte, error) {
	r, err := b.handle(obj).NewReader(ctx)
	if err != nil {
		return nil, mapError("fetch", obj, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read gs://%s/%s: %w", b.name, obj.Name, err)
	}
	return data, nil
}

// Delete implements bucket.Bucket. When the listed generation is known the
// delete is conditional on it.
func (b *Bucket) Delete(ctx context.Context, obj bucket.Object) error {
	h := b.client.Bucket(b.name).Object(obj.Name)
	if gen := generation(obj); gen > 0 {
		h = h.If(storage.Conditions{GenerationMatch: gen})
	}
	if err := h.Delete(ctx); err != nil {
		return mapError("delete", obj, err)
	}
	return nil
}

// Close releases the underlying client.
func (b *Bucket) Close() error {
	return b.client.Close()
}

func (b *Bucket) handle(obj bucket.Object) *storage.ObjectHandle {
	h := b.client.Bucket(b.name).Object(obj.Name)
	if gen := generation(obj); gen > 0 {
		h = h.Generation(gen)
	}
	return h
}

func toObject(attrs *storage.ObjectAttrs) bucket.Object {
	return bucket.Object{
		Name:     attrs.Name,
		Size:     attrs.Size,
		Created:  attrs.Created,
		Revision: strconv.FormatInt(attrs.Generation, 10),
	}
}

func generation(obj bucket.Object) int64 {
	gen, err := strconv.ParseInt(obj.Revision, 10, 64)
	if err != nil {
		return 0
	}
	return gen
}

// mapError folds SDK errors onto the bucket sentinels.
func mapError(op string, obj bucket.Object, err error) error {
	if errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("%s %s: %w", op, obj.Name, bucket.ErrNotFound)
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusNotFound:
			return fmt.Errorf("%s %s: %w", op, obj.Name, bucket.ErrNotFound)
		case http.StatusPreconditionFailed:
			return fmt.Errorf("%s %s: %w", op, obj.Name, ErrChanged)
		}
	}

	return fmt.Errorf("%s %s: %w", op, obj.Name, err)
}
