// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package bucket

import (
	"context"

	"github.com/tfctl/tfsweep/internal/cacheutil"
	"github.com/tfctl/tfsweep/internal/log"
)

var cacheSubdirs = []string{"objects"}

// Cached wraps a Bucket and serves Fetch from the on-disk cache when the object
// revision is known. Objects without a revision always go to the provider.
type Cached struct {
	Bucket
}

// NewCached returns b wrapped in a fetch cache. When caching is disabled it
// returns b unchanged.
func NewCached(b Bucket) Bucket {
	if !cacheutil.Enabled() {
		return b
	}
	return &Cached{Bucket: b}
}

func (c *Cached) cacheKey(obj Object) string {
	return c.Name() + "/" + obj.Name + "#" + obj.Revision
}

// Fetch implements Bucket.
func (c *Cached) Fetch(ctx context.Context, obj Object) ([]byte, error) {
	if obj.Revision == "" {
		return c.Bucket.Fetch(ctx, obj)
	}

	key := c.cacheKey(obj)
	if entry, ok := cacheutil.Read(cacheSubdirs, key); ok {
		return entry.Data, nil
	}

	data, err := c.Bucket.Fetch(ctx, obj)
	if err != nil {
		return nil, err
	}
	if err := cacheutil.Write(cacheSubdirs, key, data); err != nil {
		log.WithError(err).Warn("failed to cache object")
	}
	return data, nil
}

// Delete implements Bucket and drops any cached content for obj.
func (c *Cached) Delete(ctx context.Context, obj Object) error {
	if err := c.Bucket.Delete(ctx, obj); err != nil {
		return err
	}
	if obj.Revision != "" {
		if err := cacheutil.Remove(cacheSubdirs, c.cacheKey(obj)); err != nil {
			log.WithError(err).Warn("failed to drop cached object")
		}
	}
	return nil
}

// Close releases the wrapped bucket.
func (c *Cached) Close() error {
	return Close(c.Bucket)
}
