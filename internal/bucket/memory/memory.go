// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package memory is an in-process bucket. It records every fetch and delete so
// tests can assert on the calls the sweep made.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tfctl/tfsweep/internal/bucket"
)

type entry struct {
	obj  bucket.Object
	data []byte
}

// Bucket is a map-backed bucket.Bucket.
type Bucket struct {
	name string

	mu      sync.Mutex
	objects map[string]entry
	fetches map[string]int
	deletes []string
	lists   int
}

var _ bucket.Bucket = (*Bucket)(nil)

// New returns an empty bucket called name.
func New(name string) *Bucket {
	return &Bucket{
		name:    name,
		objects: map[string]entry{},
		fetches: map[string]int{},
	}
}

// Put stores data under name. Size is taken from len(data).
func (b *Bucket) Put(name string, data []byte, created time.Time) *Bucket {
	return b.PutObject(bucket.Object{
		Name:    name,
		Size:    int64(len(data)),
		Created: created,
	}, data)
}

// PutObject stores data under obj as given, allowing a Size that differs from
// the content length.
func (b *Bucket) PutObject(obj bucket.Object, data []byte) *Bucket {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[obj.Name] = entry{obj: obj, data: data}
	return b
}

// Name implements bucket.Bucket.
func (b *Bucket) Name() string {
	return "mem://" + b.name
}

// List implements bucket.Bucket. Objects come back sorted by name, as GCS
// and S3 list them.
func (b *Bucket) List(_ context.Context) ([]bucket.Object, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lists++

	objs := make([]bucket.Object, 0, len(b.objects))
	for _, e := range b.objects {
		objs = append(objs, e.obj)
	}
	sort.Slice(objs, func(i, j int) bool { return objs[i].Name < objs[j].Name })
	return objs, nil
}

// Fetch implements bucket.Bucket.
func (b *Bucket) Fetch(_ context.Context, obj bucket.Object) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fetches[obj.Name]++

	e, ok := b.objects[obj.Name]
	if !ok {
		return nil, fmt.Errorf("fetch %s: %w", obj.Name, bucket.ErrNotFound)
	}
	return append([]byte(nil), e.data...), nil
}

// Delete implements bucket.Bucket.
func (b *Bucket) Delete(_ context.Context, obj bucket.Object) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.objects[obj.Name]; !ok {
		return fmt.Errorf("delete %s: %w", obj.Name, bucket.ErrNotFound)
	}
	delete(b.objects, obj.Name)
	b.deletes = append(b.deletes, obj.Name)
	return nil
}

// Has reports whether name is still stored.
func (b *Bucket) Has(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.objects[name]
	return ok
}

// Fetches returns how often name was fetched.
func (b *Bucket) Fetches(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fetches[name]
}

// TotalFetches returns the number of fetches across all objects.
func (b *Bucket) TotalFetches() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.fetches {
		n += c
	}
	return n
}

// Deleted returns the deleted names in call order.
func (b *Bucket) Deleted() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.deletes...)
}

// Lists returns how many times List was called.
func (b *Bucket) Lists() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lists
}
