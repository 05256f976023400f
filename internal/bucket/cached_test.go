// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package bucket_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/tfsweep/internal/bucket"
	"github.com/tfctl/tfsweep/internal/bucket/memory"
)

func TestNewCached_DisabledReturnsSame(t *testing.T) {
	t.Setenv("TFSWEEP_CACHE", "")
	mem := memory.New("x")
	assert.Same(t, mem, bucket.NewCached(mem))
}

func TestCached_Fetch(t *testing.T) {
	t.Setenv("TFSWEEP_CACHE", "1")
	t.Setenv("TFSWEEP_CACHE_DIR", t.TempDir())
	ctx := context.Background()

	mem := memory.New("x")
	mem.PutObject(bucket.Object{Name: "a/default.tfstate", Size: 16, Revision: "7"}, []byte(`{"resources":[]}`))
	mem.PutObject(bucket.Object{Name: "b/default.tfstate", Size: 16}, []byte(`{"resources":[]}`))

	b := bucket.NewCached(mem)
	objs, err := b.List(ctx)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		data, err := b.Fetch(ctx, objs[0])
		require.NoError(t, err)
		assert.Equal(t, `{"resources":[]}`, string(data))

		_, err = b.Fetch(ctx, objs[1])
		require.NoError(t, err)
	}

	assert.Equal(t, 1, mem.Fetches("a/default.tfstate"), "revisioned object served from cache")
	assert.Equal(t, 3, mem.Fetches("b/default.tfstate"), "unrevisioned object never cached")

	require.NoError(t, b.Delete(ctx, objs[0]))
	assert.False(t, mem.Has("a/default.tfstate"))
	assert.NoError(t, bucket.Close(b))
}

func TestObjectIsState(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a/default.tfstate", true},
		{"terraform.tfstate", true},
		{"a/default.tfstate.backup", false},
		{"a/default.tflock", false},
		{"README.md", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bucket.Object{Name: tt.name, Created: time.Now()}.IsState())
		})
	}
}
