// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tfctl/tfsweep/internal/bucket"
	"github.com/tfctl/tfsweep/internal/log"
)

// DefaultScheme is used for bare bucket names.
const DefaultScheme = "gs"

// Spec carries everything needed to open a bucket.
type Spec struct {
	// Bucket is "scheme://name" or a bare name.
	Bucket string
	// Scheme applies to bare names. Empty means DefaultScheme.
	Scheme string

	Region      string
	Profile     string
	Endpoint    string
	Credentials string
	AccessKey   string
	SecretKey   string
}

// Opener builds a bucket for name.
type Opener func(ctx context.Context, name string, spec Spec) (bucket.Bucket, error)

var (
	registry   = map[string]Opener{}
	aliases    = map[string]string{"gcs": "gs", "gcp": "gs", "aws": "s3", "local": "file"}
	registryMu sync.RWMutex
)

// Register makes an opener available under scheme. Registering a scheme twice
// replaces the earlier opener, which tests rely on.
func Register(scheme string, opener Opener) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(scheme)] = opener
}

// Schemes returns the registered schemes, sorted.
func Schemes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	schemes := make([]string, 0, len(registry))
	for s := range registry {
		schemes = append(schemes, s)
	}
	sort.Strings(schemes)
	return schemes
}

// Parse splits a bucket spec into scheme and name. Bare names get
// defaultScheme. Scheme aliases (gcs, aws, local) are normalized.
func Parse(raw, defaultScheme string) (string, string, error) {
	if raw == "" {
		return "", "", fmt.Errorf("no bucket given")
	}
	if defaultScheme == "" {
		defaultScheme = DefaultScheme
	}

	scheme, name := defaultScheme, raw
	if i := strings.Index(raw, "://"); i >= 0 {
		scheme, name = raw[:i], raw[i+3:]
	}

	scheme = strings.ToLower(scheme)
	if canonical, ok := aliases[scheme]; ok {
		scheme = canonical
	}

	// Object stores take the bucket name only; file keeps the full path.
	if scheme != "file" {
		name = strings.Trim(name, "/")
	}
	if name == "" {
		return "", "", fmt.Errorf("bucket spec %q has no name", raw)
	}
	return scheme, name, nil
}

// Open resolves spec to a bucket, wrapped in the fetch cache when enabled.
func Open(ctx context.Context, spec Spec) (bucket.Bucket, error) {
	scheme, name, err := Parse(spec.Bucket, spec.Scheme)
	if err != nil {
		return nil, err
	}

	registryMu.RLock()
	opener, ok := registry[scheme]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported bucket scheme %q (supported: %s)", scheme, strings.Join(Schemes(), ", "))
	}

	log.Debugf("opening bucket: scheme=%s name=%s", scheme, name)
	b, err := opener(ctx, name, spec)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s://%s: %w", scheme, name, err)
	}
	return bucket.NewCached(b), nil
}
