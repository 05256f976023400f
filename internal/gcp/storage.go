// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package gcp

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/tfctl/tfsweep/internal/log"
)

// options holds optional overrides for client construction.
type options struct {
	credentialsFile string
	endpoint        string
	anonymous       bool
	project         string
}

// Option customizes how the storage client is built. With no options the
// client uses Application Default Credentials, and STORAGE_EMULATOR_HOST is
// honored by the SDK itself.
type Option func(*options)

// WithCredentialsFile uses a service account key file instead of ADC.
func WithCredentialsFile(path string) Option {
	return func(o *options) { o.credentialsFile = path }
}

// WithEndpoint points the client at a non-default endpoint.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithoutAuthentication skips credential lookup entirely. Emulators and
// public buckets only.
func WithoutAuthentication() Option {
	return func(o *options) { o.anonymous = true }
}

// WithQuotaProject bills requests to project.
func WithQuotaProject(project string) Option {
	return func(o *options) { o.project = project }
}

// clientOptions translates options into SDK client options.
func (o options) clientOptions() []option.ClientOption {
	var opts []option.ClientOption
	if o.credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(o.credentialsFile)) //nolint:staticcheck
	}
	if o.endpoint != "" {
		opts = append(opts, option.WithEndpoint(o.endpoint))
	}
	if o.anonymous {
		opts = append(opts, option.WithoutAuthentication())
	}
	if o.project != "" {
		opts = append(opts, option.WithQuotaProject(o.project))
	}
	return opts
}

// NewStorageClient builds a GCS client.
func NewStorageClient(ctx context.Context, opts ...Option) (*storage.Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("gcs opts applied: credentials=%t endpoint=%s anonymous=%t", o.credentialsFile != "", o.endpoint, o.anonymous)

	client, err := storage.NewClient(ctx, o.clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS storage client: %w", err)
	}
	log.Debugf("gcs client created")
	return client, nil
}
