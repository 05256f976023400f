// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package provider

import (
	"context"

	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	awsx "github.com/tfctl/tfsweep/internal/aws"
	"github.com/tfctl/tfsweep/internal/bucket"
	"github.com/tfctl/tfsweep/internal/bucket/gcs"
	"github.com/tfctl/tfsweep/internal/bucket/local"
	bs3 "github.com/tfctl/tfsweep/internal/bucket/s3"
	"github.com/tfctl/tfsweep/internal/gcp"
)

func init() {
	Register("gs", openGCS)
	Register("s3", openS3)
	Register("file", openLocal)
}

func openGCS(ctx context.Context, name string, spec Spec) (bucket.Bucket, error) {
	var opts []gcp.Option
	if spec.Credentials != "" {
		opts = append(opts, gcp.WithCredentialsFile(spec.Credentials))
	}
	if spec.Endpoint != "" {
		opts = append(opts, gcp.WithEndpoint(spec.Endpoint))
	}

	client, err := gcp.NewStorageClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return gcs.New(client, name), nil
}

func openS3(ctx context.Context, name string, spec Spec) (bucket.Bucket, error) {
	var cfgOpts []awsx.Option
	if spec.Profile != "" {
		cfgOpts = append(cfgOpts, awsx.WithProfile(spec.Profile))
	}
	if spec.Region != "" {
		cfgOpts = append(cfgOpts, awsx.WithRegion(spec.Region))
	}
	if spec.AccessKey != "" {
		cfgOpts = append(cfgOpts, awsx.WithStaticCredentials(spec.AccessKey, spec.SecretKey))
	}

	cfg, err := awsx.LoadAWSConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, err
	}

	var optFns []func(*s3v2.Options)
	if spec.Endpoint != "" {
		optFns = append(optFns, awsx.WithS3Endpoint(spec.Endpoint))
	}
	return bs3.New(awsx.NewS3(cfg, optFns...), name), nil
}

func openLocal(_ context.Context, name string, _ Spec) (bucket.Bucket, error) {
	return local.New(name)
}
