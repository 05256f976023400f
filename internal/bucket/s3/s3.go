// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package s3 is the Amazon S3 (and S3-compatible) bucket provider.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/tfctl/tfsweep/internal/bucket"
	"github.com/tfctl/tfsweep/internal/log"
)

// API is the slice of the S3 client the provider uses.
type API interface {
	s3v2.ListObjectsV2APIClient
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3v2.DeleteObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.DeleteObjectOutput, error)
}

// Bucket is an S3-backed bucket.Bucket.
type Bucket struct {
	api  API
	name string
}

var _ bucket.Bucket = (*Bucket)(nil)

// New returns a Bucket for name using api.
func New(api API, name string) *Bucket {
	return &Bucket{api: api, name: name}
}

// Name implements bucket.Bucket.
func (b *Bucket) Name() string {
	return "s3://" + b.name
}

// List implements bucket.Bucket. S3 keeps no creation time, so Created is the
// object's LastModified.
func (b *Bucket) List(ctx context.Context) ([]bucket.Object, error) {
	log.Debugf("s3 list: bucket=%s", b.name)

	paginator := s3v2.NewListObjectsV2Paginator(b.api, &s3v2.ListObjectsV2Input{
		Bucket: awsv2.String(b.name),
	})

	var objs []bucket.Object
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list s3://%s: %w", b.name, err)
		}
		for _, o := range page.Contents {
			objs = append(objs, toObject(o))
		}
	}

	log.Debugf("s3 list: bucket=%s objects=%d", b.name, len(objs))
	return objs, nil
}

// Fetch implements bucket.Bucket. The read is pinned to the listed ETag when
// known.
func (b *Bucket) Fetch(ctx context.Context, obj bucket.Object) ([]byte, error) {
	in := &s3v2.GetObjectInput{
		Bucket: awsv2.String(b.name),
		Key:    awsv2.String(obj.Name),
	}
	if obj.Revision != "" {
		in.IfMatch = awsv2.String(`"` + obj.Revision + `"`)
	}

	result, err := b.api.GetObject(ctx, in)
	if err != nil {
		return nil, mapError("fetch", obj, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", b.name, obj.Name, err)
	}
	return data, nil
}

// Delete implements bucket.Bucket.
func (b *Bucket) Delete(ctx context.Context, obj bucket.Object) error {
	_, err := b.api.DeleteObject(ctx, &s3v2.DeleteObjectInput{
		Bucket: awsv2.String(b.name),
		Key:    awsv2.String(obj.Name),
	})
	if err != nil {
		return mapError("delete", obj, err)
	}
	return nil
}

func toObject(o types.Object) bucket.Object {
	obj := bucket.Object{
		Name:     awsv2.ToString(o.Key),
		Size:     awsv2.ToInt64(o.Size),
		Revision: strings.Trim(awsv2.ToString(o.ETag), `"`),
	}
	if o.LastModified != nil {
		obj.Created = *o.LastModified
	}
	return obj
}

func mapError(op string, obj bucket.Object, err error) error {
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	if errors.As(err, &nsk) || errors.As(err, &nf) {
		return fmt.Errorf("%s %s: %w", op, obj.Name, bucket.ErrNotFound)
	}
	return fmt.Errorf("%s %s: %w", op, obj.Name, err)
}
