// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package bucket defines the capability tfsweep needs from a remote state
// bucket: list, fetch and delete. Provider implementations live in the gcs, s3,
// local and memory subpackages; the provider package maps a bucket spec onto
// one of them.
package bucket
