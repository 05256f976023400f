// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package provider maps bucket specs such as "gs://states", "s3://states" or
// "file:///tmp/mirror" onto bucket implementations. Bare names use the gs
// scheme unless told otherwise.
package provider
