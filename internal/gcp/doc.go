// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package gcp contains Google Cloud helpers used to build the storage client
// behind the gcs bucket provider.
package gcp
