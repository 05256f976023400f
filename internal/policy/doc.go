// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package policy turns raw command options into a RunConfig. It owns the
// templates table, which maps a short name like "prod" to the bucket, the
// repo root to scan and the path suffix. Templates from the config file are
// merged over the built-in ones.
package policy
