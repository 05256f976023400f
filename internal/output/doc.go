// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders row sets such as the run summary and the templates
// table as text tables, JSON or YAML.
package output
