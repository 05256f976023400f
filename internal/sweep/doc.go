// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package sweep runs the cleanup passes against a bucket.
//
// Passes run in the order empty, orphan, extra. Each pass lists the bucket
// again, so objects removed by an earlier pass are not seen twice. Every
// matched object is handed to the run policy:
//
//   - dry run prints what would go and touches nothing
//   - auto-confirm deletes and prints the deletion
//   - otherwise the Prompter is asked and only "y" (any case) deletes
//
// Orphans can be downloaded first and checked for resources with no
// instances left. The first error aborts the run.
package sweep
