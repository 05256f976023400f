// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"io"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/tfsweep/internal/policy"
	"github.com/tfctl/tfsweep/internal/sweep"
)

var summaryColumns = []Column{
	{Key: "mode", Title: "MODE"},
	{Key: "matched", Title: "MATCHED"},
	{Key: "deleted", Title: "DELETED"},
	{Key: "skipped", Title: "SKIPPED"},
	{Key: "downloaded", Title: "DOWNLOADED"},
	{Key: "noInstances", Title: "NO INSTANCES"},
	{Key: "freed", Title: "FREED"},
}

var templateColumns = []Column{
	{Key: "name", Title: "NAME"},
	{Key: "bucket", Title: "BUCKET"},
	{Key: "root", Title: "ROOT"},
	{Key: "suffix", Title: "SUFFIX"},
}

// Summary writes one row per pass plus a total row. Text output shows freed
// bytes in human units, structured output keeps the byte count.
func Summary(w io.Writer, s sweep.Summary, opts Options) error {
	text := opts.Format == "" || opts.Format == "text"

	row := func(mode string, p sweep.Pass) map[string]interface{} {
		var freed interface{} = p.Freed
		if text {
			freed = humanize.Bytes(uint64(p.Freed))
		}
		return map[string]interface{}{
			"mode":        mode,
			"matched":     p.Matched,
			"deleted":     p.Deleted,
			"skipped":     p.Skipped,
			"downloaded":  p.Downloaded,
			"noInstances": p.NoInstances,
			"freed":       freed,
		}
	}

	rows := make([]map[string]interface{}, 0, len(s.Passes)+1)
	for _, p := range s.Passes {
		rows = append(rows, row(p.Mode.String(), p))
	}
	if len(s.Passes) > 1 {
		rows = append(rows, row("total", s.Total()))
	}

	// Passes already run in a fixed order.
	opts.Sort = ""
	return Spit(w, rows, summaryColumns, opts)
}

// Templates writes the templates table sorted by name.
func Templates(w io.Writer, t policy.Templates, opts Options) error {
	rows := make([]map[string]interface{}, 0, len(t))
	for name, tmpl := range t {
		rows = append(rows, map[string]interface{}{
			"name":   name,
			"bucket": tmpl.Bucket,
			"root":   tmpl.Root,
			"suffix": tmpl.Suffix,
		})
	}

	if opts.Sort == "" {
		opts.Sort = "name"
	}
	return Spit(w, rows, templateColumns, opts)
}
