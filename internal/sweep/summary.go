// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sweep

import "github.com/tfctl/tfsweep/internal/policy"

// Pass counts what one cleanup pass did.
type Pass struct {
	Mode        policy.Mode `json:"-" yaml:"-"`
	Matched     int         `json:"matched" yaml:"matched"`
	Deleted     int         `json:"deleted" yaml:"deleted"`
	Skipped     int         `json:"skipped" yaml:"skipped"`
	Downloaded  int         `json:"downloaded" yaml:"downloaded"`
	NoInstances int         `json:"noInstances" yaml:"noInstances"`
	// Freed is the listed size of every deleted object, in bytes.
	Freed       int64       `json:"freed" yaml:"freed"`
}

// Summary is the outcome of a run, one entry per pass in run order.
type Summary struct {
	Passes []Pass
}

// Total adds up every pass.
func (s Summary) Total() Pass {
	var t Pass
	for _, p := range s.Passes {
		t.Matched += p.Matched
		t.Deleted += p.Deleted
		t.Skipped += p.Skipped
		t.Downloaded += p.Downloaded
		t.NoInstances += p.NoInstances
		t.Freed += p.Freed
	}
	return t
}
