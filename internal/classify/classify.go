// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package classify holds the per-object predicates the sweep applies. Each
// predicate is independent of the others.
package classify

import (
	"context"
	"fmt"

	"github.com/tfctl/tfsweep/internal/bucket"
	"github.com/tfctl/tfsweep/internal/log"
	"github.com/tfctl/tfsweep/internal/state"
)

// EmptyThreshold is the size below which a state object may be empty. An empty
// Terraform state serializes to roughly 150 to 180 bytes.
const EmptyThreshold = 200

// ExpectedSet answers whether a state name belongs to a local unit.
type ExpectedSet interface {
	Has(name string) bool
}

// IsExtra reports whether obj is not a state object.
func IsExtra(obj bucket.Object) bool {
	return !obj.IsState()
}

// IsEmptyCandidate is the cheap gate in front of IsEmpty. Nothing failing it
// is ever fetched.
func IsEmptyCandidate(obj bucket.Object) bool {
	return obj.IsState() && obj.Size < EmptyThreshold
}

// IsEmpty reports whether obj is a state whose resources sequence is empty.
// Candidates are fetched exactly once. Malformed content is an error.
func IsEmpty(ctx context.Context, b bucket.Bucket, obj bucket.Object, dec state.Decoder) (bool, error) {
	if !IsEmptyCandidate(obj) {
		return false, nil
	}

	doc, err := b.Fetch(ctx, obj)
	if err != nil {
		return false, fmt.Errorf("failed to fetch %s: %w", obj.Name, err)
	}

	payload, err := dec.Decode(doc)
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", obj.Name, err)
	}

	log.Tracef("empty check: name=%s size=%d resources=%d", obj.Name, obj.Size, payload.Resources())
	return payload.IsEmpty(), nil
}

// IsOrphan reports whether obj is a state with no matching local unit. Names
// compare by exact string equality.
func IsOrphan(obj bucket.Object, expected ExpectedSet) bool {
	return obj.IsState() && !expected.Has(obj.Name)
}

// NoInstances reports whether every resource in doc has an empty instances
// sequence.
func NoInstances(doc []byte, dec state.Decoder) (bool, error) {
	payload, err := dec.Decode(doc)
	if err != nil {
		return false, err
	}
	return payload.AllInstancesEmpty(), nil
}
