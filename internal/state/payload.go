// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package state

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	// ErrMalformed is returned for documents that are not valid JSON or whose
	// resources field is not an array.
	ErrMalformed = errors.New("malformed state document")

	// ErrNoResources is returned when the document lacks a resources field.
	ErrNoResources = errors.New("state document has no resources field")
)

// Payload is a parsed, read-only view over a state document.
type Payload struct {
	resources gjson.Result
}

// Parse validates doc and returns a Payload over it.
func Parse(doc []byte) (Payload, error) {
	if !gjson.ValidBytes(doc) {
		return Payload{}, ErrMalformed
	}

	resources := gjson.GetBytes(doc, "resources")
	if !resources.Exists() {
		return Payload{}, ErrNoResources
	}
	if !resources.IsArray() {
		return Payload{}, fmt.Errorf("%w: resources is %s, not an array", ErrMalformed, resources.Type)
	}

	return Payload{resources: resources}, nil
}

// Resources returns the number of resource entries.
func (p Payload) Resources() int {
	return len(p.resources.Array())
}

// IsEmpty reports whether the resources sequence is empty.
func (p Payload) IsEmpty() bool {
	return p.Resources() == 0
}

// AllInstancesEmpty reports whether every resource entry's instances sequence
// is empty or absent. A state with no resources qualifies.
func (p Payload) AllInstancesEmpty() bool {
	for _, resource := range p.resources.Array() {
		if len(resource.Get("instances").Array()) > 0 {
			return false
		}
	}
	return true
}

// IsEncrypted reports whether doc is an OpenTofu encrypted state.
func IsEncrypted(doc []byte) bool {
	return gjson.GetBytes(doc, "encrypted_data").Exists()
}
