// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tfctl/tfsweep/internal/bucket"
	"github.com/tfctl/tfsweep/internal/log"
)

// filterRegex splits a filter expression into key, operator and target. The
// operator is one of = ^ ~ < > @ or /, optionally prefixed with '!'. Examples:
// "name^env/" (key + operator + target), "name=" (empty target).
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])(.*)$`)

// Keys are the object fields a filter may test.
var Keys = []string{"name", "size", "created", "revision"}

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// Parse turns a filter specification into a slice of Filter. Entries are
// separated by "," unless TFSWEEP_FILTER_DELIM says otherwise. Any malformed
// entry or unknown key fails the whole spec.
func Parse(spec string) ([]Filter, error) {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters, nil
	}

	delim := ","
	if d, ok := os.LookupEnv("TFSWEEP_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			return nil, fmt.Errorf("invalid filter: %s", filterSpec)
		}

		key := strings.TrimSpace(parts[1])
		if !knownKey(key) {
			return nil, fmt.Errorf("invalid filter: unknown key %q in %s (keys: %s)", key, filterSpec, strings.Join(Keys, ", "))
		}

		operand := parts[2]
		negate := strings.HasPrefix(operand, "!")
		operand = strings.TrimPrefix(operand, "!")

		if operand == "/" {
			if _, err := regexp.Compile(parts[3]); err != nil {
				return nil, fmt.Errorf("invalid filter regex %q: %w", parts[3], err)
			}
		}

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   parts[3],
		})
	}

	return filters, nil
}

// Apply returns the objects matching every filter, in their original order.
func Apply(objs []bucket.Object, filters []Filter) []bucket.Object {
	if len(filters) == 0 {
		return objs
	}

	var kept []bucket.Object
	for _, obj := range objs {
		if Match(obj, filters) {
			kept = append(kept, obj)
		} else {
			log.Tracef("filtered out: %s", obj.Name)
		}
	}
	return kept
}

// Match reports whether obj passes all filters.
func Match(obj bucket.Object, filters []Filter) bool {
	if len(filters) == 0 {
		return true
	}

	// Timestamps compare as RFC 3339 strings, which only order correctly in
	// a single zone.
	obj.Created = obj.Created.UTC()
	raw, err := json.Marshal(obj)
	if err != nil {
		log.WithError(err).Errorf("failed to marshal %s", obj.Name)
		return false
	}

	for _, filter := range filters {
		value := gjson.GetBytes(raw, filter.Key)

		var result bool
		switch value.Type {
		case gjson.Number:
			result = checkNumericOperand(value.Float(), filter)
		case gjson.Null:
			// Missing optional fields compare as the empty string.
			result = checkStringOperand("", filter)
		default:
			result = checkStringOperand(value.String(), filter)
		}

		if !result {
			return false
		}
	}

	return true
}

func knownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// checkNumericOperand compares a numeric value against the filter value using
// numeric semantics. Supported operands are =, > and <, each negatable.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Errorf("invalid numeric value: %s", filter.Value)
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		log.Errorf("unsupported numeric operand: %s", filter.Operand)
		return false
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics. Timestamps are RFC 3339, so "<"
// and ">" against a date prefix order correctly.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
}
