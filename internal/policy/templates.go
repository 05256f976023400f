// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"fmt"
	"sort"
)

// Template is a named bucket/root/suffix preset.
type Template struct {
	Bucket string `json:"bucket" yaml:"bucket"`
	Root   string `json:"root" yaml:"root"`
	Suffix string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
}

// Templates maps template names to presets.
type Templates map[string]Template

// DefaultTemplates returns the built-in organization table.
func DefaultTemplates() Templates {
	return Templates{
		"dev": {
			Bucket: "platform-tf-admin-dev",
			Root:   "organization/extenda-io",
		},
		"prod": {
			Bucket: "platform-tf-admin-prod",
			Root:   "organization/extendaretail-com",
		},
	}
}

// Names returns the template names, sorted.
func (t Templates) Names() []string {
	names := make([]string, 0, len(t))
	for n := range t {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Merge returns a copy of t with every entry of other added or replaced.
func (t Templates) Merge(other Templates) Templates {
	merged := make(Templates, len(t)+len(other))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// TemplatesFromConfig converts the raw templates sub-tree of the config file.
// Keys other than bucket, root and suffix are ignored.
func TemplatesFromConfig(raw map[string]interface{}) (Templates, error) {
	out := Templates{}
	for name, v := range raw {
		fields, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("template %s: not a map", name)
		}

		var t Template
		for key, dst := range map[string]*string{"bucket": &t.Bucket, "root": &t.Root, "suffix": &t.Suffix} {
			val, ok := fields[key]
			if !ok || val == nil {
				continue
			}
			s, ok := val.(string)
			if !ok {
				return nil, fmt.Errorf("template %s: %s is not a string", name, key)
			}
			*dst = s
		}
		if t.Bucket == "" {
			return nil, fmt.Errorf("template %s: bucket is required", name)
		}
		out[name] = t
	}
	return out, nil
}
