// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/tfsweep/internal/policy"
	"github.com/tfctl/tfsweep/internal/sweep"
)

func TestSortRows(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []string
	}{
		{"by name", "name", []string{"alpha", "Bravo", "charlie"}},
		{"by name desc", "-name", []string{"charlie", "Bravo", "alpha"}},
		{"case sensitive", "!name", []string{"Bravo", "alpha", "charlie"}},
		{"numeric", "count,name", []string{"charlie", "alpha", "Bravo"}},
		{"numeric desc", "-count", []string{"Bravo", "alpha", "charlie"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := []map[string]interface{}{
				{"name": "charlie", "count": 1},
				{"name": "alpha", "count": 2},
				{"name": "Bravo", "count": 10},
			}
			SortRows(rows, tt.spec)

			var got []string
			for _, r := range rows {
				got = append(got, r["name"].(string))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		empty []string
		want  string
	}{
		{"nil", nil, nil, ""},
		{"nil custom", nil, []string{"-"}, "-"},
		{"zero int", 0, []string{"-"}, "-"},
		{"string", "abc", nil, "abc"},
		{"int", 42, nil, "42"},
		{"int64", int64(7), nil, "7"},
		{"float", 3.0, nil, "3"},
		{"bool", true, nil, "true"},
		{"stringer", policy.Orphan, nil, "orphan"},
		{"slice", []string{"a"}, nil, `["a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceToString(tt.value, tt.empty...))
		})
	}
}

func testSummary() sweep.Summary {
	return sweep.Summary{Passes: []sweep.Pass{
		{Mode: policy.Empty, Matched: 3, Deleted: 2, Skipped: 1, Freed: 2048},
		{Mode: policy.Extra, Matched: 1, Deleted: 1, Freed: 10},
	}}
}

func TestSummary_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, testSummary(), Options{Titles: true}))

	out := buf.String()
	assert.Contains(t, out, "MODE")
	assert.Contains(t, out, "empty")
	assert.Contains(t, out, "extra")
	assert.Contains(t, out, "total")
	assert.Contains(t, out, "2.0 kB")
	assert.Contains(t, out, "2.1 kB")
}

func TestSummary_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, testSummary(), Options{Format: "json"}))

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "empty", rows[0]["mode"])
	assert.Equal(t, "total", rows[2]["mode"])
	assert.EqualValues(t, 2058, rows[2]["freed"])
	assert.EqualValues(t, 3, rows[2]["deleted"])
}

func TestSummary_SinglePassHasNoTotal(t *testing.T) {
	var buf bytes.Buffer
	s := sweep.Summary{Passes: []sweep.Pass{{Mode: policy.Orphan, Matched: 1}}}
	require.NoError(t, Summary(&buf, s, Options{Format: "yaml"}))

	var rows []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "orphan", rows[0]["mode"])
}

func TestTemplates(t *testing.T) {
	var buf bytes.Buffer
	tmpl := policy.DefaultTemplates().Merge(policy.Templates{
		"alpha": {Bucket: "a-bucket", Root: "org/a", Suffix: "eu"},
	})
	require.NoError(t, Templates(&buf, tmpl, Options{Format: "json"}))

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "alpha", rows[0]["name"])
	assert.Equal(t, "dev", rows[1]["name"])
	assert.Equal(t, "platform-tf-admin-prod", rows[2]["bucket"])
}

func TestTemplates_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Templates(&buf, policy.DefaultTemplates(), Options{Titles: true, Padding: 2}))

	out := buf.String()
	assert.Contains(t, out, "BUCKET")
	assert.Contains(t, out, "platform-tf-admin-dev")
	assert.Contains(t, out, "organization/extendaretail-com")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("dev")), bytes.Index(buf.Bytes(), []byte("prod")))
}

func TestSpit_UnknownFormat(t *testing.T) {
	err := Spit(&bytes.Buffer{}, []map[string]interface{}{{"a": 1}}, []Column{{Key: "a"}}, Options{Format: "xml"})
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestTableWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	TableWriter(&buf, nil, []Column{{Key: "a"}}, Options{Header: "h"})
	assert.Empty(t, buf.String())
}

func TestTableWriter_HeaderFooter(t *testing.T) {
	var buf bytes.Buffer
	TableWriter(&buf, []map[string]interface{}{{"a": "x"}}, []Column{{Key: "a", Title: "A"}}, Options{Header: "top", Footer: "bottom"})
	out := buf.String()
	assert.Contains(t, out, "top")
	assert.Contains(t, out, "x")
	assert.Contains(t, out, "bottom")
}
