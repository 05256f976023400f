// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"embed"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/tfsweep/internal/bucket"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

type testParseCase struct {
	Name      string   `yaml:"name"`
	Spec      string   `yaml:"spec"`
	Delimiter string   `yaml:"delimiter"`
	Want      []Filter `yaml:"want"`
	WantCount int      `yaml:"wantCount"`
	WantErr   string   `yaml:"wantErr"`
}

type testMatchCase struct {
	Name string `yaml:"name"`
	Spec string `yaml:"spec"`
	Want bool   `yaml:"want"`
}

func loadCases[T any](t *testing.T, file string) []T {
	t.Helper()
	data, err := testDataFS.ReadFile("testdata/" + file)
	require.NoError(t, err)

	var cases []T
	require.NoError(t, yaml.Unmarshal(data, &cases))
	require.NotEmpty(t, cases)
	return cases
}

func TestParse(t *testing.T) {
	for _, tt := range loadCases[testParseCase](t, "parse.yaml") {
		t.Run(tt.Name, func(t *testing.T) {
			if tt.Delimiter != "" {
				t.Setenv("TFSWEEP_FILTER_DELIM", tt.Delimiter)
			}

			got, err := Parse(tt.Spec)
			require.NoError(t, err)
			if tt.Want == nil {
				assert.Len(t, got, tt.WantCount)
				return
			}
			assert.Equal(t, tt.Want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, tt := range loadCases[testParseCase](t, "parse_errors.yaml") {
		t.Run(tt.Name, func(t *testing.T) {
			_, err := Parse(tt.Spec)
			assert.ErrorContains(t, err, tt.WantErr)
		})
	}
}

func TestMatch(t *testing.T) {
	obj := bucket.Object{
		Name:    "network/vpc/default.tfstate",
		Size:    157,
		Created: time.Date(2023, 6, 15, 10, 0, 0, 0, time.UTC),
	}

	for _, tt := range loadCases[testMatchCase](t, "match.yaml") {
		t.Run(tt.Name, func(t *testing.T) {
			filters, err := Parse(tt.Spec)
			require.NoError(t, err)
			assert.Equal(t, tt.Want, Match(obj, filters))
		})
	}
}

func TestMatch_CreatedAcrossZones(t *testing.T) {
	east := time.FixedZone("UTC+10", 10*60*60)
	west := time.FixedZone("UTC-8", -8*60*60)

	// 2023-12-31T20:00Z and 2024-01-01T04:00Z, each written in a zone that
	// puts its local date on the other side of midnight.
	before := bucket.Object{Name: "a.tfstate", Created: time.Date(2024, 1, 1, 6, 0, 0, 0, east)}
	after := bucket.Object{Name: "b.tfstate", Created: time.Date(2023, 12, 31, 20, 0, 0, 0, west)}

	filters, err := Parse("created<2024-01-01")
	require.NoError(t, err)

	assert.True(t, Match(before, filters))
	assert.False(t, Match(after, filters))
	assert.Equal(t, east, before.Created.Location())
}

func TestApply(t *testing.T) {
	objs := []bucket.Object{
		{Name: "a/default.tfstate", Size: 100},
		{Name: "b/default.tfstate", Size: 5000},
		{Name: "c/notes.txt", Size: 10},
	}

	filters, err := Parse("size<1000")
	require.NoError(t, err)

	got := Apply(objs, filters)
	require.Len(t, got, 2)
	assert.Equal(t, "a/default.tfstate", got[0].Name)
	assert.Equal(t, "c/notes.txt", got[1].Name)

	assert.Equal(t, objs, Apply(objs, nil))
}
