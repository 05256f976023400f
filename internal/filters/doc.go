// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters narrows the bucket listing before any cleanup pass sees it.
//
// Filters are key-operator-target expressions joined by a delimiter (default
// comma, TFSWEEP_FILTER_DELIM overrides). Keys are the listed object fields:
// name, size, created and revision.
//
// Operators:
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than (numeric for size, lexical otherwise)
//   - > : greater than
//   - @ : contains substring
//   - / : regular expression match
//
// Every operator can be negated with a leading '!'. Examples:
//
//   - "name^network/" : only objects under network/
//   - "size<200" : only small objects
//   - "created<2024-01-01" : only objects created before 2024
//   - "name!/\.tflock$" : skip lock files
//
// An object must match all filters to be kept.
package filters
