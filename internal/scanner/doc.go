// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package scanner derives the set of state object names a local Terragrunt
// repo expects to exist in its state bucket. Given
//
//	org/
//	  root.hcl
//	  network/terragrunt.hcl
//	  network/.terragrunt-cache/x/terragrunt.hcl
//	  apps/README.md
//
// and suffix "eu", Scan yields "eu/default.tfstate" and
// "network/eu/default.tfstate". apps has no .hcl file and the cache copy is
// skipped.
package scanner
