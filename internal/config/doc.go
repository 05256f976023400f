// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for tfsweep's user
// configuration. The configuration is a YAML document located in the user's
// configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/tfsweep.yaml or $HOME/.config/tfsweep.yaml
//   - Windows: %APPDATA%/tfsweep.yaml
//
// TFSWEEP_CFG_FILE overrides the location. Besides flag defaults, the file
// carries the named templates table:
//
//	templates:
//	  prod:
//	    bucket: platform-tf-admin-prod
//	    root: organization/extendaretail-com
//	    suffix: ""
package config
