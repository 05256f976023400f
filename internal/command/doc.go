// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the tfsweep CLI. The root command runs the sweep;
// templates and completion are helper subcommands. It wires flags, their env
// and config file sources, validators and actions.
package command
