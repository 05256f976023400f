// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tfsweep/internal/config"
	"github.com/tfctl/tfsweep/internal/log"
	"github.com/tfctl/tfsweep/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// A missing config file is fine, flags and env still apply.
	cfg, err := config.Load()
	if err != nil {
		log.Debugf("no config loaded: %v", err)
	}

	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	flags := append(NewSweepFlags(cfg.Source), NewOutputFlags(cfg.Source)...)

	// Make sure flags are sorted for the --help text.
	sort.Slice(flags, func(i, j int) bool {
		return flags[i].Names()[0] < flags[j].Names()[0]
	})

	app := &cli.Command{
		Name:  "tfsweep",
		Usage: "Clean up a Terraform/Terragrunt state bucket",
		UsageText: "tfsweep [--dry-run | --yes] [--template name | --bucket b --root dir[::suffix]]\n" +
			"        [--cleanup-empty] [--cleanup-orphan] [--cleanup-extra] [--cleanup-all]",
		Flags: flags,
		Metadata: map[string]any{
			"meta": meta,
		},
		Before: SweepFlagsValidator,
		Action: sweepCommandAction,
		Commands: []*cli.Command{
			templatesCommandBuilder(meta),
			completionCommandBuilder(meta),
		},
	}

	return app, nil
}
