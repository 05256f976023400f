// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tfsweep/internal/meta"
	"github.com/tfctl/tfsweep/internal/output"
)

func templatesCommandAction(ctx context.Context, cmd *cli.Command) error {
	templates, err := Templates(GetMeta(cmd))
	if err != nil {
		return err
	}
	return output.Templates(writer(cmd), templates, OutputOptions(cmd))
}

func templatesCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "templates",
		Usage:     "list the named bucket/root/suffix presets",
		UsageText: "tfsweep templates [--output text|json|yaml]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: templatesCommandAction,
	}
}
