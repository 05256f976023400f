// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tfsweep/internal/config"
	"github.com/tfctl/tfsweep/internal/log"
	"github.com/tfctl/tfsweep/internal/meta"
	"github.com/tfctl/tfsweep/internal/output"
	"github.com/tfctl/tfsweep/internal/policy"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// Templates returns the built-in templates with the config file's templates
// merged over them.
func Templates(m meta.Meta) (policy.Templates, error) {
	templates := policy.DefaultTemplates()

	raw, ok := m.Config.Data["templates"]
	if !ok {
		return templates, nil
	}
	table, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: templates is not a map", m.Config.Source)
	}

	fromCfg, err := policy.TemplatesFromConfig(table)
	if err != nil {
		return nil, err
	}
	log.Debugf("templates from %s: %v", m.Config.Source, fromCfg.Names())
	return templates.Merge(fromCfg), nil
}

// OutputOptions collects the output flags of cmd.
func OutputOptions(cmd *cli.Command) output.Options {
	padding, _ := config.GetInt("padding", 2)
	return output.Options{
		Format:  cmd.String("output"),
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: padding,
	}
}

// writer returns where cmd reports to.
func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// reader returns where cmd reads answers from.
func reader(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}
