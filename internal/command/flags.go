// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tfsweep/internal/output"
	"github.com/tfctl/tfsweep/internal/provider"
)

// NewSweepFlags builds the root command flags. Most flags read, in order, the
// command line, a TFSWEEP_* env var and the same-named key of the config file
// at cfgPath. Policy flags (--yes, the cleanup modes) only come from the
// command line.
func NewSweepFlags(cfgPath string) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"n"},
			Usage:   "don't delete anything, just report what would be deleted",
			Sources: sources(cfgPath, "dry-run", "TFSWEEP_DRY_RUN"),
		},
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "don't ask for confirmation, delete every match",
		},
		&cli.StringFlag{
			Name:    "bucket",
			Aliases: []string{"b"},
			Usage:   "state bucket to clean up (gs://, s3:// or file:// prefix, bare names use --provider)",
			Sources: sources(cfgPath, "bucket", "TFSWEEP_BUCKET"),
		},
		&cli.StringFlag{
			Name:    "root",
			Aliases: []string{"r"},
			Usage:   "local repo root to scan for units, optionally dir::suffix",
			Sources: sources(cfgPath, "root", "TFSWEEP_ROOT"),
		},
		&cli.StringFlag{
			Name:    "suffix",
			Aliases: []string{"s"},
			Usage:   "path segment between unit path and state file name",
			Sources: sources(cfgPath, "suffix", "TFSWEEP_SUFFIX"),
		},
		&cli.StringFlag{
			Name:    "template",
			Aliases: []string{"t"},
			Usage:   "named bucket/root/suffix preset, see the templates command",
			Sources: sources(cfgPath, "template", "TFSWEEP_TEMPLATE"),
		},
		&cli.BoolFlag{
			Name:    "cleanup-empty",
			Aliases: []string{"e"},
			Usage:   `clean up empty ("resources": []) state files`,
		},
		&cli.BoolFlag{
			Name:    "cleanup-orphan",
			Aliases: []string{"o", "cleanup-obsolete"},
			Usage:   "clean up state files with no matching directory in the repo",
		},
		&cli.BoolFlag{
			Name:    "cleanup-extra",
			Aliases: []string{"x"},
			Usage:   "clean up objects that are not state files",
		},
		&cli.BoolFlag{
			Name:    "cleanup-all",
			Aliases: []string{"a"},
			Usage:   "apply all cleanups",
		},
		&cli.StringFlag{
			Name:    "download",
			Aliases: []string{"d"},
			Usage:   "download orphaned states into this directory before deciding",
			Sources: sources(cfgPath, "download", "TFSWEEP_DOWNLOAD"),
		},
		&cli.BoolFlag{
			Name:    "no-instances",
			Aliases: []string{"i"},
			Usage:   "report whether orphaned states still have resource instances",
		},
		&cli.StringFlag{
			Name:    "state-file",
			Usage:   "state file name expected in each unit",
			Value:   "default.tfstate",
			Sources: sources(cfgPath, "state-file", "TFSWEEP_STATE_FILE"),
		},
		&cli.StringFlag{
			Name:    "provider",
			Usage:   "bucket scheme for bare bucket names",
			Value:   provider.DefaultScheme,
			Sources: sources(cfgPath, "provider", "TFSWEEP_PROVIDER"),
			Validator: func(value string) error {
				return FlagValidators(value, ProviderValidator)
			},
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "S3 region",
			Sources: sources(cfgPath, "region", "TFSWEEP_REGION", "AWS_REGION"),
		},
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "AWS shared config profile",
			Sources: sources(cfgPath, "profile", "TFSWEEP_PROFILE", "AWS_PROFILE"),
		},
		&cli.StringFlag{
			Name:    "endpoint",
			Usage:   "custom storage endpoint, e.g. MinIO or a GCS emulator",
			Sources: sources(cfgPath, "endpoint", "TFSWEEP_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:    "credentials",
			Usage:   "GCS service account JSON file",
			Sources: sources(cfgPath, "credentials", "TFSWEEP_CREDENTIALS"),
		},
		&cli.StringFlag{
			Name:  "access-key",
			Usage: "static access key for S3-compatible endpoints",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("TFSWEEP_ACCESS_KEY"),
			),
		},
		&cli.StringFlag{
			Name:  "secret-key",
			Usage: "static secret key for S3-compatible endpoints",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("TFSWEEP_SECRET_KEY"),
			),
		},
		&cli.StringFlag{
			Name:  "passphrase",
			Usage: "passphrase for encrypted states",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("TFSWEEP_PASSPHRASE"),
			),
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of object filters, e.g. name^network/,size<200",
			Validator: func(value string) error {
				return FlagValidators(value, FilterValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "summary",
			Usage:   "print per-pass counts when done",
			Sources: sources(cfgPath, "summary", "TFSWEEP_SUMMARY"),
		},
		&cli.IntFlag{
			Name:    "cache-hours",
			Usage:   "purge fetch cache entries older than this many hours (TFSWEEP_CACHE=1 enables the cache)",
			Value:   24,
			Sources: sources(cfgPath, "cache-hours", "TFSWEEP_CACHE_HOURS"),
		},
		&cli.BoolFlag{
			Name:    "version",
			Aliases: []string{"v"},
			Usage:   "tfsweep version info",
		},
	}
}

// NewOutputFlags returns the flags controlling tabular and structured output.
func NewOutputFlags(cfgPath string) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: sources(cfgPath, "color", "TFSWEEP_COLOR"),
		},
		&cli.StringFlag{
			Name:    "output",
			Usage:   "output format (" + strings.Join(output.Formats, "|") + ")",
			Value:   "text",
			Sources: sources(cfgPath, "output", "TFSWEEP_OUTPUT"),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "titles",
			Usage:   "show titles with text output",
			Sources: sources(cfgPath, "titles", "TFSWEEP_TITLES"),
		},
	}
}

// sources builds a value chain of env vars followed by key in the config file.
// With no config file only the env vars are consulted.
func sources(cfgPath string, key string, envs ...string) cli.ValueSourceChain {
	srcs := make([]cli.ValueSource, 0, len(envs)+1)
	for _, env := range envs {
		srcs = append(srcs, cli.EnvVar(env))
	}
	if cfgPath != "" {
		srcs = append(srcs, yaml.YAML(key, altsrc.StringSourcer(cfgPath)))
	}
	return cli.NewValueSourceChain(srcs...)
}
