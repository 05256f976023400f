// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tfsweep/internal/bucket"
	"github.com/tfctl/tfsweep/internal/cacheutil"
	"github.com/tfctl/tfsweep/internal/config"
	"github.com/tfctl/tfsweep/internal/filters"
	"github.com/tfctl/tfsweep/internal/log"
	"github.com/tfctl/tfsweep/internal/output"
	"github.com/tfctl/tfsweep/internal/policy"
	"github.com/tfctl/tfsweep/internal/prompt"
	"github.com/tfctl/tfsweep/internal/provider"
	"github.com/tfctl/tfsweep/internal/state"
	"github.com/tfctl/tfsweep/internal/sweep"
)

// sweepInput gathers the policy options from cmd.
func sweepInput(cmd *cli.Command) policy.Input {
	return policy.Input{
		Template:      cmd.String("template"),
		Bucket:        cmd.String("bucket"),
		Root:          cmd.String("root"),
		Suffix:        cmd.String("suffix"),
		DryRun:        cmd.Bool("dry-run"),
		Yes:           cmd.Bool("yes"),
		CleanupEmpty:  cmd.Bool("cleanup-empty"),
		CleanupOrphan: cmd.Bool("cleanup-orphan"),
		CleanupExtra:  cmd.Bool("cleanup-extra"),
		CleanupAll:    cmd.Bool("cleanup-all"),
		Download:      cmd.String("download"),
		NoInstances:   cmd.Bool("no-instances"),
		StateFile:     cmd.String("state-file"),
	}
}

func sweepCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)

	templates, err := Templates(m)
	if err != nil {
		return err
	}

	rc, err := policy.Resolve(sweepInput(cmd), templates)
	if errors.Is(err, policy.ErrNoCleanupMode) {
		_ = cli.ShowRootCommandHelp(cmd)
		return err
	}
	if err != nil {
		return err
	}

	if cacheutil.Enabled() {
		if err := cacheutil.Purge(cmd.Int("cache-hours")); err != nil {
			log.WithError(err).Warn("cache purge failed")
		}
	}

	// Already validated by the flag validator.
	objFilters, _ := filters.Parse(cmd.String("filter"))

	b, err := provider.Open(ctx, provider.Spec{
		Bucket:      rc.Bucket,
		Scheme:      cmd.String("provider"),
		Region:      cmd.String("region"),
		Profile:     cmd.String("profile"),
		Endpoint:    cmd.String("endpoint"),
		Credentials: cmd.String("credentials"),
		AccessKey:   cmd.String("access-key"),
		SecretKey:   cmd.String("secret-key"),
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := bucket.Close(b); err != nil {
			log.WithError(err).Debug("bucket close")
		}
	}()

	extensions, err := config.GetStringSlice("extensions", nil)
	if err != nil {
		return err
	}
	markers, err := config.GetStringSlice("cache-markers", nil)
	if err != nil {
		return err
	}

	out := writer(cmd)
	engine := &sweep.Engine{
		Bucket:       b,
		Config:       rc,
		Decoder:      state.Decoder{Passphrase: state.PassphraseChain(cmd.String("passphrase"))},
		Prompter:     &prompt.Standard{In: reader(cmd), Out: out},
		Out:          out,
		Filters:      objFilters,
		Extensions:   extensions,
		CacheMarkers: markers,
	}

	summary, runErr := engine.Run(ctx)

	if cmd.Bool("summary") {
		if err := output.Summary(out, summary, OutputOptions(cmd)); err != nil {
			log.WithError(err).Error("summary")
		}
	}

	if runErr != nil {
		return fmt.Errorf("sweep of %s: %w", b.Name(), runErr)
	}
	return nil
}
