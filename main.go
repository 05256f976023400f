// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/tfsweep/internal/cacheutil"
	"github.com/tfctl/tfsweep/internal/command"
	"github.com/tfctl/tfsweep/internal/config"
	"github.com/tfctl/tfsweep/internal/log"
	"github.com/tfctl/tfsweep/internal/policy"
	"github.com/tfctl/tfsweep/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain(os.Args))
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// exitCode maps a run error to the process exit status. Every failure,
// including a run without a cleanup mode, is 1.
func exitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	err = app.Run(ctx, args)
	if err != nil && !errors.Is(err, policy.ErrNoCleanupMode) {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
	}
	return exitCode(err)
}

func realMain(args []string) int {
	log.InitLogger()
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	// If --help appears anywhere, skip set expansion and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processSetOnly(args)
		log.Debugf("args after set processing: args=%v", args)
	}

	return initAndRunApp(args)
}

// processSetOnly expands the first @name argument into the arguments listed
// under sets.name in the config file. Each list entry may hold several
// space-separated arguments.
func processSetOnly(args []string) []string {
	removeIdx := -1
	set := ""
	for i, a := range args {
		if i > 0 && strings.HasPrefix(a, "@") {
			set = a[1:]
			removeIdx = i
			break
		}
	}
	if removeIdx == -1 {
		return args
	}

	setArgs, err := config.GetStringSlice("sets." + set)
	if err != nil {
		log.WithError(err).Warnf("unknown argument set %s", set)
	}

	expanded := make([]string, 0, len(args)+len(setArgs))
	expanded = append(expanded, args[:removeIdx]...)
	for _, arg := range setArgs {
		expanded = append(expanded, strings.Fields(arg)...)
	}
	expanded = append(expanded, args[removeIdx+1:]...)
	return expanded
}
