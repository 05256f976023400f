// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package version reports the build version of tfsweep. It must stay free of
// other tfsweep imports so every package can use it.
package version

import "runtime/debug"

// Version is the module version stamped by go install, or "dev" for local
// builds. A local build carries the short VCS revision when one is known.
var Version = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev" + revision(info.Settings)
}()

func revision(settings []debug.BuildSetting) string {
	for _, s := range settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return "+" + s.Value[:7]
		}
	}
	return ""
}
