// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		spec string
		want log.Level
	}{
		{"trace", log.DebugLevel},
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"bogus", log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.want, levelFor(tt.spec))
		})
	}
}

func TestHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, "debug")
	t.Cleanup(func() { InitLoggerTo(&bytes.Buffer{}, "error") })

	Debugf("listing %s", "bucket")
	assert.Contains(t, buf.String(), " D listing bucket\n")

	buf.Reset()
	WithError(errors.New("boom")).Warn("fetch failed")
	assert.Contains(t, buf.String(), " W fetch failed: boom\n")
}

func TestTraceOnlyWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, "debug")
	t.Cleanup(func() { InitLoggerTo(&bytes.Buffer{}, "error") })

	Tracef("hidden")
	assert.Empty(t, buf.String())

	InitLoggerTo(&buf, "trace")
	Tracef("shown %d", 1)
	assert.Contains(t, buf.String(), " T shown 1\n")
}

func TestErrorLevelSuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, "")
	Debug("quiet")
	Infof("quiet")
	assert.Empty(t, buf.String())

	Errorf("loud")
	assert.Contains(t, buf.String(), " E loud\n")
}
