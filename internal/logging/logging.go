// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

// Package logging wraps the application logger. Load failures of the account
// view are reported here and nowhere else; the UI stays silent about them.
package logging

import (
	"fmt"
	"io"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger.
var L = clog.New(io.Discard)

// SetOutput points the logger at w. The TUI keeps it on io.Discard unless a
// log file is configured, so log lines never tear the rendered screen.
func SetOutput(w io.Writer) {
	L.SetOutput(w)
}

// SetDebug enables or disables debug-level output.
func SetDebug(enabled bool) {
	if enabled {
		L.SetLevel(clog.DebugLevel)
	} else {
		L.SetLevel(clog.InfoLevel)
	}
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...any) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...any) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...any) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...any) {
	L.Error(fmt.Sprintf(format, v...))
}
