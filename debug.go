// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

package yx5300

import (
	"fmt"
	"os"
)

// debugEnabled controls whether debug logging is active.
var debugEnabled = false

func init() {
	if os.Getenv("YX5300_DEBUG") != "" || os.Getenv("DEBUG") != "" {
		debugEnabled = true
	}
}

// Debugf prints debug information when debug mode is enabled.
func Debugf(format string, args ...any) {
	if debugEnabled {
		_, _ = fmt.Fprintf(os.Stderr, "DEBUG: "+format+"\n", args...)
	}
}

// SetDebugEnabled allows programmatic control of debug logging.
// Useful for testing or application-controlled debug modes.
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}
