// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

//go:build !deadlock

// Package syncutil provides the mutex types used to guard device state.
// The default build uses the standard library with zero overhead; build
// with -tags=deadlock to swap in github.com/sasha-s/go-deadlock and catch
// lock-ordering mistakes between the Rx pump and command issuers.
package syncutil

import "sync"

// Mutex wraps sync.Mutex. Build with -tags=deadlock for deadlock detection.
type Mutex struct {
	sync.Mutex
}

// RWMutex wraps sync.RWMutex. Build with -tags=deadlock for deadlock detection.
type RWMutex struct {
	sync.RWMutex
}
