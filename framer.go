// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

package yx5300

import (
	"github.com/mahda-embedded/go-yx5300/internal/frame"
)

// FeedResult is the outcome of feeding one received byte into the driver.
type FeedResult int

const (
	// FeedContinue means the byte was consumed without completing a
	// frame: either mid-frame accumulation, a discarded out-of-frame
	// byte, or a silent overflow resynchronization.
	FeedContinue FeedResult = iota
	// FeedFrameReady means a complete frame was parsed and the device
	// state updated. Returned exactly once per completed frame.
	FeedFrameReady
	// FeedFrameError means a complete frame carried an unrecognized
	// response code. Last-response bookkeeping was updated; no status
	// field was touched.
	FeedFrameError
)

func (r FeedResult) String() string {
	switch r {
	case FeedContinue:
		return "continue"
	case FeedFrameReady:
		return "frame ready"
	case FeedFrameError:
		return "frame error"
	default:
		return "unknown"
	}
}

// framer reassembles response frames one byte at a time. Two states: idle
// (waiting for a start marker) and in-frame (accumulating). Each feed call
// does O(1) work and never blocks, so it is safe to drive from an
// interrupt-ish context such as a serial read loop.
type framer struct {
	buf     [frame.ResponseSize]byte
	idx     int
	inFrame bool
}

// feed consumes one byte. When an end marker completes a frame it returns
// done=true and the accumulated bytes; the slice aliases the internal
// buffer and is only valid until the next call.
//
// Overflow (buffer full with no end marker) is a lossy resync: the frame
// is dropped and accumulation restarts at the next start marker. The link
// has no retransmission, so there is nothing better to do with a corrupt
// frame than wait for the next good one.
func (f *framer) feed(b byte) (done bool, buf []byte) {
	if !f.inFrame {
		if b != frame.StartByte {
			return false, nil
		}
		f.buf[0] = b
		f.idx = 1
		f.inFrame = true
		return false, nil
	}

	f.buf[f.idx] = b
	f.idx++

	if b == frame.EndByte {
		n := f.idx
		f.idx = 0
		f.inFrame = false
		return true, f.buf[:n]
	}

	if f.idx >= len(f.buf) {
		f.idx = 0
		f.inFrame = false
	}
	return false, nil
}

// reset drops any partial frame and returns to idle.
func (f *framer) reset() {
	f.idx = 0
	f.inFrame = false
}
