// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

package yx5300

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedAll pushes a byte sequence through the framer and returns every
// completed frame as a copy.
func feedAll(f *framer, bytes []byte) [][]byte {
	var frames [][]byte
	for _, b := range bytes {
		if done, buf := f.feed(b); done {
			frames = append(frames, append([]byte(nil), buf...))
		}
	}
	return frames
}

func TestFramerCompleteFrame(t *testing.T) {
	t.Parallel()
	var f framer

	raw := []byte{0x7E, 0xFF, 0x06, 0x43, 0x00, 0x00, 0x1E, 0x00, 0x00, 0xEF}
	frames := feedAll(&f, raw)

	require.Len(t, frames, 1)
	assert.Equal(t, raw, frames[0])
	assert.False(t, f.inFrame)
}

func TestFramerDiscardsOutOfFrameBytes(t *testing.T) {
	t.Parallel()
	var f framer

	// Stray bytes with no leading start marker produce nothing; a
	// well-formed frame afterwards is reassembled normally.
	raw := []byte{
		0xFF, 0x06, 0x42, 0x00, 0x12,
		0x7E, 0xFF, 0x06, 0x48, 0x00, 0x00, 0x05, 0x00, 0x00, 0xEF,
	}
	frames := feedAll(&f, raw)

	require.Len(t, frames, 1)
	assert.Equal(t, byte(0x48), frames[0][3])
}

func TestFramerOverflowResync(t *testing.T) {
	t.Parallel()
	var f framer

	// A start marker followed by eleven non-end bytes overflows the
	// buffer; the partial frame is dropped without any completion.
	overflow := []byte{0x7E, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	frames := feedAll(&f, overflow)
	require.Empty(t, frames)

	// Framing resumes at the next start marker.
	good := []byte{0x7E, 0xFF, 0x06, 0x43, 0x00, 0x00, 0x0A, 0x00, 0x00, 0xEF}
	frames = feedAll(&f, good)
	require.Len(t, frames, 1)
	assert.Equal(t, good, frames[0])
}

func TestFramerEndMarkerMidData(t *testing.T) {
	t.Parallel()
	var f framer

	// The protocol has no escaping: an end-marker byte inside the frame
	// terminates it early. The driver later discards such truncated
	// frames during extraction.
	raw := []byte{0x7E, 0xFF, 0xEF}
	frames := feedAll(&f, raw)
	require.Len(t, frames, 1)
	assert.Len(t, frames[0], 3)
}

func TestFramerBackToBackFrames(t *testing.T) {
	t.Parallel()
	var f framer

	raw := append(
		[]byte{0x7E, 0xFF, 0x06, 0x42, 0x00, 0x00, 0x01, 0x00, 0x00, 0xEF},
		[]byte{0x7E, 0xFF, 0x06, 0x43, 0x00, 0x00, 0x15, 0x00, 0x00, 0xEF}...,
	)
	frames := feedAll(&f, raw)

	require.Len(t, frames, 2)
	assert.Equal(t, byte(0x42), frames[0][3])
	assert.Equal(t, byte(0x43), frames[1][3])
}

func TestFramerReset(t *testing.T) {
	t.Parallel()
	var f framer

	f.feed(0x7E)
	f.feed(0xFF)
	require.True(t, f.inFrame)

	f.reset()
	assert.False(t, f.inFrame)
	assert.Zero(t, f.idx)
}
