// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial/enumerator"
)

func TestClassifyKnownAdapter(t *testing.T) {
	t.Parallel()
	port := &enumerator.PortDetails{
		Name:         "/dev/ttyUSB0",
		IsUSB:        true,
		VID:          "1a86",
		PID:          "7523",
		SerialNumber: "A5004",
	}
	opts := DefaultOptions()

	info, ok := classifyPort(port, &opts)
	require.True(t, ok)
	assert.Equal(t, "/dev/ttyUSB0", info.Path)
	assert.Equal(t, "1A86:7523", info.VIDPID)
	assert.Equal(t, "A5004", info.SerialNumber)
	assert.Equal(t, Medium, info.Confidence, "CH340 is a known carrier-board adapter")
}

func TestClassifyUnknownAdapter(t *testing.T) {
	t.Parallel()
	port := &enumerator.PortDetails{
		Name:  "/dev/ttyACM0",
		IsUSB: true,
		VID:   "2341",
		PID:   "0043",
	}
	opts := DefaultOptions()

	info, ok := classifyPort(port, &opts)
	require.True(t, ok)
	assert.Equal(t, Low, info.Confidence)
}

func TestClassifyNonUSBExcludedByDefault(t *testing.T) {
	t.Parallel()
	port := &enumerator.PortDetails{Name: "/dev/ttyS0"}
	opts := DefaultOptions()

	_, ok := classifyPort(port, &opts)
	assert.False(t, ok)

	opts.IncludeNonUSB = true
	info, ok := classifyPort(port, &opts)
	require.True(t, ok)
	assert.Empty(t, info.VIDPID)
	assert.Equal(t, Low, info.Confidence)
}

func TestClassifyIgnoredPath(t *testing.T) {
	t.Parallel()
	port := &enumerator.PortDetails{
		Name:  "/dev/ttyUSB1",
		IsUSB: true,
		VID:   "1a86",
		PID:   "7523",
	}
	opts := DefaultOptions()
	opts.IgnorePaths = []string{"/dev/ttyUSB1"}

	_, ok := classifyPort(port, &opts)
	assert.False(t, ok)
}

func TestIsPathIgnored(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		path     string
		patterns []string
		want     bool
	}{
		{"exact match", "/dev/ttyUSB0", []string{"/dev/ttyUSB0"}, true},
		{"case insensitive", "COM3", []string{"com3"}, true},
		{"glob match", "/dev/ttyS4", []string{"/dev/ttyS*"}, true},
		{"no match", "/dev/ttyUSB0", []string{"/dev/ttyACM*"}, false},
		{"empty patterns", "/dev/ttyUSB0", nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsPathIgnored(tt.path, tt.patterns))
		})
	}
}

func TestAdapterName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "CH340", AdapterName("1a86:7523"))
	assert.Equal(t, "CP210x", AdapterName("10C4:EA60"))
	assert.Empty(t, AdapterName("DEAD:BEEF"))
}

func TestDeviceInfoString(t *testing.T) {
	t.Parallel()
	d := DeviceInfo{Path: "/dev/ttyUSB0", Confidence: High}
	assert.Equal(t, "serial device at /dev/ttyUSB0 (confidence: high)", d.String())
}
