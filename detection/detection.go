// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

// Package detection finds serial ports that likely have a YX5300
// module attached.
//
// The YX5300 itself carries no USB identity; what enumerates is the
// USB-serial adapter in front of it. Detection therefore ranks ports
// by adapter VID:PID and, when probing is enabled, confirms a
// candidate by sending a status query and listening for any reply.
package detection

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	yx5300 "github.com/mahda-embedded/go-yx5300"
	"github.com/mahda-embedded/go-yx5300/transport/uart"
	"go.bug.st/serial/enumerator"
)

// Confidence represents how sure detection is that a port has a
// YX5300 behind it.
type Confidence int

const (
	// Low confidence - a serial port exists but nothing suggests a module
	Low Confidence = iota
	// Medium confidence - the adapter is one commonly shipped with YX5300 boards
	Medium
	// High confidence - the module answered a status query
	High
)

// DeviceInfo describes a candidate serial port.
type DeviceInfo struct {
	// Connection path (e.g. "/dev/ttyUSB0", "COM3")
	Path string
	// Human-readable port name
	Name string
	// USB VID:PID in upper-case "1A86:7523" form, empty for non-USB ports
	VIDPID string
	// USB serial number if the adapter reports one
	SerialNumber string
	// Detection confidence level
	Confidence Confidence
}

// String returns a human-readable representation of the device.
func (d DeviceInfo) String() string {
	confidence := "low"
	switch d.Confidence {
	case Medium:
		confidence = "medium"
	case High:
		confidence = "high"
	case Low:
	}
	return fmt.Sprintf("serial device at %s (confidence: %s)", d.Path, confidence)
}

// Options configures detection behavior.
type Options struct {
	// Device paths to explicitly ignore (globs allowed, e.g. "/dev/ttyS*")
	IgnorePaths []string
	// Maximum time a probe waits for the module to answer
	ProbeTimeout time.Duration
	// Probe candidates by sending a status query over the port
	Probe bool
	// Include serial ports with no USB identity
	IncludeNonUSB bool
}

// DefaultOptions returns sensible default detection options.
func DefaultOptions() Options {
	return Options{
		Probe:        true,
		ProbeTimeout: 500 * time.Millisecond,
	}
}

// ErrNoDevicesFound indicates no candidate ports were detected.
var ErrNoDevicesFound = errors.New("no YX5300 devices found")

// likelyAdapters maps adapter VID:PID pairs commonly found on YX5300
// carrier boards and the USB-TTL cables used with them.
var likelyAdapters = map[string]string{
	"1A86:7523": "CH340",
	"1A86:55D4": "CH9102",
	"10C4:EA60": "CP210x",
	"0403:6001": "FT232R",
	"067B:2303": "PL2303",
}

// probeFn sends a status query on the named port and reports whether
// anything came back. Overridable in tests.
var probeFn = probePort

// Detect enumerates serial ports and returns candidates ordered as the
// enumerator listed them. With opts.Probe set, each candidate is
// confirmed on the wire and non-responders are dropped.
func Detect(ctx context.Context, opts *Options) ([]DeviceInfo, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}

	var devices []DeviceInfo
	for _, port := range ports {
		info, ok := classifyPort(port, opts)
		if !ok {
			continue
		}

		if opts.Probe {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("detection canceled: %w", err)
			}
			if !probeFn(ctx, info.Path, opts.ProbeTimeout) {
				continue
			}
			info.Confidence = High
		}

		devices = append(devices, info)
	}

	if len(devices) == 0 {
		return nil, ErrNoDevicesFound
	}
	return devices, nil
}

// classifyPort turns an enumerated port into a candidate, applying
// ignore rules and USB filtering.
func classifyPort(port *enumerator.PortDetails, opts *Options) (DeviceInfo, bool) {
	if IsPathIgnored(port.Name, opts.IgnorePaths) {
		return DeviceInfo{}, false
	}

	info := DeviceInfo{
		Path:       port.Name,
		Name:       filepath.Base(port.Name),
		Confidence: Low,
	}

	if !port.IsUSB {
		if !opts.IncludeNonUSB {
			return DeviceInfo{}, false
		}
		return info, true
	}

	info.VIDPID = strings.ToUpper(port.VID + ":" + port.PID)
	info.SerialNumber = port.SerialNumber
	if _, known := likelyAdapters[info.VIDPID]; known {
		info.Confidence = Medium
	}
	return info, true
}

// IsPathIgnored reports whether path matches any of the ignore
// patterns. Patterns are compared as literal paths and as globs.
func IsPathIgnored(path string, ignorePaths []string) bool {
	for _, pattern := range ignorePaths {
		if strings.EqualFold(path, pattern) {
			return true
		}
		if matched, err := filepath.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}

// AdapterName returns the marketing name of a known adapter VID:PID,
// or the empty string.
func AdapterName(vidpid string) string {
	return likelyAdapters[strings.ToUpper(vidpid)]
}

// probePort opens the port, sends a status query and reports whether
// any bytes arrive before the timeout. A YX5300 answers a status query
// with a full response frame; silence means the port has something
// else attached.
func probePort(ctx context.Context, path string, timeout time.Duration) bool {
	tr, err := uart.New(path)
	if err != nil {
		return false
	}
	defer func() { _ = tr.DeInit() }()

	answered := make(chan struct{}, 1)
	tr.SetReceiver(func(byte) {
		select {
		case answered <- struct{}{}:
		default:
		}
	})
	if err := tr.Init(); err != nil {
		return false
	}

	dev, err := yx5300.New(tr)
	if err != nil {
		return false
	}
	if err := dev.UpdateStatus(); err != nil {
		return false
	}

	select {
	case <-answered:
		return true
	case <-time.After(timeout):
		return false
	case <-ctx.Done():
		return false
	}
}
