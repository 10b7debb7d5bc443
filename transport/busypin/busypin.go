// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

// Package busypin monitors the YX5300's BUSY output line over GPIO.
//
// The BUSY pin gives playback state without any serial traffic: on the
// common Catalex carrier board the line is pulled low while a track is
// playing and sits high when idle. Boards with an inverted line can
// use WithActiveHigh.
package busypin

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

const pollInterval = 10 * time.Millisecond

// Monitor reads playback state from the BUSY line.
type Monitor struct {
	pin        gpio.PinIO
	pinName    string
	activeHigh bool
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithActiveHigh treats a high line level as "playing". The default is
// active low, matching the Catalex carrier board.
func WithActiveHigh() Option {
	return func(m *Monitor) {
		m.activeHigh = true
	}
}

// New initializes the periph host, resolves pinName (a name understood
// by gpioreg, e.g. "GPIO17" or "P1_11") and configures it as an input
// with the pull-up the BUSY line expects.
func New(pinName string, opts ...Option) (*Monitor, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, fmt.Errorf("no GPIO pin named %q", pinName)
	}

	if err := pin.In(gpio.PullUp, gpio.BothEdges); err != nil {
		return nil, fmt.Errorf("failed to configure pin %s as input: %w", pinName, err)
	}

	m := &Monitor{pin: pin, pinName: pinName}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// NewWithPin wraps an already configured pin. Used with gpiotest pins
// in tests and with pins obtained outside gpioreg.
func NewWithPin(pin gpio.PinIO, opts ...Option) *Monitor {
	m := &Monitor{pin: pin, pinName: pin.Name()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PinName returns the name of the monitored pin.
func (m *Monitor) PinName() string {
	return m.pinName
}

// Playing reports whether the BUSY line currently indicates playback.
func (m *Monitor) Playing() bool {
	level := m.pin.Read()
	if m.activeHigh {
		return level == gpio.High
	}
	return level == gpio.Low
}

// Wait blocks until the BUSY line reports idle, polling the pin. It
// returns immediately if nothing is playing, and ctx.Err() if the
// context expires first.
func (m *Monitor) Wait(ctx context.Context) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for m.Playing() {
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for playback to finish: %w", ctx.Err())
		case <-ticker.C:
		}
	}
	return nil
}

// WaitForStart blocks until the BUSY line reports playback. Useful
// right after a play command, before Wait.
func (m *Monitor) WaitForStart(ctx context.Context) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for !m.Playing() {
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for playback to start: %w", ctx.Err())
		case <-ticker.C:
		}
	}
	return nil
}
