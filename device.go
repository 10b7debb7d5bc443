// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

// Package yx5300 is a driver for the YX5300 serial MP3 playback module
// (the chip behind the common Catalex serial MP3 boards).
//
// The driver encodes control commands into fixed 8-byte frames, hands
// them to a Transport for transmission, and reassembles the module's
// 10-byte response frames from bytes delivered one at a time into
// Device.Feed. Decoded responses update a cached device state that
// callers read through Device.State.
package yx5300

import (
	"context"
	"fmt"

	"github.com/mahda-embedded/go-yx5300/internal/frame"
	"github.com/mahda-embedded/go-yx5300/internal/syncutil"
)

// Stabilization delay applied between init sequence steps, from the
// module's power-on timing requirements.
const initDelayMs = 500

// Device represents a YX5300 MP3 module attached through a Transport.
//
// Thread safety: Feed may run on the receive context (for example the
// transport's Rx pump goroutine) while commands are issued from another
// goroutine. Commands themselves are serialized by an internal mutex;
// the blocking behavior of Transport.Send is the protocol's backpressure
// point.
type Device struct {
	transport Transport
	handler   func(Response)
	waiter    chan Response
	mu        syncutil.Mutex // serializes the send path and init/deinit
	waiterMu  syncutil.Mutex
	state     deviceState
	rx        framer
	ready     bool
}

// Option configures a Device.
type Option func(*Device) error

// WithResponseHandler registers a callback invoked for every complete,
// recognized response frame, after the state update. It runs on the
// context that called Feed, so it must not block.
func WithResponseHandler(handler func(Response)) Option {
	return func(d *Device) error {
		d.handler = handler
		return nil
	}
}

// New creates a Device on the given transport.
func New(transport Transport, opts ...Option) (*Device, error) {
	if transport == nil {
		return nil, fmt.Errorf("%w: nil transport", ErrInvalidParameter)
	}

	device := &Device{transport: transport}
	for _, opt := range opts {
		if err := opt(device); err != nil {
			return nil, err
		}
	}
	return device, nil
}

// Transport returns the underlying transport.
func (d *Device) Transport() Transport {
	return d.transport
}

// Ready reports whether Init has completed since the last DeInit.
func (d *Device) Ready() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ready
}

// Init brings the module from uninitialized to ready: it runs the
// transport's optional init hook, lets the module stabilize, then resets
// it and selects the TF card, with a stabilization delay after each step.
// Any command failure aborts the sequence and is returned without retry.
func (d *Device) Init() error {
	return d.InitContext(context.Background())
}

// InitContext is Init with cancellation between sequence steps. The
// individual delay and send calls are not interruptible; ctx is checked
// at each step boundary.
func (d *Device) InitContext(ctx context.Context) error {
	if !hasCapability(d.transport, CapabilitySend) ||
		!hasCapability(d.transport, CapabilityDelay) {
		return ErrMissingCapability
	}

	if init, ok := d.transport.(Initializer); ok && hasCapability(d.transport, CapabilityInit) {
		if err := init.Init(); err != nil {
			return NewTransportError("init", "", fmt.Errorf("%w: %w", ErrTransportInit, err))
		}
	}

	steps := []struct {
		opcode byte
		data   uint16
	}{
		{cmdReset, 0},
		{cmdSelectDevice, uint16(DeviceTFCard)},
	}

	// The reference driver discards delay errors; only send failures
	// abort the sequence.
	_ = d.transport.Delay(initDelayMs)
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("init canceled: %w", err)
		}
		if err := d.sendCommand(step.opcode, step.data); err != nil {
			return err
		}
		_ = d.transport.Delay(initDelayMs)
	}

	d.mu.Lock()
	d.ready = true
	d.mu.Unlock()

	Debugf("device initialized")
	return nil
}

// DeInit tears the device down: it runs the transport's optional teardown
// hook and resets the cached state and framer. Teardown is best-effort
// and non-blocking; it has no failure path.
func (d *Device) DeInit() {
	if deinit, ok := d.transport.(Deinitializer); ok && hasCapability(d.transport, CapabilityDeinit) {
		if err := deinit.DeInit(); err != nil {
			Debugf("deinit hook failed: %v", err)
		}
	}

	d.mu.Lock()
	d.ready = false
	d.rx.reset()
	d.mu.Unlock()
	d.state.reset()
}

// State returns a snapshot of the cached device status.
func (d *Device) State() State {
	return d.state.snapshot()
}

// Feed consumes one received byte. Call it for every byte the transport
// delivers, in order. It performs O(1) work, never blocks, and is the
// only place response frames are parsed and applied.
func (d *Device) Feed(b byte) FeedResult {
	done, buf := d.rx.feed(b)
	if !done {
		return FeedContinue
	}

	code, data, err := frame.ExtractResponse(buf)
	if err != nil {
		// End marker arrived before the response layout filled in.
		// Treated like an overflow: drop silently and resynchronize.
		Debugf("discarding truncated frame: %v", err)
		return FeedContinue
	}

	resp := Response{Code: code, Data: data}
	if !d.state.recordResponse(resp) {
		Debugf("unrecognized response %v", resp)
		return FeedFrameError
	}

	Debugf("response %v", resp)
	d.notify(resp)
	if d.handler != nil {
		d.handler(resp)
	}
	return FeedFrameReady
}

// sendCommand encodes and transmits one command frame, requesting
// feedback as the reference driver always does. On success it records the
// command and marks a response as pending; a failed handoff leaves the
// bookkeeping untouched so last-command only ever names frames that
// actually reached the transport.
func (d *Device) sendCommand(opcode byte, data uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	f := frame.BuildData(opcode, data, true)
	Debugf("send cmd=0x%02X data=0x%04X", opcode, data)
	if err := d.transport.Send(f[:]); err != nil {
		return sendError(err)
	}

	d.state.recordCommand(opcode, data)
	return nil
}

// SendCommand transmits a raw command frame. Most callers should prefer
// the named operations; this is the escape hatch for opcodes the driver
// does not wrap.
func (d *Device) SendCommand(opcode byte, data uint16) error {
	return d.sendCommand(opcode, data)
}

// Media control operations. Each one sends a single command frame; the
// module acknowledges asynchronously through the receive path.

// Next plays the next track.
func (d *Device) Next() error { return d.sendCommand(cmdNext, 0) }

// Previous plays the previous track.
func (d *Device) Previous() error { return d.sendCommand(cmdPrev, 0) }

// VolumeUp raises the volume one step.
func (d *Device) VolumeUp() error { return d.sendCommand(cmdVolumeUp, 0) }

// VolumeDown lowers the volume one step.
func (d *Device) VolumeDown() error { return d.sendCommand(cmdVolumeDown, 0) }

// SetVolume sets the volume level. Values above MaxVolume are clamped,
// not rejected.
func (d *Device) SetVolume(volume uint8) error {
	if volume > MaxVolume {
		volume = MaxVolume
	}
	return d.sendCommand(cmdVolumeSet, uint16(volume))
}

// PlayTrack plays a track by its index on the medium.
func (d *Device) PlayTrack(track uint16) error {
	return d.sendCommand(cmdPlayIndex, track)
}

// PlayTrackCycle plays a track by index and repeats it.
func (d *Device) PlayTrackCycle(track uint16) error {
	return d.sendCommand(cmdSingleCycle, track)
}

// PlayFolderFile plays a file by folder and file number.
func (d *Device) PlayFolderFile(folder, file byte) error {
	return d.sendCommand(cmdPlayFolderFile, frame.JoinData(folder, file))
}

// PlayWithVolume plays a track at the given volume in one command.
func (d *Device) PlayWithVolume(track, volume uint8) error {
	if volume > MaxVolume {
		volume = MaxVolume
	}
	return d.sendCommand(cmdPlayWithVolume, frame.JoinData(volume, track))
}

// PlayFolderCycle repeats all files in the given folder.
func (d *Device) PlayFolderCycle(folder byte) error {
	return d.sendCommand(cmdPlayFolderCycle, uint16(folder))
}

// Play resumes playback.
func (d *Device) Play() error { return d.sendCommand(cmdPlay, 0) }

// Pause pauses playback.
func (d *Device) Pause() error { return d.sendCommand(cmdPause, 0) }

// Stop stops playback.
func (d *Device) Stop() error { return d.sendCommand(cmdStop, 0) }

// Sleep puts the module into low-power mode.
func (d *Device) Sleep() error { return d.sendCommand(cmdSleep, 0) }

// Wake wakes the module from low-power mode.
func (d *Device) Wake() error { return d.sendCommand(cmdWake, 0) }

// Reset soft-resets the module. Init issues this as part of its sequence;
// after a manual reset the module needs its stabilization delay and a new
// device selection.
func (d *Device) Reset() error { return d.sendCommand(cmdReset, 0) }

// SelectDevice selects the active storage medium.
func (d *Device) SelectDevice(device byte) error {
	return d.sendCommand(cmdSelectDevice, uint16(device))
}

// SetSingleCycle enables or disables single-track loop mode.
func (d *Device) SetSingleCycle(enable bool) error {
	data := uint16(1)
	if enable {
		data = 0
	}
	return d.sendCommand(cmdSetSingleCycle, data)
}

// SetDAC enables or disables the module's DAC output.
func (d *Device) SetDAC(enable bool) error {
	data := uint16(1)
	if enable {
		data = 0
	}
	return d.sendCommand(cmdSetDAC, data)
}

// Query triggers. Each sends the query command and returns immediately;
// the answer arrives asynchronously through Feed and lands in State.
// The Query* methods in query.go wrap these with a context-bound wait.

// UpdateStatus requests a playback status report.
func (d *Device) UpdateStatus() error { return d.sendCommand(cmdQueryStatus, 0) }

// UpdateVolume requests a volume report.
func (d *Device) UpdateVolume() error { return d.sendCommand(cmdQueryVolume, 0) }

// UpdateTrackCount requests the total track count.
func (d *Device) UpdateTrackCount() error { return d.sendCommand(cmdQueryTotalTracks, 0) }

// UpdateTrack requests the currently playing track number.
func (d *Device) UpdateTrack() error { return d.sendCommand(cmdQueryTrack, 0) }

// UpdateFolderFiles requests the file count of a folder.
func (d *Device) UpdateFolderFiles(folder byte) error {
	return d.sendCommand(cmdQueryFolderFiles, uint16(folder))
}

// UpdateFolderCount requests the folder count of the medium.
func (d *Device) UpdateFolderCount() error {
	return d.sendCommand(cmdQueryFolderCount, 0)
}
