// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

package yx5300

import (
	"sync"
)

// Transport defines the capability interface the driver consumes. The
// YX5300 side of the link is write-only at this level: received bytes are
// delivered by the transport owner into Device.Feed, one at a time, from
// whatever context reads the line.
type Transport interface {
	// Send transmits a complete frame. It may block until a prior
	// transmission finishes; this is the protocol's only backpressure
	// point, so callers must not issue another command concurrently
	// unless the transport serializes writes itself.
	Send(data []byte) error

	// Delay blocks the calling context for the given duration in
	// milliseconds. Init uses it for the module's stabilization delays.
	Delay(ms uint16) error
}

// Initializer is an optional transport capability that prepares the
// physical link before the device init sequence runs.
type Initializer interface {
	Init() error
}

// Deinitializer is an optional transport capability that releases the
// physical link during teardown.
type Deinitializer interface {
	DeInit() error
}

// Capability identifies a transport capability by name.
type Capability string

// Capabilities a transport may report.
const (
	CapabilitySend   Capability = "send"
	CapabilityDelay  Capability = "delay"
	CapabilityInit   Capability = "init"
	CapabilityDeinit Capability = "deinit"
)

// CapabilityChecker lets a transport report which capabilities are
// actually wired. Function-pointer style platforms (PlatformFuncs) use it
// to expose partially-initialized layers; transports that do not
// implement it are assumed to carry every method their type declares.
type CapabilityChecker interface {
	HasCapability(capability Capability) bool
}

// hasCapability reports whether the transport provides the capability.
func hasCapability(t Transport, capability Capability) bool {
	if checker, ok := t.(CapabilityChecker); ok {
		return checker.HasCapability(capability)
	}
	switch capability {
	case CapabilitySend, CapabilityDelay:
		return true
	case CapabilityInit:
		_, ok := t.(Initializer)
		return ok
	case CapabilityDeinit:
		_, ok := t.(Deinitializer)
		return ok
	default:
		return false
	}
}

// PlatformFuncs adapts a function-pointer style platform layer to the
// Transport interface, mirroring embedded ports where each hook is linked
// individually. Init and Deinit are optional; Send and Delay are
// mandatory and their absence is reported through HasCapability so that
// Device.Init can fail with ErrMissingCapability instead of panicking.
type PlatformFuncs struct {
	InitFunc   func() error
	DeinitFunc func() error
	DelayFunc  func(ms uint16) error
	SendFunc   func(data []byte) error
}

// Send implements Transport.
func (p *PlatformFuncs) Send(data []byte) error {
	if p.SendFunc == nil {
		return ErrMissingCapability
	}
	return p.SendFunc(data)
}

// Delay implements Transport.
func (p *PlatformFuncs) Delay(ms uint16) error {
	if p.DelayFunc == nil {
		return ErrMissingCapability
	}
	return p.DelayFunc(ms)
}

// Init implements Initializer. A nil hook is a no-op.
func (p *PlatformFuncs) Init() error {
	if p.InitFunc == nil {
		return nil
	}
	return p.InitFunc()
}

// DeInit implements Deinitializer. A nil hook is a no-op.
func (p *PlatformFuncs) DeInit() error {
	if p.DeinitFunc == nil {
		return nil
	}
	return p.DeinitFunc()
}

// HasCapability implements CapabilityChecker.
func (p *PlatformFuncs) HasCapability(capability Capability) bool {
	switch capability {
	case CapabilitySend:
		return p.SendFunc != nil
	case CapabilityDelay:
		return p.DelayFunc != nil
	case CapabilityInit:
		return p.InitFunc != nil
	case CapabilityDeinit:
		return p.DeinitFunc != nil
	default:
		return false
	}
}

// MockTransport provides a mock implementation of Transport for testing.
type MockTransport struct {
	sendErr   error
	initErr   error
	frames    [][]byte
	delays    []uint16
	mu        sync.Mutex
	initCalls int
	deinits   int
	failAfter int // fail sends once this many frames were accepted, -1 = never
}

// NewMockTransport creates a new mock transport.
func NewMockTransport() *MockTransport {
	return &MockTransport{failAfter: -1}
}

// Send implements Transport, recording the frame.
func (m *MockTransport) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sendErr != nil {
		return m.sendErr
	}
	if m.failAfter >= 0 && len(m.frames) >= m.failAfter {
		return ErrTransportSend
	}

	frame := make([]byte, len(data))
	copy(frame, data)
	m.frames = append(m.frames, frame)
	return nil
}

// Delay implements Transport, recording the duration without sleeping.
func (m *MockTransport) Delay(ms uint16) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delays = append(m.delays, ms)
	return nil
}

// Init implements Initializer.
func (m *MockTransport) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initCalls++
	return m.initErr
}

// DeInit implements Deinitializer.
func (m *MockTransport) DeInit() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deinits++
	return nil
}

// Test helper methods

// SetSendError makes every subsequent Send fail with err.
func (m *MockTransport) SetSendError(err error) {
	m.mu.Lock()
	m.sendErr = err
	m.mu.Unlock()
}

// SetInitError makes the init hook fail with err.
func (m *MockTransport) SetInitError(err error) {
	m.mu.Lock()
	m.initErr = err
	m.mu.Unlock()
}

// FailAfter makes Send fail once n frames have been accepted.
func (m *MockTransport) FailAfter(n int) {
	m.mu.Lock()
	m.failAfter = n
	m.mu.Unlock()
}

// SentFrames returns a copy of the frames handed to Send so far.
func (m *MockTransport) SentFrames() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	frames := make([][]byte, len(m.frames))
	copy(frames, m.frames)
	return frames
}

// Delays returns the recorded delay durations.
func (m *MockTransport) Delays() []uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	delays := make([]uint16, len(m.delays))
	copy(delays, m.delays)
	return delays
}

// InitCalls returns how many times the init hook ran.
func (m *MockTransport) InitCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initCalls
}

// DeinitCalls returns how many times the teardown hook ran.
func (m *MockTransport) DeinitCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deinits
}

// Reset clears recorded frames, delays and injected errors.
func (m *MockTransport) Reset() {
	m.mu.Lock()
	m.frames = nil
	m.delays = nil
	m.sendErr = nil
	m.initErr = nil
	m.failAfter = -1
	m.mu.Unlock()
}
