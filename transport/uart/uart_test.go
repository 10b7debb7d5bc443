// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

package uart

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	yx5300 "github.com/mahda-embedded/go-yx5300"
	virt "github.com/mahda-embedded/go-yx5300/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

// errPortClosed is returned when operations are attempted on a closed port
var errPortClosed = errors.New("port is closed")

// MockSerialPort wraps VirtualYX5300 to implement the serial.Port
// interface. Reads pause briefly when the simulator has no pending
// output, mimicking a real port's read timeout.
type MockSerialPort struct {
	sim         *virt.VirtualYX5300
	readTimeout time.Duration
	mu          sync.Mutex
	closed      bool
}

// NewMockSerialPort creates a mock serial port backed by the player simulator.
func NewMockSerialPort(sim *virt.VirtualYX5300) *MockSerialPort {
	return &MockSerialPort{
		sim:         sim,
		readTimeout: 100 * time.Millisecond,
	}
}

func (*MockSerialPort) SetMode(_ *serial.Mode) error {
	return nil
}

func (m *MockSerialPort) Read(p []byte) (n int, err error) {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return 0, errPortClosed
	}
	if m.sim.Pending() == 0 {
		time.Sleep(time.Millisecond)
		return 0, nil
	}
	n, err = m.sim.Read(p)
	if err != nil {
		return n, fmt.Errorf("mock read: %w", err)
	}
	return n, nil
}

func (m *MockSerialPort) Write(p []byte) (n int, err error) {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return 0, errPortClosed
	}
	n, err = m.sim.Write(p)
	if err != nil {
		return n, fmt.Errorf("mock write: %w", err)
	}
	return n, nil
}

func (*MockSerialPort) Drain() error {
	return nil
}

func (*MockSerialPort) ResetInputBuffer() error {
	return nil
}

func (*MockSerialPort) ResetOutputBuffer() error {
	return nil
}

func (*MockSerialPort) SetDTR(_ bool) error {
	return nil
}

func (*MockSerialPort) SetRTS(_ bool) error {
	return nil
}

func (*MockSerialPort) GetModemStatusBits() (*serial.ModemStatusBits, error) {
	return &serial.ModemStatusBits{}, nil
}

func (m *MockSerialPort) SetReadTimeout(t time.Duration) error {
	m.readTimeout = t
	return nil
}

func (m *MockSerialPort) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

func (*MockSerialPort) Break(_ time.Duration) error {
	return nil
}

// Verify interface implementation
var _ serial.Port = (*MockSerialPort)(nil)

func newMockTransport() (*Transport, *virt.VirtualYX5300) {
	sim := virt.NewVirtualYX5300()
	tr := NewWithPort(NewMockSerialPort(sim), "mock0")
	return tr, sim
}

func TestSendReachesSimulator(t *testing.T) {
	t.Parallel()
	tr, sim := newMockTransport()

	// A status query the simulator answers immediately.
	frame := []byte{0x7E, 0xFF, 0x06, 0x42, 0x01, 0x00, 0x00, 0xEF}
	require.NoError(t, tr.Send(frame))

	assert.Equal(t, 10, sim.Pending(), "expected one response frame queued")
}

func TestSendAfterDeInit(t *testing.T) {
	t.Parallel()
	tr, _ := newMockTransport()

	require.NoError(t, tr.DeInit())
	err := tr.Send([]byte{0x7E, 0xFF, 0x06, 0x0C, 0x01, 0x00, 0x00, 0xEF})
	require.Error(t, err)
}

func TestCapabilities(t *testing.T) {
	t.Parallel()
	tr, _ := newMockTransport()

	for _, c := range []yx5300.Capability{
		yx5300.CapabilitySend,
		yx5300.CapabilityDelay,
		yx5300.CapabilityInit,
		yx5300.CapabilityDeinit,
	} {
		assert.True(t, tr.HasCapability(c), "capability %s", c)
	}
	assert.False(t, tr.HasCapability(yx5300.Capability("warp-drive")))
}

func TestReceivePumpDeliversBytes(t *testing.T) {
	t.Parallel()
	tr, sim := newMockTransport()

	var mu sync.Mutex
	var received []byte
	tr.SetReceiver(func(b byte) {
		mu.Lock()
		received = append(received, b)
		mu.Unlock()
	})

	require.NoError(t, tr.Init())
	defer func() { _ = tr.DeInit() }()

	sim.InjectResponse(0x43, 17)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 10
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, byte(0x7E), received[0])
	assert.Equal(t, byte(0x43), received[3])
	assert.Equal(t, byte(17), received[6])
	assert.Equal(t, byte(0xEF), received[9])
}

func TestDeviceOverMockPort(t *testing.T) {
	t.Parallel()
	tr, _ := newMockTransport()

	dev, err := yx5300.New(tr)
	require.NoError(t, err)
	tr.SetReceiver(func(b byte) { dev.Feed(b) })

	require.NoError(t, dev.Init())
	defer dev.DeInit()

	// Selecting the TF card during init makes the simulator announce
	// its medium; the pump delivers it asynchronously.
	require.Eventually(t, func() bool {
		return dev.State().MediaInserted
	}, 2*time.Second, 5*time.Millisecond)
}

func TestDelayDuration(t *testing.T) {
	t.Parallel()
	tr, _ := newMockTransport()

	start := time.Now()
	require.NoError(t, tr.Delay(20))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestDoubleInit(t *testing.T) {
	t.Parallel()
	tr, _ := newMockTransport()
	tr.SetReceiver(func(byte) {})

	require.NoError(t, tr.Init())
	require.NoError(t, tr.Init())
	require.NoError(t, tr.DeInit())
}
