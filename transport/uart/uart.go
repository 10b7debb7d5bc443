// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

// Package uart provides a serial-port transport for the YX5300 module.
//
// The module speaks 9600 baud, 8 data bits, no parity, one stop bit.
// After Init a background goroutine pumps received bytes into the
// receiver callback, which is normally wired to Device.Feed.
package uart

import (
	"fmt"
	"strings"
	"sync"
	"time"

	yx5300 "github.com/mahda-embedded/go-yx5300"
	"go.bug.st/serial"
)

const (
	// BaudRate is the fixed serial speed of the YX5300.
	BaudRate = 9600

	readTimeout = 50 * time.Millisecond
)

// Transport implements the yx5300.Transport interface over a serial
// port. It also implements the optional Initializer and Deinitializer
// interfaces so Device.Init and Device.DeInit manage the receive pump.
type Transport struct {
	port     serial.Port
	receiver func(byte)
	done     chan struct{}
	portName string
	mu       sync.Mutex
	pumpWG   sync.WaitGroup
	running  bool
}

// New opens portName at the module's fixed line settings and returns a
// transport ready for use with yx5300.New.
func New(portName string) (*Transport, error) {
	port, err := serial.Open(portName, &serial.Mode{
		BaudRate: BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open UART port %s: %w", portName, err)
	}

	if err := port.SetReadTimeout(readTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to set UART read timeout: %w", err)
	}

	return &Transport{
		port:     port,
		portName: portName,
	}, nil
}

// NewWithPort wraps an already opened serial port. The caller keeps
// responsibility for the port's mode settings.
func NewWithPort(port serial.Port, portName string) *Transport {
	return &Transport{
		port:     port,
		portName: portName,
	}
}

// SetReceiver installs the callback that receives every byte read from
// the port. It must be set before Init starts the receive pump; wiring
// it to Device.Feed is the usual choice.
func (t *Transport) SetReceiver(fn func(byte)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.receiver = fn
}

// Send writes a complete command frame to the port.
func (t *Transport) Send(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		return yx5300.NewTransportError("send", t.portName, yx5300.ErrTransportSend)
	}

	n, err := t.port.Write(data)
	if err != nil {
		return fmt.Errorf("UART write failed: %w", err)
	} else if n != len(data) {
		return yx5300.NewTransportError("send", t.portName,
			fmt.Errorf("short write: %d of %d bytes", n, len(data)))
	}

	return t.drainWithRetry("send")
}

// Delay blocks for the requested number of milliseconds.
func (*Transport) Delay(ms uint16) error {
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return nil
}

// Init starts the receive pump goroutine.
func (t *Transport) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return nil
	}
	if t.port == nil {
		return yx5300.NewTransportError("init", t.portName, yx5300.ErrTransportInit)
	}

	t.done = make(chan struct{})
	t.running = true
	t.pumpWG.Add(1)
	go t.pump(t.done)
	return nil
}

// DeInit stops the receive pump and closes the port.
func (t *Transport) DeInit() error {
	t.mu.Lock()
	if !t.running {
		port := t.port
		t.port = nil
		t.mu.Unlock()
		if port != nil {
			if err := port.Close(); err != nil {
				return fmt.Errorf("UART close failed: %w", err)
			}
		}
		return nil
	}
	close(t.done)
	t.running = false
	port := t.port
	t.port = nil
	t.mu.Unlock()

	t.pumpWG.Wait()
	if err := port.Close(); err != nil {
		return fmt.Errorf("UART close failed: %w", err)
	}
	return nil
}

// PortName returns the name the port was opened with.
func (t *Transport) PortName() string {
	return t.portName
}

// pump reads from the port until the transport is deinitialized,
// handing every byte to the receiver callback. Read timeouts surface
// as zero-byte reads and just loop.
func (t *Transport) pump(done <-chan struct{}) {
	defer t.pumpWG.Done()

	buf := make([]byte, 16)
	for {
		select {
		case <-done:
			return
		default:
		}

		t.mu.Lock()
		port := t.port
		receiver := t.receiver
		t.mu.Unlock()
		if port == nil {
			return
		}

		n, err := port.Read(buf)
		if err != nil {
			if isInterruptedSystemCall(err) {
				continue
			}
			yx5300.Debugf("uart: read failed on %s: %v", t.portName, err)
			return
		}
		if n == 0 {
			continue
		}
		if receiver == nil {
			continue
		}
		for _, b := range buf[:n] {
			receiver(b)
		}
	}
}

// isInterruptedSystemCall reports whether err is a transient EINTR.
func isInterruptedSystemCall(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "interrupted system call") ||
		strings.Contains(errStr, "eintr")
}

// drainWithRetry flushes the port's transmit buffer, retrying when the
// underlying syscall is interrupted.
func (t *Transport) drainWithRetry(operation string) error {
	const maxRetries = 3
	baseDelay := 2 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := t.port.Drain()
		if err == nil {
			return nil
		}

		if isInterruptedSystemCall(err) && attempt < maxRetries-1 {
			time.Sleep(baseDelay * time.Duration(1<<attempt))
			continue
		}

		return fmt.Errorf("UART %s drain failed: %w", operation, err)
	}

	return fmt.Errorf("UART %s drain failed after %d retries", operation, maxRetries)
}

// HasCapability implements the yx5300.CapabilityChecker interface.
func (*Transport) HasCapability(capability yx5300.Capability) bool {
	switch capability {
	case yx5300.CapabilitySend, yx5300.CapabilityDelay,
		yx5300.CapabilityInit, yx5300.CapabilityDeinit:
		return true
	default:
		return false
	}
}

// Ensure Transport implements the full transport surface.
var (
	_ yx5300.Transport         = (*Transport)(nil)
	_ yx5300.Initializer       = (*Transport)(nil)
	_ yx5300.Deinitializer     = (*Transport)(nil)
	_ yx5300.CapabilityChecker = (*Transport)(nil)
)
