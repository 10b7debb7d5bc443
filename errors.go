// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

package yx5300

import (
	"errors"
	"fmt"
)

// Error categories. Encoder and initialization failures propagate to the
// caller immediately; there is no internal retry because the protocol has
// no retransmission mechanism. Receive-side framing failures are absorbed
// by the framer's resynchronization and never surface as errors.
var (
	// ErrInvalidParameter indicates a nil device or transport.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrMissingCapability indicates the transport lacks one of the
	// mandatory send or delay capabilities.
	ErrMissingCapability = errors.New("transport missing mandatory capability")

	// ErrUnrecognizedResponse indicates a complete frame carried a
	// response code outside the known set.
	ErrUnrecognizedResponse = errors.New("unrecognized response code")

	// Transport operation failures, wrapped in a TransportError.
	ErrTransportSend   = errors.New("transport send failed")
	ErrTransportInit   = errors.New("transport init failed")
	ErrTransportDeinit = errors.New("transport deinit failed")
)

// TransportError wraps transport-level failures with the operation and
// port that produced them.
type TransportError struct {
	Err  error  // Underlying error
	Op   string // Operation that failed
	Port string // Port or device identifier, if known
}

func (e *TransportError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a transport error with consistent formatting.
func NewTransportError(op, port string, err error) *TransportError {
	return &TransportError{Op: op, Port: port, Err: err}
}

// sendError wraps a failed command handoff. The sentinel keeps
// errors.Is(err, ErrTransportSend) working for callers that do not care
// about the underlying transport detail.
func sendError(err error) *TransportError {
	return &TransportError{Op: "send", Err: fmt.Errorf("%w: %w", ErrTransportSend, err)}
}
