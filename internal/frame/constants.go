// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

// Package frame implements the YX5300 wire format: fixed-length command
// and response frames delimited by start and end marker bytes.
package frame

// Frame markers and control bytes
const (
	// StartByte opens every command and response frame.
	StartByte = 0x7E
	// Version is a fixed protocol version byte, always 0xFF.
	Version = 0xFF
	// EndByte closes every command and response frame.
	EndByte = 0xEF

	// LengthByte is the fixed value of the length field. It counts the
	// version, length, command, feedback and two data bytes.
	LengthByte = 0x06
)

// Feedback flag values for the outbound frame
const (
	// NoFeedback asks the module not to acknowledge the command.
	NoFeedback = 0x00
	// Feedback asks the module to emit a response frame for the command.
	Feedback = 0x01
)

// Frame sizes
const (
	// CommandSize is the length of an outbound command frame.
	CommandSize = 8
	// ResponseSize is the length of an inbound response frame. Responses
	// carry two reserved bytes between the data and the end marker.
	ResponseSize = 10
)

// Byte positions shared by command and response frames. The inbound layout
// mirrors the outbound one up to the data bytes.
const (
	posStart    = 0
	posVersion  = 1
	posLength   = 2
	posCode     = 3
	posFeedback = 4
	posDataHigh = 5
	posDataLow  = 6
)
