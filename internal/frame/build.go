// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

package frame

// Build encodes a command frame for the YX5300.
//
// Layout: 7E FF 06 <cmd> <feedback> <dataHigh> <dataLow> EF
//
// Any opcode and any data value are structurally valid; range checks such
// as the 0-30 volume limit belong to the caller.
func Build(cmd, dataHigh, dataLow byte, feedback bool) [CommandSize]byte {
	fb := byte(NoFeedback)
	if feedback {
		fb = Feedback
	}

	return [CommandSize]byte{
		posStart:    StartByte,
		posVersion:  Version,
		posLength:   LengthByte,
		posCode:     cmd,
		posFeedback: fb,
		posDataHigh: dataHigh,
		posDataLow:  dataLow,
		7:           EndByte,
	}
}

// BuildData encodes a command frame carrying a 16-bit data value split
// across the high and low data bytes.
func BuildData(cmd byte, data uint16, feedback bool) [CommandSize]byte {
	return Build(cmd, byte(data>>8), byte(data&0xFF), feedback)
}

// SplitData splits a 16-bit value into the high and low frame data bytes.
func SplitData(data uint16) (high, low byte) {
	return byte(data >> 8), byte(data & 0xFF)
}

// JoinData combines the high and low frame data bytes into a 16-bit value.
func JoinData(high, low byte) uint16 {
	return uint16(high)<<8 | uint16(low)
}
