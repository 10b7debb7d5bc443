// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

package frame

import "errors"

// Extraction errors
var (
	// ErrTruncated indicates the end marker arrived before the response
	// code and data bytes did.
	ErrTruncated = errors.New("frame truncated")
	// ErrBadMarker indicates the buffer does not begin with the start byte.
	ErrBadMarker = errors.New("frame missing start marker")
)

// ExtractResponse pulls the response code and 16-bit data value out of an
// accumulated response buffer. buf holds the bytes collected between (and
// including) the start and end markers; it may be shorter than a full
// response when the device truncated a frame.
//
// The layout mirrors the outbound frame: code at index 3, big-endian data
// at indices 5 and 6. The two reserved bytes and the end marker are not
// inspected beyond framing.
func ExtractResponse(buf []byte) (code byte, data uint16, err error) {
	if len(buf) == 0 || buf[posStart] != StartByte {
		return 0, 0, ErrBadMarker
	}
	// Need everything up to and including the low data byte.
	if len(buf) <= posDataLow {
		return 0, 0, ErrTruncated
	}

	code = buf[posCode]
	data = JoinData(buf[posDataHigh], buf[posDataLow])
	return code, data, nil
}
