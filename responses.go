// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

package yx5300

import "fmt"

// Response codes emitted by the module. These live in a numeric space
// distinct from the command opcodes, although the query responses reuse
// the value of the query that solicited them.
const (
	respMediaInserted = 0x3A
	respPlayCompleted = 0x3D
	respError         = 0x40
	respAck           = 0x41
	respStatus        = 0x42
	respVolume        = 0x43
	respTotalTracks   = 0x48
	respTrack         = 0x4C
	respFolderFiles   = 0x4E
	respFolderCount   = 0x4F
)

// Response is a decoded response frame: a one-byte code and the 16-bit
// data value carried in the frame's data bytes.
type Response struct {
	Code byte
	Data uint16
}

// responseMeanings maps known response codes to short descriptions.
var responseMeanings = map[byte]string{
	respMediaInserted: "media inserted",
	respPlayCompleted: "play completed",
	respError:         "device error",
	respAck:           "ack",
	respStatus:        "status report",
	respVolume:        "volume report",
	respTotalTracks:   "track count report",
	respTrack:         "track report",
	respFolderFiles:   "folder track count report",
	respFolderCount:   "folder count report",
}

// Recognized reports whether the response code belongs to the known set.
func (r Response) Recognized() bool {
	_, ok := responseMeanings[r.Code]
	return ok
}

func (r Response) String() string {
	meaning, ok := responseMeanings[r.Code]
	if !ok {
		meaning = "unknown"
	}
	return fmt.Sprintf("0x%02X (%s) data=0x%04X", r.Code, meaning, r.Data)
}

// PlaybackStatus is the module's playback state as reported by a status
// response.
type PlaybackStatus byte

// Playback states
const (
	StatusStopped PlaybackStatus = 0x00
	StatusPlaying PlaybackStatus = 0x01
	StatusPaused  PlaybackStatus = 0x02
)

func (s PlaybackStatus) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	default:
		return fmt.Sprintf("unknown(0x%02X)", byte(s))
	}
}
