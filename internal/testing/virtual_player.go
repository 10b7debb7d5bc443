// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

// Package testing provides test utilities including a wire-level YX5300
// simulator.
//
// The VirtualYX5300 type implements io.ReadWriter and simulates the MP3
// module at the frame protocol level: commands written to it are decoded
// and executed against a small playback model, and the bytes of any
// resulting response frames are made available through Read.
package testing

import (
	"bytes"
	"sync"
)

// Wire format constants, duplicated here rather than imported so the
// simulator stays an independent check on the production codec.
const (
	startByte   = 0x7E
	versionByte = 0xFF
	lengthByte  = 0x06
	endByte     = 0xEF

	commandSize  = 8
	responseSize = 10
)

// Command opcodes understood by the simulator
const (
	cmdNext             = 0x01
	cmdPrev             = 0x02
	cmdPlayIndex        = 0x03
	cmdVolumeUp         = 0x04
	cmdVolumeDown       = 0x05
	cmdVolumeSet        = 0x06
	cmdSelectDevice     = 0x09
	cmdSleep            = 0x0A
	cmdWake             = 0x0B
	cmdReset            = 0x0C
	cmdPlay             = 0x0D
	cmdPause            = 0x0E
	cmdPlayFolderFile   = 0x0F
	cmdStop             = 0x16
	cmdQueryStatus      = 0x42
	cmdQueryVolume      = 0x43
	cmdQueryTotalTracks = 0x48
	cmdQueryTrack       = 0x4C
	cmdQueryFolderFiles = 0x4E
	cmdQueryFolderCount = 0x4F
)

// Response codes emitted by the simulator
const (
	respMediaInserted = 0x3A
	respPlayCompleted = 0x3D
	respAck           = 0x41
	respStatus        = 0x42
	respVolume        = 0x43
	respTotalTracks   = 0x48
	respTrack         = 0x4C
	respFolderFiles   = 0x4E
	respFolderCount   = 0x4F
)

// Playback states in the status response
const (
	statusStopped = 0x00
	statusPlaying = 0x01
	statusPaused  = 0x02
)

const maxVolume = 30

// VirtualYX5300 simulates a YX5300 module behind a serial line.
type VirtualYX5300 struct {
	out         bytes.Buffer
	rx          []byte
	mu          sync.Mutex
	volume      uint8
	track       uint16
	totalTracks uint16
	folderFiles map[byte]uint16
	folders     uint16
	status      byte
	selected    bool
	sleeping    bool
}

// NewVirtualYX5300 creates a simulator with a small default medium: 12
// tracks, 3 folders, volume at the module's power-on default.
func NewVirtualYX5300() *VirtualYX5300 {
	return &VirtualYX5300{
		volume:      maxVolume,
		totalTracks: 12,
		folders:     3,
		folderFiles: map[byte]uint16{1: 4, 2: 5, 3: 3},
		status:      statusStopped,
	}
}

// SetTrackCount overrides the simulated medium's track count.
func (v *VirtualYX5300) SetTrackCount(n uint16) {
	v.mu.Lock()
	v.totalTracks = n
	v.mu.Unlock()
}

// Write accepts host-to-module bytes. Complete command frames are
// executed; partial frames are buffered until their remainder arrives.
func (v *VirtualYX5300) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.rx = append(v.rx, p...)
	for {
		start := bytes.IndexByte(v.rx, startByte)
		if start < 0 {
			v.rx = v.rx[:0]
			break
		}
		if len(v.rx)-start < commandSize {
			v.rx = v.rx[start:]
			break
		}
		if v.rx[start+commandSize-1] != endByte {
			// Not a well-formed command; skip past the start byte and
			// rescan.
			v.rx = v.rx[start+1:]
			continue
		}
		cmd := v.rx[start : start+commandSize]
		v.rx = v.rx[start+commandSize:]
		v.execute(cmd[3], cmd[4] != 0, cmd[5], cmd[6])
	}
	return len(p), nil
}

// Read pops queued module-to-host bytes. Returns 0 bytes when nothing is
// pending, like a serial read hitting its timeout.
func (v *VirtualYX5300) Read(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.out.Read(p)
}

// Pending returns how many module-to-host bytes are waiting.
func (v *VirtualYX5300) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.out.Len()
}

// InjectResponse queues an arbitrary well-formed response frame, for
// driving unsolicited notifications or unknown codes.
func (v *VirtualYX5300) InjectResponse(code byte, data uint16) {
	v.mu.Lock()
	v.queue(code, data)
	v.mu.Unlock()
}

// InjectBytes queues raw bytes, well-formed or not.
func (v *VirtualYX5300) InjectBytes(raw []byte) {
	v.mu.Lock()
	v.out.Write(raw)
	v.mu.Unlock()
}

// FinishTrack simulates the current track playing to completion.
func (v *VirtualYX5300) FinishTrack() {
	v.mu.Lock()
	finished := v.track
	v.track = 0
	v.status = statusStopped
	v.queue(respPlayCompleted, finished)
	v.mu.Unlock()
}

// queue appends a response frame to the output. Callers hold v.mu.
func (v *VirtualYX5300) queue(code byte, data uint16) {
	v.out.Write([]byte{
		startByte, versionByte, lengthByte, code, 0x00,
		byte(data >> 8), byte(data & 0xFF),
		0x00, 0x00, endByte,
	})
}

// execute runs one decoded command against the playback model. Callers
// hold v.mu.
func (v *VirtualYX5300) execute(cmd byte, feedback bool, dataHigh, dataLow byte) {
	data := uint16(dataHigh)<<8 | uint16(dataLow)

	switch cmd {
	case cmdNext:
		if v.track < v.totalTracks {
			v.track++
		} else {
			v.track = 1
		}
		v.status = statusPlaying
	case cmdPrev:
		if v.track > 1 {
			v.track--
		} else {
			v.track = v.totalTracks
		}
		v.status = statusPlaying
	case cmdPlayIndex:
		v.track = data
		v.status = statusPlaying
	case cmdVolumeUp:
		if v.volume < maxVolume {
			v.volume++
		}
	case cmdVolumeDown:
		if v.volume > 0 {
			v.volume--
		}
	case cmdVolumeSet:
		if data > maxVolume {
			data = maxVolume
		}
		v.volume = uint8(data)
	case cmdSelectDevice:
		v.selected = true
		// The module announces the medium once it has been scanned.
		v.queue(respMediaInserted, data)
		return
	case cmdSleep:
		v.sleeping = true
	case cmdWake:
		v.sleeping = false
	case cmdReset:
		v.resetModel()
	case cmdPlay:
		v.status = statusPlaying
	case cmdPause:
		v.status = statusPaused
	case cmdPlayFolderFile:
		v.track = uint16(dataLow)
		v.status = statusPlaying
	case cmdStop:
		v.status = statusStopped
		v.track = 0
	case cmdQueryStatus:
		v.queue(respStatus, uint16(v.status))
		return
	case cmdQueryVolume:
		v.queue(respVolume, uint16(v.volume))
		return
	case cmdQueryTotalTracks:
		v.queue(respTotalTracks, v.totalTracks)
		return
	case cmdQueryTrack:
		v.queue(respTrack, v.track)
		return
	case cmdQueryFolderFiles:
		v.queue(respFolderFiles, v.folderFiles[dataLow])
		return
	case cmdQueryFolderCount:
		v.queue(respFolderCount, v.folders)
		return
	default:
		// Unknown commands are silently ignored, like the real module.
		return
	}

	if feedback {
		v.queue(respAck, 0)
	}
}

// resetModel returns the playback model to power-on state. Callers hold
// v.mu.
func (v *VirtualYX5300) resetModel() {
	v.volume = maxVolume
	v.track = 0
	v.status = statusStopped
	v.selected = false
	v.sleeping = false
}

// ResponseFrame builds a well-formed 10-byte response frame. Test helper
// for feeding drivers directly without a simulator instance.
func ResponseFrame(code byte, data uint16) []byte {
	return []byte{
		startByte, versionByte, lengthByte, code, 0x00,
		byte(data >> 8), byte(data & 0xFF),
		0x00, 0x00, endByte,
	}
}
