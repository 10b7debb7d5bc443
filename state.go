// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

package yx5300

import (
	"github.com/mahda-embedded/go-yx5300/internal/syncutil"
)

// CommandRecord is the bookkeeping for the last command handed to the
// transport.
type CommandRecord struct {
	Data   uint16
	Opcode byte
	Sent   bool
}

// State is a point-in-time snapshot of the driver's device status cache.
// Status fields are mutated only by response parsing; the last-command
// fields only by successful command handoff.
type State struct {
	LastCommand   CommandRecord
	LastResponse  Response
	Track         uint16
	Volume        uint8
	Status        PlaybackStatus
	MediaInserted bool
	// AwaitingResponse is true between a successful command handoff and
	// the next complete response frame. It distinguishes "no response
	// yet" from a response whose code or data happens to be zero.
	AwaitingResponse bool
}

// deviceState holds the mutable status cache. The lock makes Feed safe to
// call from a receive context (Rx pump goroutine, event callback) while
// commands are issued from another goroutine; single-context use pays one
// uncontended lock per operation.
type deviceState struct {
	mu            syncutil.RWMutex
	lastCommand   CommandRecord
	lastResponse  Response
	track         uint16
	volume        uint8
	status        PlaybackStatus
	mediaInserted bool
	awaiting      bool
}

// recordCommand notes a command whose frame was accepted by the transport
// and clears the last-response fields: nothing has been observed yet for
// this command.
func (s *deviceState) recordCommand(opcode byte, data uint16) {
	s.mu.Lock()
	s.lastCommand = CommandRecord{Opcode: opcode, Data: data, Sent: true}
	s.lastResponse = Response{}
	s.awaiting = true
	s.mu.Unlock()
}

// recordResponse stores the decoded response and, when the code is
// recognized, applies its status effect. Unrecognized codes still update
// the last-response fields for diagnostic visibility but touch nothing
// else. Returns whether the code was recognized.
func (s *deviceState) recordResponse(r Response) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastResponse = r
	s.awaiting = false

	switch r.Code {
	case respMediaInserted:
		s.mediaInserted = true
	case respPlayCompleted:
		s.track = 0
	case respError, respAck:
		// Recognized, no status effect.
	case respStatus:
		s.status = PlaybackStatus(r.Data)
		if s.status == StatusStopped {
			s.track = 0
		}
	case respVolume:
		s.volume = uint8(r.Data)
	case respTotalTracks:
		s.track = r.Data
	case respTrack, respFolderFiles, respFolderCount:
		// Decoded but reserved: no status field is defined for these yet.
	default:
		return false
	}
	return true
}

// snapshot returns a copy of the current state.
func (s *deviceState) snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Volume:           s.volume,
		Track:            s.track,
		Status:           s.status,
		MediaInserted:    s.mediaInserted,
		LastCommand:      s.lastCommand,
		LastResponse:     s.lastResponse,
		AwaitingResponse: s.awaiting,
	}
}

// reset clears the cache back to its initial zero state.
func (s *deviceState) reset() {
	s.mu.Lock()
	s.lastCommand = CommandRecord{}
	s.lastResponse = Response{}
	s.track = 0
	s.volume = 0
	s.status = StatusStopped
	s.mediaInserted = false
	s.awaiting = false
	s.mu.Unlock()
}
