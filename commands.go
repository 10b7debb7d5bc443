// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

package yx5300

// Command opcodes for the YX5300 MP3 module. The numeric space is distinct
// from the response codes in responses.go.
const (
	cmdNext             = 0x01
	cmdPrev             = 0x02
	cmdPlayIndex        = 0x03
	cmdVolumeUp         = 0x04
	cmdVolumeDown       = 0x05
	cmdVolumeSet        = 0x06
	cmdSingleCycle      = 0x08
	cmdSelectDevice     = 0x09
	cmdSleep            = 0x0A
	cmdWake             = 0x0B
	cmdReset            = 0x0C
	cmdPlay             = 0x0D
	cmdPause            = 0x0E
	cmdPlayFolderFile   = 0x0F
	cmdStop             = 0x16
	cmdPlayFolderCycle  = 0x17
	cmdSetSingleCycle   = 0x19
	cmdSetDAC           = 0x1A
	cmdPlayWithVolume   = 0x22
	cmdQueryStatus      = 0x42
	cmdQueryVolume      = 0x43
	cmdQueryTotalTracks = 0x48
	cmdQueryTrack       = 0x4C
	cmdQueryFolderFiles = 0x4E
	cmdQueryFolderCount = 0x4F
)

// Storage media selectable with the select-device command.
const (
	// DeviceTFCard selects the TF/microSD card slot. It is the only
	// medium populated on the common Catalex boards and the one selected
	// during Init.
	DeviceTFCard byte = 0x02
)

// MaxVolume is the highest volume level the module accepts. SetVolume
// clamps to it.
const MaxVolume = 30
