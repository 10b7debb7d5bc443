// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

package frame

import (
	"testing"
)

func TestBuildLayout(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cmd      byte
		dataHigh byte
		dataLow  byte
		feedback bool
	}{
		{"play_next", 0x01, 0x00, 0x00, true},
		{"set_volume", 0x06, 0x00, 0x1E, true},
		{"play_index", 0x03, 0x01, 0x2C, true},
		{"query_status", 0x42, 0x00, 0x00, true},
		{"no_feedback", 0x0D, 0x00, 0x00, false},
		{"max_values", 0xFF, 0xFF, 0xFF, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := Build(tt.cmd, tt.dataHigh, tt.dataLow, tt.feedback)

			if f[0] != StartByte {
				t.Errorf("start byte = 0x%02X, want 0x7E", f[0])
			}
			if f[1] != Version {
				t.Errorf("version = 0x%02X, want 0xFF", f[1])
			}
			if f[2] != LengthByte {
				t.Errorf("length = 0x%02X, want 0x06", f[2])
			}
			if f[3] != tt.cmd {
				t.Errorf("command = 0x%02X, want 0x%02X", f[3], tt.cmd)
			}
			wantFb := byte(NoFeedback)
			if tt.feedback {
				wantFb = Feedback
			}
			if f[4] != wantFb {
				t.Errorf("feedback = 0x%02X, want 0x%02X", f[4], wantFb)
			}
			if f[5] != tt.dataHigh || f[6] != tt.dataLow {
				t.Errorf("data = 0x%02X 0x%02X, want 0x%02X 0x%02X",
					f[5], f[6], tt.dataHigh, tt.dataLow)
			}
			if f[7] != EndByte {
				t.Errorf("end byte = 0x%02X, want 0xEF", f[7])
			}
		})
	}
}

func TestBuildData(t *testing.T) {
	t.Parallel()
	f := BuildData(0x03, 0x012C, true)
	if f[5] != 0x01 || f[6] != 0x2C {
		t.Errorf("data bytes = 0x%02X 0x%02X, want 0x01 0x2C", f[5], f[6])
	}
}

func TestSplitJoinData(t *testing.T) {
	t.Parallel()
	tests := []struct {
		value uint16
		high  byte
		low   byte
	}{
		{0x0000, 0x00, 0x00},
		{0x001E, 0x00, 0x1E},
		{0x0100, 0x01, 0x00},
		{0xABCD, 0xAB, 0xCD},
		{0xFFFF, 0xFF, 0xFF},
	}

	for _, tt := range tests {
		tt := tt
		high, low := SplitData(tt.value)
		if high != tt.high || low != tt.low {
			t.Errorf("SplitData(0x%04X) = 0x%02X 0x%02X, want 0x%02X 0x%02X",
				tt.value, high, low, tt.high, tt.low)
		}
		if got := JoinData(tt.high, tt.low); got != tt.value {
			t.Errorf("JoinData(0x%02X, 0x%02X) = 0x%04X, want 0x%04X",
				tt.high, tt.low, got, tt.value)
		}
	}
}
