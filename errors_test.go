// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

package yx5300

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportErrorFormatting(t *testing.T) {
	t.Parallel()
	base := errors.New("write: broken pipe")

	withPort := NewTransportError("send", "/dev/ttyUSB0", base)
	assert.Equal(t, "send /dev/ttyUSB0: write: broken pipe", withPort.Error())

	withoutPort := NewTransportError("send", "", base)
	assert.Equal(t, "send: write: broken pipe", withoutPort.Error())
}

func TestTransportErrorUnwrap(t *testing.T) {
	t.Parallel()
	base := errors.New("timeout")
	err := NewTransportError("init", "/dev/ttyAMA0", base)

	require.ErrorIs(t, err, base)

	var te *TransportError
	require.ErrorAs(t, error(err), &te)
	assert.Equal(t, "init", te.Op)
	assert.Equal(t, "/dev/ttyAMA0", te.Port)
}

func TestSendErrorSentinel(t *testing.T) {
	t.Parallel()
	base := errors.New("device gone")
	err := sendError(base)

	require.ErrorIs(t, err, ErrTransportSend)
	require.ErrorIs(t, err, base)

	var te *TransportError
	assert.ErrorAs(t, error(err), &te)
}
