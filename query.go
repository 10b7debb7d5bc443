// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

package yx5300

import (
	"context"
	"fmt"
)

// The protocol has no built-in response timeout: a query whose answer is
// lost simply never updates the state. These helpers package the
// caller-side wait policy: subscribe to frame completions, send the
// query, then wait for the matching response code or ctx expiry.
//
// One waiter at a time: concurrent Query* calls on the same Device are
// not supported, matching the single-outstanding-command discipline the
// transport's blocking Send already imposes.

// subscribe installs a completion channel fed by Feed. Buffered so that
// notify never blocks the receive context.
func (d *Device) subscribe() chan Response {
	ch := make(chan Response, 8)
	d.waiterMu.Lock()
	d.waiter = ch
	d.waiterMu.Unlock()
	return ch
}

// unsubscribe removes the completion channel if it is still installed.
func (d *Device) unsubscribe(ch chan Response) {
	d.waiterMu.Lock()
	if d.waiter == ch {
		d.waiter = nil
	}
	d.waiterMu.Unlock()
}

// notify hands a completed response to the subscribed waiter, if any.
// Non-blocking: if the waiter's buffer is full the response is dropped
// for waiting purposes (it is still in the state cache).
func (d *Device) notify(r Response) {
	d.waiterMu.Lock()
	if d.waiter != nil {
		select {
		case d.waiter <- r:
		default:
		}
	}
	d.waiterMu.Unlock()
}

// query sends a command and waits for a response with the wanted code.
// Other recognized frames arriving in between (media notifications, stray
// acks) are skipped, not treated as answers.
func (d *Device) query(ctx context.Context, opcode byte, data uint16, wantCode byte) (Response, error) {
	ch := d.subscribe()
	defer d.unsubscribe(ch)

	if err := d.sendCommand(opcode, data); err != nil {
		return Response{}, err
	}

	for {
		select {
		case r := <-ch:
			if r.Code == wantCode {
				return r, nil
			}
		case <-ctx.Done():
			return Response{}, fmt.Errorf("query 0x%02X: %w", opcode, ctx.Err())
		}
	}
}

// QueryStatus requests and waits for the playback status.
func (d *Device) QueryStatus(ctx context.Context) (PlaybackStatus, error) {
	r, err := d.query(ctx, cmdQueryStatus, 0, respStatus)
	if err != nil {
		return StatusStopped, err
	}
	return PlaybackStatus(r.Data), nil
}

// QueryVolume requests and waits for the current volume level.
func (d *Device) QueryVolume(ctx context.Context) (uint8, error) {
	r, err := d.query(ctx, cmdQueryVolume, 0, respVolume)
	if err != nil {
		return 0, err
	}
	return uint8(r.Data), nil
}

// QueryTrackCount requests and waits for the total track count.
func (d *Device) QueryTrackCount(ctx context.Context) (uint16, error) {
	r, err := d.query(ctx, cmdQueryTotalTracks, 0, respTotalTracks)
	if err != nil {
		return 0, err
	}
	return r.Data, nil
}

// QueryTrack requests and waits for the currently playing track number.
// The answer is returned but, matching the reference driver, recorded
// only in the last-response bookkeeping, not in a status field.
func (d *Device) QueryTrack(ctx context.Context) (uint16, error) {
	r, err := d.query(ctx, cmdQueryTrack, 0, respTrack)
	if err != nil {
		return 0, err
	}
	return r.Data, nil
}

// QueryFolderFiles requests and waits for the file count of a folder.
func (d *Device) QueryFolderFiles(ctx context.Context, folder byte) (uint16, error) {
	r, err := d.query(ctx, cmdQueryFolderFiles, uint16(folder), respFolderFiles)
	if err != nil {
		return 0, err
	}
	return r.Data, nil
}

// QueryFolderCount requests and waits for the folder count.
func (d *Device) QueryFolderCount(ctx context.Context) (uint16, error) {
	r, err := d.query(ctx, cmdQueryFolderCount, 0, respFolderCount)
	if err != nil {
		return 0, err
	}
	return r.Data, nil
}
