// go-yx5300
// Copyright (c) 2026 Mahda Embedded System Contributors.
// SPDX-License-Identifier: MIT

// Command player is an interactive shell for driving a YX5300 MP3
// module over a serial port.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"
	yx5300 "github.com/mahda-embedded/go-yx5300"
	"github.com/mahda-embedded/go-yx5300/detection"
	"github.com/mahda-embedded/go-yx5300/transport/uart"
)

const queryTimeout = 2 * time.Second

// Package-level flag variables
var (
	flagDevicePath string
	flagDebug      bool
)

func init() {
	flag.StringVar(&flagDevicePath, "device", "", "Serial port path (auto-detect if empty)")
	flag.BoolVar(&flagDebug, "debug", false, "Enable debug output")
}

func main() {
	flag.Parse()

	if flagDebug {
		yx5300.SetDebugEnabled(true)
	}

	path := flagDevicePath
	if path == "" {
		detected, err := autoDetect()
		if err != nil {
			fmt.Fprintf(os.Stderr, "auto-detection failed: %v\n", err)
			fmt.Fprintln(os.Stderr, "specify a port with -device")
			os.Exit(1)
		}
		path = detected
	}

	tr, err := uart.New(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open %s: %v\n", path, err)
		os.Exit(1)
	}

	dev, err := yx5300.New(tr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create device: %v\n", err)
		os.Exit(1)
	}
	tr.SetReceiver(func(b byte) { dev.Feed(b) })

	fmt.Printf("Initializing YX5300 on %s...\n", path)
	if err := dev.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer dev.DeInit()

	shell := newShell(dev, path)
	if args := flag.Args(); len(args) > 0 {
		if err := shell.Process(args...); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	shell.Run()
}

// autoDetect probes serial ports for a responding module and returns
// the first hit.
func autoDetect() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := detection.DefaultOptions()
	devices, err := detection.Detect(ctx, &opts)
	if err != nil {
		return "", err
	}
	fmt.Printf("Found %s", devices[0])
	if name := detection.AdapterName(devices[0].VIDPID); name != "" {
		fmt.Printf(" via %s adapter", name)
	}
	fmt.Println()
	return devices[0].Path, nil
}

func newShell(dev *yx5300.Device, path string) *ishell.Shell {
	shell := ishell.New()
	shell.SetPrompt(fmt.Sprintf("%s > ", path))
	shell.Println("YX5300 player shell. Type 'help' for commands.")

	for _, cmd := range playerCommands(dev) {
		shell.AddCmd(cmd)
	}
	return shell
}

// parseUint parses an argument into the range a command field accepts.
func parseUint(arg string, max uint64) (uint16, error) {
	v, err := strconv.ParseUint(arg, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", arg)
	}
	if v > max {
		return 0, fmt.Errorf("value %d out of range (max %d)", v, max)
	}
	return uint16(v), nil
}

//nolint:funlen // Flat command table, one entry per shell verb
func playerCommands(dev *yx5300.Device) []*ishell.Cmd {
	return []*ishell.Cmd{
		{
			Name: "play",
			Help: "[TRACK] resume playback, or play track by index",
			Func: func(c *ishell.Context) {
				if len(c.Args) == 0 {
					reportErr(c, dev.Play())
					return
				}
				track, err := parseUint(c.Args[0], 0xFFFF)
				if err != nil {
					c.Err(err)
					return
				}
				reportErr(c, dev.PlayTrack(track))
			},
		},
		{
			Name: "pause",
			Help: "pause playback",
			Func: func(c *ishell.Context) { reportErr(c, dev.Pause()) },
		},
		{
			Name: "stop",
			Help: "stop playback",
			Func: func(c *ishell.Context) { reportErr(c, dev.Stop()) },
		},
		{
			Name:    "next",
			Aliases: []string{"n"},
			Help:    "skip to the next track",
			Func:    func(c *ishell.Context) { reportErr(c, dev.Next()) },
		},
		{
			Name:    "prev",
			Aliases: []string{"p"},
			Help:    "skip to the previous track",
			Func:    func(c *ishell.Context) { reportErr(c, dev.Previous()) },
		},
		{
			Name: "vol",
			Help: "[LEVEL|up|down] set or step volume (0-30), or query it",
			Func: func(c *ishell.Context) {
				if len(c.Args) == 0 {
					ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
					defer cancel()
					v, err := dev.QueryVolume(ctx)
					if err != nil {
						c.Err(err)
						return
					}
					c.Printf("volume: %d/%d\n", v, yx5300.MaxVolume)
					return
				}
				switch c.Args[0] {
				case "up":
					reportErr(c, dev.VolumeUp())
				case "down":
					reportErr(c, dev.VolumeDown())
				default:
					level, err := parseUint(c.Args[0], yx5300.MaxVolume)
					if err != nil {
						c.Err(err)
						return
					}
					reportErr(c, dev.SetVolume(uint8(level)))
				}
			},
		},
		{
			Name: "folder",
			Help: "FOLDER FILE play a file from a numbered folder",
			Func: func(c *ishell.Context) {
				if len(c.Args) != 2 {
					c.Err(fmt.Errorf("usage: folder FOLDER FILE"))
					return
				}
				folder, err := parseUint(c.Args[0], 0xFF)
				if err != nil {
					c.Err(err)
					return
				}
				file, err := parseUint(c.Args[1], 0xFF)
				if err != nil {
					c.Err(err)
					return
				}
				reportErr(c, dev.PlayFolderFile(uint8(folder), uint8(file)))
			},
		},
		{
			Name: "cycle",
			Help: "FOLDER play a folder on repeat",
			Func: func(c *ishell.Context) {
				if len(c.Args) != 1 {
					c.Err(fmt.Errorf("usage: cycle FOLDER"))
					return
				}
				folder, err := parseUint(c.Args[0], 0xFF)
				if err != nil {
					c.Err(err)
					return
				}
				reportErr(c, dev.PlayFolderCycle(uint8(folder)))
			},
		},
		{
			Name:    "status",
			Aliases: []string{"s"},
			Help:    "query playback status",
			Func: func(c *ishell.Context) {
				ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
				defer cancel()
				status, err := dev.QueryStatus(ctx)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(status)
			},
		},
		{
			Name: "tracks",
			Help: "query total track count on the TF card",
			Func: func(c *ishell.Context) {
				ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
				defer cancel()
				count, err := dev.QueryTrackCount(ctx)
				if err != nil {
					c.Err(err)
					return
				}
				c.Printf("%d tracks\n", count)
			},
		},
		{
			Name: "track",
			Help: "query the current track index",
			Func: func(c *ishell.Context) {
				ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
				defer cancel()
				track, err := dev.QueryTrack(ctx)
				if err != nil {
					c.Err(err)
					return
				}
				c.Printf("track %d\n", track)
			},
		},
		{
			Name: "single",
			Help: "on|off toggle single-track repeat",
			Func: func(c *ishell.Context) {
				enable, err := parseOnOff(c.Args)
				if err != nil {
					c.Err(err)
					return
				}
				reportErr(c, dev.SetSingleCycle(enable))
			},
		},
		{
			Name: "dac",
			Help: "on|off toggle the audio DAC output",
			Func: func(c *ishell.Context) {
				enable, err := parseOnOff(c.Args)
				if err != nil {
					c.Err(err)
					return
				}
				reportErr(c, dev.SetDAC(enable))
			},
		},
		{
			Name: "sleep",
			Help: "enter low-power mode",
			Func: func(c *ishell.Context) { reportErr(c, dev.Sleep()) },
		},
		{
			Name: "wake",
			Help: "leave low-power mode",
			Func: func(c *ishell.Context) { reportErr(c, dev.Wake()) },
		},
		{
			Name: "reset",
			Help: "reset the module",
			Func: func(c *ishell.Context) { reportErr(c, dev.Reset()) },
		},
	}
}

func parseOnOff(args []string) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("usage: on|off")
	}
	switch args[0] {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", args[0])
	}
}

func reportErr(c *ishell.Context, err error) {
	if err != nil {
		c.Err(err)
		return
	}
	c.Println("OK")
}
