// Copyright 2013 Google, Inc.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package termios implements low-level terminal settings: raw mode and
// window-size queries, the same responsibilities the teacher's
// termios package carried, now built on golang.org/x/sys/unix ioctls
// instead of cgo.
package termios

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// State contains both the original settings captured at Get time and the
// current settings being manipulated. Reset restores the terminal to its
// original state at any time.
type State struct {
	fd       int
	original unix.Termios
	current  unix.Termios
}

// Get examines the current terminal settings on fd and stores them in a
// fresh State.
func Get(fd int) (*State, error) {
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("termios: tcgetattr: %w", err)
	}
	return &State{fd: fd, original: *t, current: *t}, nil
}

// Raw puts the terminal into a minimal raw mode suitable for an interactive
// line editor: no canonical line buffering, no echo, no signal generation
// from the driver, 8-bit clean. This is the direct translation of the
// standard cfmakeraw() flag set, since cgo is not used here.
//
// The changes are applied immediately. Call Reset (typically deferred) to
// revert them.
func (s *State) Raw() error {
	s.current.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	s.current.Oflag &^= unix.OPOST
	s.current.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	s.current.Cflag &^= unix.CSIZE | unix.PARENB
	s.current.Cflag |= unix.CS8
	s.current.Cc[unix.VMIN] = 1
	s.current.Cc[unix.VTIME] = 0
	return s.Apply()
}

// Reset restores the settings captured when Get was called.
func (s *State) Reset() error {
	s.current = s.original
	return s.Apply()
}

// Apply writes the current settings stored in s back to the terminal.
func (s *State) Apply() error {
	if err := unix.IoctlSetTermios(s.fd, ioctlSetTermios, &s.current); err != nil {
		return fmt.Errorf("termios: tcsetattr: %w", err)
	}
	return nil
}

// SetNonblock flips the O_NONBLOCK flag on the terminal fd. The session's
// lifecycle needs this both ways: non-blocking once the epoll loop owns
// reads, and briefly blocking again while synchronously waiting for a
// DSR cursor-position reply during Prepare.
func SetNonblock(fd int, nonblocking bool) error {
	return unix.SetNonblock(fd, nonblocking)
}

// Size returns the terminal's current column and row count via
// TIOCGWINSZ, falling back to 80x25 if the ioctl fails (e.g. fd is not a
// terminal).
func Size(fd int) (cols, rows int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 25
	}
	return int(ws.Col), int(ws.Row)
}
