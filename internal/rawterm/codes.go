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

// Package rawterm holds the OS-facing half of nrl: UTF-8 and color
// primitives, the epoll/signalfd event sources, raw-mode terminal settings,
// and the byte sequences used to render frames and position the cursor.
package rawterm

// ESC is the byte that introduces every escape sequence this package
// builds or the decoder recognizes.
const ESC = 27

// CSI is the two-byte control sequence introducer.
const CSI = "\x1b["

// Cursor positioning, relative to the edit's initial_row/initial_col.
//
// CursorTo emits an absolute cursor move (1-based row/col, ESC[row;colH).
func CursorTo(row, col int) []byte {
	return appendCursorTo(nil, row, col)
}

func appendCursorTo(b []byte, row, col int) []byte {
	b = append(b, CSI...)
	b = appendInt(b, row)
	b = append(b, ';')
	b = appendInt(b, col)
	b = append(b, 'H')
	return b
}

func appendInt(b []byte, n int) []byte {
	if n == 0 {
		return append(b, '0')
	}
	if n < 0 {
		b = append(b, '-')
		n = -n
	}
	var tmp [20]byte
	i := len(tmp)
	for n > 0 {
		i--
		tmp[i] = byte('0' + n%10)
		n /= 10
	}
	return append(b, tmp[i:]...)
}

// ClearToEOL emits ESC[K.
var ClearToEOL = []byte(CSI + "K")

// InsertLine emits ESC[1L.
var InsertLine = []byte(CSI + "1L")

// ScrollUp emits ESC[S.
var ScrollUp = []byte(CSI + "S")

// SGRReset emits ESC[m.
var SGRReset = []byte(CSI + "m")

// DSRCursorPosition requests the current cursor position (ESC[6n); the
// terminal replies with ESC[<row>;<col>R.
var DSRCursorPosition = []byte(CSI + "6n")

// OSC133 markers for semantic prompt regions.
const (
	osc133Prefix = "\x1b]133;"
	bel          = "\x07"
)

func OSC133(marker byte) []byte {
	return []byte(osc133Prefix + string(marker) + bel)
}
