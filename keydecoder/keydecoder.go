// Package keydecoder turns raw terminal bytes into nrl.Key values: the
// external collaborator nrl.Session consumes through the nrl.Decoder
// interface. It recognizes plain UTF-8 codepoints, C0 control characters
// as Ctrl+letter, DEL/CR/LF as the symbolic Backspace/Enter keys, and the
// ESC [ ... and ESC O ... sequences common ANSI terminals send for the
// arrow/Home/End/Insert/Delete keys and Alt+<char>.
package keydecoder

import (
	"time"
	"unicode/utf8"

	"golang.org/x/sys/unix"

	"github.com/drepper/nrl"
	"github.com/drepper/nrl/internal/rawterm"
)

// Decoder buffers fed bytes and decodes them incrementally; a partial
// escape sequence simply waits for the next Feed.
type Decoder struct {
	buf []byte
	fd  int // -1 unless constructed with NewWithFD; only used by PullTimeout
}

// New creates a push-only Decoder suitable for Session's epoll-driven
// loop, which only ever calls Feed and TryNext.
func New() *Decoder {
	return &Decoder{fd: -1}
}

// NewWithFD creates a Decoder whose PullTimeout can itself poll and read
// fd to resolve an ambiguous pending sequence (most commonly a lone ESC
// that might be the start of a CSI sequence). Session's own loop never
// calls PullTimeout; this is for a host driving the decoder outside it.
func NewWithFD(fd int) *Decoder {
	return &Decoder{fd: fd}
}

func (d *Decoder) Feed(b []byte) {
	d.buf = append(d.buf, b...)
}

func (d *Decoder) TryNext() (nrl.Key, bool) {
	for {
		k, n, produced := decode(d.buf)
		if n == 0 {
			return nrl.Key{}, false
		}
		d.buf = d.buf[n:]
		if produced {
			return k, true
		}
	}
}

func (d *Decoder) PullTimeout(timeout time.Duration) (nrl.Key, bool) {
	if k, ok := d.TryNext(); ok {
		return k, true
	}
	if d.fd < 0 {
		return nrl.Key{}, false
	}

	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nrl.Key{}, false
		}
		fds := []unix.PollFd{{Fd: int32(d.fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, int(remaining/time.Millisecond)+1)
		if err != nil || n == 0 {
			return nrl.Key{}, false
		}
		var buf [64]byte
		rn, err := unix.Read(d.fd, buf[:])
		if err != nil || rn <= 0 {
			return nrl.Key{}, false
		}
		d.Feed(buf[:rn])
		if k, ok := d.TryNext(); ok {
			return k, true
		}
	}
}

// decode attempts to produce one Key from the front of buf. n is how many
// bytes were consumed (0 means "wait for more bytes", the sequence so
// far is an incomplete prefix); produced is false when bytes were
// consumed but they didn't resolve to a Key worth surfacing (a stray
// continuation byte, an unrecognized or defensively-dropped sequence).
func decode(buf []byte) (key nrl.Key, n int, produced bool) {
	if len(buf) == 0 {
		return nrl.Key{}, 0, false
	}
	b0 := buf[0]

	switch {
	case b0 == 0x1b:
		return decodeEscape(buf)
	case b0 == 0x7f:
		return nrl.Key{Symbolic: true, Symbol: nrl.SymBackspace}, 1, true
	case b0 == '\r' || b0 == '\n':
		return nrl.Key{Symbolic: true, Symbol: nrl.SymEnter}, 1, true
	case b0 < 0x20:
		return nrl.Key{Rune: rune(b0 + 'a' - 1), Mods: nrl.ModCtrl}, 1, true
	case b0&0xC0 == 0x80:
		return nrl.Key{}, 1, false
	default:
		size := rawterm.StepLen(b0)
		if len(buf) < size {
			return nrl.Key{}, 0, false
		}
		r, _ := utf8.DecodeRune(buf[:size])
		return nrl.Key{Rune: r}, size, true
	}
}

func decodeEscape(buf []byte) (nrl.Key, int, bool) {
	if len(buf) < 2 {
		return nrl.Key{}, 0, false
	}

	switch buf[1] {
	case '[':
		return decodeCSI(buf)
	case 'O':
		if len(buf) < 3 {
			return nrl.Key{}, 0, false
		}
		switch buf[2] {
		case 'H':
			return nrl.Key{Symbolic: true, Symbol: nrl.SymHome}, 3, true
		case 'F':
			return nrl.Key{Symbolic: true, Symbol: nrl.SymEnd}, 3, true
		}
		return nrl.Key{}, 3, false
	default:
		size := rawterm.StepLen(buf[1])
		if len(buf) < 1+size {
			return nrl.Key{}, 0, false
		}
		r, _ := utf8.DecodeRune(buf[1 : 1+size])
		return nrl.Key{Rune: r, Mods: nrl.ModAlt}, 1 + size, true
	}
}

func decodeCSI(buf []byte) (nrl.Key, int, bool) {
	if len(buf) < 3 {
		return nrl.Key{}, 0, false
	}

	b2 := buf[2]
	if b2 >= '0' && b2 <= '9' {
		i := 2
		for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
			i++
		}
		if i >= len(buf) {
			return nrl.Key{}, 0, false
		}
		if buf[i] != '~' {
			return nrl.Key{}, i + 1, false
		}
		switch string(buf[2:i]) {
		case "2":
			return nrl.Key{Symbolic: true, Symbol: nrl.SymInsert}, i + 1, true
		case "3":
			return nrl.Key{Symbolic: true, Symbol: nrl.SymDelete}, i + 1, true
		default:
			return nrl.Key{}, i + 1, false
		}
	}

	switch b2 {
	case 'A':
		return nrl.Key{Symbolic: true, Symbol: nrl.SymUp}, 3, true
	case 'B':
		return nrl.Key{Symbolic: true, Symbol: nrl.SymDown}, 3, true
	case 'C':
		return nrl.Key{Symbolic: true, Symbol: nrl.SymRight}, 3, true
	case 'D':
		return nrl.Key{Symbolic: true, Symbol: nrl.SymLeft}, 3, true
	case 'H':
		return nrl.Key{Symbolic: true, Symbol: nrl.SymHome}, 3, true
	case 'F':
		return nrl.Key{Symbolic: true, Symbol: nrl.SymEnd}, 3, true
	}
	return nrl.Key{}, 3, false
}
