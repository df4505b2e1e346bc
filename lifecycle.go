//go:build linux

package nrl

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/drepper/nrl/internal/rawterm"
	"github.com/drepper/nrl/internal/rawterm/termios"
)

// Prepare transitions the session from closed to open: blocks SIGWINCH,
// registers the key fd and the signalfd on epoll, puts the terminal in
// raw mode, and emits the prompt (and optional frame). It is idempotent —
// only the first call per edit has any effect.
func (s *Session) Prepare() error {
	if s.state == stateOpen {
		return nil
	}

	winch, err := rawterm.NewWinchWatcher()
	if err != nil {
		return err
	}

	poller := s.poller
	if poller == nil {
		poller, err = rawterm.NewPoller()
		if err != nil {
			winch.Close()
			return err
		}
	}

	if err := poller.Add(s.fd, unix.EPOLLIN|unix.EPOLLERR); err != nil {
		if poller.Owned() {
			poller.Close()
		}
		winch.Close()
		return err
	}
	if err := poller.Add(winch.FD(), unix.EPOLLIN); err != nil {
		poller.Remove(s.fd)
		if poller.Owned() {
			poller.Close()
		}
		winch.Close()
		return err
	}

	st, err := termios.Get(s.fd)
	if err != nil {
		poller.Remove(s.fd)
		poller.Remove(winch.FD())
		if poller.Owned() {
			poller.Close()
		}
		winch.Close()
		return fmt.Errorf("nrl: prepare: %w", err)
	}
	if err := st.Raw(); err != nil {
		poller.Remove(s.fd)
		poller.Remove(winch.FD())
		if poller.Owned() {
			poller.Close()
		}
		winch.Close()
		return fmt.Errorf("nrl: prepare: %w", err)
	}
	s.rawState = st

	if err := termios.SetNonblock(s.fd, true); err != nil {
		st.Reset()
		poller.Remove(s.fd)
		poller.Remove(winch.FD())
		if poller.Owned() {
			poller.Close()
		}
		winch.Close()
		return fmt.Errorf("nrl: prepare: %w", err)
	}

	s.poller = poller
	s.winch = winch
	s.termCols, s.termRows = termios.Size(s.fd)
	s.buffer = make([]byte, 0, s.initialBufCap)
	s.insertMode = true

	s.emitStartup()

	s.state = stateOpen
	return nil
}

// emitStartup emits, in order: an optional frame, a DSR-based
// initial-position query, the prompt, and the empty-buffer hint.
func (s *Session) emitStartup() {
	var out []byte
	if s.termInfo.SupportsOSC133 {
		out = append(out, rawterm.OSC133('L')...)
	} else {
		out = append(out, '\r')
	}

	if s.flags != FlagsNone {
		out = append(out, s.frameRowBytes(true)...)
		out = append(out, "\r\n\r\n"...)
		out = append(out, s.frameRowBytes(false)...)
		out = append(out, rawterm.CursorUpLines(1)...)
		s.curFrameLines = 1
	} else {
		s.curFrameLines = 0
	}
	s.emit(out)

	row, col := s.queryCursorPosition()
	if col != 1 {
		panic("nrl: terminal reported initial_col != 1")
	}
	s.initialRow = row
	s.initialCol = 1

	promptText := s.prompt.resolve()
	s.promptLen = rawterm.VisibleLenIgnoringCSI(promptText)

	out2 := append([]byte(nil), rawterm.OSC133('A')...)
	out2 = append(out2, promptText...)
	out2 = append(out2, rawterm.OSC133('B')...)
	out2 = append(out2, rawterm.ClearToEOL...)
	if s.flags == FlagsFrameBackground {
		out2 = append(out2, s.textAreaSGR()...)
		s.textColorActive = true
	}
	s.emit(out2)

	s.offset, s.nchars = 0, 0
	s.lineOffset = []int{0}
	s.posY = 0
	s.posX = s.promptLen
	s.requestedPosX = s.posX
	s.maxLines = 1

	if s.emptyMessage != "" {
		dimFg, _ := rawterm.Adjust(s.termInfo.DefaultForeground, s.termInfo.DefaultBackground, 48)
		out3 := append(dimFg.SGRForeground(), s.emptyMessage...)
		out3 = append(out3, rawterm.SGRReset...)
		out3 = append(out3, s.moveCursorToBytes(s.posX, s.posY)...)
		s.emit(out3)
	}
}

// queryCursorPosition emits a DSR request and synchronously parses the
// ESC[<row>;<col>R reply, toggling the key fd to blocking for the
// duration since the decoder must not see these bytes. A malformed or
// absent reply is treated as the origin, best-effort.
func (s *Session) queryCursorPosition() (row, col int) {
	termios.SetNonblock(s.fd, false)
	defer termios.SetNonblock(s.fd, true)

	s.emit(rawterm.DSRCursorPosition)

	var buf [32]byte
	n := 0
	for n < len(buf) {
		k, err := unix.Read(s.fd, buf[n:n+1])
		if err != nil || k == 0 {
			return 1, 1
		}
		n++
		if buf[n-1] == 'R' {
			break
		}
	}
	row, col = parseCPR(buf[:n])
	if row == 0 {
		return 1, 1
	}
	return row, col
}

func parseCPR(b []byte) (row, col int) {
	i := 0
	for i < len(b) && b[i] != '[' {
		i++
	}
	i++
	if i >= len(b) {
		return 0, 0
	}
	row, i = scanInt(b, i)
	if i >= len(b) || b[i] != ';' {
		return 0, 0
	}
	i++
	col, i = scanInt(b, i)
	return row, col
}

func scanInt(b []byte, i int) (n, next int) {
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		n = n*10 + int(b[i]-'0')
		i++
	}
	return n, i
}

func (s *Session) effectiveFrameHighlight() rawterm.Color {
	if s.frameHighlight != nil {
		return *s.frameHighlight
	}
	fg, _ := rawterm.Adjust(s.termInfo.DefaultForeground, s.termInfo.DefaultBackground, 16)
	return fg
}

func (s *Session) frameRowBytes(upper bool) []byte {
	switch s.flags {
	case FlagsFrameLine:
		return rawterm.LineFrameRow(s.termCols)
	case FlagsFrameBackground:
		return rawterm.BackgroundFrameRow(s.termCols, upper, s.effectiveFrameHighlight(), s.termInfo.DefaultBackground)
	default:
		return nil
	}
}

func (s *Session) textAreaSGR() []byte {
	b := append([]byte(nil), s.termInfo.DefaultForeground.SGRForeground()...)
	b = append(b, s.effectiveFrameHighlight().SGRBackground()...)
	return b
}

// finalize tears down the session on every exit path (commit, cancel, or
// error): it optionally fades the frame back to default colors, parks
// the cursor below the edit area, resets SGR if needed, deregisters
// descriptors, restores the signal mask and terminal mode, and
// transitions to closed.
func (s *Session) finalize() {
	out := s.scratchBuf()

	if s.flags == FlagsFrameBackground {
		out = append(out, s.moveCursorToBytes(0, -1)...)
		out = append(out, rawterm.BackgroundFrameRow(s.termCols, true, s.termInfo.DefaultForeground, s.termInfo.DefaultBackground)...)
		out = append(out, s.moveCursorToBytes(0, len(s.lineOffset))...)
		out = append(out, rawterm.BackgroundFrameRow(s.termCols, false, s.termInfo.DefaultForeground, s.termInfo.DefaultBackground)...)
	}

	lastRow := len(s.lineOffset) - 1
	out = append(out, s.moveCursorToBytes(s.termCols-1, lastRow+s.curFrameLines)...)
	out = append(out, '\n')

	if s.textColorActive {
		out = append(out, rawterm.SGRReset...)
		s.textColorActive = false
	}
	out = append(out, rawterm.OSC133('C')...)

	s.scratch = out
	s.emit(out)

	if s.poller != nil {
		s.poller.Remove(s.fd)
		if s.winch != nil {
			s.poller.Remove(s.winch.FD())
		}
		if s.poller.Owned() {
			s.poller.Close()
		}
	}
	if s.winch != nil {
		s.winch.Close()
		s.winch = nil
	}
	if s.rawState != nil {
		s.rawState.Reset()
		s.rawState = nil
	}
	termios.SetNonblock(s.fd, false)

	s.state = stateClosed
}
