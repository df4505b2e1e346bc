//go:build linux

package nrl

import (
	"golang.org/x/sys/unix"

	"github.com/drepper/nrl/internal/rawterm"
	"github.com/drepper/nrl/internal/rawterm/termios"
)

// ProcessOutcome is the three-valued result of Process: a finished line,
// an event that was consumed but didn't complete one, or an fd this
// Session doesn't own.
type ProcessOutcome int

const (
	// OutcomeUnknownFD means ev.Fd is neither the key fd nor the
	// signalfd; session state was not modified. The caller may be
	// sharing the epoll instance with its own descriptors.
	OutcomeUnknownFD ProcessOutcome = iota
	// OutcomeIncomplete means the event was handled but no line is
	// ready yet.
	OutcomeIncomplete
	// OutcomeLine means the session committed; Line holds the result.
	OutcomeLine
)

// Process handles exactly one readiness event. When ev.Fd is the key fd,
// it reads whatever is currently available, feeds the decoder, and
// dispatches at most one decoded key — never more — per call.
func (s *Session) Process(ev rawterm.Event) (line string, outcome ProcessOutcome, err error) {
	if s.state != stateOpen {
		return "", OutcomeUnknownFD, ErrNotOpen
	}

	switch {
	case ev.Fd == s.fd:
		return s.processOneKeyEvent()
	case s.winch != nil && ev.Fd == s.winch.FD():
		s.winch.Drain()
		s.termCols, s.termRows = termios.Size(s.fd)
		return "", OutcomeIncomplete, nil
	default:
		return "", OutcomeUnknownFD, nil
	}
}

// processOneKeyEvent reads once, feeds the decoder, and handles at most
// one resulting key.
func (s *Session) processOneKeyEvent() (string, ProcessOutcome, error) {
	eof, err := s.readIntoDecoder()
	if err != nil {
		return "", OutcomeIncomplete, err
	}
	if eof {
		return s.commitCurrentBuffer()
	}

	k, ok := s.decoder.TryNext()
	if !ok {
		return "", OutcomeIncomplete, nil
	}
	return s.handleKey(k)
}

// readIntoDecoder issues a single non-blocking read from the key fd and
// feeds whatever it got to the decoder. eof is true when the decoder
// side of the pty/pipe has closed.
func (s *Session) readIntoDecoder() (eof bool, err error) {
	var buf [256]byte
	n, rerr := unix.Read(s.fd, buf[:])
	switch {
	case rerr == unix.EAGAIN || rerr == unix.EWOULDBLOCK:
		return false, nil
	case rerr != nil:
		return false, rerr
	case n == 0:
		return true, nil
	default:
		s.decoder.Feed(buf[:n])
		return false, nil
	}
}

// handleKey applies the Ctrl-C / Ctrl-D-on-empty cancellation rule, then
// either dispatches through the binding table or, for a plain Unicode key
// with no Alt/Ctrl modifier, the insertion path.
func (s *Session) handleKey(k Key) (string, ProcessOutcome, error) {
	if !k.Symbolic && k.Mods&ModCtrl != 0 {
		switch k.Rune {
		case 'c':
			return s.cancelWithEmptyBuffer()
		case 'd':
			if len(s.buffer) == 0 {
				return s.cancelWithEmptyBuffer()
			}
			return "", OutcomeIncomplete, nil
		}
	}

	if a, ok := lookupAction(k); ok {
		if a(s) {
			return s.commitCurrentBuffer()
		}
		return "", OutcomeIncomplete, nil
	}

	if !k.Symbolic && k.Mods&(ModAlt|ModCtrl) == 0 && k.Rune != 0 {
		insertKey(s, k.Rune)
	}
	return "", OutcomeIncomplete, nil
}

func (s *Session) commitCurrentBuffer() (string, ProcessOutcome, error) {
	line := string(s.buffer)
	s.finalize()
	return line, OutcomeLine, nil
}

func (s *Session) cancelWithEmptyBuffer() (string, ProcessOutcome, error) {
	s.buffer = s.buffer[:0]
	s.finalize()
	return "", OutcomeLine, nil
}

// Read owns its own event loop (using its Poller, whether owned or
// borrowed), calling Prepare once and then looping on epoll_wait(-1)
// until a line commits. Unlike Process, it drains every key the decoder
// can produce from each readiness wakeup before going back to
// epoll_wait, rather than surfacing one key per wakeup.
func (s *Session) Read() (string, error) {
	if err := s.Prepare(); err != nil {
		return "", err
	}

	for {
		events, err := s.poller.Wait(-1)
		if err != nil {
			return "", err
		}
		for _, ev := range events {
			switch {
			case ev.Fd == s.fd:
				line, done, err := s.drainKeyFD()
				if err != nil {
					return "", err
				}
				if done {
					return line, nil
				}
			case s.winch != nil && ev.Fd == s.winch.FD():
				s.winch.Drain()
				s.termCols, s.termRows = termios.Size(s.fd)
			}
		}
	}
}

// drainKeyFD reads once, then repeatedly pulls and handles decoded keys
// until none remain or the edit commits.
func (s *Session) drainKeyFD() (line string, done bool, err error) {
	eof, err := s.readIntoDecoder()
	if err != nil {
		return "", false, err
	}
	if eof {
		line, _, _ := s.commitCurrentBuffer()
		return line, true, nil
	}

	for {
		k, ok := s.decoder.TryNext()
		if !ok {
			return "", false, nil
		}
		line, outcome, err := s.handleKey(k)
		if err != nil {
			return "", false, err
		}
		if outcome == OutcomeLine {
			return line, true, nil
		}
	}
}
