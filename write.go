package nrl

import (
	"golang.org/x/sys/unix"

	"github.com/drepper/nrl/internal/rawterm"
)

// emit writes b to the terminal fd in as few syscalls as possible,
// retrying short writes and EINTR, so a redraw that combines text,
// padding, clear sequences, and a cursor reposition reaches the terminal
// as a single batch rather than flashing intermediate state.
func (s *Session) emit(b []byte) error {
	for len(b) > 0 {
		n, err := unix.Write(s.fd, b)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// moveCursorToBytes returns the absolute cursor-position escape for the
// edit-relative coordinates (x, y), anchored at initial_col/initial_row.
func (s *Session) moveCursorToBytes(x, y int) []byte {
	return rawterm.CursorTo(s.initialRow+y, s.initialCol+x)
}

func (s *Session) moveCursorTo(x, y int) {
	s.emit(s.moveCursorToBytes(x, y))
}

// scratchBuf resets and returns the session's reusable redraw buffer, so
// building up a batched write doesn't allocate on every keystroke.
func (s *Session) scratchBuf() []byte {
	return s.scratch[:0]
}
