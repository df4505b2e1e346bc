//go:build linux

package nrl

import (
	"os"
	"strings"
	"testing"
)

// newTestSession builds a Session with the fixed geometry spec.md's
// end-to-end scenarios use (20 columns, prompt "> ", prompt_len 2),
// bypassing Prepare's terminal-mode/epoll setup entirely: these tests
// drive dispatch and the insertion path directly, the same way
// term_line_test.go drives TTY.Read without a real pty underneath.
func newTestSession(t *testing.T) (*Session, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %s", err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})

	s := newSession(int(w.Fd()), FlagsNone, &TermInfo{}, nil, nil)
	s.termCols = 20
	s.termRows = 24
	s.promptLen = 2
	s.initialCol = 1
	s.initialRow = 1
	s.posX = s.promptLen
	s.posY = 0
	s.maxLines = 1
	s.state = stateOpen
	return s, r
}

func typeString(s *Session, str string) {
	for _, r := range str {
		insertKey(s, r)
	}
}

// drainPipe keeps the pipe's write end from blocking on a full buffer;
// it returns once the test closes both ends during cleanup.
func drainPipe(t *testing.T, r *os.File) {
	t.Helper()
	buf := make([]byte, 4096)
	for {
		if _, err := r.Read(buf); err != nil {
			return
		}
	}
}

func TestScenario1HelloEnter(t *testing.T) {
	s, r := newTestSession(t)
	go drainPipe(t, r)

	typeString(s, "hello")
	if ok := actionCommit(s); !ok {
		t.Fatalf("actionCommit should report commit")
	}

	if got := string(s.buffer); got != "hello" {
		t.Fatalf("buffer = %q, want %q", got, "hello")
	}
	if s.posX != 7 || s.posY != 0 {
		t.Fatalf("pos = (%d,%d), want (7,0)", s.posX, s.posY)
	}
	if len(s.lineOffset) != 1 || s.lineOffset[0] != 0 {
		t.Fatalf("lineOffset = %v, want [0]", s.lineOffset)
	}
}

func TestScenario2RowFillAndBackspace(t *testing.T) {
	s, r := newTestSession(t)
	go drainPipe(t, r)

	typeString(s, "abcdefghijklmnopqr") // 18 codepoints; 2 (prompt) + 18 == 20
	// The insertion that exactly fills row 0 creates line_offset[1] right
	// away and lands the cursor at (0,1), without waiting for a 19th
	// character to overflow onto the next row.
	if len(s.lineOffset) != 2 || s.lineOffset[1] != 18 {
		t.Fatalf("lineOffset = %v, want [0,18]", s.lineOffset)
	}
	if s.posX != 0 || s.posY != 1 {
		t.Fatalf("pos = (%d,%d), want (0,1)", s.posX, s.posY)
	}

	insertKey(s, 's')
	if len(s.lineOffset) != 2 || s.lineOffset[1] != 18 {
		t.Fatalf("lineOffset = %v, want [0,18]", s.lineOffset)
	}
	if s.posX != 1 || s.posY != 1 {
		t.Fatalf("pos = (%d,%d), want (1,1)", s.posX, s.posY)
	}

	actionBackspace(s)
	if got := string(s.buffer); got != "abcdefghijklmnopqr" {
		t.Fatalf("buffer = %q, want %q", got, "abcdefghijklmnopqr")
	}
	// Backspacing the 19th character lands back on the still-valid trailing
	// empty row rather than on row 0: line_offset[1] == len(buffer) == 18
	// remains a legal trailing empty row, same as right after the 18th char.
	if len(s.lineOffset) != 2 || s.lineOffset[1] != 18 {
		t.Fatalf("lineOffset = %v, want [0,18]", s.lineOffset)
	}
	if s.posX != 0 || s.posY != 1 {
		t.Fatalf("pos = (%d,%d), want (0,1)", s.posX, s.posY)
	}
}

func TestScenario3OverwriteMultibyteCodepoint(t *testing.T) {
	s, r := newTestSession(t)
	go drainPipe(t, r)

	typeString(s, "café")
	if len(s.buffer) != 5 || s.nchars != 4 || s.offset != 5 {
		t.Fatalf("buffer=%q len=%d nchars=%d offset=%d, want len=5 nchars=4 offset=5",
			s.buffer, len(s.buffer), s.nchars, s.offset)
	}

	actionBackwardChar(s) // cursor now before 'é'
	s.insertMode = false
	insertKey(s, 'e')

	if got := string(s.buffer); got != "cafe" {
		t.Fatalf("buffer = %q, want %q", got, "cafe")
	}
	if len(s.buffer) != 4 {
		t.Fatalf("len(buffer) = %d, want 4", len(s.buffer))
	}
}

func TestScenario4WordMotionAndKillToStart(t *testing.T) {
	s, r := newTestSession(t)
	go drainPipe(t, r)

	typeString(s, "one two three")

	actionBackwardWord(s)
	if s.offset != 8 {
		t.Fatalf("after first Alt-B, offset = %d, want 8", s.offset)
	}
	actionBackwardWord(s)
	if s.offset != 4 {
		t.Fatalf("after second Alt-B, offset = %d, want 4", s.offset)
	}

	actionKillToStart(s)
	if got := string(s.buffer); got != "two three" {
		t.Fatalf("buffer = %q, want %q", got, "two three")
	}
	if s.offset != 0 || s.posX != s.promptLen || s.posY != 0 {
		t.Fatalf("cursor = offset=%d pos=(%d,%d), want offset=0 pos=(%d,0)", s.offset, s.posX, s.posY, s.promptLen)
	}
}

func TestScenario5EmptyBufferCtrlD(t *testing.T) {
	s, r := newTestSession(t)
	go drainPipe(t, r)

	line, outcome, err := s.handleKey(Key{Rune: 'd', Mods: ModCtrl})
	if err != nil {
		t.Fatalf("handleKey: %s", err)
	}
	if outcome != OutcomeLine || line != "" {
		t.Fatalf("outcome=%v line=%q, want OutcomeLine \"\"", outcome, line)
	}
}

func TestScenario6FirstKeyClearsEmptyHint(t *testing.T) {
	s, r := newTestSession(t)
	s.emptyMessage = "type something"

	done := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 4096)
		n, _ := r.Read(buf)
		done <- buf[:n]
	}()

	insertKey(s, 'a')

	out := <-done
	if !strings.HasPrefix(string(out), "\x1b[K") {
		t.Fatalf("output = %q, expected the erase-hint sequence ESC[K first", out)
	}
	if s.offset != 1 || s.posX != 3 || s.nchars != 1 {
		t.Fatalf("offset=%d pos_x=%d nchars=%d, want offset=1 pos_x=3 nchars=1", s.offset, s.posX, s.nchars)
	}
}
