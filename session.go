// Package nrl is an interactive single-line / wrap-to-multiline input
// editor for Unix terminals, comparable in role to a minimal readline. An
// application opens a Session bound to a terminal file descriptor, sets a
// prompt, and repeatedly obtains the next finished input line.
//
// Session is the interactive edit engine: for each decoded key event it
// mutates a UTF-8 input buffer, recomputes visual line wrapping inside a
// fixed terminal width, and emits the minimal ANSI byte sequence that
// brings the terminal's display in line with the new state — all driven
// by an externally owned event multiplexer, so the host can interleave
// other I/O sources on the same epoll instance.
//
// Key decoding, terminal capability detection, and Unicode property
// lookups beyond plain codepoint stepping are external collaborators:
// Session consumes a Decoder and a *TermInfo, never builds them itself.
package nrl

import (
	"github.com/drepper/nrl/internal/rawterm"
	"github.com/drepper/nrl/internal/rawterm/termios"
)

// Flags selects the session's decoration mode. It is immutable for the
// life of a Session.
type Flags int

const (
	FlagsNone Flags = iota
	FlagsFrameLine
	FlagsFrameBackground
)

type termState int

const (
	stateInvalid termState = iota
	stateOpen
	stateClosed
)

// DefaultLineBufferCapacity is the initial capacity new Sessions allocate
// for their input buffer, matching the teacher's DefaultLineBufferSize.
const DefaultLineBufferCapacity = 32

// PromptSource is either a literal prompt string or a pull-callback,
// evaluated fresh at each Prepare call.
type PromptSource struct {
	literal string
	fn      func() string
	isFn    bool
}

// LiteralPrompt wraps a fixed prompt string.
func LiteralPrompt(s string) PromptSource { return PromptSource{literal: s} }

// CallbackPrompt wraps a callback invoked once per Prepare to produce the
// prompt text (e.g. a prompt that embeds the current working directory).
func CallbackPrompt(fn func() string) PromptSource { return PromptSource{fn: fn, isFn: true} }

func (p PromptSource) resolve() string {
	if p.isFn {
		return p.fn()
	}
	return p.literal
}

// Session is one active edit, bound to a terminal file descriptor.
type Session struct {
	fd       int
	flags    Flags
	termInfo *TermInfo
	decoder  Decoder

	buffer     []byte
	nchars     int
	lineOffset []int
	offset     int

	posX, posY     int
	requestedPosX  int
	initialCol     int
	initialRow     int
	termCols       int
	termRows       int
	promptLen      int
	maxLines       int
	curFrameLines  int
	multiline      bool
	insertMode     bool
	osc133         bool
	emptyMessage   string
	frameHighlight *rawterm.Color

	state termState

	poller   *rawterm.Poller
	winch    *rawterm.WinchWatcher
	rawState *termios.State

	prompt PromptSource

	initialBufCap int
	scratch       []byte // reused write-batching buffer

	// textColorActive records whether a foreground/background SGR is
	// currently applied to the edit area, so finalize knows whether an
	// SGR reset is needed on commit.
	textColorActive bool
}

// New creates a Session that owns its own epoll instance.
func New(fd int, flags Flags, info *TermInfo, dec Decoder) *Session {
	return newSession(fd, flags, info, dec, nil)
}

// NewWithPoller creates a Session that registers its descriptors on a
// caller-supplied epoll fd instead of creating its own; the session never
// closes epfd and never reads events not addressed to its own two
// descriptors.
func NewWithPoller(epfd int, fd int, flags Flags, info *TermInfo, dec Decoder) *Session {
	return newSession(fd, flags, info, dec, rawterm.BorrowPoller(epfd))
}

func newSession(fd int, flags Flags, info *TermInfo, dec Decoder, borrowed *rawterm.Poller) *Session {
	s := &Session{
		fd:            fd,
		flags:         flags,
		termInfo:      info,
		decoder:       dec,
		state:         stateClosed,
		multiline:     true,
		lineOffset:    []int{0},
		initialBufCap: DefaultLineBufferCapacity,
		poller:        borrowed,
	}
	s.buffer = make([]byte, 0, s.initialBufCap)
	return s
}

// SetPrompt sets the prompt shown at the start of the edit area.
func (s *Session) SetPrompt(p PromptSource) { s.prompt = p }

// SetEmptyMessage sets a dimmed hint shown when the buffer is empty,
// cleared from the screen as soon as the first character is inserted.
func (s *Session) SetEmptyMessage(msg string) { s.emptyMessage = msg }

// SetFrameHighlight overrides the frame highlight color; when unset, it is
// derived from term_info's background via rawterm.Adjust.
func (s *Session) SetFrameHighlight(c rawterm.Color) { s.frameHighlight = &c }

// SetInitialBufferCapacity tunes the input buffer's pre-allocated
// capacity, matching the teacher's SetLineBuffer; it only takes effect on
// the next Prepare.
func (s *Session) SetInitialBufferCapacity(n int) {
	if n > 0 {
		s.initialBufCap = n
	}
}

// Multiline reports whether the session wraps long input across rows
// (true) or horizontally scrolls a single row (false). It defaults to
// true; non-multiline sessions are intended for single-line prompts in a
// fixed-height chrome.
func (s *Session) Multiline() bool { return s.multiline }

// SetMultiline switches between wrap-to-multiline and single-line
// horizontal-scroll presentation. Unlike SetInitialBufferCapacity, it takes
// effect at once: the edit actions and the insertion path read the setting
// on every key.
func (s *Session) SetMultiline(v bool) { s.multiline = v }
