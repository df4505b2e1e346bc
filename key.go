package nrl

import "time"

// Modifier is a bitmask restricted to ALT|SHIFT|CTRL, matching the
// dispatch table's key.
type Modifier uint8

const (
	ModAlt Modifier = 1 << iota
	ModShift
	ModCtrl
)

// Symbol names the symbolic (non-Unicode) keys the decoder may produce.
type Symbol int

const (
	SymNone Symbol = iota
	SymHome
	SymEnd
	SymInsert
	SymEnter
	SymLeft
	SymRight
	SymUp
	SymDown
	SymBackspace
	SymDelete
)

// Key is a single decoded key event: either symbolic (arrow keys, Home,
// Enter, ...) or a Unicode codepoint, each carrying its modifier mask.
// Decoding raw bytes into Keys is an external collaborator's job (see the
// keydecoder package); Session only ever consumes already-decoded Keys.
type Key struct {
	Symbolic bool
	Symbol   Symbol
	Rune     rune
	Mods     Modifier
}

// Decoder turns readable bytes from the terminal fd into Keys. It is a
// pull-style API: the event loop feeds it bytes as they become readable,
// then repeatedly tries to pull a decoded Key until none remain.
//
// Decoder implementations are expected to buffer partial escape sequences
// internally between Feed calls.
type Decoder interface {
	// Feed hands the decoder bytes that were just read from the terminal
	// fd. It does not itself produce a Key; call TryNext after Feed to
	// drain whatever became decodable.
	Feed(b []byte)

	// TryNext attempts to decode the next complete Key from previously
	// fed bytes without blocking. ok is false when no complete key is
	// available yet (including when a partial escape sequence is still
	// buffered, waiting for more bytes).
	TryNext() (key Key, ok bool)

	// PullTimeout blocks for at most d waiting for enough bytes to
	// resolve a pending ambiguous sequence (most commonly a lone ESC that
	// might be the start of a CSI sequence). Session's own epoll-driven
	// loop never calls this — it would block the single-threaded event
	// loop — but it's part of the decoder contract a host may use outside
	// that loop (e.g. a synchronous wrapper with its own read timeout).
	PullTimeout(d time.Duration) (key Key, ok bool)
}
