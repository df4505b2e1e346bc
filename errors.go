package nrl

import (
	"errors"

	"github.com/drepper/nrl/internal/rawterm"
)

// ErrNotATerminal is returned by Prepare when the key fd rejects epoll
// registration with EPERM: it is not a character device the event loop
// can select on. Session state is left clean when this is returned.
var ErrNotATerminal = rawterm.ErrNotATerminal

// ErrClosed reports a Session whose edit has already committed or errored.
// Session's own methods do not return it: Process reports ErrNotOpen in
// that state, and Read calls Prepare, which opens a new edit.
var ErrClosed = errors.New("nrl: session is closed")

// ErrNotOpen is returned by Process when the session is not open: before
// Prepare, or after the edit has committed.
var ErrNotOpen = errors.New("nrl: session is not open; call Prepare first")
