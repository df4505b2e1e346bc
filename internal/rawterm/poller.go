//go:build linux

package rawterm

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// ErrNotATerminal is returned when a file descriptor rejects epoll
// registration with EPERM, the signal that it is not a character device the
// key decoder can usefully select on.
var ErrNotATerminal = fmt.Errorf("rawterm: inappropriate I/O control")

// Event is a single readiness notification, carrying just the fd it's for;
// Session.Process matches it against the key fd and the signalfd.
type Event struct {
	Fd int
}

// Poller wraps an epoll instance, either owned (created and destroyed by
// this Poller) or borrowed (the caller's own multiplexer, to which this
// Poller only ever adds/removes its own two descriptors).
type Poller struct {
	epfd  int
	owned bool
}

// NewPoller creates and owns a fresh epoll instance.
func NewPoller() (*Poller, error) {
	fd, err := unix.EpollCreate1(0)
	if err != nil {
		return nil, fmt.Errorf("rawterm: epoll_create1: %w", err)
	}
	return &Poller{epfd: fd, owned: true}, nil
}

// BorrowPoller wraps a caller-supplied epoll fd without taking ownership of
// it; Close becomes a no-op.
func BorrowPoller(epfd int) *Poller {
	return &Poller{epfd: epfd, owned: false}
}

// FD returns the underlying epoll file descriptor.
func (p *Poller) FD() int { return p.epfd }

// Owned reports whether this Poller created its epoll fd (and so is
// responsible for closing it).
func (p *Poller) Owned() bool { return p.owned }

// Add registers fd for level-triggered readiness on the given event mask.
// EPERM (the fd is not pollable, e.g. not a character device) is reported
// as ErrNotATerminal; any other failure is a fatal host error.
func (p *Poller) Add(fd int, events uint32) error {
	ev := unix.EpollEvent{Events: events, Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		if err == unix.EPERM {
			return ErrNotATerminal
		}
		return fmt.Errorf("rawterm: epoll_ctl(add): %w", err)
	}
	return nil
}

// Remove deregisters fd. It is not an error to remove an fd that was never
// added, mirroring the tolerant cleanup epoll_ctl(DEL) affords on
// already-closed descriptors during teardown.
func (p *Poller) Remove(fd int) error {
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil && err != unix.ENOENT && err != unix.EBADF {
		return fmt.Errorf("rawterm: epoll_ctl(del): %w", err)
	}
	return nil
}

// Wait blocks (retrying across EINTR) until at least one registered fd is
// ready, or timeoutMs elapses (-1 blocks indefinitely), and returns the
// ready events.
func (p *Poller) Wait(timeoutMs int) ([]Event, error) {
	var raw [8]unix.EpollEvent
	for {
		n, err := unix.EpollWait(p.epfd, raw[:], timeoutMs)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("rawterm: epoll_wait: %w", err)
		}
		events := make([]Event, n)
		for i := 0; i < n; i++ {
			events[i] = Event{Fd: int(raw[i].Fd)}
		}
		return events, nil
	}
}

// Close closes the epoll fd if this Poller owns it.
func (p *Poller) Close() error {
	if !p.owned {
		return nil
	}
	return unix.Close(p.epfd)
}
