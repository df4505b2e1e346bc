//go:build linux

package rawterm

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// WinchWatcher blocks SIGWINCH process-wide and exposes its delivery as a
// readable fd (signalfd) so window-resize notifications ride the same
// epoll loop as key input, rather than needing a separate os/signal
// channel and goroutine.
type WinchWatcher struct {
	fd      int
	prior   unix.Sigset_t
	blocked bool
}

// NewWinchWatcher blocks SIGWINCH (saving the prior mask for Close to
// restore) and opens a signalfd for it.
func NewWinchWatcher() (*WinchWatcher, error) {
	var set, prior unix.Sigset_t
	sigsetAdd(&set, int(unix.SIGWINCH))

	if err := unix.PthreadSigmask(unix.SIG_BLOCK, &set, &prior); err != nil {
		return nil, fmt.Errorf("rawterm: sigprocmask: %w", err)
	}

	fd, err := unix.Signalfd(-1, &set, unix.SFD_NONBLOCK|unix.SFD_CLOEXEC)
	if err != nil {
		unix.PthreadSigmask(unix.SIG_SETMASK, &prior, nil)
		return nil, fmt.Errorf("rawterm: signalfd: %w", err)
	}

	return &WinchWatcher{fd: fd, prior: prior, blocked: true}, nil
}

// FD returns the signalfd descriptor to register on a Poller.
func (w *WinchWatcher) FD() int { return w.fd }

// Drain reads and discards the pending signalfd_siginfo record(s) so the
// fd goes back to non-readable; the caller is expected to re-query window
// size itself afterward (SIGWINCH carries no payload worth keeping).
func (w *WinchWatcher) Drain() error {
	var buf [128]byte // one signalfd_siginfo record per read
	for {
		n, err := unix.Read(w.fd, buf[:])
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				return nil
			}
			return fmt.Errorf("rawterm: signalfd read: %w", err)
		}
		if n < len(buf) {
			return nil
		}
	}
}

// Close closes the signalfd and restores the prior signal mask. A second
// Close does neither; it returns nil.
func (w *WinchWatcher) Close() error {
	var firstErr error
	if w.fd >= 0 {
		if err := unix.Close(w.fd); err != nil {
			firstErr = fmt.Errorf("rawterm: close signalfd: %w", err)
		}
		w.fd = -1
	}
	if w.blocked {
		if err := unix.PthreadSigmask(unix.SIG_SETMASK, &w.prior, nil); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("rawterm: sigprocmask restore: %w", err)
		}
		w.blocked = false
	}
	return firstErr
}

func sigsetAdd(set *unix.Sigset_t, sig int) {
	// unix.Sigset_t on linux/amd64 is a fixed array of uint64 words; signal
	// numbers are 1-based.
	word := (sig - 1) / 64
	bit := (sig - 1) % 64
	set.Val[word] |= 1 << uint(bit)
}
