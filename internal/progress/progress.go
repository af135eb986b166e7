// Package progress wires a user signal to a lock-free flag the search loop
// polls once per iteration: on any of the signals passed to New (bsat
// passes SIGUSR1) the next poll returns true, and the caller is expected to dump a stats line before
// continuing. No buffering: signals arriving while a dump is in flight are
// coalesced into the single pending flag.
package progress

import (
	"os"
	"os/signal"
	"sync/atomic"
)

// Handler owns the signal subscription and the pending flag.
type Handler struct {
	pending atomic.Bool
	sigCh   chan os.Signal
	done    chan struct{}
}

// New installs a signal handler for the given signals (typically
// syscall.SIGUSR1) and returns a Handler whose Poll method reports whether a
// dump was requested since the last call.
func New(sigs ...os.Signal) *Handler {
	h := &Handler{
		sigCh: make(chan os.Signal, 1),
		done:  make(chan struct{}),
	}
	signal.Notify(h.sigCh, sigs...)
	go h.run()
	return h
}

func (h *Handler) run() {
	for {
		select {
		case <-h.sigCh:
			h.pending.Store(true)
		case <-h.done:
			return
		}
	}
}

// Poll reports whether a dump has been requested since the last Poll, and
// clears the flag.
func (h *Handler) Poll() bool {
	return h.pending.Swap(false)
}

// Close stops listening for signals.
func (h *Handler) Close() {
	signal.Stop(h.sigCh)
	close(h.done)
}
