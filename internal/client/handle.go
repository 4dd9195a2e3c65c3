package client

import (
	"context"
	"sync"
)

// StreamHandle is the cancellation handle for one streaming exchange. It is
// returned from StreamChat and owned by the caller; there is no hidden
// process-global abort state.
type StreamHandle struct {
	cancel context.CancelFunc

	mu      sync.Mutex
	aborted bool
	done    chan struct{}
}

func newStreamHandle(cancel context.CancelFunc) *StreamHandle {
	return &StreamHandle{
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Abort requests cooperative cancellation of the stream. The read loop
// observes it at its next suspension point; no further events are emitted
// after that, and the error handler is never invoked for an aborted
// stream. Calling Abort on a finished or already-aborted handle is a no-op.
func (h *StreamHandle) Abort() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.aborted {
		return
	}
	select {
	case <-h.done:
		return
	default:
	}

	h.aborted = true
	h.cancel()
}

// Aborted reports whether the caller requested cancellation.
func (h *StreamHandle) Aborted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.aborted
}

// Done is closed once the stream has fully ended and released its
// resources, whether by completion, failure, or abort.
func (h *StreamHandle) Done() <-chan struct{} {
	return h.done
}

// finish marks the stream ended. Called exactly once, from the read
// goroutine's deferred cleanup.
func (h *StreamHandle) finish() {
	h.cancel()
	close(h.done)
}
