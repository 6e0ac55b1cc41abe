// pkg/secret_cli/signals.go
//
// Ctrl-C handling: the first SIGINT or SIGTERM cancels the command context so
// prompts and generation loops can unwind and report a cancellation.

package secret_cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// SignalHandler cancels its context when the process is interrupted.
type SignalHandler struct {
	ctx    context.Context
	cancel context.CancelFunc

	sigChan  chan os.Signal
	doneChan chan struct{}

	mu          sync.Mutex
	interrupted os.Signal
	stopOnce    sync.Once
}

// NewSignalHandler creates a new signal handler. Stop must be called.
func NewSignalHandler(ctx context.Context) *SignalHandler {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	h := &SignalHandler{
		ctx:      ctx,
		cancel:   cancel,
		sigChan:  make(chan os.Signal, 1),
		doneChan: make(chan struct{}),
	}

	signal.Notify(h.sigChan, os.Interrupt, syscall.SIGTERM)
	go h.handleSignals()

	return h
}

// Context returns the cancellable context
func (h *SignalHandler) Context() context.Context {
	return h.ctx
}

// Interrupted returns the signal that cancelled the context, if any.
func (h *SignalHandler) Interrupted() os.Signal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}

// Stop releases the signal subscription and cancels the context.
func (h *SignalHandler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.doneChan)
		h.cancel()
	})
}

func (h *SignalHandler) handleSignals() {
	select {
	case sig := <-h.sigChan:
		h.mu.Lock()
		h.interrupted = sig
		h.mu.Unlock()
		h.cancel()
	case <-h.doneChan:
	}
}
