// Package signal turns SIGINT and SIGTERM into cancellation of the sweep.
//
// The first signal cancels the sweep context with ErrInterrupted as its
// cause. The in-flight child process is killed through exec.CommandContext
// and no report is written.
package signal

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	ossignal "os/signal"
	"sync"
	"syscall"

	"github.com/mrz1836/keysweep/internal/errors"
)

// Guard owns the interruptible sweep context.
type Guard struct {
	ctx      context.Context //nolint:containedctx // the guard owns the sweep context lifecycle
	cancel   context.CancelCauseFunc
	sigCh    chan os.Signal
	done     chan struct{}
	fireOnce sync.Once
	stopOnce sync.Once
}

// Watch derives a cancellable context from parent and starts listening for
// interrupts. Callers must call Stop when the sweep is over.
//
//	g := signal.Watch(ctx)
//	defer g.Stop()
//	report, err := controller.Run(g.Context())
//	if g.Interrupted() { ... }
func Watch(parent context.Context) *Guard {
	ctx, cancel := context.WithCancelCause(parent)
	g := &Guard{
		ctx:    ctx,
		cancel: cancel,
		sigCh:  make(chan os.Signal, 1),
		done:   make(chan struct{}),
	}

	ossignal.Notify(g.sigCh, syscall.SIGINT, syscall.SIGTERM)
	go g.listen()

	return g
}

// Context returns the context cancelled on interrupt.
func (g *Guard) Context() context.Context {
	return g.ctx
}

// Interrupted reports whether a signal cancelled the context.
func (g *Guard) Interrupted() bool {
	return stderrors.Is(context.Cause(g.ctx), errors.ErrInterrupted)
}

// Cause returns the cancellation cause, or nil while the context is live.
func (g *Guard) Cause() error {
	if g.ctx.Err() == nil {
		return nil
	}
	return context.Cause(g.ctx)
}

// Stop stops signal delivery and releases the context.
func (g *Guard) Stop() {
	g.stopOnce.Do(func() {
		ossignal.Stop(g.sigCh)
		close(g.done)
		g.cancel(context.Canceled)
	})
}

// fire cancels the context once; later signals are ignored.
func (g *Guard) fire(sig os.Signal) {
	g.fireOnce.Do(func() {
		g.cancel(fmt.Errorf("%w: received %s", errors.ErrInterrupted, sig))
	})
}

func (g *Guard) listen() {
	for {
		select {
		case <-g.ctx.Done():
			return
		case <-g.done:
			return
		case sig := <-g.sigCh:
			g.fire(sig)
		}
	}
}
