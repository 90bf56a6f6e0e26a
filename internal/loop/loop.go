// Package loop runs a function on every tick of a tick source until it is
// stopped. The source is an interface so tests can drive ticks by hand.
package loop

import (
	"context"
	"sync"
	"time"
)

// Source delivers ticks.
type Source interface {
	C() <-chan time.Time
	Stop()
}

type ticker struct{ t *time.Ticker }

// NewTicker returns a wall-clock Source firing every d.
func NewTicker(d time.Duration) Source {
	return ticker{t: time.NewTicker(d)}
}

func (t ticker) C() <-chan time.Time { return t.t.C }
func (t ticker) Stop()               { t.t.Stop() }

// Manual is a Source that fires only when told to.
type Manual struct {
	ch   chan time.Time
	once sync.Once
	done chan struct{}
}

func NewManual() *Manual {
	return &Manual{ch: make(chan time.Time), done: make(chan struct{})}
}

func (m *Manual) C() <-chan time.Time { return m.ch }

func (m *Manual) Stop() { m.once.Do(func() { close(m.done) }) }

// Fire delivers one tick and blocks until the loop has received it. It
// returns false if the source was stopped first.
func (m *Manual) Fire(t time.Time) bool {
	select {
	case m.ch <- t:
		return true
	case <-m.done:
		return false
	}
}

// Handle controls a running loop.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Start calls fn for each tick from src until ctx is done or the handle is
// stopped. fn runs on a single goroutine, so calls never overlap.
func Start(ctx context.Context, src Source, fn func(time.Time)) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		defer src.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case t := <-src.C():
				fn(t)
			}
		}
	}()
	return h
}

// Stop cancels the loop and waits for it to exit. It is safe to call more
// than once.
func (h *Handle) Stop() {
	h.cancel()
	<-h.done
}

// Done is closed once the loop has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }
