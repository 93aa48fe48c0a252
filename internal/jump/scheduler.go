package jump

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs work on a single logical thread. Post queues fn for the
// next turn; AfterFunc queues fn once d has elapsed. Implementations never
// run fn synchronously inside the call.
type Scheduler interface {
	Post(fn func())
	AfterFunc(d time.Duration, fn func())
}

// Loop is a cooperative event loop: every posted function runs on the
// goroutine that called Run, one at a time, in posting order. Timers post
// back onto the loop when they fire.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	stopped bool
}

// NewLoop returns an idle loop. Call Run to start processing.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post queues fn for the next turn. Work posted after the loop stopped is dropped.
func (l *Loop) Post(fn func()) {
	l.post(fn)
}

// AfterFunc queues fn on the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { l.post(fn) })
}

// Run processes queued work until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			fn()
		}
		if len(batch) > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			l.mu.Lock()
			l.stopped = true
			l.queue = nil
			l.mu.Unlock()
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) post(fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}
