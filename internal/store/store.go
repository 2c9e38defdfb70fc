// Package store holds the client-side state containers: the signed-in
// session, the content feed and the student directory. Each store owns its
// collection, applies optimistic mutations synchronously and reloads through
// an injected source with an optional simulated latency.
package store

import (
	"context"
	"sync"
	"time"
)

// Status is the refresh state shared by the collection stores.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
)

func statusOf(loading bool) Status {
	if loading {
		return StatusLoading
	}
	return StatusIdle
}

// Waiter stands in for network latency. A nil Waiter returns immediately.
type Waiter func(ctx context.Context) error

// Sleep returns a Waiter that blocks for d or until ctx is done.
func Sleep(d time.Duration) Waiter {
	if d <= 0 {
		return nil
	}
	return func(ctx context.Context) error {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w Waiter) wait(ctx context.Context) error {
	if w == nil {
		return nil
	}
	return w(ctx)
}

// Recorder receives store activity for metrics.
type Recorder interface {
	RecordLike(postID string)
	RecordFunding(target string, amount float64)
	RecordRefresh(store string, duration time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) RecordLike(string) {}
func (nopRecorder) RecordFunding(string, float64) {}
func (nopRecorder) RecordRefresh(string, time.Duration, error) {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}

// listeners is a set of subscribers receiving state snapshots.
type listeners[T any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(T)
}

func (l *listeners[T]) add(fn func(T)) func() {
	l.mu.Lock()
	if l.fns == nil {
		l.fns = make(map[int]func(T))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.fns, id)
			l.mu.Unlock()
		})
	}
}

func (l *listeners[T]) notify(state T) {
	l.mu.Lock()
	fns := make([]func(T), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
