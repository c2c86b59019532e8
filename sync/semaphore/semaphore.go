// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package semaphore provides a named counting semaphore.
package semaphore

import (
	"context"
	"sync/atomic"
)

type tidKeyType int

var tidKey tidKeyType

// Semaphore is a counting semaphore. Each acquired slot carries a
// small integer id, usable to attribute work to a logical worker.
type Semaphore struct {
	name string
	ch   chan int

	waits atomic.Int64
	reqs  atomic.Int64
}

// New creates a new semaphore with name and capacity n.
func New(name string, n int) *Semaphore {
	ch := make(chan int, n)
	for i := 0; i < n; i++ {
		ch <- i + 1 // tid
	}
	return &Semaphore{
		name: name,
		ch:   ch,
	}
}

// WaitAcquire acquires a semaphore slot.
// It returns a context holding the slot's tid and a func to release
// the slot, or the context's error if ctx is done first.
func (s *Semaphore) WaitAcquire(ctx context.Context) (context.Context, func(), error) {
	s.waits.Add(1)
	defer s.waits.Add(-1)
	select {
	case tid := <-s.ch:
		s.reqs.Add(1)
		return context.WithValue(ctx, tidKey, tid), func() {
			s.ch <- tid
		}, nil
	case <-ctx.Done():
		return ctx, func() {}, ctx.Err()
	}
}

// Do runs f while holding a semaphore slot.
func (s *Semaphore) Do(ctx context.Context, f func(ctx context.Context) error) error {
	ctx, done, err := s.WaitAcquire(ctx)
	if err != nil {
		return err
	}
	defer done()
	return f(ctx)
}

// TID returns the slot id held by ctx, or 0 outside WaitAcquire/Do.
func TID(ctx context.Context) int {
	tid, _ := ctx.Value(tidKey).(int)
	return tid
}

// Name returns the name of the semaphore.
func (s *Semaphore) Name() string {
	return s.name
}

// Capacity returns the capacity of the semaphore.
func (s *Semaphore) Capacity() int {
	if s == nil {
		return 0
	}
	return cap(s.ch)
}

// NumServs returns the number of slots currently held.
func (s *Semaphore) NumServs() int {
	return cap(s.ch) - len(s.ch)
}

// NumWaits returns the number of waiters.
func (s *Semaphore) NumWaits() int {
	return int(s.waits.Load())
}

// NumRequests returns the total number of acquisitions so far.
func (s *Semaphore) NumRequests() int {
	return int(s.reqs.Load())
}
