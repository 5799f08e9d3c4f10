// Copyright (c) 2026 The StreamGraph Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package dataloop provides a minimal, in-process implementation of
// support.DataLoop: a single goroutine that serializes topology mutation
// (Invoke) against source readiness (Notify). A host embedding this
// module in a real event loop (epoll, kqueue, io_uring) is expected to
// implement support.DataLoop directly against that loop instead; this
// implementation exists so the reference source node and the scheduler
// are exercisable without an external event loop dependency.
package dataloop

import (
	"sync"

	"github.com/streamgraph/core/api/graphcode"
	"github.com/streamgraph/core/api/support"
	"github.com/streamgraph/core/pkg/lifecycle"
)

// Loop is a single-goroutine data loop. All sources added to a Loop, and
// all functions passed to Invoke, run on that one goroutine, so a node's
// timer callback and a host's topology mutation can never interleave.
type Loop struct {
	once *lifecycle.Once

	mu      sync.Mutex
	sources map[support.Source]struct{}

	work chan func()
	done chan struct{}
}

var _ support.DataLoop = (*Loop)(nil)

// New returns a Loop that has not yet been started.
func New() *Loop {
	return &Loop{
		once:    lifecycle.NewOnce(),
		sources: make(map[support.Source]struct{}),
		work:    make(chan func(), 64),
		done:    make(chan struct{}),
	}
}

// Start begins running the loop's dispatch goroutine.
func (l *Loop) Start() error {
	return l.once.Start(l.start)
}

func (l *Loop) start() error {
	go l.run()
	return nil
}

func (l *Loop) run() {
	for {
		select {
		case f := <-l.work:
			f()
		case <-l.done:
			return
		}
	}
}

// Stop halts the loop's dispatch goroutine. Pending work is dropped.
func (l *Loop) Stop() error {
	return l.once.Stop(l.stop)
}

func (l *Loop) stop() error {
	close(l.done)
	return nil
}

// AddSource registers src with the loop. Registration does not by itself
// cause src to fire; callers (typically a reference node's timer) call
// Notify when the source becomes ready.
func (l *Loop) AddSource(src support.Source) error {
	if src == nil {
		return graphcode.InvalidArgumentsf("data loop: nil source")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources[src] = struct{}{}
	return nil
}

// RemoveSource unregisters src. Subsequent Notify calls for it are no-ops.
func (l *Loop) RemoveSource(src support.Source) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.sources[src]; !ok {
		return graphcode.InvalidArgumentsf("data loop: source not registered")
	}
	delete(l.sources, src)
	return nil
}

// Notify schedules src.Fire to run on the loop's goroutine. It is safe to
// call from any goroutine, including a timer's own callback goroutine.
func (l *Loop) Notify(src support.Source) {
	l.mu.Lock()
	_, ok := l.sources[src]
	l.mu.Unlock()
	if !ok {
		return
	}
	select {
	case l.work <- src.Fire:
	case <-l.done:
	}
}

// Invoke runs f on the loop's goroutine and blocks until it returns. This
// is how a host serializes topology mutation (AddNode, LinkPorts, ...)
// against scheduling passes triggered by source readiness.
func (l *Loop) Invoke(f func()) error {
	if !l.once.IsRunning() {
		return graphcode.WrongStatef("data loop: Invoke called before Start")
	}
	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		f()
	}
	select {
	case l.work <- wrapped:
	case <-l.done:
		return graphcode.WrongStatef("data loop: stopped")
	}
	select {
	case <-done:
		return nil
	case <-l.done:
		return graphcode.WrongStatef("data loop: stopped while invoking")
	}
}
