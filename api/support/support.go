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

// Package support describes the small keyed bag of named services a node
// receives at construction time: a few well-known collaborators threaded
// through construction rather than looked up from global state.
package support

import (
	"github.com/opentracing/opentracing-go"
	"go.uber.org/net/metrics"
	"go.uber.org/zap"
)

// TypeMap interns strings into stable numeric ids, backing the typed
// property system that lives outside this module. Nodes refuse to
// initialize without one.
type TypeMap interface {
	// ID returns the interned id for name, assigning a new one if name has
	// not been seen before.
	ID(name string) uint32
	// Name returns the string registered for id, and false if id is
	// unknown.
	Name(id uint32) (string, bool)
}

// DataLoop is the abstract event-loop interface the core requires from its
// host: add or remove a timer/fd source. Its implementation, and the
// dispatch of readiness back into the scheduler, belong to the host; the
// core only needs the ability to register and unregister sources.
type DataLoop interface {
	// AddSource registers src so its Fire method is invoked by the loop.
	AddSource(src Source) error
	// RemoveSource unregisters a source previously added with AddSource.
	RemoveSource(src Source) error
	// Notify schedules src.Fire to run on the loop's own goroutine. It is
	// the mechanism a live/async node's timer uses to re-enter the
	// scheduler without calling Fire directly from the timer's own
	// goroutine.
	Notify(src Source)
	// Invoke runs f on the loop's own goroutine and blocks until it
	// returns, serializing topology mutation against scheduling passes.
	Invoke(f func()) error
}

// Source is anything a DataLoop can dispatch readiness to, typically a
// timer owned by a reference node.
type Source interface {
	Fire()
}

// Bag is the concrete collection of services passed to a node at
// construction. TypeMap is mandatory; the rest are optional and nodes
// degrade gracefully (or refuse specific capabilities) when absent, the
// way the reference source node refuses async callbacks without a
// DataLoop.
type Bag struct {
	TypeMap  TypeMap
	Log      *zap.Logger
	DataLoop DataLoop
	Metrics  *metrics.Scope

	// Tracer is carried for hosts that still thread an opentracing.Tracer
	// through their construction paths. Nothing in the core starts spans
	// on the scheduling hot path.
	Tracer opentracing.Tracer
}

// Logger returns b.Log, or a no-op logger if none was supplied.
func (b Bag) Logger() *zap.Logger {
	if b.Log == nil {
		return zap.NewNop()
	}
	return b.Log
}

// TracerOrNoop returns b.Tracer, or a no-op tracer if none was supplied.
func (b Bag) TracerOrNoop() opentracing.Tracer {
	if b.Tracer == nil {
		return opentracing.NoopTracer{}
	}
	return b.Tracer
}
