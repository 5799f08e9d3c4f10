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

// Package graph implements the push/pull media processing graph
// scheduler: a topology of nodes connected through ports, and the
// ready-queue algorithm that drives data through it one buffer at a
// time. See scheduler.go for the algorithm.
package graph

import (
	"sync"

	"go.uber.org/zap"

	"github.com/streamgraph/core/api/graphcode"
	"github.com/streamgraph/core/api/graphnode"
	"github.com/streamgraph/core/internal/graphresult"
	"github.com/streamgraph/core/pkg/lifecycle"
)

// Graph is a scheduling domain: a set of nodes, the ports linking them,
// and a ready queue driving a single scheduling pass at a time.
//
// All mutating operations (AddNode, RemovePort, LinkPorts, Schedule,
// ...) take the graph's lock, so a Graph is safe to drive from multiple
// goroutines (e.g. a data loop goroutine triggered by a live source's
// timer, racing a control goroutine adding a downstream node). The
// scheduling algorithm itself assumes cooperative, single-threaded
// progress through one pass; the lock serializes passes rather than
// letting them interleave.
type Graph struct {
	mu    sync.Mutex
	nodes []*node
	ready readyQueue
	log   *zap.Logger

	closer *lifecycle.Once
}

// Option configures a Graph at construction.
type Option func(*Graph)

// WithLogger sets the logger the graph and its nodes use. The default is
// a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(g *Graph) { g.log = log }
}

// New returns an empty Graph.
func New(opts ...Option) *Graph {
	g := &Graph{log: zap.NewNop(), closer: lifecycle.NewOnce()}
	for _, opt := range opts {
		opt(g)
	}
	// A graph is live from construction; the Once exists only to give
	// Close its exactly-once semantics.
	_ = g.closer.Start(nil)
	return g
}

// AddNode registers impl with the graph under name and returns its
// handle. A freshly added node starts with zero ports in both
// directions and its output side armed as the default action.
func (g *Graph) AddNode(name string, impl graphnode.Node, flags Flag) *Node {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := &node{
		name:     name,
		impl:     impl,
		log:      g.log,
		flags:    flags,
		state:    graphcode.OK,
		action:   actionOut,
		schedule: defaultSchedule,
	}
	g.nodes = append(g.nodes, n)
	return n
}

// RemoveNode unregisters n. Any ports still attached to n are left
// linked to their peers; callers should unlink and remove a node's
// ports before removing the node itself.
func (g *Graph) RemoveNode(n *Node) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.ready.remove(n)
	for i, existing := range g.nodes {
		if existing == n {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			return
		}
	}
}

// Nodes returns the graph's current nodes, for introspection.
func (g *Graph) Nodes() []*Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Close pauses every node still registered with the graph and clears its
// topology. It is idempotent (a second call returns the same result as
// the first) and is the graph-level counterpart to a single node's
// Send(Pause): unlike removing nodes one at a time, Close does not stop
// at the first node that fails to pause, so one misbehaving node never
// hides a problem with another.
func (g *Graph) Close() error {
	return g.closer.Stop(g.close)
}

func (g *Graph) close() error {
	g.mu.Lock()
	nodes := make([]*node, len(g.nodes))
	copy(nodes, g.nodes)
	g.nodes = nil
	g.ready = readyQueue{}
	g.mu.Unlock()

	var errs graphresult.Errors
	for _, n := range nodes {
		_, err := n.impl.SendCommand(graphcode.Pause)
		errs.Append(graphresult.IgnoreNotImplemented(err))
	}
	return errs.Err()
}
