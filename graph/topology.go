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

package graph

import (
	"github.com/streamgraph/core/api/graphcode"
	"github.com/streamgraph/core/api/graphio"
)

// AddPort attaches a new port to n and returns its handle. It is the
// caller's responsibility to have already added the port on the node's
// own graphnode.Node via AddPort/the node's fixed port set, and to later
// bind an I/O cell with SetPortIO before scheduling the node.
//
// Only input ports contribute to requiredIn, and only non-optional ones
// at that; maxIn and maxOut are tracked separately per direction.
func (g *Graph) AddPort(n *Node, dir graphcode.Direction, id uint32, flags graphcode.PortFlags) *Port {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := &port{node: n, direction: dir, id: id, flags: flags}
	if dir == graphcode.Input {
		n.inputs = append(n.inputs, p)
		n.maxIn++
		if !flags.Has(graphcode.Optional) {
			n.requiredIn++
		}
	} else {
		n.outputs = append(n.outputs, p)
		n.maxOut++
	}
	portCheck(g, p)
	return p
}

// RemovePort detaches p from its node. p must first be unlinked from any
// peer with UnlinkPorts.
func (g *Graph) RemovePort(p *Port) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := p.node
	if p.direction == graphcode.Input {
		n.inputs = removePort(n.inputs, p)
		if !p.flags.Has(graphcode.Optional) && n.requiredIn > 0 {
			n.requiredIn--
		}
		if p.cell != nil && p.cell.Status == graphcode.HaveBuffer && n.readyIn > 0 {
			n.readyIn--
		}
	} else {
		n.outputs = removePort(n.outputs, p)
	}
	// The departed port's cell no longer counts toward readiness; only the
	// node's queue membership is re-evaluated.
	nodeCheck(g, n)
}

func removePort(ports []*port, target *port) []*port {
	for i, p := range ports {
		if p == target {
			return append(ports[:i], ports[i+1:]...)
		}
	}
	return ports
}

// LinkPorts connects an output port to an input port. Buffers flow from
// out to in once both sides have a format, buffers, and a shared I/O
// cell bound via SetPortIO.
func (g *Graph) LinkPorts(out, in *Port) error {
	if out.direction != graphcode.Output {
		return graphcode.InvalidPortf("LinkPorts: first argument must be an output port")
	}
	if in.direction != graphcode.Input {
		return graphcode.InvalidPortf("LinkPorts: second argument must be an input port")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out.peer = in
	in.peer = out
	return nil
}

// UnlinkPorts disconnects a previously linked output/input pair.
func (g *Graph) UnlinkPorts(out, in *Port) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out.peer = nil
	in.peer = nil
}

// SetPortIO binds the shared I/O cell two linked peer ports hand buffers
// off through. Both the producing and the consuming port are expected to
// be bound to the *same* cell.
func (g *Graph) SetPortIO(p *Port, cell *graphio.Cell) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p.cell = cell
	portCheck(g, p)
}

// portCheck re-evaluates a node's readiness after one of its input
// ports' cell status changed, enqueueing or dequeuing the node from the
// ready list accordingly. Must be called with g.mu held.
func portCheck(g *Graph, p *port) {
	n := p.node
	// Only an input port's cell counts toward readiness; checking an
	// output port (as AddPort and SetPortIO do for both directions) must
	// not inflate the producer's own counter.
	if p.direction == graphcode.Input && p.cell != nil && p.cell.Status == graphcode.HaveBuffer {
		n.readyIn++
	}
	nodeCheck(g, n)
}

// nodeCheck re-evaluates only the node's ready-queue membership against
// its current counters. Idempotent with respect to queue membership: push
// and remove both no-op when the node is already in the desired state.
func nodeCheck(g *Graph, n *node) {
	if n.requiredIn > 0 && n.readyIn == n.requiredIn {
		n.action = actionIn
		g.ready.push(n)
	} else {
		g.ready.remove(n)
	}
}
