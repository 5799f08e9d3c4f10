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
	"github.com/streamgraph/core/internal/introspection"
)

// Introspect returns a point-in-time snapshot of the graph's topology and
// scheduling state. The snapshot is detached: mutating it, or the graph,
// after the call has no effect on the other.
func (g *Graph) Introspect() introspection.GraphStatus {
	g.mu.Lock()
	defer g.mu.Unlock()

	status := introspection.GraphStatus{
		Nodes: make([]introspection.NodeStatus, 0, len(g.nodes)),
	}
	for _, n := range g.nodes {
		status.Nodes = append(status.Nodes, introspectNode(n))
		if n.inReady {
			status.Ready = append(status.Ready, n.name)
		}
	}
	return status
}

func introspectNode(n *node) introspection.NodeStatus {
	ns := introspection.NodeStatus{
		Name:       n.name,
		Async:      n.flags.Has(Async),
		State:      n.state.String(),
		Action:     n.action.String(),
		MaxIn:      n.maxIn,
		MaxOut:     n.maxOut,
		RequiredIn: n.requiredIn,
		ReadyIn:    n.readyIn,
	}
	for _, p := range n.inputs {
		ns.Inputs = append(ns.Inputs, introspectPort(p))
	}
	for _, p := range n.outputs {
		ns.Outputs = append(ns.Outputs, introspectPort(p))
	}
	return ns
}

func introspectPort(p *port) introspection.PortStatus {
	ps := introspection.PortStatus{
		ID:       p.id,
		Optional: p.flags.Has(graphcode.Optional),
		Linked:   p.peer != nil,
	}
	if p.peer != nil {
		ps.PeerNode = p.peer.node.name
	}
	if p.cell != nil {
		ps.CellStatus = p.cell.Status.String()
		ps.HasBuffer = p.cell.HasBuffer()
		if ps.HasBuffer {
			ps.BufferID = p.cell.BufferID
		}
	}
	return ps
}
