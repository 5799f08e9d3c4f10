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

// port is the graph's bookkeeping record for one of a node's ports: its
// direction, its shared I/O cell, and the peer port it is linked to, if
// any.
type port struct {
	node *node

	direction graphcode.Direction
	id        uint32
	flags     graphcode.PortFlags

	cell *graphio.Cell
	peer *port
}

// Port is the opaque handle callers use to refer to a port they added to
// a node.
type Port = port

// Direction returns the port's direction.
func (p *port) Direction() graphcode.Direction { return p.direction }

// ID returns the port's node-local id.
func (p *port) ID() uint32 { return p.id }

// Peer returns the port this port is linked to, or nil if unlinked.
func (p *port) Peer() *port { return p.peer }

// Cell returns the I/O cell currently bound to this port, or nil.
func (p *port) Cell() *graphio.Cell { return p.cell }
