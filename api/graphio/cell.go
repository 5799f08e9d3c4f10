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

// Package graphio defines the port I/O cell: the minimum shared structure
// through which two peer ports hand off buffer ownership. It is
// deliberately the smallest package in the module: the cell has two
// fields and no behavior of its own beyond the field accessors, since the
// producer and consumer are the only two parties ever allowed to touch it.
package graphio

import "github.com/streamgraph/core/api/graphcode"

// InvalidBufferID is the sentinel meaning "no buffer referenced".
const InvalidBufferID uint32 = ^uint32(0)

// Cell is the shared, word-sized status block bound to one connected port
// pair. The producer transitions Status from NeedBuffer to HaveBuffer after
// writing BufferID; the consumer transitions it back after it is done with
// the buffer. No locking is required: the cooperative single-threaded
// scheduling discipline is what makes this safe, not atomics on the
// cell itself. A Cell must only ever be touched by the two ports it is
// bound to, never by the graph.
type Cell struct {
	// Status is one of OK, NeedBuffer, HaveBuffer, or an error code.
	Status graphcode.Code
	// BufferID identifies the buffer currently referenced by this cell,
	// or InvalidBufferID if none.
	BufferID uint32
}

// New returns a Cell in its initial state: no buffer, status OK.
func New() *Cell {
	return &Cell{Status: graphcode.OK, BufferID: InvalidBufferID}
}

// Reset clears the cell back to its initial state.
func (c *Cell) Reset() {
	c.Status = graphcode.OK
	c.BufferID = InvalidBufferID
}

// HasBuffer reports whether the cell currently references a buffer.
func (c *Cell) HasBuffer() bool {
	return c.BufferID != InvalidBufferID
}
