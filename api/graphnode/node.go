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

// Package graphnode defines the node contract: the fixed, polymorphic
// capability surface every node (source, sink, or filter) presents to the
// graph scheduler. The scheduler only ever calls through these
// interfaces, never down into a concrete node type.
package graphnode

import (
	"github.com/streamgraph/core/api/graphcode"
	"github.com/streamgraph/core/api/graphio"
	"github.com/streamgraph/core/api/support"
)

// Format is an opaque, sized, copyable blob describing a port's
// negotiated media format. Its internal structure belongs to the
// typed-property system that lives outside this module; the node
// contract only ever stores and compares these as byte spans.
type Format []byte

// Props is an opaque, sized, copyable configuration blob, analogous to
// Format but for node-wide (rather than port-local) settings.
type Props []byte

// CommandResult reports the outcome of SendCommand: either the command
// completed synchronously (graphcode.OK) or is in flight and will
// complete asynchronously via the node's callbacks.
type CommandResult int

const (
	// CommandDone indicates the command completed synchronously.
	CommandDone CommandResult = iota
	// CommandPending indicates the command is in flight; completion will
	// be signaled out of band (e.g. the reference source node's Start
	// arms a timer and returns immediately).
	CommandPending
)

// Callbacks is the table of host-supplied callbacks a node may invoke.
// SetCallbacks refuses a non-nil HaveOutput if the node requires a
// support.DataLoop to drive asynchronous production and none was
// supplied at construction.
type Callbacks struct {
	// HaveOutput is invoked by an async/live node when it has produced a
	// buffer outside of a scheduler-driven ProcessOutput call, so the host
	// can re-enter the scheduler (Graph.Schedule) for this node.
	HaveOutput func()
}

// Node is the fixed operation table every processing element implements.
// Invocation ordering follows a node's lifetime: properties and
// callbacks may be set at any time; ports must have a format and bound
// buffers before SendCommand
// (Start) succeeds; ProcessInput/ProcessOutput are only ever called by the
// graph scheduler once a port's I/O cell is bound.
type Node interface {
	// GetProps returns the node's current opaque configuration.
	GetProps() (Props, error)
	// SetProps replaces the node's configuration. A nil Props resets to
	// defaults.
	SetProps(Props) error

	// SendCommand executes a typed command (Start, Pause, ...).
	// Implementations return graphcode.NotImplemented for commands they do
	// not support, graphcode.NoFormat/NoBuffers for Start issued before
	// setup is complete.
	SendCommand(graphcode.Command) (CommandResult, error)

	// SetCallbacks installs the host callback table and its user data
	// analogue (the Go closures in Callbacks close over whatever state the
	// host needs, so there is no separate user_data parameter).
	SetCallbacks(Callbacks) error

	// GetNPorts returns the number of input and output ports currently
	// present, and the maximum number each direction supports (0 maximum
	// for a direction this node never uses, e.g. a pure source has zero
	// input ports and zero max input ports).
	GetNPorts() (nIn, maxIn, nOut, maxOut int)
	// GetPortIDs returns the node-local ids of all ports in the given
	// direction.
	GetPortIDs(graphcode.Direction) []uint32

	// AddPort adds a new port at runtime. Fixed-port nodes (like the
	// reference source node) return graphcode.NotImplemented.
	AddPort(graphcode.Direction, uint32) error
	// RemovePort removes a runtime-added port.
	RemovePort(graphcode.Direction, uint32) error

	// PortEnumFormats enumerates the formats a port supports, optionally
	// filtered. Returns graphcode.EnumEnd once index is past the last
	// format.
	PortEnumFormats(dir graphcode.Direction, id uint32, index int, filter Format) (Format, error)
	// PortSetFormat negotiates (or, with a nil format, clears) a port's
	// format.
	PortSetFormat(dir graphcode.Direction, id uint32, format Format) error
	// PortGetFormat returns a port's negotiated format, or
	// graphcode.NoFormat if none is set.
	PortGetFormat(dir graphcode.Direction, id uint32) (Format, error)
	// PortGetInfo returns a port's static capability/negotiation summary.
	PortGetInfo(dir graphcode.Direction, id uint32) (graphcode.PortInfo, error)

	// PortEnumParams enumerates a port's typed parameters (buffer layout
	// requirements, metadata offers, ...). Returns graphcode.NotImplemented
	// for ports with no parameters.
	PortEnumParams(dir graphcode.Direction, id uint32, index int) (Format, error)
	// PortSetParam applies a parameter previously obtained from
	// PortEnumParams (or constructed by the host).
	PortSetParam(dir graphcode.Direction, id uint32, param Format) error

	// PortUseBuffers binds an externally allocated set of buffers to a
	// port. A zero-length slice unbinds the pool.
	PortUseBuffers(dir graphcode.Direction, id uint32, buffers []BufferID) error
	// PortAllocBuffers asks the node to allocate its own buffers matching
	// params, returning the ids it assigned.
	PortAllocBuffers(dir graphcode.Direction, id uint32, params []Format) ([]BufferID, error)

	// PortSetIO attaches the shared I/O cell the graph scheduler and this
	// node's peer will use to hand off buffers on this port.
	PortSetIO(dir graphcode.Direction, id uint32, cell *graphio.Cell) error
	// PortReuseBuffer returns a buffer to the node's pool, once the
	// consumer (or producer, for an input port) is done referencing it.
	PortReuseBuffer(id uint32, buffer BufferID) error

	// ProcessInput advances an input-bearing node by one step, consuming
	// whatever its input cells offer. It may return NeedBuffer to request
	// upstream production.
	ProcessInput() (graphcode.Code, error)
	// ProcessOutput advances an output-bearing node by one step. If the
	// node's output cell already holds an unconsumed buffer,
	// ProcessOutput returns HaveBuffer unchanged without producing a new
	// one.
	ProcessOutput() (graphcode.Code, error)
}

// BufferID is a producer-chosen identifier, stable within one node's
// buffer pool. The scheduler never interprets it; only the owning node
// and the I/O cell (graphio.Cell.BufferID) do.
type BufferID uint32

// Constructor is the shape a node implementation's construction function
// takes: a support bag in, a Node (and an error, since construction can
// fail, e.g. on a missing TypeMap) out. The reference source node in
// package source follows this shape; it is not otherwise enforced by this
// interface, since different node kinds take different construction
// arguments (pattern, capacity, ...).
type Constructor func(support.Bag) (Node, error)
