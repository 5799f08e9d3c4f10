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

// Package graphcode defines the result codes, port flags, and command
// vocabulary shared by every node contract implementation and by the graph
// scheduler. It has no dependency on the scheduler or any node
// implementation.
package graphcode

// Code is the result of a node operation, a port check, or a scheduling
// step. Unlike a plain Go error, a Code is also meaningful as ordinary
// control flow: NeedBuffer and HaveBuffer drive the scheduler, they are not
// failures.
type Code int

const (
	// OK indicates the operation completed with nothing further to report.
	OK Code = iota
	// NeedBuffer indicates the node requests a buffer from upstream (input
	// side) or has none to offer yet (output side).
	NeedBuffer
	// HaveBuffer indicates a buffer is available on the port's I/O cell.
	HaveBuffer
	// NoFormat indicates the port has no negotiated format yet.
	NoFormat
	// NoBuffers indicates the port has no buffer pool bound yet.
	NoBuffers
	// OutOfBuffers indicates the node's buffer pool is exhausted.
	OutOfBuffers
	// InvalidPort indicates the direction/id pair does not name a port.
	InvalidPort
	// InvalidBufferID indicates a buffer id unknown to the node's pool.
	InvalidBufferID
	// InvalidArguments indicates a caller passed malformed input.
	InvalidArguments
	// WrongState indicates the operation is not legal in the node's current
	// state (e.g. ProcessOutput called before PortSetIO).
	WrongState
	// NotImplemented indicates the node does not support the operation.
	NotImplemented
	// UnknownInterface indicates a requested capability is not exposed by
	// this node.
	UnknownInterface
	// EnumEnd indicates an enumeration (formats, params) has no more
	// entries.
	EnumEnd
	// Error indicates the node entered an unrecoverable state. The
	// scheduler stops propagating from a node in this state until the host
	// resets it.
	Error
)

var names = [...]string{
	OK:               "ok",
	NeedBuffer:       "need-buffer",
	HaveBuffer:       "have-buffer",
	NoFormat:         "no-format",
	NoBuffers:        "no-buffers",
	OutOfBuffers:     "out-of-buffers",
	InvalidPort:      "invalid-port",
	InvalidBufferID:  "invalid-buffer-id",
	InvalidArguments: "invalid-arguments",
	WrongState:       "wrong-state",
	NotImplemented:   "not-implemented",
	UnknownInterface: "unknown-interface",
	EnumEnd:          "enum-end",
	Error:            "error",
}

// String returns the lower-kebab-case name of the code.
func (c Code) String() string {
	if c < 0 || int(c) >= len(names) {
		return "unknown"
	}
	return names[c]
}

// IsFlowControl reports whether the code is a normal part of the
// scheduling protocol rather than an error.
func (c Code) IsFlowControl() bool {
	return c == OK || c == NeedBuffer || c == HaveBuffer || c == OutOfBuffers
}

// IsFatal reports whether the code leaves the node unusable until the host
// intervenes.
func (c Code) IsFatal() bool {
	return c == Error
}
