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

package graphcode

// Direction identifies which side of a node a port belongs to.
type Direction int

const (
	// Input marks a port that receives buffers from a peer.
	Input Direction = iota
	// Output marks a port that produces buffers for a peer.
	Output
)

func (d Direction) String() string {
	if d == Input {
		return "input"
	}
	return "output"
}

// PortFlags is a bitset of port attributes, reported by PortInfo and
// consulted by the graph scheduler (Optional) and by hosts negotiating
// buffers (CanUseBuffers, CanAllocBuffers).
type PortFlags uint32

const (
	// Optional marks an input port that does not contribute to a node's
	// required-input counter.
	Optional PortFlags = 1 << iota
	// Live marks a port paced by wall-clock time rather than by consumer
	// demand.
	Live
	// CanUseBuffers marks a port that accepts externally allocated
	// buffers via PortUseBuffers.
	CanUseBuffers
	// CanAllocBuffers marks a port that can allocate its own buffers via
	// port_alloc_buffers.
	CanAllocBuffers
	// NoRef marks a port whose buffers carry no internal refcounting;
	// ownership transfer is purely a convention enforced by the I/O cell
	// protocol.
	NoRef
)

// Has reports whether all bits of other are set in f.
func (f PortFlags) Has(other PortFlags) bool {
	return f&other == other
}

// PortInfo is the capability/negotiation summary returned by
// Node.PortGetInfo.
type PortInfo struct {
	Flags PortFlags
	// Rate is the port's nominal rate in Hz (e.g. an audio sample rate),
	// or zero if not meaningful for this port's media type.
	Rate uint32
}

// Command is a typed command understood by Node.SendCommand.
type Command int

const (
	// Start instructs a node to begin producing/consuming buffers.
	// Requires a negotiated format and bound buffers.
	Start Command = iota
	// Pause instructs a node to stop producing/consuming buffers without
	// releasing its format or buffers.
	Pause
)

func (c Command) String() string {
	switch c {
	case Start:
		return "start"
	case Pause:
		return "pause"
	default:
		return "unknown"
	}
}
