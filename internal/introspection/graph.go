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

// Package introspection defines the read-only snapshot types a Graph
// reports about its own topology and scheduling state, for debug
// endpoints and tests. The snapshot is plain data: taking one never
// blocks a scheduling pass longer than a single lock acquisition, and
// holding one never pins live graph structures.
package introspection

// GraphStatus is a point-in-time description of a graph.
type GraphStatus struct {
	Nodes []NodeStatus `json:"nodes"`
	Ready []string     `json:"ready"`
}

// NodeStatus describes one node's scheduling state.
type NodeStatus struct {
	Name       string       `json:"name"`
	Async      bool         `json:"async,omitempty"`
	State      string       `json:"state"`
	Action     string       `json:"action"`
	MaxIn      uint32       `json:"maxIn"`
	MaxOut     uint32       `json:"maxOut"`
	RequiredIn uint32       `json:"requiredIn"`
	ReadyIn    uint32       `json:"readyIn"`
	Inputs     []PortStatus `json:"inputs,omitempty"`
	Outputs    []PortStatus `json:"outputs,omitempty"`
}

// PortStatus describes one port and, if bound, its I/O cell.
type PortStatus struct {
	ID         uint32 `json:"id"`
	Optional   bool   `json:"optional,omitempty"`
	Linked     bool   `json:"linked"`
	PeerNode   string `json:"peerNode,omitempty"`
	CellStatus string `json:"cellStatus,omitempty"`
	BufferID   uint32 `json:"bufferId,omitempty"`
	HasBuffer  bool   `json:"hasBuffer,omitempty"`
}
