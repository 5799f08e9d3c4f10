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
	"go.uber.org/zap"

	"github.com/streamgraph/core/api/graphcode"
	"github.com/streamgraph/core/api/graphnode"
)

// Flag is a bitset of per-node scheduling flags.
type Flag uint32

const (
	// Async marks a node whose scheduled function completes out of band:
	// its output never lands synchronously in the pass that triggered it,
	// so the synchrony guard (a pass may not re-enter its own trigger) is
	// waived when upstream demand reaches such a node.
	Async Flag = 1 << iota
)

// Has reports whether f contains other.
func (f Flag) Has(other Flag) bool { return f&other != 0 }

// action selects which of ProcessInput/ProcessOutput (or neither, for a
// node parked to have its state interpreted) the scheduler will invoke
// the next time this node is popped off the ready queue.
type action int

const (
	actionCheck action = iota
	actionIn
	actionOut
)

func (a action) String() string {
	switch a {
	case actionCheck:
		return "check"
	case actionIn:
		return "in"
	case actionOut:
		return "out"
	default:
		return "unknown"
	}
}

// scheduleFunc is the node's schedule callback: given the node's current
// action, produce the flow-control code ProcessInput/ProcessOutput
// would have returned. AddNode installs defaultSchedule for every node.
type scheduleFunc func(*node) graphcode.Code

// Node is the graph's own bookkeeping record for one processing element:
// its ports, its readiness counters, and its position in the ready queue.
// It is deliberately unexported; callers only ever hold a *Node handle
// returned by Graph.AddNode.
type node struct {
	name string
	impl graphnode.Node
	log  *zap.Logger

	flags    Flag
	state    graphcode.Code
	action   action
	schedule scheduleFunc

	inReady bool

	inputs  []*port
	outputs []*port

	// maxIn and maxOut count ports added in each direction. Only input
	// ports ever contribute to requiredIn.
	maxIn  uint32
	maxOut uint32

	requiredIn uint32
	readyIn    uint32
}

func defaultSchedule(n *node) graphcode.Code {
	var (
		code graphcode.Code
		err  error
	)
	switch n.action {
	case actionIn:
		code, err = n.impl.ProcessInput()
	case actionOut:
		code, err = n.impl.ProcessOutput()
	default:
		return graphcode.Error
	}
	if err != nil {
		n.log.Error("node schedule step failed",
			zap.String("node", n.name),
			zap.Stringer("action", n.action),
			zap.Error(err))
		return graphcode.CodeOf(err)
	}
	return code
}

// Name returns the name the node was added to the graph with.
func (n *node) Name() string { return n.name }

// State returns the flow-control code the node's last scheduling step
// produced.
func (n *node) State() graphcode.Code { return n.state }

// Node is the opaque handle callers use to refer to a node they added to
// a Graph.
type Node = node
