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

import "github.com/streamgraph/core/api/graphcode"

// Schedule runs one scheduling pass starting from node. It enqueues node
// for its current action (normally actionOut, set by AddNode, or
// actionIn once a downstream portCheck has marked it ready), then drains
// the ready queue:
//
//   - An actionIn/actionOut node has its schedule function invoked. The
//     result becomes its state. If the node just ran its input side and
//     is the very node this pass started from, the pass leaves it off
//     the queue (the synchrony guard: a trigger node is never re-entered
//     within its own pass, except through the Async escape hatch
//     below). Otherwise it is requeued with actionCheck so its state can
//     be interpreted.
//
//   - An actionCheck node's state is interpreted:
//
//     NeedBuffer means this node is starved on one or more required
//     inputs; readyIn is reset to 0 and each input port is examined. A
//     peer whose own cell is still NeedBuffer is asked to produce (its
//     action becomes actionOut and it is enqueued) unless that peer is
//     the pass's own trigger node and is not Async: pushing the trigger
//     node back onto the ready list with actionOut would re-enter it
//     within the same pass. A peer whose cell already reads OK
//     contributes to readyIn directly, since that data is already
//     waiting.
//
//     HaveBuffer means this node just produced output; each output
//     port's peer port is re-checked (portCheck), which may mark the
//     downstream node ready and enqueue it.
//
// The loop terminates when the queue empties; every node's schedule
// function is expected to reach a fixed point (OK, or HaveBuffer with no
// further upstream demand) rather than ping-pong forever.
func (g *Graph) Schedule(start *Node) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.ready.push(start)

	for !g.ready.empty() {
		n := g.ready.pop()

		switch n.action {
		case actionIn, actionOut:
			n.state = n.schedule(n)
			if n.action == actionIn && n == start {
				continue
			}
			n.action = actionCheck
			g.ready.push(n)

		case actionCheck:
			switch n.state {
			case graphcode.NeedBuffer:
				n.readyIn = 0
				for _, p := range n.inputs {
					if p.cell == nil || p.peer == nil {
						continue
					}
					peerNode := p.peer.node
					switch p.cell.Status {
					case graphcode.NeedBuffer:
						if peerNode != start || peerNode.flags.Has(Async) {
							peerNode.action = actionOut
							g.ready.push(peerNode)
						}
					case graphcode.OK:
						n.readyIn++
					}
				}

			case graphcode.HaveBuffer:
				for _, p := range n.outputs {
					if p.peer != nil {
						portCheck(g, p.peer)
					}
				}
			}
		}
	}
}
