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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamgraph/core/api/graphcode"
	"github.com/streamgraph/core/api/graphio"
)

func TestLinkPortsIsSymmetric(t *testing.T) {
	g := New()
	a := g.AddNode("a", nil, 0)
	b := g.AddNode("b", nil, 0)
	out := g.AddPort(a, graphcode.Output, 0, 0)
	in := g.AddPort(b, graphcode.Input, 0, 0)

	require.NoError(t, g.LinkPorts(out, in))
	assert.Same(t, in, out.Peer())
	assert.Same(t, out, in.Peer())

	g.UnlinkPorts(out, in)
	assert.Nil(t, out.Peer())
	assert.Nil(t, in.Peer())
}

func TestLinkPortsRejectsWrongDirections(t *testing.T) {
	g := New()
	a := g.AddNode("a", nil, 0)
	b := g.AddNode("b", nil, 0)
	out := g.AddPort(a, graphcode.Output, 0, 0)
	in := g.AddPort(b, graphcode.Input, 0, 0)

	err := g.LinkPorts(in, out)
	assert.Equal(t, graphcode.InvalidPort, graphcode.CodeOf(err))
	assert.Nil(t, in.Peer())
}

func TestPureSourceNeverEnqueuedByPortCheck(t *testing.T) {
	g := New()
	src := g.AddNode("src", nil, 0)
	out := g.AddPort(src, graphcode.Output, 0, 0)

	cell := graphio.New()
	cell.Status = graphcode.HaveBuffer
	cell.BufferID = 0
	g.SetPortIO(out, cell)

	assert.False(t, src.inReady,
		"a node with no required inputs is only ever driven by an explicit trigger")
	assert.Zero(t, src.requiredIn)
}

func TestRemovePortAdjustsCounters(t *testing.T) {
	g := New()
	sink := g.AddNode("sink", nil, 0)
	p0 := g.AddPort(sink, graphcode.Input, 0, 0)
	p1 := g.AddPort(sink, graphcode.Input, 1, graphcode.Optional)
	require.Equal(t, uint32(2), sink.maxIn)
	require.Equal(t, uint32(1), sink.requiredIn)

	g.RemovePort(p0)
	assert.Zero(t, sink.requiredIn, "removing a required input must release its readiness obligation")
	assert.False(t, sink.inReady)

	g.RemovePort(p1)
	assert.Zero(t, sink.requiredIn)
	assert.Empty(t, sink.inputs)
}

func TestRemoveQueuedPortDequeuesNode(t *testing.T) {
	g := New()
	sink := g.AddNode("sink", nil, 0)
	p := g.AddPort(sink, graphcode.Input, 0, 0)

	cell := graphio.New()
	cell.Status = graphcode.HaveBuffer
	cell.BufferID = 0
	g.SetPortIO(p, cell)
	require.True(t, sink.inReady, "a satisfied required input must enqueue the node")

	g.RemovePort(p)
	assert.False(t, sink.inReady, "removing the port must not leave the node queued")
	assert.True(t, g.ready.empty())
}

func TestIntrospect(t *testing.T) {
	g := New()
	src := g.AddNode("src", nil, Async)
	sink := g.AddNode("sink", nil, 0)
	out := g.AddPort(src, graphcode.Output, 0, 0)
	in := g.AddPort(sink, graphcode.Input, 0, graphcode.Optional)
	require.NoError(t, g.LinkPorts(out, in))

	cell := graphio.New()
	cell.Status = graphcode.HaveBuffer
	cell.BufferID = 2
	g.SetPortIO(out, cell)
	g.SetPortIO(in, cell)

	status := g.Introspect()
	require.Len(t, status.Nodes, 2)

	srcStatus := status.Nodes[0]
	assert.Equal(t, "src", srcStatus.Name)
	assert.True(t, srcStatus.Async)
	assert.Equal(t, "out", srcStatus.Action)
	require.Len(t, srcStatus.Outputs, 1)
	assert.Equal(t, "sink", srcStatus.Outputs[0].PeerNode)
	assert.Equal(t, "have-buffer", srcStatus.Outputs[0].CellStatus)
	assert.Equal(t, uint32(2), srcStatus.Outputs[0].BufferID)

	sinkStatus := status.Nodes[1]
	require.Len(t, sinkStatus.Inputs, 1)
	assert.True(t, sinkStatus.Inputs[0].Optional)
	assert.True(t, sinkStatus.Inputs[0].Linked)

	// The snapshot is detached from the live graph.
	status.Nodes[0].Name = "mutated"
	assert.Equal(t, "src", g.Introspect().Nodes[0].Name)
}
