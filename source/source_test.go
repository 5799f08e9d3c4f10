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

package source

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamgraph/core/api/graphcode"
	"github.com/streamgraph/core/api/graphio"
	"github.com/streamgraph/core/api/graphnode"
	"github.com/streamgraph/core/api/support"
	"github.com/streamgraph/core/api/support/supporttest"
	"github.com/streamgraph/core/pkg/typemap"
)

func newTestBag() support.Bag {
	return support.Bag{TypeMap: typemap.New()}
}

// newBoundNode returns a node with an I/O cell bound, a 8000 Hz format
// negotiated, and nbufs buffers in its pool: the state SendCommand(Start)
// requires.
func newBoundNode(t *testing.T, nbufs int, opts ...Option) (*Node, *graphio.Cell) {
	t.Helper()

	n, err := New(newTestBag(), opts...)
	require.NoError(t, err)

	cell := graphio.New()
	require.NoError(t, n.PortSetIO(graphcode.Output, 0, cell))
	require.NoError(t, n.PortSetFormat(graphcode.Output, 0, encodeFormat(wireFormat{Rate: 8000, FrameSize: 256})))

	ids := make([]graphnode.BufferID, nbufs)
	for i := range ids {
		ids[i] = graphnode.BufferID(i)
	}
	require.NoError(t, n.PortUseBuffers(graphcode.Output, 0, ids))
	return n, cell
}

func TestNewRequiresTypeMap(t *testing.T) {
	_, err := New(support.Bag{})
	require.Error(t, err)
	assert.Equal(t, graphcode.InvalidArguments, graphcode.CodeOf(err))
}

func TestFixedPortConfiguration(t *testing.T) {
	n, err := New(newTestBag())
	require.NoError(t, err)

	nIn, maxIn, nOut, maxOut := n.GetNPorts()
	assert.Zero(t, nIn)
	assert.Zero(t, maxIn)
	assert.Equal(t, 1, nOut)
	assert.Equal(t, 1, maxOut)

	assert.Equal(t, []uint32{0}, n.GetPortIDs(graphcode.Output))
	assert.Nil(t, n.GetPortIDs(graphcode.Input))

	assert.Equal(t, graphcode.NotImplemented, graphcode.CodeOf(n.AddPort(graphcode.Input, 1)))
	assert.Equal(t, graphcode.NotImplemented, graphcode.CodeOf(n.RemovePort(graphcode.Output, 0)))
}

func TestPortValidation(t *testing.T) {
	n, err := New(newTestBag())
	require.NoError(t, err)

	err = n.PortSetIO(graphcode.Input, 0, graphio.New())
	assert.Equal(t, graphcode.InvalidPort, graphcode.CodeOf(err))

	err = n.PortSetIO(graphcode.Output, 3, graphio.New())
	assert.Equal(t, graphcode.InvalidPort, graphcode.CodeOf(err))

	// Operations beyond PortSetIO also need a bound cell.
	err = n.PortSetFormat(graphcode.Output, 0, encodeFormat(wireFormat{Rate: 8000}))
	assert.Equal(t, graphcode.WrongState, graphcode.CodeOf(err))
}

func TestPropsRoundTrip(t *testing.T) {
	n, err := New(newTestBag(), WithPattern(7))
	require.NoError(t, err)

	blob, err := n.GetProps()
	require.NoError(t, err)
	decoded, ok := decodeProps(blob)
	require.True(t, ok)
	assert.Equal(t, uint32(7), decoded.Pattern)
	assert.False(t, decoded.Live)

	require.NoError(t, n.SetProps(encodeProps(wireProps{Live: true, Pattern: 9})))
	info, err := n.PortGetInfo(graphcode.Output, 0)
	// PortGetInfo needs a cell bound first.
	assert.Equal(t, graphcode.WrongState, graphcode.CodeOf(err))
	_ = info

	require.NoError(t, n.PortSetIO(graphcode.Output, 0, graphio.New()))
	info, err = n.PortGetInfo(graphcode.Output, 0)
	require.NoError(t, err)
	assert.True(t, info.Flags.Has(graphcode.Live), "setting live via props must flip the Live port flag")
	assert.True(t, info.Flags.Has(graphcode.CanUseBuffers|graphcode.NoRef))

	require.NoError(t, n.SetProps(nil))
	info, err = n.PortGetInfo(graphcode.Output, 0)
	require.NoError(t, err)
	assert.False(t, info.Flags.Has(graphcode.Live), "nil props must reset live to its default")
}

func TestSetPropsRejectsMalformedBlob(t *testing.T) {
	n, err := New(newTestBag())
	require.NoError(t, err)
	err = n.SetProps(graphnode.Props{0x01})
	assert.Equal(t, graphcode.InvalidArguments, graphcode.CodeOf(err))
}

func TestFormatRoundTripAndClear(t *testing.T) {
	n, err := New(newTestBag())
	require.NoError(t, err)
	require.NoError(t, n.PortSetIO(graphcode.Output, 0, graphio.New()))

	_, err = n.PortGetFormat(graphcode.Output, 0)
	assert.Equal(t, graphcode.NoFormat, graphcode.CodeOf(err))

	want := wireFormat{Rate: 48000, FrameSize: 1024}
	require.NoError(t, n.PortSetFormat(graphcode.Output, 0, encodeFormat(want)))

	blob, err := n.PortGetFormat(graphcode.Output, 0)
	require.NoError(t, err)
	got, ok := decodeFormat(blob)
	require.True(t, ok)
	assert.Equal(t, want, got)

	info, err := n.PortGetInfo(graphcode.Output, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(48000), info.Rate)

	// Clearing the format also drops any bound buffers.
	require.NoError(t, n.PortUseBuffers(graphcode.Output, 0, []graphnode.BufferID{0, 1}))
	require.NoError(t, n.PortSetFormat(graphcode.Output, 0, nil))
	_, err = n.PortGetFormat(graphcode.Output, 0)
	assert.Equal(t, graphcode.NoFormat, graphcode.CodeOf(err))
	assert.Zero(t, n.pool.n, "clearing the format must clear the pool")
}

func TestUseBuffersRequiresFormat(t *testing.T) {
	n, err := New(newTestBag())
	require.NoError(t, err)
	require.NoError(t, n.PortSetIO(graphcode.Output, 0, graphio.New()))

	err = n.PortUseBuffers(graphcode.Output, 0, []graphnode.BufferID{0})
	assert.Equal(t, graphcode.NoFormat, graphcode.CodeOf(err))
}

func TestStartPreconditions(t *testing.T) {
	n, err := New(newTestBag())
	require.NoError(t, err)
	require.NoError(t, n.PortSetIO(graphcode.Output, 0, graphio.New()))

	_, err = n.SendCommand(graphcode.Start)
	assert.Equal(t, graphcode.NoFormat, graphcode.CodeOf(err))

	require.NoError(t, n.PortSetFormat(graphcode.Output, 0, encodeFormat(wireFormat{Rate: 8000})))
	_, err = n.SendCommand(graphcode.Start)
	assert.Equal(t, graphcode.NoBuffers, graphcode.CodeOf(err))

	require.NoError(t, n.PortUseBuffers(graphcode.Output, 0, []graphnode.BufferID{0, 1}))
	_, err = n.SendCommand(graphcode.Start)
	assert.NoError(t, err)

	// Start is idempotent once running.
	_, err = n.SendCommand(graphcode.Start)
	assert.NoError(t, err)

	_, err = n.SendCommand(graphcode.Pause)
	assert.NoError(t, err)

	_, err = n.SendCommand(graphcode.Command(42))
	assert.Equal(t, graphcode.NotImplemented, graphcode.CodeOf(err))
}

func TestSetCallbacksRequiresDataLoop(t *testing.T) {
	n, err := New(newTestBag())
	require.NoError(t, err)

	err = n.SetCallbacks(graphnode.Callbacks{HaveOutput: func() {}})
	assert.Equal(t, graphcode.Error, graphcode.CodeOf(err),
		"an async callback without a data loop must be refused")

	assert.NoError(t, n.SetCallbacks(graphnode.Callbacks{}),
		"clearing callbacks needs no data loop")
}

func TestSetCallbacksWithDataLoop(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	loop := supporttest.NewMockDataLoop(mockCtrl)

	bag := newTestBag()
	bag.DataLoop = loop
	n, err := New(bag)
	require.NoError(t, err)

	assert.NoError(t, n.SetCallbacks(graphnode.Callbacks{HaveOutput: func() {}}))
}

func TestProcessInputNotImplemented(t *testing.T) {
	n, err := New(newTestBag())
	require.NoError(t, err)
	_, err = n.ProcessInput()
	assert.Equal(t, graphcode.NotImplemented, graphcode.CodeOf(err))
}

func TestProcessOutputPull(t *testing.T) {
	n, cell := newBoundNode(t, 2)

	// A passive cell yields nothing.
	code, err := n.ProcessOutput()
	require.NoError(t, err)
	assert.Equal(t, graphcode.OK, code)

	// A consumer asking for data gets a buffer.
	cell.Status = graphcode.NeedBuffer
	code, err = n.ProcessOutput()
	require.NoError(t, err)
	assert.Equal(t, graphcode.HaveBuffer, code)
	assert.Equal(t, graphcode.HaveBuffer, cell.Status)
	assert.True(t, cell.HasBuffer(), "a HaveBuffer cell must reference a real buffer")
	assert.Equal(t, uint64(1), n.BuffersProduced())

	// An unconsumed buffer is left in flight, untouched.
	first := cell.BufferID
	code, err = n.ProcessOutput()
	require.NoError(t, err)
	assert.Equal(t, graphcode.HaveBuffer, code)
	assert.Equal(t, first, cell.BufferID)
	assert.Equal(t, uint64(1), n.BuffersProduced(), "no new buffer while one is in flight")
}

func TestProcessOutputRecyclesConsumedBuffer(t *testing.T) {
	n, cell := newBoundNode(t, 1)

	cell.Status = graphcode.NeedBuffer
	code, err := n.ProcessOutput()
	require.NoError(t, err)
	require.Equal(t, graphcode.HaveBuffer, code)
	id := cell.BufferID

	// The consumer is done: it flips the cell back to NeedBuffer but
	// leaves the buffer id in place, asking the producer to take it back.
	cell.Status = graphcode.NeedBuffer
	code, err = n.ProcessOutput()
	require.NoError(t, err)
	assert.Equal(t, graphcode.HaveBuffer, code, "the recycled buffer must immediately serve the next request")
	assert.Equal(t, id, cell.BufferID, "a single-buffer pool must hand the same buffer back out")
	assert.Equal(t, uint64(2), n.BuffersProduced())
}

func TestUnderrunAndReuse(t *testing.T) {
	n, cell := newBoundNode(t, 1)

	cell.Status = graphcode.NeedBuffer
	code, err := n.ProcessOutput()
	require.NoError(t, err)
	require.Equal(t, graphcode.HaveBuffer, code)
	id := cell.BufferID

	// The consumer holds on to the buffer; the next request underruns.
	cell.Status = graphcode.NeedBuffer
	cell.BufferID = graphio.InvalidBufferID
	code, err = n.ProcessOutput()
	require.NoError(t, err)
	assert.Equal(t, graphcode.OutOfBuffers, code)
	assert.True(t, n.Underrun())

	// Scenario S6: an explicit reuse refills the pool and clears the
	// underrun, so the next request produces again.
	require.NoError(t, n.PortReuseBuffer(0, graphnode.BufferID(id)))
	assert.False(t, n.Underrun())

	code, err = n.ProcessOutput()
	require.NoError(t, err)
	assert.Equal(t, graphcode.HaveBuffer, code)
	assert.Equal(t, graphcode.HaveBuffer, cell.Status)
}

func TestPortReuseBufferValidation(t *testing.T) {
	n, _ := newBoundNode(t, 2)

	err := n.PortReuseBuffer(5, 0)
	assert.Equal(t, graphcode.InvalidPort, graphcode.CodeOf(err))

	err = n.PortReuseBuffer(0, 99)
	assert.Equal(t, graphcode.InvalidBufferID, graphcode.CodeOf(err))

	empty, err2 := New(newTestBag())
	require.NoError(t, err2)
	err = empty.PortReuseBuffer(0, 0)
	assert.Equal(t, graphcode.NoBuffers, graphcode.CodeOf(err))
}

func TestEnumParams(t *testing.T) {
	n, _ := newBoundNode(t, 1)

	blob, err := n.PortEnumParams(graphcode.Output, 0, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, blob)

	blob, err = n.PortEnumParams(graphcode.Output, 0, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, blob)

	_, err = n.PortEnumParams(graphcode.Output, 0, 2)
	assert.Equal(t, graphcode.NotImplemented, graphcode.CodeOf(err))
}

func TestEnumFormatsEnds(t *testing.T) {
	n, _ := newBoundNode(t, 1)
	_, err := n.PortEnumFormats(graphcode.Output, 0, 0, nil)
	assert.Equal(t, graphcode.EnumEnd, graphcode.CodeOf(err))
}

func TestTooManyBuffersRejected(t *testing.T) {
	n, err := New(newTestBag())
	require.NoError(t, err)
	require.NoError(t, n.PortSetIO(graphcode.Output, 0, graphio.New()))
	require.NoError(t, n.PortSetFormat(graphcode.Output, 0, encodeFormat(wireFormat{Rate: 8000})))

	ids := make([]graphnode.BufferID, maxBuffers+1)
	err = n.PortUseBuffers(graphcode.Output, 0, ids)
	assert.Equal(t, graphcode.InvalidArguments, graphcode.CodeOf(err))
}

func TestClockCapability(t *testing.T) {
	fc := NewFakeClock()
	n, err := New(newTestBag(), WithClock(fc))
	require.NoError(t, err)

	rate, ticks, mono, err := n.Clock().GetTime()
	require.NoError(t, err)
	assert.Equal(t, int32(1e9), rate)
	assert.Equal(t, fc.Now().UnixNano(), ticks)
	assert.Equal(t, ticks, mono)
}
