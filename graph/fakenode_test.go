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
	"github.com/streamgraph/core/api/graphnode"
)

// fakeNode is a bare-bones graphnode.Node whose ProcessInput/ProcessOutput
// and SendCommand are swapped in per test. Every other capability returns
// graphcode.NotImplemented, since scheduler and topology tests drive the
// graph's own bookkeeping directly and never need format negotiation or
// buffer provisioning.
type fakeNode struct {
	processInput  func() (graphcode.Code, error)
	processOutput func() (graphcode.Code, error)
	sendCommand   func(graphcode.Command) (graphnode.CommandResult, error)
}

var _ graphnode.Node = (*fakeNode)(nil)

func (f *fakeNode) GetProps() (graphnode.Props, error) { return nil, nil }
func (f *fakeNode) SetProps(graphnode.Props) error      { return nil }

func (f *fakeNode) SendCommand(cmd graphcode.Command) (graphnode.CommandResult, error) {
	if f.sendCommand == nil {
		return graphnode.CommandDone, nil
	}
	return f.sendCommand(cmd)
}

func (f *fakeNode) SetCallbacks(graphnode.Callbacks) error { return nil }

func (f *fakeNode) GetNPorts() (nIn, maxIn, nOut, maxOut int) { return 0, 0, 0, 0 }
func (f *fakeNode) GetPortIDs(graphcode.Direction) []uint32   { return nil }

func (f *fakeNode) AddPort(graphcode.Direction, uint32) error    { return graphcode.NotImplementedf("fake: add port") }
func (f *fakeNode) RemovePort(graphcode.Direction, uint32) error { return graphcode.NotImplementedf("fake: remove port") }

func (f *fakeNode) PortEnumFormats(graphcode.Direction, uint32, int, graphnode.Format) (graphnode.Format, error) {
	return nil, graphcode.Newf(graphcode.EnumEnd, "fake: no formats")
}
func (f *fakeNode) PortSetFormat(graphcode.Direction, uint32, graphnode.Format) error { return nil }
func (f *fakeNode) PortGetFormat(graphcode.Direction, uint32) (graphnode.Format, error) {
	return nil, graphcode.Newf(graphcode.NoFormat, "fake: no format")
}
func (f *fakeNode) PortGetInfo(graphcode.Direction, uint32) (graphcode.PortInfo, error) {
	return graphcode.PortInfo{}, nil
}

func (f *fakeNode) PortEnumParams(graphcode.Direction, uint32, int) (graphnode.Format, error) {
	return nil, graphcode.NotImplementedf("fake: no params")
}
func (f *fakeNode) PortSetParam(graphcode.Direction, uint32, graphnode.Format) error {
	return graphcode.NotImplementedf("fake: set param")
}

func (f *fakeNode) PortUseBuffers(graphcode.Direction, uint32, []graphnode.BufferID) error { return nil }
func (f *fakeNode) PortAllocBuffers(graphcode.Direction, uint32, []graphnode.Format) ([]graphnode.BufferID, error) {
	return nil, graphcode.NotImplementedf("fake: alloc buffers")
}

func (f *fakeNode) PortSetIO(graphcode.Direction, uint32, *graphio.Cell) error { return nil }
func (f *fakeNode) PortReuseBuffer(uint32, graphnode.BufferID) error           { return nil }

func (f *fakeNode) ProcessInput() (graphcode.Code, error) {
	if f.processInput == nil {
		return graphcode.OK, nil
	}
	return f.processInput()
}

func (f *fakeNode) ProcessOutput() (graphcode.Code, error) {
	if f.processOutput == nil {
		return graphcode.OK, nil
	}
	return f.processOutput()
}
