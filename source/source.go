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

// Package source implements a reference source node: a single-output
// node that produces buffers either on demand (pulled by the scheduler's
// ProcessOutput) or, once a host callback is installed, paced by a
// timer and pushed asynchronously through support.DataLoop.
package source

import (
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/streamgraph/core/api/graphcode"
	"github.com/streamgraph/core/api/graphio"
	"github.com/streamgraph/core/api/graphnode"
	"github.com/streamgraph/core/api/support"
)

const (
	portID             = 0
	defaultBufferSize  = 4096
	defaultBufferAlign = 16
	minPoolBuffers     = 2
	maxPoolBuffers     = maxBuffers
)

// Node is the reference source node. A Node has exactly one output port,
// id 0, and no input ports; the port set is fixed.
type Node struct {
	mu sync.Mutex

	support support.Bag
	log     *zap.Logger

	props wireProps

	callbacks graphnode.Callbacks

	haveFormat bool
	format     wireFormat

	pool *bufferPool

	// underrun and bufferCount are written under mu but read lock-free by
	// Underrun/BuffersProduced, so hosts and metrics scrapers can poll them
	// without contending with the data loop.
	underrun    atomic.Bool
	bufferCount atomic.Uint64

	metrics nodeMetrics

	started bool

	cell *graphio.Cell

	pacer *pacer
}

var _ graphnode.Node = (*Node)(nil)
var _ support.Source = (*Node)(nil)

// Option configures a Node at construction.
type Option func(*Node)

// WithClock overrides the node's notion of wall-clock time, for
// deterministic tests of live pacing.
func WithClock(clock Clock) Option {
	return func(n *Node) { n.pacer.clock = clock }
}

// WithLive starts the node with its live property already set, so it
// paces output against wall-clock time rather than against consumer
// demand from first use.
func WithLive(live bool) Option {
	return func(n *Node) {
		n.props.Live = live
		n.pacer.live = live
	}
}

// WithPattern sets the node's initial pattern property.
func WithPattern(pattern uint32) Option {
	return func(n *Node) { n.props.Pattern = pattern }
}

// New constructs a reference source node. bag.TypeMap must be non-nil;
// bag.DataLoop may be nil for a node that will only ever be driven
// synchronously by the scheduler (no HaveOutput callback will be
// installable).
func New(bag support.Bag, opts ...Option) (*Node, error) {
	if bag.TypeMap == nil {
		return nil, graphcode.InvalidArgumentsf("source: a type map is required")
	}

	n := &Node{
		support: bag,
		log:     bag.Logger(),
		pool:    newBufferPool(),
		metrics: newNodeMetrics(bag.Metrics),
	}
	n.pacer = newPacer(NewRealClock(), bag.DataLoop, n)

	for _, opt := range opts {
		opt(n)
	}

	n.log.Info("source node initialized")
	return n, nil
}

// NewNode adapts New to the graphnode.Constructor shape.
func NewNode(bag support.Bag) (graphnode.Node, error) {
	return New(bag)
}

func (n *Node) checkPortNum(dir graphcode.Direction, id uint32) error {
	if dir != graphcode.Output || id != portID {
		return graphcode.InvalidPortf("source: no such port %s/%d", dir, id)
	}
	return nil
}

// checkPort additionally requires an I/O cell to already be bound.
func (n *Node) checkPort(dir graphcode.Direction, id uint32) error {
	if err := n.checkPortNum(dir, id); err != nil {
		return err
	}
	if n.cell == nil {
		return graphcode.WrongStatef("source: port %d has no I/O cell bound", id)
	}
	return nil
}

// GetProps returns the node's current configuration.
func (n *Node) GetProps() (graphnode.Props, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return encodeProps(n.props), nil
}

// SetProps replaces the node's configuration. A nil Props resets to
// defaults (live=false, pattern=0).
func (n *Node) SetProps(p graphnode.Props) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if p == nil {
		n.props = wireProps{}
	} else {
		decoded, ok := decodeProps(p)
		if !ok {
			return graphcode.InvalidArgumentsf("source: malformed props")
		}
		n.props = decoded
	}
	n.pacer.live = n.props.Live
	return nil
}

// SendCommand executes Start or Pause.
func (n *Node) SendCommand(cmd graphcode.Command) (graphnode.CommandResult, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch cmd {
	case graphcode.Start:
		if !n.haveFormat {
			return graphnode.CommandDone, graphcode.Newf(graphcode.NoFormat, "source: Start before a format is negotiated")
		}
		if n.pool.n == 0 {
			return graphnode.CommandDone, graphcode.Newf(graphcode.NoBuffers, "source: Start before buffers are bound")
		}
		if n.started {
			return graphnode.CommandDone, nil
		}
		n.started = true
		n.pacer.start()
		n.pacer.set(true)
		return graphnode.CommandDone, nil

	case graphcode.Pause:
		if !n.haveFormat {
			return graphnode.CommandDone, graphcode.Newf(graphcode.NoFormat, "source: Pause before a format is negotiated")
		}
		if n.pool.n == 0 {
			return graphnode.CommandDone, graphcode.Newf(graphcode.NoBuffers, "source: Pause before buffers are bound")
		}
		if !n.started {
			return graphnode.CommandDone, nil
		}
		n.started = false
		n.pacer.set(false)
		return graphnode.CommandDone, nil

	default:
		return graphnode.CommandDone, graphcode.NotImplementedf("source: command %v not implemented", cmd)
	}
}

// SetCallbacks installs the host callback table. Installing a non-nil
// HaveOutput requires a data loop to have been supplied at construction.
func (n *Node) SetCallbacks(cb graphnode.Callbacks) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.support.DataLoop == nil && cb.HaveOutput != nil {
		return graphcode.Newf(graphcode.Error, "source: a data loop is required for async operation")
	}
	n.callbacks = cb
	n.pacer.haveOutput = cb.HaveOutput != nil
	return nil
}

// GetNPorts reports this node's fixed single output port and no inputs.
func (n *Node) GetNPorts() (nIn, maxIn, nOut, maxOut int) {
	return 0, 0, 1, 1
}

// GetPortIDs returns {0} for Output and nil for Input.
func (n *Node) GetPortIDs(dir graphcode.Direction) []uint32 {
	if dir == graphcode.Output {
		return []uint32{portID}
	}
	return nil
}

// AddPort always fails: this node's port set is fixed.
func (n *Node) AddPort(graphcode.Direction, uint32) error {
	return graphcode.NotImplementedf("source: ports are fixed")
}

// RemovePort always fails: this node's port set is fixed.
func (n *Node) RemovePort(graphcode.Direction, uint32) error {
	return graphcode.NotImplementedf("source: ports are fixed")
}

// PortEnumFormats reports no negotiable formats beyond validating the
// port; a real format-aware node would enumerate candidates here.
func (n *Node) PortEnumFormats(dir graphcode.Direction, id uint32, index int, filter graphnode.Format) (graphnode.Format, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.checkPort(dir, id); err != nil {
		return nil, err
	}
	return nil, graphcode.Newf(graphcode.EnumEnd, "source: no more formats")
}

// PortSetFormat negotiates, or with a nil format clears, the output
// port's format. A derived pacing period is installed from the format's
// rate when one is given; clearing the format drops any bound buffers.
func (n *Node) PortSetFormat(dir graphcode.Direction, id uint32, format graphnode.Format) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.checkPort(dir, id); err != nil {
		return err
	}

	if format == nil {
		n.haveFormat = false
		n.clearBuffersLocked()
		return nil
	}

	decoded, ok := decodeFormat(format)
	if !ok {
		return graphcode.InvalidArgumentsf("source: malformed format")
	}
	n.format = decoded
	n.haveFormat = true

	if decoded.Rate > 0 {
		n.pacer.setPeriod(time.Second / time.Duration(decoded.Rate))
	}
	return nil
}

// PortGetFormat returns the negotiated format, or graphcode.NoFormat if
// none is set.
func (n *Node) PortGetFormat(dir graphcode.Direction, id uint32) (graphnode.Format, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.checkPort(dir, id); err != nil {
		return nil, err
	}
	if !n.haveFormat {
		return nil, graphcode.Newf(graphcode.NoFormat, "source: no format negotiated")
	}
	return encodeFormat(n.format), nil
}

// PortGetInfo returns the output port's capability flags and rate.
func (n *Node) PortGetInfo(dir graphcode.Direction, id uint32) (graphcode.PortInfo, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.checkPort(dir, id); err != nil {
		return graphcode.PortInfo{}, err
	}
	flags := graphcode.CanUseBuffers | graphcode.NoRef
	if n.props.Live {
		flags |= graphcode.Live
	}
	info := graphcode.PortInfo{Flags: flags}
	if n.haveFormat {
		info.Rate = n.format.Rate
	}
	return info, nil
}

// PortEnumParams offers a buffer-allocation requirement (index 0) and a
// header-metadata offer (index 1).
func (n *Node) PortEnumParams(dir graphcode.Direction, id uint32, index int) (graphnode.Format, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.checkPort(dir, id); err != nil {
		return nil, err
	}

	switch index {
	case 0:
		return encodeAllocBuffersParam(allocBuffersParam{
			Size:       defaultBufferSize,
			Stride:     1,
			MinBuffers: minPoolBuffers,
			MaxBuffers: maxPoolBuffers,
			Align:      defaultBufferAlign,
		}), nil
	case 1:
		return encodeMetaEnableParam(metaEnableParam{HeaderSize: 16}), nil
	default:
		return nil, graphcode.NotImplementedf("source: no param at index %d", index)
	}
}

// PortSetParam is not supported; this node has no settable parameters.
func (n *Node) PortSetParam(graphcode.Direction, uint32, graphnode.Format) error {
	return graphcode.NotImplementedf("source: port_set_param not implemented")
}

// PortUseBuffers binds externally allocated buffers to the output port.
// A zero-length slice clears the pool.
func (n *Node) PortUseBuffers(dir graphcode.Direction, id uint32, buffers []graphnode.BufferID) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.checkPort(dir, id); err != nil {
		return err
	}
	if !n.haveFormat {
		return graphcode.Newf(graphcode.NoFormat, "source: buffers bound before a format is negotiated")
	}

	n.clearBuffersLocked()
	if len(buffers) == 0 {
		return nil
	}
	size := int(n.format.FrameSize)
	if size == 0 {
		size = defaultBufferSize
	}
	if err := n.pool.use(len(buffers), size); err != nil {
		return graphcode.InvalidArgumentsf("source: %s", err)
	}
	n.underrun.Store(false)
	n.metrics.storePoolDepth(len(n.pool.empty))
	return nil
}

// PortAllocBuffers is not supported; this node only binds buffers the
// host allocated.
func (n *Node) PortAllocBuffers(dir graphcode.Direction, id uint32, params []graphnode.Format) ([]graphnode.BufferID, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.checkPort(dir, id); err != nil {
		return nil, err
	}
	if !n.haveFormat {
		return nil, graphcode.Newf(graphcode.NoFormat, "source: port_alloc_buffers before a format is negotiated")
	}
	return nil, graphcode.NotImplementedf("source: port_alloc_buffers not implemented")
}

// PortSetIO attaches the shared I/O cell for the output port.
func (n *Node) PortSetIO(dir graphcode.Direction, id uint32, cell *graphio.Cell) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.checkPortNum(dir, id); err != nil {
		return err
	}
	n.cell = cell
	return nil
}

// PortReuseBuffer returns a buffer to the free pool once the consumer is
// done with it.
func (n *Node) PortReuseBuffer(id uint32, buffer graphnode.BufferID) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if id != portID {
		return graphcode.InvalidPortf("source: no such port %d", id)
	}
	if n.pool.n == 0 {
		return graphcode.Newf(graphcode.NoBuffers, "source: no buffers bound")
	}
	if !n.pool.validID(uint32(buffer)) {
		return graphcode.Newf(graphcode.InvalidBufferID, "source: buffer %d unknown", buffer)
	}
	n.reuseBufferLocked(uint32(buffer))
	return nil
}

// ProcessInput always fails: this node has no input port.
func (n *Node) ProcessInput() (graphcode.Code, error) {
	return graphcode.OK, graphcode.NotImplementedf("source: no input to process")
}

// ProcessOutput advances the output port by one step.
func (n *Node) ProcessOutput() (graphcode.Code, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.processOutputLocked()
}

func (n *Node) processOutputLocked() (graphcode.Code, error) {
	if n.cell == nil {
		return graphcode.OK, graphcode.WrongStatef("source: process output before an I/O cell is bound")
	}
	if n.cell.Status == graphcode.HaveBuffer {
		return graphcode.HaveBuffer, nil
	}
	if n.cell.HasBuffer() {
		n.reuseBufferLocked(n.cell.BufferID)
		n.cell.BufferID = graphio.InvalidBufferID
	}
	if n.callbacks.HaveOutput == nil && n.cell.Status == graphcode.NeedBuffer {
		return n.makeBufferLocked(), nil
	}
	return graphcode.OK, nil
}

// makeBufferLocked dequeues a free buffer and publishes it on the I/O
// cell, re-arming the pacer for the next one. It must be called with
// n.mu held.
func (n *Node) makeBufferLocked() graphcode.Code {
	id, ok := n.pool.acquire()
	if !ok {
		n.pacer.set(false)
		n.underrun.Store(true)
		n.metrics.incUnderruns()
		n.log.Error("source node out of buffers")
		return graphcode.OutOfBuffers
	}

	seq := n.bufferCount.Inc() - 1
	n.pool.stamp(id, seq, n.pacer.pts())
	n.metrics.incProduced()
	n.metrics.storePoolDepth(len(n.pool.empty))
	n.pacer.advance()
	n.pacer.set(true)

	n.cell.BufferID = id
	n.cell.Status = graphcode.HaveBuffer
	return graphcode.HaveBuffer
}

// BufferHeader returns the sequence number and presentation timestamp
// last stamped onto buffer id, for hosts/tests that want to inspect the
// metadata ProcessOutput attaches without decoding the opaque buffer
// payload itself.
func (n *Node) BufferHeader(id graphnode.BufferID) (seq uint64, pts int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pool.header(uint32(id))
}

// BuffersProduced returns the number of buffers this node has produced
// since construction. Safe to call from any goroutine.
func (n *Node) BuffersProduced() uint64 {
	return n.bufferCount.Load()
}

// Underrun reports whether the node is currently stalled on an empty
// pool. Safe to call from any goroutine.
func (n *Node) Underrun() bool {
	return n.underrun.Load()
}

func (n *Node) reuseBufferLocked(id uint32) {
	n.pool.release(id)
	n.metrics.storePoolDepth(len(n.pool.empty))
	if n.underrun.Load() {
		n.pacer.set(true)
		n.underrun.Store(false)
	}
}

func (n *Node) clearBuffersLocked() {
	if n.pool.n == 0 {
		return
	}
	n.pool.clear()
	n.metrics.storePoolDepth(0)
	n.started = false
	n.pacer.set(false)
}

// Fire implements support.Source: it is invoked on the data loop
// goroutine once the pacer's timer has fired, the asynchronous
// counterpart to a scheduler-driven ProcessOutput.
func (n *Node) Fire() {
	n.mu.Lock()
	code := n.makeBufferLocked()
	cb := n.callbacks.HaveOutput
	n.mu.Unlock()

	if code == graphcode.HaveBuffer && cb != nil {
		cb()
	}
}

// ClockReporter exposes the node's wall-clock readout, a second
// capability a handle factory offering this node would expose alongside
// the node interface.
type ClockReporter interface {
	GetTime() (rateHz int32, ticks int64, monotonicTime int64, err error)
}

// Clock returns this node's ClockReporter capability.
func (n *Node) Clock() ClockReporter { return (*clockFace)(n) }

type clockFace Node

func (c *clockFace) GetTime() (int32, int64, int64, error) {
	now := (*Node)(c).pacer.clock.Now().UnixNano()
	return int32(time.Second), now, now, nil
}
