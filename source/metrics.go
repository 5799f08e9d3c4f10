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

import "go.uber.org/net/metrics"

// nodeMetrics holds the reference source node's instrumentation. Every
// field is nil-safe: a Node constructed without a metrics scope simply
// records nothing.
type nodeMetrics struct {
	produced  *metrics.Counter
	underruns *metrics.Counter
	poolDepth *metrics.Gauge
}

func newNodeMetrics(scope *metrics.Scope) nodeMetrics {
	var m nodeMetrics
	if scope == nil {
		return m
	}
	m.produced, _ = scope.Counter(metrics.Spec{
		Name: "source_buffers_produced",
		Help: "Total number of buffers this source node has produced.",
	})
	m.underruns, _ = scope.Counter(metrics.Spec{
		Name: "source_underruns",
		Help: "Total number of times production stalled on an empty pool.",
	})
	m.poolDepth, _ = scope.Gauge(metrics.Spec{
		Name: "source_pool_depth",
		Help: "Number of buffers currently available for production.",
	})
	return m
}

func (m nodeMetrics) incProduced() {
	if m.produced != nil {
		m.produced.Inc()
	}
}

func (m nodeMetrics) incUnderruns() {
	if m.underruns != nil {
		m.underruns.Inc()
	}
}

func (m nodeMetrics) storePoolDepth(depth int) {
	if m.poolDepth != nil {
		m.poolDepth.Store(int64(depth))
	}
}
