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

// Package graphresult collects the small error-merging helpers the graph
// package needs for operations that touch more than one node and must
// not let one node's failure hide another's: tearing down a graph
// (Graph.Close).
package graphresult

import (
	"go.uber.org/multierr"

	"github.com/streamgraph/core/api/graphcode"
)

// Errors accumulates independent failures from a batch of per-node
// operations without short-circuiting on the first one.
type Errors struct {
	err error
}

// Append records err, if non-nil, alongside any previously recorded
// errors.
func (e *Errors) Append(err error) {
	e.err = multierr.Append(e.err, err)
}

// Err returns the merged error, or nil if nothing was appended.
func (e *Errors) Err() error {
	return e.err
}

// IgnoreNotImplemented drops a NotImplemented failure before it is
// appended: a node that does not support a command (e.g. Pause on a
// node with no notion of pausing) is not a teardown failure.
func IgnoreNotImplemented(err error) error {
	if graphcode.CodeOf(err) == graphcode.NotImplemented {
		return nil
	}
	return err
}
