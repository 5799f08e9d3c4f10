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

// readyQueue is the scheduler's work list: the set of nodes the current
// scheduling pass still needs to visit. A node is never enqueued twice;
// inReady tracks membership so push and remove stay idempotent.
type readyQueue struct {
	items []*node
}

func (q *readyQueue) push(n *node) {
	if n.inReady {
		return
	}
	n.inReady = true
	q.items = append(q.items, n)
}

func (q *readyQueue) pop() *node {
	if len(q.items) == 0 {
		return nil
	}
	n := q.items[0]
	q.items = q.items[1:]
	n.inReady = false
	return n
}

func (q *readyQueue) remove(n *node) {
	if !n.inReady {
		return
	}
	for i, item := range q.items {
		if item == n {
			q.items = append(q.items[:i], q.items[i+1:]...)
			break
		}
	}
	n.inReady = false
}

func (q *readyQueue) empty() bool {
	return len(q.items) == 0
}
