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

package dataloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/streamgraph/core/api/graphcode"
)

type chanSource chan struct{}

func (s chanSource) Fire() { s <- struct{}{} }

func TestNotifyRunsSourceOnLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := New()
	require.NoError(t, l.Start())
	defer func() { require.NoError(t, l.Stop()) }()

	src := make(chanSource, 1)
	require.NoError(t, l.AddSource(src))

	l.Notify(src)
	<-src
}

func TestNotifyUnregisteredSourceIsDropped(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := New()
	require.NoError(t, l.Start())
	defer func() { require.NoError(t, l.Stop()) }()

	src := make(chanSource, 1)
	l.Notify(src)

	select {
	case <-src:
		t.Fatal("an unregistered source must not fire")
	default:
	}
}

func TestAddRemoveSource(t *testing.T) {
	l := New()
	src := make(chanSource, 1)

	err := l.AddSource(nil)
	assert.Equal(t, graphcode.InvalidArguments, graphcode.CodeOf(err))

	require.NoError(t, l.AddSource(src))
	require.NoError(t, l.RemoveSource(src))

	err = l.RemoveSource(src)
	assert.Equal(t, graphcode.InvalidArguments, graphcode.CodeOf(err))
}

func TestInvokeSerializesAgainstNotify(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := New()
	require.NoError(t, l.Start())
	defer func() { require.NoError(t, l.Stop()) }()

	// Both Invoke bodies and source fires run on the one loop goroutine,
	// so unsynchronized state shared between them is safe.
	counter := 0
	src := &countSource{n: &counter}
	require.NoError(t, l.AddSource(src))

	for i := 0; i < 100; i++ {
		l.Notify(src)
		require.NoError(t, l.Invoke(func() { counter++ }))
	}

	var final int
	require.NoError(t, l.Invoke(func() { final = counter }))
	assert.Equal(t, 200, final)
}

func TestInvokeBeforeStart(t *testing.T) {
	l := New()
	err := l.Invoke(func() {})
	assert.Equal(t, graphcode.WrongState, graphcode.CodeOf(err))
}

func TestInvokeAfterStop(t *testing.T) {
	l := New()
	require.NoError(t, l.Start())
	require.NoError(t, l.Stop())

	err := l.Invoke(func() {})
	assert.Error(t, err)
}

type countSource struct{ n *int }

func (s *countSource) Fire() { *s.n++ }
