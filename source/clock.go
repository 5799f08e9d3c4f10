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

import "time"

// Clock abstracts wall-clock time so the reference source node's pacing
// can be driven deterministically in tests, the way rate limiters and
// timeout tests elsewhere in the ecosystem substitute a fake clock for
// time.Now/time.AfterFunc.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
	AfterFunc(d time.Duration, f func()) Timer
	Sleep(d time.Duration)
	Timer(d time.Duration) Timer
}

// Timer is the subset of *time.Timer's behavior a Clock implementation
// exposes.
type Timer interface {
	Stop() bool
	Reset(d time.Duration) bool
	C() <-chan time.Time
}

// RealClock implements Clock by wrapping the time package directly.
type RealClock struct{}

var _ Clock = RealClock{}

// NewRealClock returns a Clock backed by real wall-clock time.
func NewRealClock() RealClock { return RealClock{} }

// After produces a channel that will emit the time after a duration passes.
func (RealClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// AfterFunc waits for the duration to elapse and then executes a function.
func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return &realTimer{t: time.AfterFunc(d, f)}
}

// Now returns the current wall-clock time.
func (RealClock) Now() time.Time { return time.Now() }

// Sleep blocks the calling goroutine for the given duration.
func (RealClock) Sleep(d time.Duration) { time.Sleep(d) }

// Timer returns a timer that fires once after d.
func (RealClock) Timer(d time.Duration) Timer {
	return &realTimer{t: time.NewTimer(d)}
}

type realTimer struct {
	t *time.Timer
}

func (t *realTimer) Stop() bool               { return t.t.Stop() }
func (t *realTimer) Reset(d time.Duration) bool { return t.t.Reset(d) }
func (t *realTimer) C() <-chan time.Time      { return t.t.C }
