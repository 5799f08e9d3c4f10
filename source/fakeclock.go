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

// Forked from github.com/andres-erbsen/clock to isolate a missing nap.

import (
	"container/heap"
	"runtime"
	"sync"
	"time"
)

// FakeClock is a clock that only moves forward when Add or Set is called,
// for deterministic tests of the reference source node's pacing.
type FakeClock struct {
	sync.Mutex

	now    time.Time
	timers fakeTimers
}

var _ Clock = (*FakeClock)(nil)

// NewFakeClock returns a FakeClock starting at the Unix epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Unix(0, 0)}
}

// Add moves the fake clock forward by d, firing any timers due in between.
// Callers must not call Add from more than one goroutine at a time.
func (fc *FakeClock) Add(d time.Duration) {
	fc.Lock()
	end := fc.now.Add(d)
	fc.flush(end)
	if fc.now.Before(end) {
		fc.now = end
	}
	fc.Unlock()
	nap()
}

// Set advances the fake clock to the given absolute time.
func (fc *FakeClock) Set(end time.Time) {
	fc.Lock()
	fc.flush(end)
	if fc.now.Before(end) {
		fc.now = end
	}
	fc.Unlock()
	nap()
}

func (fc *FakeClock) flush(end time.Time) {
	for len(fc.timers) > 0 && !fc.timers[0].time.After(end) {
		t := fc.timers[0]
		heap.Pop(&fc.timers)
		if fc.now.Before(t.time) {
			fc.now = t.time
		}
		fc.Unlock()
		t.tick()
		fc.Lock()
	}
}

// FakeTimer produces a timer that will emit a time some duration after
// now, exposing the fake timer's concrete type.
func (fc *FakeClock) FakeTimer(d time.Duration) *FakeTimer {
	fc.Lock()
	defer fc.Unlock()

	t := &FakeTimer{
		c:     make(chan time.Time, 1),
		clock: fc,
		time:  fc.now.Add(d),
	}
	fc.addTimer(t)
	return t
}

// Timer produces a timer that will emit a time some duration after now.
func (fc *FakeClock) Timer(d time.Duration) Timer {
	return fc.FakeTimer(d)
}

func (fc *FakeClock) addTimer(t *FakeTimer) {
	heap.Push(&fc.timers, t)
	fc.flush(fc.now)
}

// After produces a channel that will emit the time after a duration passes.
func (fc *FakeClock) After(d time.Duration) <-chan time.Time {
	return fc.Timer(d).C()
}

// FakeAfterFunc waits for the duration to elapse and then executes f in its
// own goroutine, returning the concrete *FakeTimer.
func (fc *FakeClock) FakeAfterFunc(d time.Duration, f func()) *FakeTimer {
	t := fc.FakeTimer(d)
	go func() {
		<-t.c
		f()
	}()
	nap()
	return t
}

// AfterFunc waits for the duration to elapse and then executes f.
func (fc *FakeClock) AfterFunc(d time.Duration, f func()) Timer {
	return fc.FakeAfterFunc(d, f)
}

// Now returns the current time on the fake clock.
func (fc *FakeClock) Now() time.Time {
	fc.Lock()
	defer fc.Unlock()
	return fc.now
}

// Sleep blocks until the fake clock has advanced by d. The clock must be
// moved forward from a separate goroutine.
func (fc *FakeClock) Sleep(d time.Duration) {
	<-fc.After(d)
}

// FakeTimer is a single scheduled fake-clock event.
type FakeTimer struct {
	c     chan time.Time
	time  time.Time
	clock *FakeClock
	index int
}

// C returns the channel the timer sends its fire time on.
func (t *FakeTimer) C() <-chan time.Time {
	return t.c
}

func (t *FakeTimer) tick() {
	select {
	case t.c <- t.time:
	default:
	}
	nap()
}

// Reset reschedules the timer to fire d after the clock's current time.
func (t *FakeTimer) Reset(d time.Duration) bool {
	t.time = t.clock.now.Add(d)

	select {
	case <-t.c:
	default:
	}

	if t.index >= 0 {
		heap.Fix(&t.clock.timers, t.index)
		return true
	}
	heap.Push(&t.clock.timers, t)
	return false
}

// Stop removes the timer from its clock's schedule.
func (t *FakeTimer) Stop() bool {
	if t.index < 0 {
		return false
	}

	select {
	case <-t.c:
	default:
	}

	t.clock.timers.Swap(t.index, len(t.clock.timers)-1)
	t.clock.timers.Pop()
	heap.Fix(&t.clock.timers, t.index)
	return true
}

func nap() {
	runtime.Gosched()
}

// fakeTimers is a heap of pending fake timers, ordered by fire time.
type fakeTimers []*FakeTimer

func (ts fakeTimers) Len() int { return len(ts) }

func (ts fakeTimers) Swap(i, j int) {
	a, b := ts[i], ts[j]
	ts[i], ts[j] = b, a
	a.index, b.index = j, i
}

func (ts fakeTimers) Less(i, j int) bool {
	return ts[i].time.Before(ts[j].time)
}

func (ts *fakeTimers) Push(t interface{}) {
	mt := t.(*FakeTimer)
	mt.index = len(*ts)
	*ts = append(*ts, mt)
}

func (ts *fakeTimers) Pop() interface{} {
	t := (*ts)[len(*ts)-1]
	*ts = (*ts)[:len(*ts)-1]
	t.index = -1
	return t
}
