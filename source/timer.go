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
	"time"

	"github.com/streamgraph/core/api/support"
)

// fallbackPeriod is the pacing interval used when no negotiated format
// tells us a real rate. One nanosecond is too small to mean anything as
// a pacing interval; it exists only to make the timer fire again on the
// next loop iteration, and is kept as a degenerate fallback rather than
// silently inventing a plausible-looking rate.
const fallbackPeriod = time.Nanosecond

// pacer arms and re-arms a Clock timer to drive a live or async source's
// production. Each fire schedules src to run on loop (or, with no loop
// configured, calls src.Fire directly, which is only safe for
// single-threaded tests).
type pacer struct {
	clock Clock
	timer Timer
	loop  support.DataLoop
	src   support.Source

	live       bool
	haveOutput bool
	period     time.Duration

	startTime time.Time
	elapsed   time.Duration
}

func newPacer(clock Clock, loop support.DataLoop, src support.Source) *pacer {
	if clock == nil {
		clock = NewRealClock()
	}
	return &pacer{clock: clock, loop: loop, src: src, period: fallbackPeriod}
}

// setPeriod installs the pacing interval derived from a negotiated
// format's rate; a non-positive duration is rejected in favor of the
// documented fallback.
func (p *pacer) setPeriod(d time.Duration) {
	if d <= 0 {
		d = fallbackPeriod
	}
	p.period = d
}

// armed reports whether this node needs a running timer at all: only if
// the host installed an async callback, or if the node is paced as live
// regardless of callbacks.
func (p *pacer) armed() bool {
	return p.haveOutput || p.live
}

// set arms or disarms the pacing timer.
func (p *pacer) set(enabled bool) {
	if !p.armed() {
		return
	}
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if !enabled {
		return
	}

	var wait time.Duration
	if p.live {
		target := p.startTime.Add(p.elapsed)
		wait = target.Sub(p.clock.Now())
		if wait < 0 {
			wait = 0
		}
	} else {
		wait = p.period
	}
	p.timer = p.clock.AfterFunc(wait, p.fire)
}

func (p *pacer) fire() {
	if p.loop != nil {
		p.loop.Notify(p.src)
		return
	}
	p.src.Fire()
}

// start resets the pacer's notion of elapsed time for a fresh
// SendCommand(Start).
func (p *pacer) start() {
	if p.live {
		p.startTime = p.clock.Now()
	} else {
		p.startTime = time.Time{}
	}
	p.elapsed = 0
}

// advance accounts for one buffer having been produced.
func (p *pacer) advance() {
	p.elapsed += p.period
}

// pts returns the presentation timestamp for the buffer about to be
// produced, before advance() accounts for it: start time plus elapsed
// time so far. A non-live node's start() leaves startTime at its zero
// value, so pts degenerates to elapsed alone rather than an offset from
// the year-1 zero time.
func (p *pacer) pts() int64 {
	if p.live {
		return p.startTime.Add(p.elapsed).UnixNano()
	}
	return p.elapsed.Nanoseconds()
}
