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

// maxBuffers bounds the node's fixed buffer pool.
const maxBuffers = 16

// buffer is one slot in the node's fixed pool: a payload, its last
// stamped header metadata, and whether it is currently checked out to a
// consumer.
type buffer struct {
	id          uint32
	data        []byte
	outstanding bool
	seq         uint64
	pts         int64
}

// bufferPool is a fixed-capacity array of buffers, addressed by buffer
// id, plus a FIFO free list of the ones not currently outstanding.
type bufferPool struct {
	buffers [maxBuffers]buffer
	n       int
	empty   []uint32
}

func newBufferPool() *bufferPool {
	p := &bufferPool{}
	for i := range p.buffers {
		p.buffers[i].id = uint32(i)
	}
	return p
}

// use (re)populates the pool with n buffers of the given size. Any
// buffers already outstanding are dropped before the fresh bind.
func (p *bufferPool) use(n int, size int) error {
	if n > maxBuffers {
		return errTooManyBuffers(n)
	}
	p.clear()
	for i := 0; i < n; i++ {
		p.buffers[i].data = make([]byte, size)
		p.empty = append(p.empty, uint32(i))
	}
	p.n = n
	return nil
}

// clear empties the pool on format change or shutdown.
func (p *bufferPool) clear() {
	p.n = 0
	p.empty = p.empty[:0]
	for i := range p.buffers {
		p.buffers[i].data = nil
		p.buffers[i].outstanding = false
	}
}

// acquire dequeues the first free buffer, marking it outstanding. It
// reports ok=false if the pool is exhausted.
func (p *bufferPool) acquire() (id uint32, ok bool) {
	if len(p.empty) == 0 {
		return 0, false
	}
	id = p.empty[0]
	p.empty = p.empty[1:]
	p.buffers[id].outstanding = true
	return id, true
}

// release returns buffer id to the free list. It is a no-op if the
// buffer was not outstanding.
func (p *bufferPool) release(id uint32) {
	if int(id) >= len(p.buffers) || !p.buffers[id].outstanding {
		return
	}
	p.buffers[id].outstanding = false
	p.empty = append(p.empty, id)
}

func (p *bufferPool) validID(id uint32) bool {
	return int(id) < p.n
}

// stamp records the header metadata (sequence number and presentation
// timestamp) attached to a buffer at production time.
func (p *bufferPool) stamp(id uint32, seq uint64, pts int64) {
	p.buffers[id].seq = seq
	p.buffers[id].pts = pts
}

// header returns the sequence number and presentation timestamp last
// stamped onto buffer id.
func (p *bufferPool) header(id uint32) (seq uint64, pts int64) {
	b := p.buffers[id]
	return b.seq, b.pts
}

type errTooManyBuffers int

func (e errTooManyBuffers) Error() string {
	return "source: too many buffers requested"
}
