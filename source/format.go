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
	"bytes"
	"encoding/binary"

	"github.com/streamgraph/core/api/graphnode"
)

// wireFormat is this node's negotiated format. The general node contract
// treats graphnode.Format as an opaque blob; the reference source node
// still needs something concrete to negotiate, so it defines its own
// minimal fixed-layout encoding.
type wireFormat struct {
	Rate      uint32
	FrameSize uint32
}

// EncodeFormat builds this node's format blob from a sample rate in Hz
// and a frame size in bytes, for hosts negotiating the output port.
func EncodeFormat(rate, frameSize uint32) graphnode.Format {
	return encodeFormat(wireFormat{Rate: rate, FrameSize: frameSize})
}

func encodeFormat(f wireFormat) graphnode.Format {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, f)
	return graphnode.Format(buf.Bytes())
}

func decodeFormat(b graphnode.Format) (wireFormat, bool) {
	var f wireFormat
	if len(b) != 8 {
		return f, false
	}
	if err := binary.Read(bytes.NewReader(b), binary.BigEndian, &f); err != nil {
		return f, false
	}
	return f, true
}

// wireProps is this node's opaque configuration, analogous to wireFormat.
type wireProps struct {
	Live    bool
	Pattern uint32
}

func encodeProps(p wireProps) graphnode.Props {
	var buf bytes.Buffer
	var liveByte byte
	if p.Live {
		liveByte = 1
	}
	buf.WriteByte(liveByte)
	var patternBuf [4]byte
	binary.BigEndian.PutUint32(patternBuf[:], p.Pattern)
	buf.Write(patternBuf[:])
	return graphnode.Props(buf.Bytes())
}

func decodeProps(b graphnode.Props) (wireProps, bool) {
	var p wireProps
	if len(b) != 5 {
		return p, false
	}
	p.Live = b[0] != 0
	p.Pattern = binary.BigEndian.Uint32(b[1:5])
	return p, true
}

// allocBuffersParam is the buffer-allocation requirement this node
// offers through PortEnumParams index 0: size, stride, min/max buffer
// count, and alignment.
type allocBuffersParam struct {
	Size       uint32
	Stride     uint32
	MinBuffers uint32
	MaxBuffers uint32
	Align      uint32
}

func encodeAllocBuffersParam(p allocBuffersParam) graphnode.Format {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, p)
	return graphnode.Format(buf.Bytes())
}

// metaEnableParam is the header-metadata offer exposed through
// PortEnumParams index 1.
type metaEnableParam struct {
	HeaderSize uint32
}

func encodeMetaEnableParam(p metaEnableParam) graphnode.Format {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, p)
	return graphnode.Format(buf.Bytes())
}
