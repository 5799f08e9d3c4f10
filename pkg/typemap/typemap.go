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

// Package typemap provides a concurrency-safe string<->id interner, the
// default implementation of support.TypeMap. The typed-property schema
// built on top of these ids lives outside this module; the core only
// needs stable, process-local ids for naming formats, parameters, and
// commands.
package typemap

import "sync"

// Map is a concurrency-safe string<->id interner.
type Map struct {
	mu   sync.RWMutex
	ids  map[string]uint32
	back []string
}

// New returns an empty Map.
func New() *Map {
	return &Map{ids: make(map[string]uint32)}
}

// ID returns the interned id for name, assigning a new one if name has not
// been seen before.
func (m *Map) ID(name string) uint32 {
	m.mu.RLock()
	id, ok := m.ids[name]
	m.mu.RUnlock()
	if ok {
		return id
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.ids[name]; ok {
		return id
	}
	id = uint32(len(m.back))
	m.ids[name] = id
	m.back = append(m.back, name)
	return id
}

// Name returns the string registered for id, and false if id is unknown.
func (m *Map) Name(id uint32) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if int(id) >= len(m.back) {
		return "", false
	}
	return m.back[id], true
}

// Len returns the number of interned names.
func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.back)
}
