/*
Copyright 2026 The AjguDB Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package kvengine

import (
	"bytes"
	"sort"
	"sync"
)

// NewMemory returns a KeyValue backed only by an in-process sorted
// slice. It's useful for tests and for callers that want a
// throwaway graph with no file on disk; it is not a durable engine.
func NewMemory() KeyValue {
	return &memKV{}
}

type memKV struct {
	mu   sync.Mutex
	keys [][]byte
	vals [][]byte
}

func (m *memKV) find(key []byte) int {
	return sort.Search(len(m.keys), func(i int) bool {
		return bytes.Compare(m.keys[i], key) >= 0
	})
}

func (m *memKV) Get(key []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(key)
	if i < len(m.keys) && bytes.Equal(m.keys[i], key) {
		return append([]byte(nil), m.vals[i]...), nil
	}
	return nil, ErrNotFound
}

func (m *memKV) Set(key, value []byte) error {
	if err := CheckSizes(key, value); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(key, value)
	return nil
}

func (m *memKV) setLocked(key, value []byte) {
	i := m.find(key)
	k := append([]byte(nil), key...)
	v := append([]byte(nil), value...)
	if i < len(m.keys) && bytes.Equal(m.keys[i], key) {
		m.vals[i] = v
		return
	}
	m.keys = append(m.keys, nil)
	copy(m.keys[i+1:], m.keys[i:])
	m.keys[i] = k
	m.vals = append(m.vals, nil)
	copy(m.vals[i+1:], m.vals[i:])
	m.vals[i] = v
}

func (m *memKV) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteLocked(key)
	return nil
}

func (m *memKV) deleteLocked(key []byte) {
	i := m.find(key)
	if i < len(m.keys) && bytes.Equal(m.keys[i], key) {
		m.keys = append(m.keys[:i], m.keys[i+1:]...)
		m.vals = append(m.vals[:i], m.vals[i+1:]...)
	}
}

func (m *memKV) Scan(start, end []byte) Cursor {
	m.mu.Lock()
	defer m.mu.Unlock()
	from := m.find(start)
	to := len(m.keys)
	if end != nil {
		to = m.find(end)
	}
	it := &memCursor{}
	if from < to {
		it.keys = append([][]byte(nil), m.keys[from:to]...)
		it.vals = append([][]byte(nil), m.vals[from:to]...)
	}
	it.pos = -1
	return it
}

func (m *memKV) NewBatch() Batch {
	return &memBatch{kv: m}
}

func (m *memKV) Close() error { return nil }

type memCursor struct {
	keys [][]byte
	vals [][]byte
	pos  int
}

func (c *memCursor) Next() bool {
	c.pos++
	return c.pos < len(c.keys)
}

func (c *memCursor) Key() []byte   { return c.keys[c.pos] }
func (c *memCursor) Value() []byte { return c.vals[c.pos] }
func (c *memCursor) Err() error    { return nil }
func (c *memCursor) Close() error  { return nil }

type memOp struct {
	key    []byte
	value  []byte
	delete bool
}

type memBatch struct {
	kv  *memKV
	ops []memOp
}

func (b *memBatch) Set(key, value []byte) {
	b.ops = append(b.ops, memOp{key: key, value: value})
}

func (b *memBatch) Delete(key []byte) {
	b.ops = append(b.ops, memOp{key: key, delete: true})
}

func (b *memBatch) Commit() error {
	for _, op := range b.ops {
		if !op.delete {
			if err := CheckSizes(op.key, op.value); err != nil {
				return err
			}
		}
	}
	b.kv.mu.Lock()
	defer b.kv.mu.Unlock()
	for _, op := range b.ops {
		if op.delete {
			b.kv.deleteLocked(op.key)
		} else {
			b.kv.setLocked(op.key, op.value)
		}
	}
	return nil
}
