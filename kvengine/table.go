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

import "sync"

// Table is a named, prefix-scoped view onto a shared KeyValue. The
// entity store's primary tables and secondary indices (vertices,
// vertices:labels, edges:outgoings, ...) are each one Table over the
// same underlying engine, so that a single engine-level Batch can
// atomically touch rows in several of them at once — exactly what
// Add/Update/Delete require (spec §3 "Lifecycle").
//
// Table pools its Cursor wrappers: Scan pulls one from the free list
// if available instead of allocating, and Close returns it. This is
// the adapter-level cursor recycling spec §4.2 requires ("the adapter
// MUST pool cursors per logical table").
type Table struct {
	kv     KeyValue
	prefix []byte

	mu   sync.Mutex
	free []*tableCursor
}

// NewTable returns a Table over kv namespaced by name. The namespace
// is the name followed by a NUL byte, so two Tables sharing the same
// underlying kv never collide as long as no table name contains NUL,
// even where one name is a prefix of another (vertices and
// vertices:labels).
func NewTable(kv KeyValue, name string) *Table {
	return &Table{kv: kv, prefix: append([]byte(name), 0)}
}

func (t *Table) prefixed(key []byte) []byte {
	out := make([]byte, 0, len(t.prefix)+len(key))
	out = append(out, t.prefix...)
	out = append(out, key...)
	return out
}

func (t *Table) Get(key []byte) ([]byte, error) {
	return t.kv.Get(t.prefixed(key))
}

// Put queues a set of key (scoped to this table) into an
// engine-level batch shared across tables.
func (t *Table) Put(b Batch, key, value []byte) {
	b.Set(t.prefixed(key), value)
}

// Delete queues a delete of key (scoped to this table) into an
// engine-level batch shared across tables.
func (t *Table) Delete(b Batch, key []byte) {
	b.Delete(t.prefixed(key))
}

// DeleteNow deletes a single key outside of any batch. Used for
// single-row mutations where no cross-table atomicity is needed.
func (t *Table) DeleteNow(key []byte) error {
	return t.kv.Delete(t.prefixed(key))
}

// SetNow sets a single key outside of any batch.
func (t *Table) SetNow(key, value []byte) error {
	return t.kv.Set(t.prefixed(key), value)
}

// Scan returns a cursor over this table's keys in [start, end),
// start and end given relative to the table (unprefixed). A nil end
// scans to the end of the table.
func (t *Table) Scan(start, end []byte) Cursor {
	pstart := t.prefixed(start)
	var pend []byte
	if end != nil {
		pend = t.prefixed(end)
	} else {
		// End of table: one past the last byte string sharing this
		// table's prefix.
		_, pend = prefixUpperBound(t.prefix)
	}

	tc := t.acquire()
	tc.inner = t.kv.Scan(pstart, pend)
	tc.closed = false
	return tc
}

func (t *Table) acquire() *tableCursor {
	t.mu.Lock()
	n := len(t.free)
	if n == 0 {
		t.mu.Unlock()
		return &tableCursor{table: t}
	}
	tc := t.free[n-1]
	t.free[n-1] = nil
	t.free = t.free[:n-1]
	t.mu.Unlock()
	return tc
}

func (t *Table) release(tc *tableCursor) {
	tc.inner = nil
	t.mu.Lock()
	t.free = append(t.free, tc)
	t.mu.Unlock()
}

// prefixUpperBound computes the smallest byte string that is not a
// continuation of prefix, i.e. the exclusive end of a prefix scan.
func prefixUpperBound(prefix []byte) (start, end []byte) {
	start = append([]byte(nil), prefix...)
	end = append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] != 0xff {
			end[i]++
			return start, end[:i+1]
		}
	}
	return start, nil
}

// tableCursor adapts an engine Cursor to strip this table's key
// prefix, and returns itself to the table's pool on Close.
type tableCursor struct {
	table  *Table
	inner  Cursor
	key    []byte
	closed bool
}

func (c *tableCursor) Next() bool {
	if c.inner == nil {
		return false
	}
	if !c.inner.Next() {
		return false
	}
	full := c.inner.Key()
	c.key = full[len(c.table.prefix):]
	return true
}

func (c *tableCursor) Key() []byte   { return c.key }
func (c *tableCursor) Value() []byte { return c.inner.Value() }
func (c *tableCursor) Err() error {
	if c.closed {
		return errClosedCursor
	}
	if c.inner == nil {
		return nil
	}
	return c.inner.Err()
}

func (c *tableCursor) Close() error {
	if c.inner == nil {
		return nil
	}
	err := c.inner.Close()
	c.inner = nil
	c.closed = true
	table := c.table
	table.release(c)
	return err
}
