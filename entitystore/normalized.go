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

// Package entitystore maps graph entities onto ordered key-value
// tables and indices, in two schema variants: the normalised schema
// (this file), with one primary row per vertex/edge plus secondary
// index rows, and the tuple-space schema (tuplespace.go), which stores
// one row per property instead.
package entitystore

import (
	"sync"

	"github.com/pombredanne/ajgudb/codec"
	"github.com/pombredanne/ajgudb/kvengine"
)

// VertexRow is the decoded primary row for one vertex.
type VertexRow struct {
	ID         uint64
	Label      string
	Properties Properties
}

// EdgeRow is the decoded primary row for one edge.
type EdgeRow struct {
	ID         uint64
	Start      uint64
	Label      string
	End        uint64
	Properties Properties
}

// VertexTable is the normalised-schema storage for vertices: spec
// §4.3.1's `vertices`, `vertices:labels`, and optional
// `vertices-keys` tables, sharing one idAllocator.
type VertexTable struct {
	kv      kvengine.KeyValue
	primary *kvengine.Table
	labels  *kvengine.Table
	keys    *kvengine.Table
	ids     *idAllocator

	mu      sync.RWMutex
	indexed map[string]bool
}

// NewVertexTable opens (or creates) the vertex tables over kv.
func NewVertexTable(kv kvengine.KeyValue) *VertexTable {
	return &VertexTable{
		kv:      kv,
		primary: kvengine.NewTable(kv, "vertices"),
		labels:  kvengine.NewTable(kv, "vertices:labels"),
		keys:    kvengine.NewTable(kv, "vertices-keys"),
		ids:     newIDAllocator(kvengine.NewTable(kv, "vertices:counter")),
		indexed: make(map[string]bool),
	}
}

// Index registers name as an explicitly indexed property. Indexing is
// a live, in-process toggle: existing rows already written aren't
// retroactively indexed.
func (t *VertexTable) Index(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.indexed[name] = true
}

func (t *VertexTable) isIndexed(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.indexed[name]
}

// Get returns the vertex with the given id.
func (t *VertexTable) Get(id uint64) (VertexRow, error) {
	key, err := codec.Encode(int64(id))
	if err != nil {
		return VertexRow{}, WrapCodecError(err)
	}
	raw, err := t.primary.Get(key)
	if err != nil {
		return VertexRow{}, WrapStorageError(err)
	}
	return decodeVertexRow(id, raw)
}

func decodeVertexRow(id uint64, raw []byte) (VertexRow, error) {
	parts, err := codec.Decode(raw)
	if err != nil {
		return VertexRow{}, WrapCodecError(err)
	}
	if len(parts) != 2 {
		return VertexRow{}, WrapCodecError(codec.ErrTruncated)
	}
	label, _ := parts[0].(string)
	packed, _ := parts[1].([]byte)
	props, err := unpackProperties(packed)
	if err != nil {
		return VertexRow{}, WrapCodecError(err)
	}
	return VertexRow{ID: id, Label: label, Properties: props}, nil
}

// Add allocates an id and writes the primary row, the label-index
// row, and any property-index rows in one batch.
func (t *VertexTable) Add(label string, properties Properties) (uint64, error) {
	id, err := t.ids.next()
	if err != nil {
		return 0, err
	}

	packed, err := packProperties(properties)
	if err != nil {
		return 0, WrapCodecError(err)
	}
	value, err := codec.Encode(label, packed)
	if err != nil {
		return 0, WrapCodecError(err)
	}
	primaryKey, err := codec.Encode(int64(id))
	if err != nil {
		return 0, WrapCodecError(err)
	}
	labelKey, err := codec.Encode(label, int64(id))
	if err != nil {
		return 0, WrapCodecError(err)
	}

	b := t.kv.NewBatch()
	t.primary.Put(b, primaryKey, value)
	t.labels.Put(b, labelKey, nil)
	if err := t.putPropertyIndexRows(b, id, properties); err != nil {
		return 0, err
	}
	if err := b.Commit(); err != nil {
		return 0, WrapStorageError(err)
	}
	return id, nil
}

func (t *VertexTable) putPropertyIndexRows(b kvengine.Batch, id uint64, properties Properties) error {
	for name, value := range properties {
		if !t.isIndexed(name) {
			continue
		}
		key, err := codec.Encode(name, value, int64(id))
		if err != nil {
			return WrapCodecError(err)
		}
		t.keys.Put(b, key, nil)
	}
	return nil
}

func (t *VertexTable) deletePropertyIndexRows(b kvengine.Batch, id uint64, properties Properties) error {
	for name, value := range properties {
		if !t.isIndexed(name) {
			continue
		}
		key, err := codec.Encode(name, value, int64(id))
		if err != nil {
			return WrapCodecError(err)
		}
		t.keys.Delete(b, key)
	}
	return nil
}

// Update reads the old property map, deletes stale property-index
// rows, writes the new primary row, and writes fresh property-index
// rows, all in one batch.
func (t *VertexTable) Update(id uint64, properties Properties) error {
	old, err := t.Get(id)
	if err != nil {
		return err
	}

	packed, err := packProperties(properties)
	if err != nil {
		return WrapCodecError(err)
	}
	value, err := codec.Encode(old.Label, packed)
	if err != nil {
		return WrapCodecError(err)
	}
	primaryKey, err := codec.Encode(int64(id))
	if err != nil {
		return WrapCodecError(err)
	}

	b := t.kv.NewBatch()
	if err := t.deletePropertyIndexRows(b, id, old.Properties); err != nil {
		return err
	}
	t.primary.Put(b, primaryKey, value)
	if err := t.putPropertyIndexRows(b, id, properties); err != nil {
		return err
	}
	if err := b.Commit(); err != nil {
		return WrapStorageError(err)
	}
	return nil
}

// Delete removes the primary row and every index row for id. The
// caller is responsible for first deleting incident edges; VertexTable
// has no notion of edges.
func (t *VertexTable) Delete(id uint64) error {
	row, err := t.Get(id)
	if err != nil {
		return err
	}
	primaryKey, err := codec.Encode(int64(id))
	if err != nil {
		return WrapCodecError(err)
	}
	labelKey, err := codec.Encode(row.Label, int64(id))
	if err != nil {
		return WrapCodecError(err)
	}

	b := t.kv.NewBatch()
	t.primary.Delete(b, primaryKey)
	t.labels.Delete(b, labelKey)
	if err := t.deletePropertyIndexRows(b, id, row.Properties); err != nil {
		return err
	}
	if err := b.Commit(); err != nil {
		return WrapStorageError(err)
	}
	return nil
}

// Identifiers enumerates vertex ids with the given label in ascending
// id order. An empty label matches only vertices whose label is
// literally empty; to enumerate every vertex regardless of label, use
// IdentifiersAny.
func (t *VertexTable) Identifiers(label string) ([]uint64, error) {
	prefix, err := codec.Encode(label)
	if err != nil {
		return nil, WrapCodecError(err)
	}
	return t.scanIDs(t.labels, prefix)
}

// IdentifiersAny enumerates every vertex id, ordered first by label
// then by id (the label index's natural key order).
func (t *VertexTable) IdentifiersAny() ([]uint64, error) {
	return t.scanIDs(t.labels, nil)
}

// Keys enumerates ids of vertices whose `name` property equals value,
// via the optional property index.
func (t *VertexTable) Keys(name string, value interface{}) ([]uint64, error) {
	prefix, err := codec.Encode(name, value)
	if err != nil {
		return nil, WrapCodecError(err)
	}
	return t.scanIDs(t.keys, prefix)
}

// scanIDs walks a prefix-keyed index table and returns every id found
// as the last element of each matched key, in key order.
func (t *VertexTable) scanIDs(table *kvengine.Table, prefix []byte) ([]uint64, error) {
	start, end := codec.PrefixRange(prefix)
	cur := table.Scan(start, end)
	defer cur.Close()

	var ids []uint64
	for cur.Next() {
		id, err := lastIDElement(cur.Key())
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := cur.Err(); err != nil {
		return nil, WrapStorageError(err)
	}
	return ids, nil
}

func lastIDElement(key []byte) (uint64, error) {
	parts, err := codec.Decode(key)
	if err != nil {
		return 0, WrapCodecError(err)
	}
	if len(parts) == 0 {
		return 0, WrapCodecError(codec.ErrTruncated)
	}
	id, ok := parts[len(parts)-1].(int64)
	if !ok {
		return 0, WrapCodecError(codec.ErrTruncated)
	}
	return uint64(id), nil
}

// EdgeTable is the normalised-schema storage for edges: spec
// §4.3.1's `edges`, `edges:labels`, `edges:outgoings`,
// `edges:incomings`, and optional `edges-keys` tables.
type EdgeTable struct {
	kv         kvengine.KeyValue
	primary    *kvengine.Table
	labels     *kvengine.Table
	outgoings  *kvengine.Table
	incomings  *kvengine.Table
	keys       *kvengine.Table
	ids        *idAllocator

	mu      sync.RWMutex
	indexed map[string]bool
}

// NewEdgeTable opens (or creates) the edge tables over kv.
func NewEdgeTable(kv kvengine.KeyValue) *EdgeTable {
	return &EdgeTable{
		kv:        kv,
		primary:   kvengine.NewTable(kv, "edges"),
		labels:    kvengine.NewTable(kv, "edges:labels"),
		outgoings: kvengine.NewTable(kv, "edges:outgoings"),
		incomings: kvengine.NewTable(kv, "edges:incomings"),
		keys:      kvengine.NewTable(kv, "edges-keys"),
		ids:       newIDAllocator(kvengine.NewTable(kv, "edges:counter")),
		indexed:   make(map[string]bool),
	}
}

func (t *EdgeTable) Index(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.indexed[name] = true
}

func (t *EdgeTable) isIndexed(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.indexed[name]
}

func (t *EdgeTable) Get(id uint64) (EdgeRow, error) {
	key, err := codec.Encode(int64(id))
	if err != nil {
		return EdgeRow{}, WrapCodecError(err)
	}
	raw, err := t.primary.Get(key)
	if err != nil {
		return EdgeRow{}, WrapStorageError(err)
	}
	return decodeEdgeRow(id, raw)
}

func decodeEdgeRow(id uint64, raw []byte) (EdgeRow, error) {
	parts, err := codec.Decode(raw)
	if err != nil {
		return EdgeRow{}, WrapCodecError(err)
	}
	if len(parts) != 4 {
		return EdgeRow{}, WrapCodecError(codec.ErrTruncated)
	}
	start, _ := parts[0].(int64)
	label, _ := parts[1].(string)
	end, _ := parts[2].(int64)
	packed, _ := parts[3].([]byte)
	props, err := unpackProperties(packed)
	if err != nil {
		return EdgeRow{}, WrapCodecError(err)
	}
	return EdgeRow{ID: id, Start: uint64(start), Label: label, End: uint64(end), Properties: props}, nil
}

// Add writes the primary row, one label-index row, zero or more
// property-index rows, and the two adjacency rows, in one batch.
func (t *EdgeTable) Add(start uint64, label string, end uint64, properties Properties) (uint64, error) {
	id, err := t.ids.next()
	if err != nil {
		return 0, err
	}

	packed, err := packProperties(properties)
	if err != nil {
		return 0, WrapCodecError(err)
	}
	value, err := codec.Encode(int64(start), label, int64(end), packed)
	if err != nil {
		return 0, WrapCodecError(err)
	}
	primaryKey, err := codec.Encode(int64(id))
	if err != nil {
		return 0, WrapCodecError(err)
	}
	labelKey, err := codec.Encode(label, int64(id))
	if err != nil {
		return 0, WrapCodecError(err)
	}
	outKey, err := codec.Encode(int64(start), int64(id))
	if err != nil {
		return 0, WrapCodecError(err)
	}
	inKey, err := codec.Encode(int64(end), int64(id))
	if err != nil {
		return 0, WrapCodecError(err)
	}

	b := t.kv.NewBatch()
	t.primary.Put(b, primaryKey, value)
	t.labels.Put(b, labelKey, nil)
	t.outgoings.Put(b, outKey, nil)
	t.incomings.Put(b, inKey, nil)
	if err := t.putPropertyIndexRows(b, id, properties); err != nil {
		return 0, err
	}
	if err := b.Commit(); err != nil {
		return 0, WrapStorageError(err)
	}
	return id, nil
}

func (t *EdgeTable) putPropertyIndexRows(b kvengine.Batch, id uint64, properties Properties) error {
	for name, value := range properties {
		if !t.isIndexed(name) {
			continue
		}
		key, err := codec.Encode(name, value, int64(id))
		if err != nil {
			return WrapCodecError(err)
		}
		t.keys.Put(b, key, nil)
	}
	return nil
}

func (t *EdgeTable) deletePropertyIndexRows(b kvengine.Batch, id uint64, properties Properties) error {
	for name, value := range properties {
		if !t.isIndexed(name) {
			continue
		}
		key, err := codec.Encode(name, value, int64(id))
		if err != nil {
			return WrapCodecError(err)
		}
		t.keys.Delete(b, key)
	}
	return nil
}

func (t *EdgeTable) Update(id uint64, properties Properties) error {
	old, err := t.Get(id)
	if err != nil {
		return err
	}
	packed, err := packProperties(properties)
	if err != nil {
		return WrapCodecError(err)
	}
	value, err := codec.Encode(int64(old.Start), old.Label, int64(old.End), packed)
	if err != nil {
		return WrapCodecError(err)
	}
	primaryKey, err := codec.Encode(int64(id))
	if err != nil {
		return WrapCodecError(err)
	}

	b := t.kv.NewBatch()
	if err := t.deletePropertyIndexRows(b, id, old.Properties); err != nil {
		return err
	}
	t.primary.Put(b, primaryKey, value)
	if err := t.putPropertyIndexRows(b, id, properties); err != nil {
		return err
	}
	if err := b.Commit(); err != nil {
		return WrapStorageError(err)
	}
	return nil
}

// Delete reverses Add: the primary row, label-index row, adjacency
// rows, and property-index rows are all removed in one batch.
func (t *EdgeTable) Delete(id uint64) error {
	row, err := t.Get(id)
	if err != nil {
		return err
	}
	primaryKey, err := codec.Encode(int64(id))
	if err != nil {
		return WrapCodecError(err)
	}
	labelKey, err := codec.Encode(row.Label, int64(id))
	if err != nil {
		return WrapCodecError(err)
	}
	outKey, err := codec.Encode(int64(row.Start), int64(id))
	if err != nil {
		return WrapCodecError(err)
	}
	inKey, err := codec.Encode(int64(row.End), int64(id))
	if err != nil {
		return WrapCodecError(err)
	}

	b := t.kv.NewBatch()
	t.primary.Delete(b, primaryKey)
	t.labels.Delete(b, labelKey)
	t.outgoings.Delete(b, outKey)
	t.incomings.Delete(b, inKey)
	if err := t.deletePropertyIndexRows(b, id, row.Properties); err != nil {
		return err
	}
	if err := b.Commit(); err != nil {
		return WrapStorageError(err)
	}
	return nil
}

func (t *EdgeTable) Identifiers(label string) ([]uint64, error) {
	prefix, err := codec.Encode(label)
	if err != nil {
		return nil, WrapCodecError(err)
	}
	return t.scanIDs(t.labels, prefix)
}

func (t *EdgeTable) IdentifiersAny() ([]uint64, error) {
	return t.scanIDs(t.labels, nil)
}

func (t *EdgeTable) Keys(name string, value interface{}) ([]uint64, error) {
	prefix, err := codec.Encode(name, value)
	if err != nil {
		return nil, WrapCodecError(err)
	}
	return t.scanIDs(t.keys, prefix)
}

// Outgoings enumerates ids of edges starting at vertex v, in edge-id
// ascending order: adjacency keys sort (vertex_id, edge_id) ascending.
func (t *EdgeTable) Outgoings(v uint64) ([]uint64, error) {
	prefix, err := codec.Encode(int64(v))
	if err != nil {
		return nil, WrapCodecError(err)
	}
	return t.scanIDs(t.outgoings, prefix)
}

// Incomings enumerates ids of edges ending at vertex v.
func (t *EdgeTable) Incomings(v uint64) ([]uint64, error) {
	prefix, err := codec.Encode(int64(v))
	if err != nil {
		return nil, WrapCodecError(err)
	}
	return t.scanIDs(t.incomings, prefix)
}

func (t *EdgeTable) scanIDs(table *kvengine.Table, prefix []byte) ([]uint64, error) {
	start, end := codec.PrefixRange(prefix)
	cur := table.Scan(start, end)
	defer cur.Close()

	var ids []uint64
	for cur.Next() {
		id, err := lastIDElement(cur.Key())
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := cur.Err(); err != nil {
		return nil, WrapStorageError(err)
	}
	return ids, nil
}
