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

package entitystore

import (
	"github.com/pombredanne/ajgudb/codec"
	"github.com/pombredanne/ajgudb/kvengine"
)

// Meta-property names a TupleSpace uses to fold vertex/edge structure
// into plain properties, so that a single pair of namespaces serves
// both entity classes.
const (
	MetaType  = "_meta_type"
	MetaStart = "_meta_start"
	MetaEnd   = "_meta_end"

	MetaTypeVertex = "vertex"
	MetaTypeEdge   = "edge"
)

// TupleSpace is the alternate entity-store schema: every entity's
// properties are decomposed one-per-row across a
// single `tuples` table, each fully reverse-indexed in a single
// `index` table. There is no separate label or adjacency table;
// vertex/edge structure is encoded as ordinary properties
// (MetaType/MetaStart/MetaEnd), queried the same way any other
// property is. This buys open-ended querying on any property name at
// the cost of one row per property instead of one row per entity.
type TupleSpace struct {
	kv     kvengine.KeyValue
	tuples *kvengine.Table
	index  *kvengine.Table
	ids    *idAllocator
}

// NewTupleSpace opens (or creates) the tuple-space tables over kv.
func NewTupleSpace(kv kvengine.KeyValue) *TupleSpace {
	return &TupleSpace{
		kv:     kv,
		tuples: kvengine.NewTable(kv, "tuples"),
		index:  kvengine.NewTable(kv, "index"),
		ids:    newIDAllocator(kvengine.NewTable(kv, "tuples:counter")),
	}
}

// NewEntity allocates a fresh id with no properties set yet. Callers
// build an entity by following NewEntity with one Set per property
// (see CreateVertex/CreateEdge for the common case).
func (s *TupleSpace) NewEntity() (uint64, error) {
	return s.ids.next()
}

// Set upserts a single property, replacing any prior index row for
// the old value — the same read-modify-index logic the normalised
// schema runs on a whole entity, applied here to one property at a
// time since there is no whole-entity primary row in this schema.
func (s *TupleSpace) Set(id uint64, name string, value interface{}) error {
	old, hadOld, err := s.ref(id, name)
	if err != nil {
		return err
	}

	tupleKey, err := codec.Encode(int64(id), name)
	if err != nil {
		return WrapCodecError(err)
	}
	tupleValue, err := codec.Encode(value)
	if err != nil {
		return WrapCodecError(err)
	}
	newIndexKey, err := codec.Encode(name, value, int64(id))
	if err != nil {
		return WrapCodecError(err)
	}

	b := s.kv.NewBatch()
	if hadOld {
		oldIndexKey, err := codec.Encode(name, old, int64(id))
		if err != nil {
			return WrapCodecError(err)
		}
		s.index.Delete(b, oldIndexKey)
	}
	s.tuples.Put(b, tupleKey, tupleValue)
	s.index.Put(b, newIndexKey, nil)
	if err := b.Commit(); err != nil {
		return WrapStorageError(err)
	}
	return nil
}

// Ref fetches the value of a single property, returning ErrNotFound if
// id has no such property.
func (s *TupleSpace) Ref(id uint64, name string) (interface{}, error) {
	value, ok, err := s.ref(id, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return value, nil
}

func (s *TupleSpace) ref(id uint64, name string) (value interface{}, ok bool, err error) {
	key, err := codec.Encode(int64(id), name)
	if err != nil {
		return nil, false, WrapCodecError(err)
	}
	raw, err := s.tuples.Get(key)
	if err == kvengine.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, WrapStorageError(err)
	}
	parts, err := codec.Decode(raw)
	if err != nil {
		return nil, false, WrapCodecError(err)
	}
	if len(parts) != 1 {
		return nil, false, WrapCodecError(codec.ErrTruncated)
	}
	return parts[0], true, nil
}

// Properties enumerates every property currently set on id.
func (s *TupleSpace) Properties(id uint64) (Properties, error) {
	prefix, err := codec.Encode(int64(id))
	if err != nil {
		return nil, WrapCodecError(err)
	}
	start, end := codec.PrefixRange(prefix)
	cur := s.tuples.Scan(start, end)
	defer cur.Close()

	props := Properties{}
	for cur.Next() {
		keyParts, err := codec.Decode(cur.Key())
		if err != nil {
			return nil, WrapCodecError(err)
		}
		if len(keyParts) != 2 {
			return nil, WrapCodecError(codec.ErrTruncated)
		}
		name, _ := keyParts[1].(string)

		valParts, err := codec.Decode(cur.Value())
		if err != nil {
			return nil, WrapCodecError(err)
		}
		if len(valParts) != 1 {
			return nil, WrapCodecError(codec.ErrTruncated)
		}
		props[name] = valParts[0]
	}
	if err := cur.Err(); err != nil {
		return nil, WrapStorageError(err)
	}
	return props, nil
}

// Delete removes every property of id, and the index row for each.
func (s *TupleSpace) Delete(id uint64) error {
	props, err := s.Properties(id)
	if err != nil {
		return err
	}

	b := s.kv.NewBatch()
	for name, value := range props {
		tupleKey, err := codec.Encode(int64(id), name)
		if err != nil {
			return WrapCodecError(err)
		}
		indexKey, err := codec.Encode(name, value, int64(id))
		if err != nil {
			return WrapCodecError(err)
		}
		s.tuples.Delete(b, tupleKey)
		s.index.Delete(b, indexKey)
	}
	if err := b.Commit(); err != nil {
		return WrapStorageError(err)
	}
	return nil
}

// Query enumerates the ids of every entity whose `name` property
// equals value, in ascending id order. Every property of every entity
// is indexed, so this works for any property name, not just label or
// adjacency.
func (s *TupleSpace) Query(name string, value interface{}) ([]uint64, error) {
	prefix, err := codec.Encode(name, value)
	if err != nil {
		return nil, WrapCodecError(err)
	}
	start, end := codec.PrefixRange(prefix)
	cur := s.index.Scan(start, end)
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

// CreateVertex allocates an id and folds label and properties into
// tuple-space rows, tagged MetaType=vertex. Enumerating all vertices
// is then Query(MetaType, MetaTypeVertex).
func (s *TupleSpace) CreateVertex(label string, properties Properties) (uint64, error) {
	return s.createEntity(MetaTypeVertex, label, properties, nil)
}

// CreateEdge allocates an id and folds start, label, end, and
// properties into tuple-space rows, tagged MetaType=edge. Traversing a
// vertex's outgoing edges is then Query(MetaStart, v.id).
func (s *TupleSpace) CreateEdge(start uint64, label string, end uint64, properties Properties) (uint64, error) {
	ends := &[2]uint64{start, end}
	return s.createEntity(MetaTypeEdge, label, properties, ends)
}

func (s *TupleSpace) createEntity(kind, label string, properties Properties, ends *[2]uint64) (uint64, error) {
	id, err := s.NewEntity()
	if err != nil {
		return 0, err
	}
	if err := s.Set(id, MetaType, kind); err != nil {
		return 0, err
	}
	if err := s.Set(id, "label", label); err != nil {
		return 0, err
	}
	if ends != nil {
		if err := s.Set(id, MetaStart, int64(ends[0])); err != nil {
			return 0, err
		}
		if err := s.Set(id, MetaEnd, int64(ends[1])); err != nil {
			return 0, err
		}
	}
	for name, value := range properties {
		if err := s.Set(id, name, value); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// Outgoings enumerates ids of edges whose MetaStart property is v.
func (s *TupleSpace) Outgoings(v uint64) ([]uint64, error) {
	return s.Query(MetaStart, int64(v))
}

// Incomings enumerates ids of edges whose MetaEnd property is v.
func (s *TupleSpace) Incomings(v uint64) ([]uint64, error) {
	return s.Query(MetaEnd, int64(v))
}
