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

package graphdb

import (
	"github.com/pombredanne/ajgudb/entitystore"
)

// Vertex is a value object: a snapshot of one vertex's label and
// properties taken at Get/Create/One time. Mutating Properties and
// calling Save writes the snapshot back; it does not keep the vertex
// live against concurrent writers.
type Vertex struct {
	db         *DB
	ID         uint64
	Label      string
	Properties entitystore.Properties
}

// Equal reports whether two vertices are the same entity. Equality
// and hashing of value objects are by id only (spec §4.4); use ID
// itself as a map key where a Go hash is needed.
func (v Vertex) Equal(other Vertex) bool {
	return v.ID == other.ID
}

// Link creates an edge from v to end, enforcing that both endpoints
// are already known vertices by construction (there is no free-standing
// EdgeManager.Create — spec §4.4).
func (v Vertex) Link(label string, end Vertex, properties entitystore.Properties) (Edge, error) {
	id, err := v.db.edges.Add(v.ID, label, end.ID, properties)
	if err != nil {
		return Edge{}, err
	}
	return Edge{db: v.db, ID: id, Start: v.ID, Label: label, End: end.ID, Properties: properties.Clone()}, nil
}

// Save writes v's current Properties back to the store. The stored
// label is kept; a changed v.Label is not written.
func (v Vertex) Save() error {
	return v.db.vertices.Update(v.ID, v.Properties)
}

// Outgoings returns every edge starting at v, fully materialised
// before the underlying index cursor is released (spec §4.4: adjacency
// walks must not leak cursors across the traversal-engine composition
// model).
func (v Vertex) Outgoings() ([]Edge, error) {
	ids, err := v.db.edges.Outgoings(v.ID)
	if err != nil {
		return nil, err
	}
	return v.db.Edge.getAll(ids)
}

// Incomings returns every edge ending at v, same materialisation
// contract as Outgoings.
func (v Vertex) Incomings() ([]Edge, error) {
	ids, err := v.db.edges.Incomings(v.ID)
	if err != nil {
		return nil, err
	}
	return v.db.Edge.getAll(ids)
}

// Delete removes v and every edge incident to it: outgoings first,
// then incomings, then the vertex row itself (spec §4.4 "Delete
// semantics").
func (v Vertex) Delete() error {
	outgoings, err := v.db.edges.Outgoings(v.ID)
	if err != nil {
		return err
	}
	incomings, err := v.db.edges.Incomings(v.ID)
	if err != nil {
		return err
	}
	for _, id := range outgoings {
		if err := v.db.edges.Delete(id); err != nil {
			return err
		}
	}
	for _, id := range incomings {
		// A self-loop was already removed with the outgoings.
		if err := v.db.edges.Delete(id); err != nil && err != entitystore.ErrNotFound {
			return err
		}
	}
	return v.db.vertices.Delete(v.ID)
}

// VertexManager creates and looks up vertices (ajgudb.py's
// VertexManager).
type VertexManager struct {
	db *DB
}

// Index registers name as an indexed property for every vertex
// created or updated from now on.
func (m *VertexManager) Index(name string) {
	m.db.vertices.Index(name)
}

// Identifiers enumerates vertex ids, used by the traversal engine's
// source steps. With no label given it enumerates every vertex
// regardless of label; with one, it enumerates only vertices carrying
// that exact label.
func (m *VertexManager) Identifiers(labels ...string) ([]uint64, error) {
	if len(labels) == 0 {
		return m.db.vertices.IdentifiersAny()
	}
	return m.db.vertices.Identifiers(labels[0])
}

// Keys enumerates ids of vertices whose name property equals value,
// via the optional property index. Used by the traversal engine's
// select_vertices step.
func (m *VertexManager) Keys(name string, value interface{}) ([]uint64, error) {
	return m.db.vertices.Keys(name, value)
}

// Create allocates an id, writes the entity, and returns the new
// Vertex value object.
func (m *VertexManager) Create(label string, properties entitystore.Properties) (Vertex, error) {
	id, err := m.db.vertices.Add(label, properties)
	if err != nil {
		return Vertex{}, err
	}
	return Vertex{db: m.db, ID: id, Label: label, Properties: properties.Clone()}, nil
}

// Get looks up a vertex by id.
func (m *VertexManager) Get(id uint64) (Vertex, error) {
	row, err := m.db.vertices.Get(id)
	if err != nil {
		return Vertex{}, err
	}
	return Vertex{db: m.db, ID: row.ID, Label: row.Label, Properties: row.Properties}, nil
}

// One returns the first vertex with the given label whose properties
// are a superset of want, or ErrNotFound. Equivalent to the gremlin
// pipeline vertices(label) -> where(want) -> limit(1) -> get, but
// evaluated directly rather than through the traversal engine.
func (m *VertexManager) One(label string, want entitystore.Properties) (Vertex, error) {
	ids, err := m.db.vertices.Identifiers(label)
	if err != nil {
		return Vertex{}, err
	}
	for _, id := range ids {
		row, err := m.db.vertices.Get(id)
		if err != nil {
			return Vertex{}, err
		}
		if propertiesMatch(row.Properties, want) {
			return Vertex{db: m.db, ID: row.ID, Label: row.Label, Properties: row.Properties}, nil
		}
	}
	return Vertex{}, entitystore.ErrNotFound
}

// GetOrCreate calls One and returns its result if found, otherwise
// Create. Not atomic: a concurrent caller can race and create a
// duplicate (spec §4.4 "the caller accepts the race").
func (m *VertexManager) GetOrCreate(label string, properties entitystore.Properties) (Vertex, error) {
	v, err := m.One(label, properties)
	if err == nil {
		return v, nil
	}
	if err != entitystore.ErrNotFound {
		return Vertex{}, err
	}
	return m.Create(label, properties)
}

func propertiesMatch(have, want entitystore.Properties) bool {
	for k, v := range want {
		if have[k] != v {
			return false
		}
	}
	return true
}
