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

// Edge is a value object: a snapshot of one edge's endpoints, label,
// and properties.
type Edge struct {
	db         *DB
	ID         uint64
	Start      uint64
	Label      string
	End        uint64
	Properties entitystore.Properties
}

// Equal reports whether two edges are the same entity, by id only.
func (e Edge) Equal(other Edge) bool {
	return e.ID == other.ID
}

// StartVertex resolves e's start endpoint to a live Vertex.
func (e Edge) StartVertex() (Vertex, error) {
	return e.db.Vertex.Get(e.Start)
}

// EndVertex resolves e's end endpoint to a live Vertex.
func (e Edge) EndVertex() (Vertex, error) {
	return e.db.Vertex.Get(e.End)
}

// Save writes e's current Properties back to the store. Start, End,
// and Label are immutable once created (ajgudb.py's Edge.save keeps
// them fixed too: only the properties column is rewritten).
func (e Edge) Save() error {
	return e.db.edges.Update(e.ID, e.Properties)
}

// Delete removes e.
func (e Edge) Delete() error {
	return e.db.edges.Delete(e.ID)
}

// EdgeManager looks up edges (ajgudb.py's EdgeManager). There is no
// Create: edges come into being only through Vertex.Link.
type EdgeManager struct {
	db *DB
}

// Index registers name as an indexed property for every edge created
// or updated from now on.
func (m *EdgeManager) Index(name string) {
	m.db.edges.Index(name)
}

// Identifiers enumerates edge ids, used by the traversal engine's
// source steps. With no label given it enumerates every edge.
func (m *EdgeManager) Identifiers(labels ...string) ([]uint64, error) {
	if len(labels) == 0 {
		return m.db.edges.IdentifiersAny()
	}
	return m.db.edges.Identifiers(labels[0])
}

// Outgoings enumerates ids of edges starting at vertex v, used by the
// traversal engine's outgoings step.
func (m *EdgeManager) Outgoings(v uint64) ([]uint64, error) {
	return m.db.edges.Outgoings(v)
}

// Incomings enumerates ids of edges ending at vertex v, used by the
// traversal engine's incomings step.
func (m *EdgeManager) Incomings(v uint64) ([]uint64, error) {
	return m.db.edges.Incomings(v)
}

// Get looks up an edge by id.
func (m *EdgeManager) Get(id uint64) (Edge, error) {
	row, err := m.db.edges.Get(id)
	if err != nil {
		return Edge{}, err
	}
	return Edge{db: m.db, ID: row.ID, Start: row.Start, Label: row.Label, End: row.End, Properties: row.Properties}, nil
}

func (m *EdgeManager) getAll(ids []uint64) ([]Edge, error) {
	out := make([]Edge, 0, len(ids))
	for _, id := range ids {
		e, err := m.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// One returns the first edge with the given label whose properties
// are a superset of want, or ErrNotFound.
func (m *EdgeManager) One(label string, want entitystore.Properties) (Edge, error) {
	ids, err := m.db.edges.Identifiers(label)
	if err != nil {
		return Edge{}, err
	}
	for _, id := range ids {
		row, err := m.db.edges.Get(id)
		if err != nil {
			return Edge{}, err
		}
		if propertiesMatch(row.Properties, want) {
			return Edge{db: m.db, ID: row.ID, Start: row.Start, Label: row.Label, End: row.End, Properties: row.Properties}, nil
		}
	}
	return Edge{}, entitystore.ErrNotFound
}
