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

// Package graphdb is the graph façade (spec §4.4): Vertex and Edge
// value objects, their managers, and the whole-database handle that
// owns the underlying entity store. Grounded on
// original_source/ajgudb/ajgudb.py's AjguDB/VertexManager/EdgeManager
// classes, rebuilt over the normalised entitystore schema instead of
// wiredtiger tables.
package graphdb

import (
	"github.com/pombredanne/ajgudb/entitystore"
	"github.com/pombredanne/ajgudb/kvengine"
	"github.com/pombredanne/ajgudb/pkg/jsonconfig"
)

// DB is an open graph database: the entity store plus the two entity
// managers and the scratch collection (ajgudb.py's AjguDB class).
type DB struct {
	kv         kvengine.KeyValue
	vertices   *entitystore.VertexTable
	edges      *entitystore.EdgeTable
	collection *entitystore.Collection

	Vertex *VertexManager
	Edge   *EdgeManager
}

// Open constructs the underlying key-value engine from cfg (spec §6
// "Configuration") and wires up the graph façade over it.
func Open(cfg jsonconfig.Obj) (*DB, error) {
	kv, err := kvengine.Open(cfg)
	if err != nil {
		return nil, err
	}
	return newDB(kv), nil
}

// OpenMemory is a convenience constructor for an in-memory graph,
// used heavily by this package's own tests and by callers that don't
// need durability (a scratch analysis, a unit test fixture).
func OpenMemory() *DB {
	return newDB(kvengine.NewMemory())
}

func newDB(kv kvengine.KeyValue) *DB {
	db := &DB{
		kv:         kv,
		vertices:   entitystore.NewVertexTable(kv),
		edges:      entitystore.NewEdgeTable(kv),
		collection: entitystore.NewCollection(kv),
	}
	db.Vertex = &VertexManager{db: db}
	db.Edge = &EdgeManager{db: db}
	return db
}

// Close releases the underlying engine's resources.
func (db *DB) Close() error {
	return db.kv.Close()
}

// Set, Get, and Remove expose the database's scratch collection
// (ajgudb.py wires AjguDB.get/set/remove straight to
// Storage.collection for exactly this purpose: metadata that lives
// alongside the graph but outside its schema).
func (db *DB) Set(key string, value interface{}) error { return db.collection.Set(key, value) }
func (db *DB) Get(key string) (interface{}, error)      { return db.collection.Get(key) }
func (db *DB) Remove(key string) error                  { return db.collection.Remove(key) }
