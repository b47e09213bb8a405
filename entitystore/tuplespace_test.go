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

package entitystore_test

import (
	"testing"

	"github.com/pombredanne/ajgudb/entitystore"
	"github.com/pombredanne/ajgudb/kvengine"
)

func TestTupleSpaceSetRef(t *testing.T) {
	kv := kvengine.NewMemory()
	defer kv.Close()
	ts := entitystore.NewTupleSpace(kv)

	id, err := ts.NewEntity()
	if err != nil {
		t.Fatalf("NewEntity: %v", err)
	}
	if err := ts.Set(id, "name", "ada"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := ts.Ref(id, "name")
	if err != nil {
		t.Fatalf("Ref: %v", err)
	}
	if v != "ada" {
		t.Fatalf("Ref = %v, want ada", v)
	}
	if _, err := ts.Ref(id, "missing"); err != entitystore.ErrNotFound {
		t.Fatalf("Ref(missing) = %v, want ErrNotFound", err)
	}
}

func TestTupleSpaceQueryAndReindexOnSet(t *testing.T) {
	kv := kvengine.NewMemory()
	defer kv.Close()
	ts := entitystore.NewTupleSpace(kv)

	id, _ := ts.NewEntity()
	_ = ts.Set(id, "color", "red")

	ids, err := ts.Query("color", "red")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(ids) != 1 || ids[0] != id {
		t.Fatalf("Query(red) = %v, want [%d]", ids, id)
	}

	if err := ts.Set(id, "color", "blue"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	stale, err := ts.Query("color", "red")
	if err != nil {
		t.Fatalf("Query(stale): %v", err)
	}
	if len(stale) != 0 {
		t.Fatalf("stale index row survived reindex: %v", stale)
	}
	fresh, err := ts.Query("color", "blue")
	if err != nil {
		t.Fatalf("Query(fresh): %v", err)
	}
	if len(fresh) != 1 || fresh[0] != id {
		t.Fatalf("Query(blue) = %v, want [%d]", fresh, id)
	}
}

func TestTupleSpaceCreateVertexAndEdgeAdjacency(t *testing.T) {
	kv := kvengine.NewMemory()
	defer kv.Close()
	ts := entitystore.NewTupleSpace(kv)

	alice, err := ts.CreateVertex("person", entitystore.Properties{"name": "alice"})
	if err != nil {
		t.Fatalf("CreateVertex: %v", err)
	}
	bob, err := ts.CreateVertex("person", nil)
	if err != nil {
		t.Fatalf("CreateVertex: %v", err)
	}
	edge, err := ts.CreateEdge(alice, "knows", bob, nil)
	if err != nil {
		t.Fatalf("CreateEdge: %v", err)
	}

	vertices, err := ts.Query(entitystore.MetaType, entitystore.MetaTypeVertex)
	if err != nil {
		t.Fatalf("Query(vertex): %v", err)
	}
	if len(vertices) != 2 {
		t.Fatalf("expected 2 vertices, got %v", vertices)
	}

	out, err := ts.Outgoings(alice)
	if err != nil {
		t.Fatalf("Outgoings: %v", err)
	}
	if len(out) != 1 || out[0] != edge {
		t.Fatalf("Outgoings(alice) = %v, want [%d]", out, edge)
	}
	in, err := ts.Incomings(bob)
	if err != nil {
		t.Fatalf("Incomings: %v", err)
	}
	if len(in) != 1 || in[0] != edge {
		t.Fatalf("Incomings(bob) = %v, want [%d]", in, edge)
	}
}

func TestTupleSpaceDeleteRemovesAllProperties(t *testing.T) {
	kv := kvengine.NewMemory()
	defer kv.Close()
	ts := entitystore.NewTupleSpace(kv)

	id, _ := ts.CreateVertex("person", entitystore.Properties{"name": "ada", "age": int64(30)})
	if err := ts.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	props, err := ts.Properties(id)
	if err != nil {
		t.Fatalf("Properties: %v", err)
	}
	if len(props) != 0 {
		t.Fatalf("properties survived delete: %v", props)
	}
	ids, err := ts.Query("name", "ada")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("index row survived delete: %v", ids)
	}
}
