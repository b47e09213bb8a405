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

package graphdb_test

import (
	"testing"

	"github.com/pombredanne/ajgudb/entitystore"
	"github.com/pombredanne/ajgudb/graphdb"
)

func TestVertexCreateGetLink(t *testing.T) {
	db := graphdb.OpenMemory()
	defer db.Close()

	alice, err := db.Vertex.Create("person", entitystore.Properties{"name": "alice"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	bob, err := db.Vertex.Create("person", entitystore.Properties{"name": "bob"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	edge, err := alice.Link("knows", bob, entitystore.Properties{"since": int64(2020)})
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if edge.Start != alice.ID || edge.End != bob.ID {
		t.Fatalf("unexpected edge endpoints: %+v", edge)
	}

	got, err := db.Vertex.Get(alice.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Equal(alice) {
		t.Fatalf("Get(%d) returned a different vertex: %+v", alice.ID, got)
	}
}

func TestVertexEqualityIsByID(t *testing.T) {
	db := graphdb.OpenMemory()
	defer db.Close()

	v, err := db.Vertex.Create("person", entitystore.Properties{"name": "ada"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	stale, err := db.Vertex.Get(v.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	stale.Properties["name"] = "someone else"
	if !stale.Equal(v) {
		t.Fatalf("vertices with same id and different properties should still be Equal")
	}

	other, err := db.Vertex.Create("person", entitystore.Properties{"name": "ada"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if v.Equal(other) {
		t.Fatalf("distinct ids with identical properties should not be Equal")
	}
}

func TestVertexOutgoingsIncomings(t *testing.T) {
	db := graphdb.OpenMemory()
	defer db.Close()

	alice, _ := db.Vertex.Create("person", nil)
	bob, _ := db.Vertex.Create("person", nil)
	carol, _ := db.Vertex.Create("person", nil)

	if _, err := alice.Link("knows", bob, nil); err != nil {
		t.Fatalf("Link: %v", err)
	}
	if _, err := carol.Link("knows", alice, nil); err != nil {
		t.Fatalf("Link: %v", err)
	}

	out, err := alice.Outgoings()
	if err != nil {
		t.Fatalf("Outgoings: %v", err)
	}
	if len(out) != 1 || out[0].End != bob.ID {
		t.Fatalf("Outgoings(alice) = %+v", out)
	}

	in, err := alice.Incomings()
	if err != nil {
		t.Fatalf("Incomings: %v", err)
	}
	if len(in) != 1 || in[0].Start != carol.ID {
		t.Fatalf("Incomings(alice) = %+v", in)
	}
}

func TestVertexDeleteCascadesToIncidentEdges(t *testing.T) {
	db := graphdb.OpenMemory()
	defer db.Close()

	alice, _ := db.Vertex.Create("person", nil)
	bob, _ := db.Vertex.Create("person", nil)
	edge, err := alice.Link("knows", bob, nil)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}

	if err := alice.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.Vertex.Get(alice.ID); err != entitystore.ErrNotFound {
		t.Fatalf("Get(deleted vertex) = %v, want ErrNotFound", err)
	}
	if _, err := db.Edge.Get(edge.ID); err != entitystore.ErrNotFound {
		t.Fatalf("Get(edge incident to deleted vertex) = %v, want ErrNotFound", err)
	}
}

func TestVertexManagerOneAndGetOrCreate(t *testing.T) {
	db := graphdb.OpenMemory()
	defer db.Close()

	if _, err := db.Vertex.One("person", entitystore.Properties{"name": "ada"}); err != entitystore.ErrNotFound {
		t.Fatalf("One on empty db = %v, want ErrNotFound", err)
	}

	created, err := db.Vertex.GetOrCreate("person", entitystore.Properties{"name": "ada"})
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	again, err := db.Vertex.GetOrCreate("person", entitystore.Properties{"name": "ada"})
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if !again.Equal(created) {
		t.Fatalf("GetOrCreate created a duplicate: %+v vs %+v", created, again)
	}
}

func TestEdgeSaveUpdatesProperties(t *testing.T) {
	db := graphdb.OpenMemory()
	defer db.Close()

	alice, _ := db.Vertex.Create("person", nil)
	bob, _ := db.Vertex.Create("person", nil)
	edge, err := alice.Link("knows", bob, entitystore.Properties{"since": int64(2020)})
	if err != nil {
		t.Fatalf("Link: %v", err)
	}

	edge.Properties["since"] = int64(2021)
	if err := edge.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := db.Edge.Get(edge.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Properties["since"] != int64(2021) {
		t.Fatalf("Save did not persist: %+v", got)
	}
}
