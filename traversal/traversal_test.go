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

package traversal_test

import (
	"testing"

	"github.com/pombredanne/ajgudb/entitystore"
	"github.com/pombredanne/ajgudb/graphdb"
	"github.com/pombredanne/ajgudb/traversal"
)

func mustVertex(t *testing.T, db *graphdb.DB, label string, props entitystore.Properties) graphdb.Vertex {
	t.Helper()
	v, err := db.Vertex.Create(label, props)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return v
}

// Property 10: outgoings • end on a vertex v returns the set of
// vertices u such that an edge v->u exists, with multiplicity.
func TestOutgoingsEndMultiplicity(t *testing.T) {
	db := graphdb.OpenMemory()
	defer db.Close()

	a := mustVertex(t, db, "t", nil)
	b := mustVertex(t, db, "t", nil)
	if _, err := a.Link("r", b, nil); err != nil {
		t.Fatalf("Link: %v", err)
	}
	if _, err := a.Link("r", b, nil); err != nil {
		t.Fatalf("Link: %v", err)
	}

	seq := traversal.New(traversal.Outgoings, traversal.End).Run(db, a)
	got, err := traversal.Value(seq)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if len(got) != 2 || got[0].(uint64) != b.ID || got[1].(uint64) != b.ID {
		t.Fatalf("outgoings . end = %v, want [%d %d]", got, b.ID, b.ID)
	}
}

// Property 11: incomings • start • get on a vertex v returns the
// source vertices of edges incoming to v.
func TestIncomingsStartGet(t *testing.T) {
	db := graphdb.OpenMemory()
	defer db.Close()

	a := mustVertex(t, db, "t", nil)
	b := mustVertex(t, db, "t", nil)
	if _, err := a.Link("r", b, nil); err != nil {
		t.Fatalf("Link: %v", err)
	}

	seq := traversal.New(traversal.Incomings, traversal.Start).Run(db, b)
	got, err := traversal.Get(db, seq)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
	v, ok := got[0].(graphdb.Vertex)
	if !ok || !v.Equal(a) {
		t.Fatalf("incomings . start . get = %+v, want %+v", got[0], a)
	}
}

// Property 12: skip(n) . limit(m) and limit(n+m) . skip(n) return the
// same first m elements when input has >= n+m elements.
func TestSkipLimitCommute(t *testing.T) {
	db := graphdb.OpenMemory()
	defer db.Close()
	for i := 0; i < 10; i++ {
		mustVertex(t, db, "node", nil)
	}

	a, err := traversal.Value(traversal.New(traversal.Vertices(), traversal.Skip(3), traversal.Limit(4)).Run(db, nil))
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	b, err := traversal.Value(traversal.New(traversal.Vertices(), traversal.Limit(7), traversal.Skip(3)).Run(db, nil))
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("element %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

// Property 13: unique is idempotent.
func TestUniqueIdempotent(t *testing.T) {
	db := graphdb.OpenMemory()
	defer db.Close()
	a := mustVertex(t, db, "t", nil)
	b := mustVertex(t, db, "t", nil)
	c := mustVertex(t, db, "t", nil)
	if _, err := a.Link("r", b, nil); err != nil {
		t.Fatalf("Link: %v", err)
	}
	if _, err := a.Link("r", c, nil); err != nil {
		t.Fatalf("Link: %v", err)
	}
	if _, err := a.Link("r", b, nil); err != nil {
		t.Fatalf("Link: %v", err)
	}

	once, err := traversal.Value(traversal.New(traversal.Outgoings, traversal.End, traversal.Unique).Run(db, a))
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	twice, err := traversal.Value(traversal.New(traversal.Outgoings, traversal.End, traversal.Unique, traversal.Unique).Run(db, a))
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if len(once) != len(twice) {
		t.Fatalf("unique . unique changed length: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("unique . unique changed element %d: %v vs %v", i, once[i], twice[i])
		}
	}
}

// Property 14 / S6: sort orders ascending by key. The keys here are
// distinct, so stability is not exercised.
func TestSortOrdersAscending(t *testing.T) {
	db := graphdb.OpenMemory()
	defer db.Close()
	a := mustVertex(t, db, "root", nil)
	v5 := mustVertex(t, db, "leaf", entitystore.Properties{"value": int64(5)})
	v4 := mustVertex(t, db, "leaf", entitystore.Properties{"value": int64(4)})
	v1 := mustVertex(t, db, "leaf", entitystore.Properties{"value": int64(1)})
	for _, v := range []graphdb.Vertex{v5, v4, v1} {
		if _, err := a.Link("t", v, nil); err != nil {
			t.Fatalf("Link: %v", err)
		}
	}

	seq := traversal.New(
		traversal.Outgoings,
		traversal.End,
		traversal.Key("value"),
		traversal.Sort(nil, false),
	).Run(db, a)
	got, err := traversal.Value(seq)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	want := []int64{1, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], w)
		}
	}
}

// Property 15 / S5: path(k) yields a sequence of length k+1.
func TestPathLengthAndResolution(t *testing.T) {
	db := graphdb.OpenMemory()
	defer db.Close()
	a := mustVertex(t, db, "t", nil)
	b := mustVertex(t, db, "t", nil)
	e, err := a.Link("t", b, nil)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}

	seq := traversal.New(
		traversal.Incomings,
		traversal.Start,
		traversal.Path(2),
		traversal.Each(traversal.ResolveEntity),
	).Run(db, b)
	got, err := traversal.Value(seq)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected a single path, got %d", len(got))
	}
	walk, ok := got[0].([]interface{})
	if !ok || len(walk) != 3 {
		t.Fatalf("path(2) did not yield a length-3 walk: %+v", got[0])
	}
	gotA, ok := walk[0].(graphdb.Vertex)
	if !ok || !gotA.Equal(a) {
		t.Fatalf("walk[0] = %+v, want %+v", walk[0], a)
	}
	gotE, ok := walk[1].(graphdb.Edge)
	if !ok || !gotE.Equal(e) {
		t.Fatalf("walk[1] = %+v, want %+v", walk[1], e)
	}
	gotB, ok := walk[2].(graphdb.Vertex)
	if !ok || !gotB.Equal(b) {
		t.Fatalf("walk[2] = %+v, want %+v", walk[2], b)
	}
}

// S4: select_vertices count.
func TestSelectVerticesCount(t *testing.T) {
	db := graphdb.OpenMemory()
	defer db.Close()
	db.Vertex.Index("key")

	values := []string{"one", "one", "two", "one", "two", "one"}
	for _, v := range values {
		mustVertex(t, db, "node", entitystore.Properties{"key": v})
	}

	seq := traversal.New(traversal.SelectVertices("key", "one")).Run(db, nil)
	n, err := traversal.Count(seq)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 4 {
		t.Fatalf("Count = %d, want 4", n)
	}
}

func TestWhereFiltersOnAllProperties(t *testing.T) {
	db := graphdb.OpenMemory()
	defer db.Close()
	mustVertex(t, db, "person", entitystore.Properties{"name": "ada", "active": true})
	mustVertex(t, db, "person", entitystore.Properties{"name": "bob", "active": true})
	mustVertex(t, db, "person", entitystore.Properties{"name": "ada", "active": false})

	seq := traversal.New(
		traversal.Vertices("person"),
		traversal.Where(entitystore.Properties{"name": "ada", "active": true}),
	).Run(db, nil)
	got, err := traversal.Get(db, seq)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Where matched %d vertices, want 1", len(got))
	}
}

func TestGroupCount(t *testing.T) {
	db := graphdb.OpenMemory()
	defer db.Close()
	for _, v := range []string{"a", "a", "b"} {
		mustVertex(t, db, "node", entitystore.Properties{"tag": v})
	}

	seq := traversal.New(traversal.Vertices("node"), traversal.Key("tag")).Run(db, nil)
	counts, err := traversal.GroupCount(seq)
	if err != nil {
		t.Fatalf("GroupCount: %v", err)
	}
	if counts["a"] != 2 || counts["b"] != 1 {
		t.Fatalf("GroupCount = %v, want a:2 b:1", counts)
	}
}
