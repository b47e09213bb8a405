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

// Package kvtest exercises any kvengine.KeyValue implementation
// against the same table of operations, the way
// perkeep.org/pkg/sorted/kvtest does for sorted.KeyValue.
package kvtest

import (
	"testing"

	"github.com/pombredanne/ajgudb/kvengine"
)

// TestKeyValue runs backend-agnostic conformance checks against kv.
// kv is expected to be empty; the caller owns its lifecycle (and
// Close).
func TestKeyValue(t *testing.T, kv kvengine.KeyValue) {
	if !isEmpty(t, kv) {
		t.Fatal("kv under test is expected to start empty")
	}

	set := func(k, v string) {
		if err := kv.Set([]byte(k), []byte(v)); err != nil {
			t.Fatalf("Set(%q, %q): %v", k, v, err)
		}
	}

	set("foo", "bar")
	if v, err := kv.Get([]byte("foo")); err != nil || string(v) != "bar" {
		t.Errorf("Get(foo) = %q, %v; want bar, nil", v, err)
	}
	if _, err := kv.Get([]byte("missing")); err != kvengine.ErrNotFound {
		t.Errorf("Get(missing) = %v; want ErrNotFound", err)
	}
	for i := 0; i < 2; i++ {
		if err := kv.Delete([]byte("foo")); err != nil {
			t.Errorf("Delete(foo) (pass %d) returned %v; delete of absent key must be a no-op", i, err)
		}
	}

	set("a", "av")
	set("b", "bv")
	set("c", "cv")
	assertEnumerate(t, kv, "", "", "av", "bv", "cv")
	assertEnumerate(t, kv, "a", "", "av", "bv", "cv")
	assertEnumerate(t, kv, "b", "", "bv", "cv")
	assertEnumerate(t, kv, "a", "c", "av", "bv")
	assertEnumerate(t, kv, "a", "b", "av")
	assertEnumerate(t, kv, "d", "")

	testBatch(t, kv)
}

func testBatch(t *testing.T, kv kvengine.KeyValue) {
	b := kv.NewBatch()
	b.Set([]byte("x"), []byte("1"))
	b.Set([]byte("y"), []byte("2"))
	b.Delete([]byte("a"))
	if err := b.Commit(); err != nil {
		t.Fatalf("batch Commit: %v", err)
	}
	if v, err := kv.Get([]byte("x")); err != nil || string(v) != "1" {
		t.Errorf("after batch, Get(x) = %q, %v; want 1, nil", v, err)
	}
	if _, err := kv.Get([]byte("a")); err != kvengine.ErrNotFound {
		t.Errorf("after batch, Get(a) = %v; want ErrNotFound (batch delete)", err)
	}
}

func assertEnumerate(t *testing.T, kv kvengine.KeyValue, start, end string, want ...string) {
	t.Helper()
	var startB, endB []byte
	if start != "" {
		startB = []byte(start)
	}
	if end != "" {
		endB = []byte(end)
	}
	cur := kv.Scan(startB, endB)
	defer cur.Close()
	var got []string
	for cur.Next() {
		got = append(got, string(cur.Value()))
	}
	if err := cur.Err(); err != nil {
		t.Errorf("Scan(%q, %q): %v", start, end, err)
	}
	if len(got) != len(want) {
		t.Fatalf("Scan(%q, %q) = %v; want %v", start, end, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Scan(%q, %q)[%d] = %q; want %q", start, end, i, got[i], want[i])
		}
	}
}

func isEmpty(t *testing.T, kv kvengine.KeyValue) bool {
	t.Helper()
	cur := kv.Scan(nil, nil)
	defer cur.Close()
	has := cur.Next()
	if err := cur.Err(); err != nil {
		t.Fatalf("Scan while testing emptiness: %v", err)
	}
	return !has
}
