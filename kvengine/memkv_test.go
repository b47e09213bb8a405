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

package kvengine_test

import (
	"testing"

	"github.com/pombredanne/ajgudb/kvengine"
	"github.com/pombredanne/ajgudb/kvengine/kvtest"
)

func TestMemoryKeyValue(t *testing.T) {
	kvtest.TestKeyValue(t, kvengine.NewMemory())
}

func TestTableScanStripsPrefix(t *testing.T) {
	kv := kvengine.NewMemory()
	vertices := kvengine.NewTable(kv, "vertices")
	labels := kvengine.NewTable(kv, "vertices:labels")

	b := kv.NewBatch()
	vertices.Put(b, []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}, []byte("row1"))
	labels.Put(b, []byte("person|1"), nil)
	if err := b.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	cur := vertices.Scan(nil, nil)
	defer cur.Close()
	if !cur.Next() {
		t.Fatal("expected one row in vertices table")
	}
	if string(cur.Value()) != "row1" {
		t.Errorf("Value() = %q, want row1", cur.Value())
	}
	if cur.Next() {
		t.Error("vertices table should not see the labels-table row")
	}
}

func TestCursorPoolRecyclesWrapper(t *testing.T) {
	kv := kvengine.NewMemory()
	table := kvengine.NewTable(kv, "t")
	if err := table.SetNow([]byte("a"), []byte("1")); err != nil {
		t.Fatal(err)
	}

	c1 := table.Scan(nil, nil)
	c1.Next()
	if err := c1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// A cursor opened after the first is closed should be able to
	// reuse the pooled wrapper without state bleeding through.
	c2 := table.Scan(nil, nil)
	defer c2.Close()
	if !c2.Next() {
		t.Fatal("expected the row to still be there for the second scan")
	}
	if string(c2.Value()) != "1" {
		t.Errorf("Value() = %q, want 1", c2.Value())
	}
}
