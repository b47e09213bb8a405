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

func TestCollectionSetGetRemove(t *testing.T) {
	kv := kvengine.NewMemory()
	defer kv.Close()
	c := entitystore.NewCollection(kv)

	if _, err := c.Get("schema-version"); err != entitystore.ErrNotFound {
		t.Fatalf("Get(missing) = %v, want ErrNotFound", err)
	}
	if err := c.Set("schema-version", int64(3)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := c.Get("schema-version")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != int64(3) {
		t.Fatalf("Get = %v, want 3", v)
	}
	if err := c.Remove("schema-version"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := c.Get("schema-version"); err != entitystore.ErrNotFound {
		t.Fatalf("Get after remove = %v, want ErrNotFound", err)
	}
}
