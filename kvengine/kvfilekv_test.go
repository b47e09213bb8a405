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
	"path/filepath"
	"testing"

	"github.com/pombredanne/ajgudb/kvengine"
	"github.com/pombredanne/ajgudb/kvengine/kvtest"
)

func TestKVFileKeyValue(t *testing.T) {
	dir := t.TempDir()
	kv, err := kvengine.OpenKVFile(filepath.Join(dir, "graph.kv"))
	if err != nil {
		t.Fatalf("OpenKVFile: %v", err)
	}
	defer kv.Close()
	kvtest.TestKeyValue(t, kv)
}
