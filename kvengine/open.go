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

package kvengine

import (
	"fmt"

	"github.com/pombredanne/ajgudb/pkg/jsonconfig"
)

// Open constructs a KeyValue from a jsonconfig.Obj, the way the
// teacher's sorted.NewKeyValue selects among registered backends
// (pkg/sorted/kv.go). cfg["type"] selects the backend; the remaining
// keys are backend-specific and passed through opaquely, per spec §6
// "Configuration":
//
//	{"type": "leveldb", "file": "/var/db/g.ldb", "cacheSize": 67108864}
//	{"type": "kvfile",  "file": "/var/db/g.kv"}
//	{"type": "memory"}
func Open(cfg jsonconfig.Obj) (KeyValue, error) {
	typ := cfg.RequiredString("type")
	switch typ {
	case "memory":
		return NewMemory(), nil
	case "leveldb":
		file := cfg.RequiredString("file")
		cacheSize := cfg.OptionalInt("cacheSize", 0)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return OpenLevelDB(file, cacheSize)
	case "kvfile":
		file := cfg.RequiredString("file")
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return OpenKVFile(file)
	default:
		return nil, fmt.Errorf("kvengine: unknown backend type %q", typ)
	}
}
