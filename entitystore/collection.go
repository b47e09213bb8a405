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

package entitystore

import (
	"github.com/pombredanne/ajgudb/kvengine"
)

// Collection is a flat string-keyed scratch store for whatever a
// caller needs to persist alongside the graph but outside its schema
// (database metadata, a last-compaction timestamp, a migration
// marker).
type Collection struct {
	table *kvengine.Table
}

// NewCollection opens (or creates) the collection table over kv.
func NewCollection(kv kvengine.KeyValue) *Collection {
	return &Collection{table: kvengine.NewTable(kv, "collection")}
}

// Set stores value under key, msgpack-encoded, overwriting any prior
// value.
func (c *Collection) Set(key string, value interface{}) error {
	packed, err := packProperties(Properties{"value": value})
	if err != nil {
		return WrapCodecError(err)
	}
	if err := c.table.SetNow([]byte(key), packed); err != nil {
		return WrapStorageError(err)
	}
	return nil
}

// Get returns the value previously stored under key, or ErrNotFound.
func (c *Collection) Get(key string) (interface{}, error) {
	raw, err := c.table.Get([]byte(key))
	if err != nil {
		return nil, WrapStorageError(err)
	}
	props, err := unpackProperties(raw)
	if err != nil {
		return nil, WrapCodecError(err)
	}
	return props["value"], nil
}

// Remove deletes key. Removing an absent key is not an error, per
// kvengine.KeyValue.Delete's idempotence contract.
func (c *Collection) Remove(key string) error {
	if err := c.table.DeleteNow([]byte(key)); err != nil {
		return WrapStorageError(err)
	}
	return nil
}
