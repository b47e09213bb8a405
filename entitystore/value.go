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
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// Properties is an entity's property map: string keys to tagged
// scalar or composite values. Accepted Go representations are int64,
// string, []byte, float64, bool, nil, []interface{}, and
// map[string]interface{} — the same set codec's opaque element
// accepts, since both paths go through msgpack.
type Properties map[string]interface{}

// Clone returns a shallow copy, enough to give a value object its own
// map so that mutating a returned Vertex/Edge's properties can't
// reach back into the store's scratch buffers.
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// packProperties serializes the whole property map as one msgpack
// value.
func packProperties(p Properties) ([]byte, error) {
	if p == nil {
		p = Properties{}
	}
	return msgpack.Marshal(map[string]interface{}(p))
}

// unpackProperties is the inverse of packProperties. It decodes with
// loose interface decoding so that an int64 property survives the
// round trip as int64 rather than msgpack/v5's default
// width-narrowed int8/int16/int32 — without this, a property stored
// as int64(5) would come back as int8(5), breaking the type equality
// Where/propertiesMatch and codec.Encode's type switch rely on (codec
// would silently fall through to its opaque element for a narrowed
// int, instead of its dedicated integer element).
func unpackProperties(data []byte) (Properties, error) {
	var m map[string]interface{}
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return Properties(m), nil
}
