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

package traversal

import (
	"github.com/pombredanne/ajgudb/entitystore"
	"github.com/pombredanne/ajgudb/graphdb"
)

func propertiesOf(db *graphdb.DB, tok Token) (entitystore.Properties, error) {
	id, _ := tok.Value.(uint64)
	if tok.Kind == KindEdge {
		e, err := db.Edge.Get(id)
		if err != nil {
			return nil, err
		}
		return e.Properties, nil
	}
	v, err := db.Vertex.Get(id)
	if err != nil {
		return nil, err
	}
	return v.Properties, nil
}

// Key emits the single property value named name for each input
// token, silently dropping tokens whose entity lacks the property.
func Key(name string) Step {
	return func(db *graphdb.DB, in Seq) Seq {
		return seqFunc(func() (Token, bool, error) {
			for {
				tok, ok, err := in.Next()
				if err != nil || !ok {
					return Token{}, ok, err
				}
				props, err := propertiesOf(db, tok)
				if err != nil {
					return Token{}, false, err
				}
				value, present := props[name]
				if !present {
					continue
				}
				parent := tok
				return Token{Value: value, Parent: &parent, Kind: KindNone}, true, nil
			}
		})
	}
}

// Keys emits a list of property values, one list-token per input, for
// the given property names in order. A name missing on an entity
// contributes a nil element rather than
// dropping the token, since there is no single well-defined value to
// drop for a multi-name projection.
func Keys(names ...string) Step {
	return func(db *graphdb.DB, in Seq) Seq {
		return seqFunc(func() (Token, bool, error) {
			tok, ok, err := in.Next()
			if err != nil || !ok {
				return Token{}, ok, err
			}
			props, err := propertiesOf(db, tok)
			if err != nil {
				return Token{}, false, err
			}
			values := make([]interface{}, len(names))
			for i, name := range names {
				values[i] = props[name]
			}
			parent := tok
			return Token{Value: values, Parent: &parent, Kind: KindNone}, true, nil
		})
	}
}
