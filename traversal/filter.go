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

// Where drops tokens whose entity does not match all listed property
// equalities (spec §4.5.2 "where(**kv)").
func Where(want entitystore.Properties) Step {
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
				match := true
				for k, v := range want {
					if props[k] != v {
						match = false
						break
					}
				}
				if match {
					return tok, true, nil
				}
			}
		})
	}
}

// Predicate is a user filter callback for Filter.
type Predicate func(db *graphdb.DB, tok Token) (bool, error)

// Filter keeps only tokens for which predicate returns true (spec
// §4.5.2 "filter(predicate)").
func Filter(predicate Predicate) Step {
	return func(db *graphdb.DB, in Seq) Seq {
		return seqFunc(func() (Token, bool, error) {
			for {
				tok, ok, err := in.Next()
				if err != nil || !ok {
					return Token{}, ok, err
				}
				keep, err := predicate(db, tok)
				if err != nil {
					return Token{}, false, err
				}
				if keep {
					return tok, true, nil
				}
			}
		})
	}
}

// Unique deduplicates by Value, lazily and in insertion order; memory
// use is bounded by the number of distinct values seen, not the
// length of the input (spec §4.5.2 "unique").
func Unique(db *graphdb.DB, in Seq) Seq {
	seen := make(map[interface{}]struct{})
	return seqFunc(func() (Token, bool, error) {
		for {
			tok, ok, err := in.Next()
			if err != nil || !ok {
				return Token{}, ok, err
			}
			if _, dup := seen[tok.Value]; dup {
				continue
			}
			seen[tok.Value] = struct{}{}
			return tok, true, nil
		}
	})
}
