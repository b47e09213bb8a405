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
	"github.com/pombredanne/ajgudb/graphdb"
)

// Skip drops the first n tokens, then passes the rest through (spec
// §4.5.2 "skip(n)").
func Skip(n int) Step {
	return func(db *graphdb.DB, in Seq) Seq {
		skipped := 0
		return seqFunc(func() (Token, bool, error) {
			for skipped < n {
				_, ok, err := in.Next()
				if err != nil || !ok {
					return Token{}, ok, err
				}
				skipped++
			}
			return in.Next()
		})
	}
}

// Limit emits at most the first n tokens, then stops pulling from its
// input (spec §4.5.2 "limit(n)").
func Limit(n int) Step {
	return func(db *graphdb.DB, in Seq) Seq {
		emitted := 0
		return seqFunc(func() (Token, bool, error) {
			if emitted >= n {
				return Token{}, false, nil
			}
			tok, ok, err := in.Next()
			if err != nil || !ok {
				return Token{}, ok, err
			}
			emitted++
			return tok, true, nil
		})
	}
}

// Paginator emits one list-token per window of n input tokens,
// flushing a partial final window (spec §4.5.2 "paginator(n)").
func Paginator(n int) Step {
	return func(db *graphdb.DB, in Seq) Seq {
		done := false
		return seqFunc(func() (Token, bool, error) {
			if done {
				return Token{}, false, nil
			}
			var page []interface{}
			for len(page) < n {
				tok, ok, err := in.Next()
				if err != nil {
					return Token{}, false, err
				}
				if !ok {
					done = true
					if len(page) == 0 {
						return Token{}, false, nil
					}
					return Token{Value: page, Kind: KindNone}, true, nil
				}
				page = append(page, tok.Value)
			}
			return Token{Value: page, Kind: KindNone}, true, nil
		})
	}
}
