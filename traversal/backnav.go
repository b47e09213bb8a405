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

// Back emits each token's parent (spec §4.5.2 "back"). A token with no
// parent (one produced directly by a source step) is dropped, since
// there is nothing to emit.
func Back(db *graphdb.DB, in Seq) Seq {
	return seqFunc(func() (Token, bool, error) {
		for {
			tok, ok, err := in.Next()
			if err != nil || !ok {
				return Token{}, ok, err
			}
			if tok.Parent == nil {
				continue
			}
			return *tok.Parent, true, nil
		}
	})
}

// Path emits, per input token, a list of length k+1 walking k parent
// links starting at the token itself (spec §4.5.2 "path(k)", testable
// property 15). The list holds the full tokens along the walk, not
// just their raw values, so that a following each(ResolveEntity) can
// still recover each step's full entity (see S5 in the design notes:
// path's elements must carry enough identity and kind to resolve back
// to Vertex/Edge value objects). Running out of parent before k steps
// yields a shorter-than-k+1 list rather than panicking, since a
// pipeline that under-supplies ancestry is a caller error the value,
// not the engine, should surface.
func Path(k int) Step {
	return func(db *graphdb.DB, in Seq) Seq {
		return seqFunc(func() (Token, bool, error) {
			tok, ok, err := in.Next()
			if err != nil || !ok {
				return Token{}, ok, err
			}
			walk := make([]interface{}, 0, k+1)
			cur := &tok
			for i := 0; i <= k && cur != nil; i++ {
				walk = append(walk, *cur)
				cur = cur.Parent
			}
			parent := tok
			return Token{Value: walk, Parent: &parent, Kind: KindNone}, true, nil
		})
	}
}
