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

// Incomings navigates vertex tokens to edge tokens: one output token
// per edge ending at each input vertex, in edge-id ascending order
// (spec §4.5.2; adjacency index order per spec §4.5.3).
func Incomings(db *graphdb.DB, in Seq) Seq {
	return adjacency(db.Edge.Incomings)(db, in)
}

// Outgoings navigates vertex tokens to edge tokens: one output token
// per edge starting at each input vertex.
func Outgoings(db *graphdb.DB, in Seq) Seq {
	return adjacency(db.Edge.Outgoings)(db, in)
}

func adjacency(lookup func(uint64) ([]uint64, error)) Step {
	return func(db *graphdb.DB, in Seq) Seq {
		var pending []Token
		return seqFunc(func() (Token, bool, error) {
			for len(pending) == 0 {
				tok, ok, err := in.Next()
				if err != nil {
					return Token{}, false, err
				}
				if !ok {
					return Token{}, false, nil
				}
				id, _ := tok.Value.(uint64)
				edgeIDs, err := lookup(id)
				if err != nil {
					return Token{}, false, err
				}
				parent := tok
				for _, eid := range edgeIDs {
					pending = append(pending, Token{Value: eid, Parent: &parent, Kind: KindEdge})
				}
			}
			next := pending[0]
			pending = pending[1:]
			return next, true, nil
		})
	}
}

// Start navigates edge tokens to vertex tokens: each edge's start
// endpoint.
func Start(db *graphdb.DB, in Seq) Seq {
	return endpoint(func(e graphdb.Edge) uint64 { return e.Start })(db, in)
}

// End navigates edge tokens to vertex tokens: each edge's end
// endpoint.
func End(db *graphdb.DB, in Seq) Seq {
	return endpoint(func(e graphdb.Edge) uint64 { return e.End })(db, in)
}

func endpoint(pick func(graphdb.Edge) uint64) Step {
	return func(db *graphdb.DB, in Seq) Seq {
		return seqFunc(func() (Token, bool, error) {
			tok, ok, err := in.Next()
			if err != nil || !ok {
				return Token{}, ok, err
			}
			id, _ := tok.Value.(uint64)
			edge, err := db.Edge.Get(id)
			if err != nil {
				return Token{}, false, err
			}
			parent := tok
			return Token{Value: pick(edge), Parent: &parent, Kind: KindVertex}, true, nil
		})
	}
}
