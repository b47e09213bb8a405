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

// Resolver turns one token into an arbitrary value. ResolveEntity is
// the resolver Get and Each(ResolveEntity) both use to turn an
// entity-kind token into its full Vertex or Edge value object.
type Resolver func(db *graphdb.DB, tok Token) (interface{}, error)

// ResolveEntity resolves a vertex- or edge-kind token to its full
// value object; any other token resolves to its own raw Value.
func ResolveEntity(db *graphdb.DB, tok Token) (interface{}, error) {
	id, _ := tok.Value.(uint64)
	switch tok.Kind {
	case KindVertex:
		return db.Vertex.Get(id)
	case KindEdge:
		return db.Edge.Get(id)
	default:
		return tok.Value, nil
	}
}

// Each applies resolve per token. When the input token's Value is
// itself a list produced by Path or Scatter's upstream Keys/Paginator
// step, resolve is applied element-wise and
// the new token's Value is the list of resolved results — this is
// what lets `path(k) • each(ResolveEntity) • value` recover the full
// Vertex/Edge chain a path walked, since Path's list elements are
// themselves tokens, not raw ids (see Path's doc comment).
func Each(resolve Resolver) Step {
	return func(db *graphdb.DB, in Seq) Seq {
		return seqFunc(func() (Token, bool, error) {
			tok, ok, err := in.Next()
			if err != nil || !ok {
				return Token{}, ok, err
			}
			result, err := eachResult(db, tok, resolve)
			if err != nil {
				return Token{}, false, err
			}
			parent := tok
			return Token{Value: result, Parent: &parent, Kind: KindNone}, true, nil
		})
	}
}

func eachResult(db *graphdb.DB, tok Token, resolve Resolver) (interface{}, error) {
	list, ok := tok.Value.([]interface{})
	if !ok {
		return resolve(db, tok)
	}
	out := make([]interface{}, len(list))
	for i, elem := range list {
		elemTok, isTok := elem.(Token)
		if !isTok {
			elemTok = Token{Value: elem}
		}
		v, err := resolve(db, elemTok)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Scatter explodes a list-valued token into one token per element, the
// inverse of Paginator/Path/Keys's list-building. An element that is
// itself a Token (as Path's list
// elements are) is re-emitted as-is, keeping its own kind and parent
// rather than being rewrapped with KindNone.
func Scatter(db *graphdb.DB, in Seq) Seq {
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
			elems, _ := tok.Value.([]interface{})
			parent := tok
			for _, e := range elems {
				if elemTok, isTok := e.(Token); isTok {
					pending = append(pending, elemTok)
					continue
				}
				pending = append(pending, Token{Value: e, Parent: &parent, Kind: KindNone})
			}
		}
		next := pending[0]
		pending = pending[1:]
		return next, true, nil
	})
}
