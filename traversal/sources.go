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

// idsToTokens wraps a slice of ids as a token stream of the given
// kind, with no parent (a source step's tokens start fresh).
func idsToTokens(kind Kind, ids []uint64) []Token {
	tokens := make([]Token, len(ids))
	for i, id := range ids {
		tokens[i] = Token{Value: id, Kind: kind}
	}
	return tokens
}

// Vertices is a source step enumerating vertex ids. With no label it
// enumerates every vertex; with a label it enumerates only vertices
// with exactly that label (labels after the first are ignored). A
// missing label plainly means
// "don't filter" rather than "match the empty label".
func Vertices(labels ...string) Step {
	return func(db *graphdb.DB, in Seq) Seq {
		ids, err := db.Vertex.Identifiers(labels...)
		if err != nil {
			return errSeq(err)
		}
		return sliceSeq(idsToTokens(KindVertex, ids))
	}
}

// Edges is a source step enumerating edge ids (spec §4.5.2
// "edges(label?)"). The Python original tagged these tokens VERTEX,
// not EDGE — evidently a copy-paste slip from vertices(), since every
// downstream step that branches on item.kind (where, key, get) would
// otherwise dispatch edge ids into the vertex table. This
// implementation tags them EDGE, as the rest of the step catalogue
// requires.
func Edges(labels ...string) Step {
	return func(db *graphdb.DB, in Seq) Seq {
		ids, err := db.Edge.Identifiers(labels...)
		if err != nil {
			return errSeq(err)
		}
		return sliceSeq(idsToTokens(KindEdge, ids))
	}
}

// SelectVertices is a source step enumerating vertex ids whose `name`
// property equals value, via the optional property index (spec
// §4.5.2 "select_vertices(key=value)"). Unlike the Python original,
// which only accepted a single keyword argument and raised if given
// more, this takes the property name and value as explicit
// parameters — there is no Go equivalent of **kwargs that preserves
// static typing for the value.
func SelectVertices(name string, value interface{}) Step {
	return func(db *graphdb.DB, in Seq) Seq {
		ids, err := db.Vertex.Keys(name, value)
		if err != nil {
			return errSeq(err)
		}
		return sliceSeq(idsToTokens(KindVertex, ids))
	}
}
