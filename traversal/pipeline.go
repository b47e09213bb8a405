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
	"fmt"

	"github.com/pombredanne/ajgudb/graphdb"
)

// Step is a pipeline stage: (graph, input stream) -> output stream
// (spec §4.5.1). A step may close over its own configuration (limit(5)
// captures 5) but must otherwise be pure: running the same pipeline
// twice against equivalent input produces equivalent output.
type Step func(db *graphdb.DB, in Seq) Seq

// Pipeline is a list of steps composed left to right, the Go
// counterpart of gremlin.py's query(*steps).
type Pipeline []Step

// New builds a Pipeline from steps, in order.
func New(steps ...Step) Pipeline {
	return Pipeline(steps)
}

// Run executes the pipeline against start, returning the resulting
// token stream. start may be:
//   - nil: the first step must be a source step (Vertices, Edges,
//     SelectVertices), which ignores its input;
//   - a graphdb.Vertex or graphdb.Edge: wrapped as a one-token stream;
//   - a Token: wrapped as a one-token stream;
//   - a Seq: used directly.
//
// Source steps (Vertices, Edges, SelectVertices) read their whole id
// list from storage when Run composes the pipeline; every other step
// is pull-driven. Errors from underlying entitystore calls, a source
// step's included, surface only as Next is called on the returned Seq.
func (p Pipeline) Run(db *graphdb.DB, start interface{}) Seq {
	var in Seq
	switch v := start.(type) {
	case nil:
		in = emptySeq()
	case graphdb.Vertex:
		in = oneSeq(Token{Value: v.ID, Kind: KindVertex})
	case graphdb.Edge:
		in = oneSeq(Token{Value: v.ID, Kind: KindEdge})
	case Token:
		in = oneSeq(v)
	case Seq:
		in = v
	default:
		return errSeq(fmt.Errorf("traversal: unsupported start value of type %T", start))
	}

	for _, step := range p {
		in = step(db, in)
	}
	return in
}
