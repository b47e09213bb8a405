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

// Count fully consumes seq and returns the number of tokens seen
// (spec §4.5.2 "count").
func Count(seq Seq) (int64, error) {
	var n int64
	for {
		_, ok, err := seq.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			return n, nil
		}
		n++
	}
}

// Mean fully consumes seq, treating each token's Value as a float64
// (int64 values are converted), and returns their arithmetic mean. An
// empty input is an InvalidArgument-flavored error, since the mean of
// nothing is undefined (spec §4.5.2 "mean").
func Mean(seq Seq) (float64, error) {
	var total float64
	var n int64
	for {
		tok, ok, err := seq.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		v, err := toFloat(tok.Value)
		if err != nil {
			return 0, err
		}
		total += v
		n++
	}
	if n == 0 {
		return 0, fmt.Errorf("traversal: mean of empty sequence")
	}
	return total / float64(n), nil
}

func toFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("traversal: mean: value %v (%T) is not numeric", v, v)
	}
}

// GroupCount fully consumes seq and returns a mapping from each
// distinct Value seen to how many tokens carried it (spec §4.5.2
// "group_count").
func GroupCount(seq Seq) (map[interface{}]int64, error) {
	out := make(map[interface{}]int64)
	for {
		tok, ok, err := seq.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out[tok.Value]++
	}
}

// Value fully consumes seq and returns the raw Value field of each
// token, discarding kind and parent (spec §4.5.2 "value").
func Value(seq Seq) ([]interface{}, error) {
	tokens, err := Drain(seq)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Value
	}
	return out, nil
}

// Get fully consumes seq and resolves every token to its full
// graphdb.Vertex or graphdb.Edge value object (spec §4.5.2 "get").
// Tokens produced by a step that does not carry entity identity
// (Kind == KindNone) are rejected: Get only makes sense at the end of
// a pipeline whose last entity-bearing step was a source or
// navigation step.
func Get(db *graphdb.DB, seq Seq) ([]interface{}, error) {
	tokens, err := Drain(seq)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind != KindVertex && tok.Kind != KindEdge {
			return nil, fmt.Errorf("traversal: get: token has no entity kind (value %v)", tok.Value)
		}
		v, err := ResolveEntity(db, tok)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
