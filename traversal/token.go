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

// Package traversal is a gremlin-style query engine: steps are pure
// functions composed into pipelines that thread a lazy stream of
// tokens from one step to the next.
package traversal

// Kind tags what an entity-valued token refers to. Tokens produced by
// key/keys/each/path/paginator carry no entity identity, so they use
// KindNone; scatter uses KindNone too, except for an element that is
// itself a Token, which keeps its own kind.
type Kind int

const (
	KindNone Kind = iota
	KindVertex
	KindEdge
)

// Token is the unit flowing through a pipeline: a value, the token it
// was derived from (its parent, nil at a source step), and a kind
// tagging what Value means. The parent chain is what lets back and
// path walk backwards without any side-channel state.
type Token struct {
	Value  interface{}
	Parent *Token
	Kind   Kind
}

// Seq is a pull-driven stream of tokens. Next returns ok=false with a
// nil error at normal end of stream, and a non-nil error if producing
// further tokens failed (a storage or codec error surfaced from
// underlying entitystore calls). Once Next returns an error or
// ok=false, a Seq is not required to produce anything useful on
// further calls.
type Seq interface {
	Next() (Token, bool, error)
}

// seqFunc adapts a plain closure to Seq, the same shape as gremlin.py's
// step functions returning a generator.
type seqFunc func() (Token, bool, error)

func (f seqFunc) Next() (Token, bool, error) { return f() }

// emptySeq is a Seq with no tokens.
func emptySeq() Seq {
	return seqFunc(func() (Token, bool, error) { return Token{}, false, nil })
}

// oneSeq yields exactly one token.
func oneSeq(tok Token) Seq {
	done := false
	return seqFunc(func() (Token, bool, error) {
		if done {
			return Token{}, false, nil
		}
		done = true
		return tok, true, nil
	})
}

// sliceSeq yields the given tokens in order, one per Next call.
func sliceSeq(tokens []Token) Seq {
	i := 0
	return seqFunc(func() (Token, bool, error) {
		if i >= len(tokens) {
			return Token{}, false, nil
		}
		tok := tokens[i]
		i++
		return tok, true, nil
	})
}

// errSeq is a Seq whose first Next call reports err.
func errSeq(err error) Seq {
	done := false
	return seqFunc(func() (Token, bool, error) {
		if done {
			return Token{}, false, nil
		}
		done = true
		return Token{}, false, err
	})
}

// Drain consumes every remaining token of seq and returns them as a
// slice, stopping at the first error.
func Drain(seq Seq) ([]Token, error) {
	var out []Token
	for {
		tok, ok, err := seq.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, tok)
	}
}
