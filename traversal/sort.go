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

	"github.com/google/btree"

	"github.com/pombredanne/ajgudb/graphdb"
)

// SortKey extracts the comparison key for a token. The default key is
// the token's own Value, which must itself be ordered (see
// defaultLess).
type SortKey func(db *graphdb.DB, tok Token) interface{}

// sortItem is the btree element: it carries the extracted key, the
// original token, and its input position (for the stable tie-break
// btree.BTree's ordering alone can't give us, since two tokens with
// equal keys would otherwise collide as "the same" item).
type sortItem struct {
	key   interface{}
	seq   int
	tok   Token
	less  func(a, b interface{}) bool
}

func (a *sortItem) Less(than btree.Item) bool {
	b := than.(*sortItem)
	if a.less(a.key, b.key) {
		return true
	}
	if b.less(b.key, a.key) {
		return false
	}
	return a.seq < b.seq
}

// Sort fully consumes its input into a buffer, sorts it, and re-emits
// it. Sort is stable: inputs with equal keys keep their relative input
// order, implemented here by threading input position into the tree's
// ordering as explicitly described above rather than relying on an
// unstable in-place sort.
func Sort(key SortKey, reverse bool) Step {
	if key == nil {
		key = func(_ *graphdb.DB, tok Token) interface{} { return tok.Value }
	}
	return func(db *graphdb.DB, in Seq) Seq {
		return seqFunc(buildSortedSeq(db, in, key, reverse))
	}
}

func buildSortedSeq(db *graphdb.DB, in Seq, key SortKey, reverse bool) func() (Token, bool, error) {
	var tree *btree.BTree
	var built bool
	var items []*sortItem
	var idx int

	return func() (Token, bool, error) {
		if !built {
			tree = btree.New(32)
			seq := 0
			for {
				tok, ok, err := in.Next()
				if err != nil {
					return Token{}, false, err
				}
				if !ok {
					break
				}
				pos := seq
				if reverse {
					// Descend visits equal keys by descending seq, so
					// negate it to keep them in input order.
					pos = -seq
				}
				tree.ReplaceOrInsert(&sortItem{key: key(db, tok), seq: pos, tok: tok, less: lessValue})
				seq++
			}
			items = make([]*sortItem, 0, tree.Len())
			collect := func(i btree.Item) bool {
				items = append(items, i.(*sortItem))
				return true
			}
			if reverse {
				tree.Descend(collect)
			} else {
				tree.Ascend(collect)
			}
			built = true
		}
		if idx >= len(items) {
			return Token{}, false, nil
		}
		tok := items[idx].tok
		idx++
		return tok, true, nil
	}
}

// lessValue orders the comparable scalar types codec/entitystore
// property values actually take (int64, string, []byte via string
// conversion, float64); any other pairing is ordered by Go's
// %v-formatted representation so Sort never panics on a mixed or
// unorderable key, at the cost of an arbitrary (but deterministic)
// order for such inputs.
func lessValue(a, b interface{}) bool {
	switch x := a.(type) {
	case int64:
		if y, ok := b.(int64); ok {
			return x < y
		}
	case float64:
		if y, ok := b.(float64); ok {
			return x < y
		}
	case string:
		if y, ok := b.(string); ok {
			return x < y
		}
	case []byte:
		if y, ok := b.([]byte); ok {
			return string(x) < string(y)
		}
	}
	return formatKey(a) < formatKey(b)
}

func formatKey(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
