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

package trigram

import (
	"reflect"
	"testing"

	"github.com/pombredanne/ajgudb/codec"
	"github.com/pombredanne/ajgudb/kvengine"
)

func TestTrigramsSplit(t *testing.T) {
	cases := []struct {
		word string
		want []string
	}{
		{"hello", []string{"hel", "llo"}},
		{"hell", []string{"hel", "ell"}},
		{"foo", []string{"foo"}},
		{"fo", nil},
	}
	for _, c := range cases {
		got := trigrams(c.word)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("trigrams(%q) = %v, want %v", c.word, got, c.want)
		}
	}
}

func TestIndexSearchDelete(t *testing.T) {
	idx := New(kvengine.NewMemory())

	if err := idx.Index("hello", 1); err != nil {
		t.Fatalf("Index hello/1: %v", err)
	}
	if err := idx.Index("help", 2); err != nil {
		t.Fatalf("Index help/2: %v", err)
	}

	got, err := idx.Search("hello")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) == 0 || got[0] != 1 {
		t.Fatalf("Search(hello) = %v, want id 1 ranked first", got)
	}

	if err := idx.Delete("hello", 1); err != nil {
		t.Fatalf("Delete hello/1: %v", err)
	}
	got, err = idx.Search("hello")
	if err != nil {
		t.Fatalf("Search after delete: %v", err)
	}
	for _, id := range got {
		if id == 1 {
			t.Fatalf("Search(hello) still returns deleted id 1: %v", got)
		}
	}

	if err := idx.Delete("hello", 1); err != ErrNotIndexed {
		t.Fatalf("Delete of already-removed id = %v, want ErrNotIndexed", err)
	}
}

func TestIndexDuplicateNoop(t *testing.T) {
	idx := New(kvengine.NewMemory())
	if err := idx.Index("cat", 7); err != nil {
		t.Fatalf("Index: %v", err)
	}
	if err := idx.Index("cat", 7); err != nil {
		t.Fatalf("re-Index: %v", err)
	}
	key, err := codec.Encode("cat")
	if err != nil {
		t.Fatalf("codec.Encode: %v", err)
	}
	ids, err := idx.postings(key)
	if err != nil {
		t.Fatalf("postings: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("postings(cat) = %v, want exactly one entry", ids)
	}
}
