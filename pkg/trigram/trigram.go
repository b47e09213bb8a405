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

// Package trigram is a fuzzy-search sketch: an inverted trigram index
// over arbitrary words, posting lists of entity ids. It is
// acknowledged future work (spec.md §1) and is not wired into the
// traversal pipeline by default — a caller constructs one explicitly
// against a kvengine.KeyValue table and maintains it alongside the
// entity store.
package trigram

import (
	"errors"
	"fmt"

	"github.com/pombredanne/ajgudb/codec"
	"github.com/pombredanne/ajgudb/kvengine"
)

// ErrNotIndexed is returned by Delete when the given id was never
// recorded against one of the word's trigrams.
var ErrNotIndexed = errors.New("trigram: id not indexed for word")

// Index is an inverted trigram->[]id table backed by a KeyValue.
// It is not safe for concurrent use without external synchronization,
// matching the single-writer assumption of the rest of this module.
type Index struct {
	table kvengine.KeyValue
}

// New wraps table as a trigram index. table is expected to be a
// dedicated, otherwise-empty KeyValue namespace.
func New(table kvengine.KeyValue) *Index {
	return &Index{table: table}
}

// trigrams splits word into its constituent three-character chunks,
// mirroring storage.py's Trigrams.trigrams: non-overlapping windows
// of length 3, plus a final overlapping window covering the last
// three characters when len(word) isn't a multiple of 3.
func trigrams(word string) []string {
	r := []rune(word)
	n := len(r)
	var out []string
	i := 0
	for ; n-i >= 3; i += 3 {
		out = append(out, string(r[i:i+3]))
	}
	if n%3 != 0 && n >= 3 {
		out = append(out, string(r[n-3:]))
	}
	return out
}

// Index records uid against every trigram of word.
func (idx *Index) Index(word string, uid uint64) error {
	for _, tg := range trigrams(word) {
		key, err := codec.Encode(tg)
		if err != nil {
			return fmt.Errorf("trigram: encoding key: %w", err)
		}
		ids, err := idx.postings(key)
		if err != nil && err != kvengine.ErrNotFound {
			return err
		}
		ids = appendUnique(ids, uid)
		if err := idx.putPostings(key, ids); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes uid from every trigram posting list of word.
func (idx *Index) Delete(word string, uid uint64) error {
	for _, tg := range trigrams(word) {
		key, err := codec.Encode(tg)
		if err != nil {
			return fmt.Errorf("trigram: encoding key: %w", err)
		}
		ids, err := idx.postings(key)
		if err != nil {
			if err == kvengine.ErrNotFound {
				return ErrNotIndexed
			}
			return err
		}
		out, found := removeOne(ids, uid)
		if !found {
			return ErrNotIndexed
		}
		if len(out) == 0 {
			if err := idx.table.Delete(key); err != nil {
				return err
			}
			continue
		}
		if err := idx.putPostings(key, out); err != nil {
			return err
		}
	}
	return nil
}

// Search returns the ids whose word shares at least one trigram with
// query, ranked by descending number of shared trigrams (a cheap
// fuzzy-match sketch, not an edit-distance search).
func (idx *Index) Search(query string) ([]uint64, error) {
	counts := make(map[uint64]int)
	for _, tg := range trigrams(query) {
		key, err := codec.Encode(tg)
		if err != nil {
			return nil, fmt.Errorf("trigram: encoding key: %w", err)
		}
		ids, err := idx.postings(key)
		if err != nil {
			if err == kvengine.ErrNotFound {
				continue
			}
			return nil, err
		}
		for _, id := range ids {
			counts[id]++
		}
	}
	return rankByCount(counts), nil
}

func (idx *Index) postings(key []byte) ([]uint64, error) {
	v, err := idx.table.Get(key)
	if err != nil {
		return nil, err
	}
	decoded, err := codec.Decode(v)
	if err != nil {
		return nil, fmt.Errorf("trigram: decoding postings: %w", err)
	}
	out := make([]uint64, 0, len(decoded))
	for _, d := range decoded {
		i, ok := d.(int64)
		if !ok {
			return nil, fmt.Errorf("trigram: posting entry is not an integer: %T", d)
		}
		out = append(out, uint64(i))
	}
	return out, nil
}

func (idx *Index) putPostings(key []byte, ids []uint64) error {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = int64(id)
	}
	v, err := codec.Encode(args...)
	if err != nil {
		return fmt.Errorf("trigram: encoding postings: %w", err)
	}
	return idx.table.Set(key, v)
}

func appendUnique(ids []uint64, uid uint64) []uint64 {
	for _, id := range ids {
		if id == uid {
			return ids
		}
	}
	return append(ids, uid)
}

func removeOne(ids []uint64, uid uint64) ([]uint64, bool) {
	for i, id := range ids {
		if id == uid {
			out := append(append([]uint64(nil), ids[:i]...), ids[i+1:]...)
			return out, true
		}
	}
	return ids, false
}

func rankByCount(counts map[uint64]int) []uint64 {
	out := make([]uint64, 0, len(counts))
	for id := range counts {
		out = append(out, id)
	}
	// Simple insertion sort by descending count; posting lists in this
	// sketch are small (bounded by matches per trigram), so an O(n^2)
	// sort keeps the package dependency-free.
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && counts[out[j-1]] < counts[out[j]] {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}
