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

// Package kvengine exposes the ordered key-value engine that backs
// the entity store as a minimal contract. No other package in this
// module talks to an underlying storage engine directly; they all go
// through a KeyValue.
package kvengine

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get for a key that isn't present.
var ErrNotFound = errors.New("kvengine: key not found")

// ErrKeyTooLarge and ErrValueTooLarge bound the keys and values this
// layer will accept, mirroring the size ceilings real embedded
// engines enforce (goleveldb and modernc.org/kv are both happy with
// keys and values well past what this index layer ever produces, but
// a bound here turns a pathological caller-supplied property into an
// error instead of a multi-megabyte key silently landing on disk; the
// entity store passes it on wrapped as a storage error).
var (
	ErrKeyTooLarge   = errors.New("kvengine: key too large")
	ErrValueTooLarge = errors.New("kvengine: value too large")
)

const (
	MaxKeySize   = 1 << 16
	MaxValueSize = 1 << 24
)

// CheckSizes validates a prospective key/value pair before it is
// handed to a backend.
func CheckSizes(key, value []byte) error {
	if len(key) > MaxKeySize {
		return ErrKeyTooLarge
	}
	if len(value) > MaxValueSize {
		return ErrValueTooLarge
	}
	return nil
}

// KeyValue is a sorted, enumerable key-value store supporting atomic
// batch mutation. Keys and values are opaque byte strings; ordering
// is whatever the backend's native byte-comparison gives, which for
// every backend here is plain lexicographic order on the bytes —
// exactly what codec.Encode relies on.
type KeyValue interface {
	// Get returns the value for key, or ErrNotFound.
	Get(key []byte) ([]byte, error)

	// Set and Delete are idempotent on value equality: setting a key
	// to the value it already has, or deleting an absent key, is not
	// an error.
	Set(key, value []byte) error
	Delete(key []byte) error

	// Scan returns a cursor positioned before the first key >= start
	// (and, if end is non-nil, strictly before end). Callers MUST call
	// Cursor.Close when done, on every exit path, whether or not the
	// cursor was drained.
	Scan(start, end []byte) Cursor

	// NewBatch starts an atomic multi-key write batch.
	NewBatch() Batch

	// Close releases the engine's resources. Close does not implicitly
	// commit any open batch.
	Close() error
}

// Cursor is a forward iterator over a KeyValue's key/value pairs in
// key order. A Cursor must be closed after use; it is not necessary
// to exhaust it first.
type Cursor interface {
	// Next advances the cursor and reports whether a pair is
	// available. It must be called once before the first Key/Value.
	Next() bool

	// Key and Value return the current pair. Valid only after Next
	// has returned true; the returned slices are only valid until the
	// next call to Next or Close and must be copied if retained.
	Key() []byte
	Value() []byte

	// Err returns any error encountered during iteration.
	Err() error

	// Close releases the cursor; a Table's cursor goes back to that
	// table's pool for reuse. Close is idempotent.
	Close() error
}

// Batch is an ordered sequence of puts/deletes applied atomically by
// its Commit.
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)

	// Commit applies every operation queued in the batch atomically:
	// either all of them land, or none do.
	Commit() error
}

// wrapNotFound normalizes a backend-specific not-found error into
// ErrNotFound so callers never need to know which backend is live.
func wrapNotFound(err error, notFound error) error {
	if err == notFound {
		return ErrNotFound
	}
	return err
}

// errClosedCursor is returned by a Table cursor's Err after Close.
var errClosedCursor = fmt.Errorf("kvengine: cursor used after Close")
