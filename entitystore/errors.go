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

package entitystore

import (
	"errors"
	"fmt"

	"github.com/pombredanne/ajgudb/codec"
	"github.com/pombredanne/ajgudb/kvengine"
)

// The error kinds callers are expected to distinguish with errors.Is.
var (
	// ErrNotFound: point lookup of a missing id, or a terminal on an
	// empty pipeline without a default.
	ErrNotFound = errors.New("entitystore: not found")

	// ErrDuplicateKey: an internal invariant was violated during index
	// maintenance. This always indicates corruption, never a normal
	// caller mistake.
	ErrDuplicateKey = errors.New("entitystore: duplicate index key (corruption)")

	// ErrInvalidArgument: a text/bytes value bound for an encoded key
	// contains NUL (see WrapCodecError). Sort key functions have no
	// error path and traversal.Keys yields nil for a missing property
	// name, so neither of those returns it.
	ErrInvalidArgument = errors.New("entitystore: invalid argument")
)

// WrapCodecError classifies err from the codec package. A text/bytes
// element containing NUL is reported as ErrInvalidArgument; anything
// else (decode hit an unknown type tag or a truncated body) is marked
// as fatal corruption.
func WrapCodecError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, codec.ErrNulByte) {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return fmt.Errorf("entitystore: codec error (corruption): %w", err)
}

// WrapStorageError marks err (from kvengine) as a surfaced storage
// failure. NotFound is translated to ErrNotFound rather than wrapped,
// since it isn't a failure.
func WrapStorageError(err error) error {
	if err == nil {
		return nil
	}
	if err == kvengine.ErrNotFound {
		return ErrNotFound
	}
	return fmt.Errorf("entitystore: storage error: %w", err)
}
