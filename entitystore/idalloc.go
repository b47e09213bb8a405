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
	"encoding/binary"
	"sync"

	"github.com/pombredanne/ajgudb/kvengine"
)

// idAllocator is a counter-row fallback for engines with no native
// append cursor: a single row holding the last-assigned id for one
// entity class, read-modified under a process-local lock. Ids it hands
// out are strictly increasing and never reused; a crash between
// incrementing the counter and committing the row that id belongs to
// simply burns that id, which is an acceptable loss.
type idAllocator struct {
	mu      sync.Mutex
	counter *kvengine.Table
}

var counterKey = []byte("next")

func newIDAllocator(counter *kvengine.Table) *idAllocator {
	return &idAllocator{counter: counter}
}

// next returns the next unused id for this entity class.
func (a *idAllocator) next() (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	raw, err := a.counter.Get(counterKey)
	var cur uint64
	switch {
	case err == kvengine.ErrNotFound:
		cur = 0
	case err != nil:
		return 0, WrapStorageError(err)
	default:
		cur = binary.BigEndian.Uint64(raw)
	}

	next := cur + 1
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], next)
	if err := a.counter.SetNow(counterKey, buf[:]); err != nil {
		return 0, WrapStorageError(err)
	}
	return next, nil
}
