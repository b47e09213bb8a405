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

package kvengine

import (
	"bytes"
	"io"
	"log"
	"os"
	"sync"

	"modernc.org/kv"
)

// OpenKVFile opens (creating if necessary) a modernc.org/kv-backed
// KeyValue rooted at the single file. This is the pure-Go, dependency
// free alternative to the goleveldb backend; it is what
// original_source/ajgudb/storage.py's bsddb/leveldb variants are
// standing in for when no system library is available.
func OpenKVFile(file string) (KeyValue, error) {
	opts := &kv.Options{}
	open := kv.Open
	if _, err := os.Stat(file); os.IsNotExist(err) {
		open = kv.Create
	}
	db, err := open(file, opts)
	if err != nil {
		return nil, err
	}
	log.Printf("kvengine: opened kvfile store at %s", file)
	return &kvfileKV{db: db, path: file, opts: opts}, nil
}

type kvfileKV struct {
	db   *kv.DB
	path string
	opts *kv.Options

	txmu sync.Mutex
}

func (k *kvfileKV) Get(key []byte) ([]byte, error) {
	v, err := k.db.Get(nil, key)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrNotFound
	}
	return v, nil
}

func (k *kvfileKV) Set(key, value []byte) error {
	if err := CheckSizes(key, value); err != nil {
		return err
	}
	return k.db.Set(key, value)
}

func (k *kvfileKV) Delete(key []byte) error {
	return k.db.Delete(key)
}

func (k *kvfileKV) Scan(start, end []byte) Cursor {
	enum, _, err := k.db.Seek(start)
	return &kvfileCursor{enum: enum, end: end, err: err}
}

func (k *kvfileKV) NewBatch() Batch {
	return &kvfileBatch{kv: k}
}

func (k *kvfileKV) Close() error {
	return k.db.Close()
}

type kvfileCursor struct {
	enum     *kv.Enumerator
	end      []byte
	key, val []byte
	err      error
	done     bool
}

func (c *kvfileCursor) Next() bool {
	if c.err != nil || c.done {
		return false
	}
	k, v, err := c.enum.Next()
	if err == io.EOF {
		c.done = true
		return false
	}
	if err != nil {
		c.err = err
		return false
	}
	if c.end != nil && bytes.Compare(k, c.end) >= 0 {
		c.done = true
		return false
	}
	c.key, c.val = k, v
	return true
}

func (c *kvfileCursor) Key() []byte   { return c.key }
func (c *kvfileCursor) Value() []byte { return c.val }
func (c *kvfileCursor) Err() error    { return c.err }
func (c *kvfileCursor) Close() error  { return nil }

type kvfileOp struct {
	key, value []byte
	delete     bool
}

type kvfileBatch struct {
	kv  *kvfileKV
	ops []kvfileOp
	err error
}

func (b *kvfileBatch) Set(key, value []byte) {
	if b.err == nil {
		if err := CheckSizes(key, value); err != nil {
			b.err = err
			return
		}
	}
	b.ops = append(b.ops, kvfileOp{key: key, value: value})
}

func (b *kvfileBatch) Delete(key []byte) {
	b.ops = append(b.ops, kvfileOp{key: key, delete: true})
}

// Commit applies the batch inside a modernc.org/kv transaction,
// rolling back on any failure — the atomicity guarantee spec §4.2's
// batch(ops) requires.
func (b *kvfileBatch) Commit() error {
	if b.err != nil {
		return b.err
	}
	b.kv.txmu.Lock()
	defer b.kv.txmu.Unlock()

	if err := b.kv.db.BeginTransaction(); err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			b.kv.db.Rollback()
		}
	}()
	for _, op := range b.ops {
		var err error
		if op.delete {
			err = b.kv.db.Delete(op.key)
		} else {
			err = b.kv.db.Set(op.key, op.value)
		}
		if err != nil {
			return err
		}
	}
	if err := b.kv.db.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
