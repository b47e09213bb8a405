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
	"log"
	"os"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// OpenLevelDB opens (creating if necessary) a goleveldb-backed
// KeyValue rooted at file. cacheSize, in bytes, is passed through
// opaquely to the underlying engine (spec §6 "Configuration").
func OpenLevelDB(file string, cacheSize int) (KeyValue, error) {
	opts := &opt.Options{
		Filter: filter.NewBloomFilter(10),
	}
	if cacheSize > 0 {
		opts.BlockCacheCapacity = cacheSize
	}
	db, err := leveldb.OpenFile(file, opts)
	if err != nil {
		return nil, err
	}
	log.Printf("kvengine: opened leveldb store at %s", file)
	return &levelKV{db: db, path: file, opts: opts}, nil
}

type levelKV struct {
	db   *leveldb.DB
	path string
	opts *opt.Options
}

func (l *levelKV) Get(key []byte) ([]byte, error) {
	v, err := l.db.Get(key, nil)
	if err != nil {
		return nil, wrapNotFound(err, leveldb.ErrNotFound)
	}
	return v, nil
}

func (l *levelKV) Set(key, value []byte) error {
	if err := CheckSizes(key, value); err != nil {
		return err
	}
	return l.db.Put(key, value, nil)
}

func (l *levelKV) Delete(key []byte) error {
	return l.db.Delete(key, nil)
}

func (l *levelKV) Scan(start, end []byte) Cursor {
	rng := &util.Range{Start: start, Limit: end}
	return &levelCursor{it: l.db.NewIterator(rng, nil)}
}

func (l *levelKV) NewBatch() Batch {
	return &levelBatch{db: l.db, batch: new(leveldb.Batch)}
}

func (l *levelKV) Close() error {
	return l.db.Close()
}

// Wipe discards the entire database directory and reopens a fresh
// one. Used by tests that need a clean slate between runs.
func (l *levelKV) Wipe() error {
	if err := l.db.Close(); err != nil {
		return err
	}
	if err := os.RemoveAll(l.path); err != nil {
		return err
	}
	db, err := leveldb.OpenFile(l.path, l.opts)
	if err != nil {
		return err
	}
	l.db = db
	return nil
}

type levelCursor struct {
	it iterator.Iterator
}

func (c *levelCursor) Next() bool    { return c.it.Next() }
func (c *levelCursor) Key() []byte   { return c.it.Key() }
func (c *levelCursor) Value() []byte { return c.it.Value() }
func (c *levelCursor) Err() error    { return c.it.Error() }
func (c *levelCursor) Close() error {
	c.it.Release()
	return c.it.Error()
}

type levelBatch struct {
	db    *leveldb.DB
	batch *leveldb.Batch
	err   error
}

func (b *levelBatch) Set(key, value []byte) {
	if b.err != nil {
		return
	}
	if err := CheckSizes(key, value); err != nil {
		b.err = err
		return
	}
	b.batch.Put(key, value)
}

func (b *levelBatch) Delete(key []byte) {
	b.batch.Delete(key)
}

func (b *levelBatch) Commit() error {
	if b.err != nil {
		return b.err
	}
	return b.db.Write(b.batch, nil)
}
