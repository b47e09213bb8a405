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

// Package codec encodes heterogeneous tuples of scalar values as
// lexicographically-sortable byte strings.
//
// Every element is tagged with a single byte that also acts as its
// ordering class: integers sort before text, text before raw bytes,
// raw bytes before opaque (msgpack-wrapped) values, regardless of
// payload. Within one tuple, elements are simply concatenated, which
// is what makes a prefix of a tuple's encoding sort immediately before
// any encoding of a longer tuple that extends it (see Testable
// Property 3 in the design notes).
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Type tags. These are part of the on-disk format: changing them
// requires a migration of every existing key.
const (
	TagInt    byte = 0x01
	TagText   byte = 0x02
	TagBytes  byte = 0x03
	TagOpaque byte = 0x04
)

// ErrTruncated is returned by Decode when a tuple is cut short mid-element.
var ErrTruncated = fmt.Errorf("codec: truncated tuple")

// ErrUnknownTag is returned by Decode when a leading byte isn't one of
// the tags above.
type ErrUnknownTag byte

func (e ErrUnknownTag) Error() string {
	return fmt.Sprintf("codec: unknown type tag 0x%02x", byte(e))
}

// ErrNulByte is returned by Encode when a text or byte-string element
// contains a NUL, which would break the terminator-based
// self-delimiting encoding.
var ErrNulByte = fmt.Errorf("codec: text/bytes element must not contain NUL")

// Encode concatenates the order-preserving encoding of each value in
// values, in order, into a single byte string.
//
// Accepted Go types: int64 (and int, which is converted), string,
// []byte, and anything else msgpack can marshal (float64, bool, nil,
// []interface{}, map[string]interface{}, ...), which is wrapped as an
// opaque element and does not participate in key ordering beyond its
// position in the tuple.
func Encode(values ...interface{}) ([]byte, error) {
	var buf bytes.Buffer
	for _, v := range values {
		if err := encodeOne(&buf, v); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func encodeOne(buf *bytes.Buffer, v interface{}) error {
	switch x := v.(type) {
	case int64:
		return encodeInt(buf, x)
	case int:
		return encodeInt(buf, int64(x))
	case uint64:
		return encodeInt(buf, int64(x))
	case string:
		return encodeText(buf, x)
	case []byte:
		return encodeBytes(buf, x)
	default:
		return encodeOpaque(buf, v)
	}
}

func encodeInt(buf *bytes.Buffer, v int64) error {
	buf.WriteByte(TagInt)
	var body [8]byte
	// Flipping the sign bit turns two's-complement order into
	// unsigned big-endian byte order, so -1 < 0 < 1 holds byte-wise.
	binary.BigEndian.PutUint64(body[:], uint64(v)^(1<<63))
	buf.Write(body[:])
	return nil
}

func encodeText(buf *bytes.Buffer, s string) error {
	if containsNul(s) {
		return ErrNulByte
	}
	buf.WriteByte(TagText)
	buf.WriteString(s)
	buf.WriteByte(0)
	return nil
}

func encodeBytes(buf *bytes.Buffer, b []byte) error {
	if bytes.IndexByte(b, 0) >= 0 {
		return ErrNulByte
	}
	buf.WriteByte(TagBytes)
	buf.Write(b)
	buf.WriteByte(0)
	return nil
}

func encodeOpaque(buf *bytes.Buffer, v interface{}) error {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("codec: marshaling opaque value: %w", err)
	}
	buf.WriteByte(TagOpaque)
	var length [8]byte
	binary.BigEndian.PutUint64(length[:], uint64(len(data)))
	buf.Write(length[:])
	buf.Write(data)
	return nil
}

func containsNul(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return true
		}
	}
	return false
}

// Decode is the inverse of Encode: it returns the list of elements
// that were concatenated to produce b. Decode is self-delimiting; it
// does not need to be told how many elements to expect.
func Decode(b []byte) ([]interface{}, error) {
	var out []interface{}
	for len(b) > 0 {
		v, rest, err := decodeOne(b)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		b = rest
	}
	return out, nil
}

func decodeOne(b []byte) (value interface{}, rest []byte, err error) {
	if len(b) == 0 {
		return nil, nil, ErrTruncated
	}
	tag := b[0]
	b = b[1:]
	switch tag {
	case TagInt:
		if len(b) < 8 {
			return nil, nil, ErrTruncated
		}
		u := binary.BigEndian.Uint64(b[:8])
		v := int64(u ^ (1 << 63))
		return v, b[8:], nil
	case TagText:
		idx := bytes.IndexByte(b, 0)
		if idx < 0 {
			return nil, nil, ErrTruncated
		}
		return string(b[:idx]), b[idx+1:], nil
	case TagBytes:
		idx := bytes.IndexByte(b, 0)
		if idx < 0 {
			return nil, nil, ErrTruncated
		}
		out := make([]byte, idx)
		copy(out, b[:idx])
		return out, b[idx+1:], nil
	case TagOpaque:
		if len(b) < 8 {
			return nil, nil, ErrTruncated
		}
		n := binary.BigEndian.Uint64(b[:8])
		b = b[8:]
		if uint64(len(b)) < n {
			return nil, nil, ErrTruncated
		}
		var v interface{}
		// Loose decoding keeps integers at int64 (and nested integers
		// inside lists/maps likewise) instead of msgpack/v5's default
		// width-narrowed int8/int16/int32, so a round-tripped opaque
		// value compares equal to what went in and agrees with
		// entitystore.unpackProperties, which decodes the same way.
		dec := msgpack.NewDecoder(bytes.NewReader(b[:n]))
		dec.UseLooseInterfaceDecoding(true)
		if err := dec.Decode(&v); err != nil {
			return nil, nil, fmt.Errorf("codec: unmarshaling opaque value: %w", err)
		}
		return v, b[n:], nil
	default:
		return nil, nil, ErrUnknownTag(tag)
	}
}

// PrefixRange returns the [start, end) byte range that a range scan
// must use to enumerate exactly the keys produced by Encode for
// tuples beginning with the elements already encoded into prefix.
//
// start is prefix itself: any encoded tuple sharing this prefix sorts
// at or after it, since the terminator/tag byte of whatever comes
// next is always >= the lowest possible continuation. end is prefix
// with its last byte incremented, which is the smallest encoding that
// is NOT a continuation of prefix. If prefix consists entirely of
// 0xff bytes, there is no finite upper bound short of "no end" and
// end is returned as nil (meaning: scan to the end of the table).
func PrefixRange(prefix []byte) (start, end []byte) {
	start = append([]byte(nil), prefix...)
	end = append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] != 0xff {
			end[i]++
			return start, end[:i+1]
		}
	}
	return start, nil
}
