// Package wire frames snapshot files. The format is self-describing: a
// fixed magic, a version byte, and a schema tag naming the concrete
// key/value types, so a reader with the wrong type parameters fails with a
// clean decode error instead of producing garbage values.
//
// Layout (all integers big-endian):
//
//	magic(4) | ver(1) | slen(u16) | schema(slen) | n(u32)
//	klen(u16) | key(klen) | expiresAt(i64, unix nanos) | vlen(u32) | payload(vlen)  * n
//
// Decoding is strict: short buffers, overlong lengths and trailing bytes
// are all ErrCorrupt.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const version byte = 1

var (
	ErrCorrupt = errors.New("wire: corrupt snapshot")
	magic4     = [...]byte{'S', 'N', 'A', 'P'}
)

// Item is one framed entry. Key and Payload are codec output; ExpiresAt is
// the entry deadline in unix nanoseconds.
type Item struct {
	Key       []byte
	ExpiresAt int64
	Payload   []byte
}

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

func Encode(schema string, items []Item) ([]byte, error) {
	if schema == "" {
		return nil, errors.New("wire: empty schema tag")
	}
	if len(schema) > 0xFFFF {
		return nil, fmt.Errorf("wire: schema tag too long: %d", len(schema))
	}

	total := 4 + 1 + 2 + len(schema) + 4
	for _, it := range items {
		if len(it.Key) > 0xFFFF {
			return nil, fmt.Errorf("wire: key too long: %d", len(it.Key))
		}
		total += 2 + len(it.Key) + 8 + 4 + len(it.Payload)
	}

	var buf bytes.Buffer
	buf.Grow(total)

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var u8 [8]byte
	var u4 [4]byte
	var u2 [2]byte

	binary.BigEndian.PutUint16(u2[:], uint16(len(schema)))
	buf.Write(u2[:])
	buf.WriteString(schema)

	binary.BigEndian.PutUint32(u4[:], uint32(len(items)))
	buf.Write(u4[:])

	for _, it := range items {
		binary.BigEndian.PutUint16(u2[:], uint16(len(it.Key)))
		buf.Write(u2[:])
		buf.Write(it.Key)

		binary.BigEndian.PutUint64(u8[:], uint64(it.ExpiresAt))
		buf.Write(u8[:])

		binary.BigEndian.PutUint32(u4[:], uint32(len(it.Payload)))
		buf.Write(u4[:])
		buf.Write(it.Payload)
	}

	return buf.Bytes(), nil
}

func Decode(b []byte) (schema string, items []Item, err error) {
	const hdr = 4 + 1 + 2
	if len(b) < hdr || !hasMagic(b) || b[4] != version {
		return "", nil, ErrCorrupt
	}

	off := 5

	slen := int(binary.BigEndian.Uint16(b[off : off+2]))
	off += 2
	if slen == 0 || slen > len(b)-off {
		return "", nil, ErrCorrupt
	}
	schema = string(b[off : off+slen])
	off += slen

	if off+4 > len(b) {
		return "", nil, ErrCorrupt
	}
	n := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4

	// cap the preallocation; a forged count must not balloon memory
	capHint := n
	if capHint > (len(b)-off)/14 {
		capHint = (len(b) - off) / 14
	}
	items = make([]Item, 0, capHint)

	for i := 0; i < n; i++ {
		if off+2 > len(b) {
			return "", nil, ErrCorrupt
		}
		klen := int(binary.BigEndian.Uint16(b[off : off+2]))
		off += 2
		if klen > len(b)-off {
			return "", nil, ErrCorrupt
		}
		key := b[off : off+klen]
		off += klen

		if off+8 > len(b) {
			return "", nil, ErrCorrupt
		}
		exp := int64(binary.BigEndian.Uint64(b[off : off+8]))
		off += 8

		if off+4 > len(b) {
			return "", nil, ErrCorrupt
		}
		vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
		off += 4
		if vlen < 0 || vlen > len(b)-off {
			return "", nil, ErrCorrupt
		}
		payload := b[off : off+vlen]
		off += vlen

		items = append(items, Item{Key: key, ExpiresAt: exp, Payload: payload})
	}

	if off != len(b) {
		// trailing junk means the file was not produced by Encode
		return "", nil, ErrCorrupt
	}

	return schema, items, nil
}
