// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

// Package rawtest builds synthetic TIFF-family containers for tests.
// All structures are written at fixed offsets given by the caller.
package rawtest

import (
	"bytes"
	"encoding/binary"
)

// Type codes.
const (
	Byte      = 1
	ASCII     = 2
	Short     = 3
	Long      = 4
	Rational  = 5
	Undefined = 7
	SLong     = 9
)

// Entry is a directory entry to be written.
type Entry struct {
	Tag   uint16
	Type  uint16
	Count uint32

	// Value is written to the slot as a 32-bit value, or as a 16-bit value
	// in the first half of the slot if Half is set.
	Value uint32
	Half  bool
}

// LongEntry returns an inline LONG entry.
func LongEntry(tag uint16, v uint32) Entry {
	return Entry{Tag: tag, Type: Long, Count: 1, Value: v}
}

// ShortEntry returns an inline SHORT entry.
func ShortEntry(tag uint16, v uint16) Entry {
	return Entry{Tag: tag, Type: Short, Count: 1, Value: uint32(v), Half: true}
}

// PointerEntry returns an entry whose slot holds offset.
func PointerEntry(tag, typ uint16, count, offset uint32) Entry {
	return Entry{Tag: tag, Type: typ, Count: count, Value: offset}
}

// File is a container under construction.
type File struct {
	order    binary.ByteOrder
	nextSize int
	buf      []byte
}

// New returns an empty file in the given byte order. nextSize is the
// width of the next directory pointer, 2 or 4.
func New(order binary.ByteOrder, nextSize int) *File {
	return &File{order: order, nextSize: nextSize}
}

func (f *File) grow(n int) {
	if n > len(f.buf) {
		f.buf = append(f.buf, make([]byte, n-len(f.buf))...)
	}
}

// Put writes b at off.
func (f *File) Put(off int, b []byte) *File {
	f.grow(off + len(b))
	copy(f.buf[off:], b)
	return f
}

// PutString writes s and a null terminator at off.
func (f *File) PutString(off int, s string) *File {
	return f.Put(off, append([]byte(s), 0))
}

// PutUint16s writes vs at off in the file's byte order.
func (f *File) PutUint16s(off int, vs ...uint16) *File {
	b := make([]byte, 2*len(vs))
	for i, v := range vs {
		f.order.PutUint16(b[2*i:], v)
	}
	return f.Put(off, b)
}

// PutUint32s writes vs at off in the file's byte order.
func (f *File) PutUint32s(off int, vs ...uint32) *File {
	b := make([]byte, 4*len(vs))
	for i, v := range vs {
		f.order.PutUint32(b[4*i:], v)
	}
	return f.Put(off, b)
}

func (f *File) marker() []byte {
	if f.order == binary.LittleEndian {
		return []byte("II")
	}
	return []byte("MM")
}

// TIFFHeader writes the 8 byte preamble pointing at first.
func (f *File) TIFFHeader(first uint32) *File {
	f.Put(0, f.marker())
	f.PutUint16s(2, 42)
	return f.PutUint32s(4, first)
}

// CR2Header writes the 16 byte CR2 preamble, version 2.0.
func (f *File) CR2Header(first, raw uint32) *File {
	f.TIFFHeader(first)
	f.Put(8, []byte("CR"))
	f.Put(10, []byte{2, 0})
	return f.PutUint32s(12, raw)
}

// Dir writes a directory at off and returns the offset just past it.
func (f *File) Dir(off int, next uint32, entries ...Entry) int {
	f.PutUint16s(off, uint16(len(entries)))
	pos := off + 2
	for _, e := range entries {
		b := make([]byte, 12)
		f.order.PutUint16(b[0:], e.Tag)
		f.order.PutUint16(b[2:], e.Type)
		f.order.PutUint32(b[4:], e.Count)
		if e.Half {
			f.order.PutUint16(b[8:], uint16(e.Value))
		} else {
			f.order.PutUint32(b[8:], e.Value)
		}
		f.Put(pos, b)
		pos += 12
	}
	if f.nextSize == 2 {
		f.PutUint16s(pos, uint16(next))
	} else {
		f.PutUint32s(pos, next)
	}
	return pos + f.nextSize
}

// Bytes returns the file contents.
func (f *File) Bytes() []byte {
	return f.buf
}

// Reader returns a reader over a copy of the file contents.
func (f *File) Reader() *bytes.Reader {
	return bytes.NewReader(bytes.Clone(f.buf))
}
