// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

package rawphoto

import (
	"encoding/binary"
	"fmt"
)

const (
	entrySize = 12
	slotSize  = 4
)

// Entry is a decoded directory entry.
type Entry struct {
	TagID uint16
	// Name is the tag name from the dialect, or UnknownPrefix and the hex id.
	Name  string
	Type  TypeCode
	Count uint32

	// Slot is the raw 4 byte value slot as stored in the file.
	Slot [slotSize]byte

	// Offset is the value slot read as a 32-bit file offset.
	// It is only meaningful when Indirect is set.
	Offset uint32

	// Indirect is set when the value is stored at Offset instead of in Slot.
	Indirect bool

	value    any
	resolved bool
}

// Size returns the byte size of the value, Count times the element width.
func (e *Entry) Size() uint64 {
	size, _ := e.Type.Size()
	return uint64(size) * uint64(e.Count)
}

// InlineValue returns the value unpacked from the slot, or the cached value
// of an indirect entry that has been resolved.
// The second return value is false if no value is available without I/O.
func (e *Entry) InlineValue() (any, bool) {
	return e.value, e.resolved
}

func (e *Entry) String() string {
	if e.Indirect {
		return fmt.Sprintf("%s (0x%04x) %s[%d] @%d", e.Name, e.TagID, e.Type, e.Count, e.Offset)
	}
	return fmt.Sprintf("%s (0x%04x) %s[%d] = %v", e.Name, e.TagID, e.Type, e.Count, e.value)
}

// DecodeEntry decodes one 12 byte directory entry from b.
// A tag is represented in 12 bytes:
//   - 2 bytes for the tag ID
//   - 2 bytes for the data type
//   - 4 bytes for the number of data values of the specified type
//   - 4 bytes for the value itself, if it fits, otherwise for a pointer to another location where the data may be found;
//     this could be a pointer to the beginning of another IFD.
//
// Strings and byte sequences always go through the pointer, whatever their size.
// A nil d names tags with the TIFF dialect.
func DecodeEntry(b []byte, order binary.ByteOrder, d *Dialect) (*Entry, error) {
	if d == nil {
		d = dialectTIFF
	}
	if len(b) < entrySize {
		return nil, newInvalidFormatErrorf("directory entry: need %d bytes, got %d", entrySize, len(b))
	}

	e := &Entry{
		TagID: order.Uint16(b[0:2]),
		Type:  TypeCode(order.Uint16(b[2:4])),
		Count: order.Uint32(b[4:8]),
	}
	e.Name = d.TagName(e.TagID)
	copy(e.Slot[:], b[8:12])
	e.Offset = order.Uint32(e.Slot[:])

	if _, ok := e.Type.Size(); !ok {
		return nil, newInvalidFormatError(fmt.Errorf("%w: type code %d in tag %s", ErrUnsupportedType, uint16(e.Type), e.Name))
	}

	if e.Size() > slotSize || e.Type.opaque() {
		e.Indirect = true
		return e, nil
	}

	e.value = decodeValues(e.Type, e.Count, e.Slot[:], order)
	e.resolved = true

	return e, nil
}
