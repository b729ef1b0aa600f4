// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

package rawphoto

import (
	"unicode/utf8"
)

// resolve materializes the value of e.
// Inline values and values resolved before are returned without I/O.
// Indirect values are read at e.Offset; the read position of the source is restored.
//
// If fewer bytes than expected are available at the offset, the raw offset
// is returned as a uint32 and fellBack is set. Such a value is not cached.
func (d *decoder) resolve(e *Entry) (v any, fellBack bool, err error) {
	if e.resolved {
		return e.value, false, nil
	}

	size := e.Size()
	if size > uint64(d.opts.LimitValueSize) {
		return nil, false, newInvalidFormatErrorf("tag %s: value of %d bytes exceeds limit %d", e.Name, size, d.opts.LimitValueSize)
	}

	if n := d.available(uint64(e.Offset), size); n < size {
		return d.shortRead(e, n, size)
	}

	b := make([]byte, size)
	n, err := d.readAt(b, int64(e.Offset))
	if err != nil {
		if !isShortRead(err) {
			return nil, false, err
		}
		return d.shortRead(e, uint64(n), size)
	}

	switch e.Type {
	case TypeASCII:
		s, err := d.decodeString(e, b)
		if err != nil {
			return nil, false, err
		}
		v = s
	case TypeUndefined:
		v = b
	default:
		v = decodeValues(e.Type, e.Count, b, d.byteOrder)
	}

	e.value, e.resolved = v, true

	return v, false, nil
}

func (d *decoder) shortRead(e *Entry, n, size uint64) (any, bool, error) {
	d.opts.Warnf("tag %s: short read at offset %d (%d of %d bytes), returning the offset", e.Name, e.Offset, n, size)
	return e.Offset, true, nil
}

func (d *decoder) decodeString(e *Entry, b []byte) (string, error) {
	b = trimNullTerminator(b)
	if utf8.Valid(b) {
		return string(b), nil
	}
	if d.opts.StringFallback != nil {
		decoded, err := d.opts.StringFallback.NewDecoder().Bytes(b)
		if err == nil {
			return string(decoded), nil
		}
	}
	return "", &StringDecodeError{Tag: e.Name, Raw: b}
}
