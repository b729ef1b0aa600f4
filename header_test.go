// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

package rawphoto

import (
	"encoding/binary"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestDecodeHeader(t *testing.T) {
	c := qt.New(t)

	c.Run("Little endian", func(c *qt.C) {
		h, err := DecodeHeader([]byte{0x49, 0x49, 0x2a, 0x00, 0x10, 0x00, 0x00, 0x00})
		c.Assert(err, qt.IsNil)
		c.Assert(h, qt.Equals, Header{ByteOrder: LittleEndian, MagicWord: 42, FirstDirectoryOffset: 16})
		c.Assert(h.ByteOrder.Binary(), qt.Equals, binary.ByteOrder(binary.LittleEndian))
	})

	c.Run("Big endian", func(c *qt.C) {
		h, err := DecodeHeader([]byte("MM\x00\x2a\x00\x00\x00\x08"))
		c.Assert(err, qt.IsNil)
		c.Assert(h, qt.Equals, Header{ByteOrder: BigEndian, MagicWord: 42, FirstDirectoryOffset: 8})
	})

	c.Run("Unknown order marker", func(c *qt.C) {
		b := []byte("XY\x00\x00\x00\x00\x00\x00")
		binary.NativeEndian.PutUint16(b[2:], 42)
		binary.NativeEndian.PutUint32(b[4:], 8)
		h, err := DecodeHeader(b)
		c.Assert(err, qt.IsNil)
		c.Assert(h.ByteOrder, qt.Equals, ByteOrderUnknown)
		c.Assert(h.MagicWord, qt.Equals, uint16(42))
		c.Assert(h.FirstDirectoryOffset, qt.Equals, uint32(8))
	})

	c.Run("Magic word not enforced", func(c *qt.C) {
		h, err := DecodeHeader([]byte("II\x55\x00\x08\x00\x00\x00"))
		c.Assert(err, qt.IsNil)
		c.Assert(h.MagicWord, qt.Equals, uint16(0x55))
	})

	c.Run("Truncated", func(c *qt.C) {
		_, err := DecodeHeader([]byte("II\x2a\x00"))
		c.Assert(errors.Is(err, ErrMalformedHeader), qt.IsTrue)
		c.Assert(IsInvalidFormat(err), qt.IsTrue)
	})
}

func TestDecodeCR2Header(t *testing.T) {
	c := qt.New(t)

	h, err := DecodeCR2Header([]byte("II*\x00\x10\x00\x00\x00CR\x02\x00F\xbf\x00\x00"))
	c.Assert(err, qt.IsNil)
	c.Assert(h.ByteOrder, qt.Equals, LittleEndian)
	c.Assert(h.MagicWord, qt.Equals, uint16(42))
	c.Assert(h.FirstDirectoryOffset, qt.Equals, uint32(16))
	c.Assert(h.VendorMagic, qt.Equals, uint16(21059))
	c.Assert(h.VendorMagicString(), qt.Equals, "CR")
	c.Assert(h.MajorVersion, qt.Equals, uint8(2))
	c.Assert(h.MinorVersion, qt.Equals, uint8(0))
	c.Assert(h.RawDirectoryOffset, qt.Equals, uint32(48966))

	_, err = DecodeCR2Header([]byte("II*\x00\x10\x00\x00\x00CR"))
	c.Assert(errors.Is(err, ErrMalformedHeader), qt.IsTrue)
}

func TestByteOrderString(t *testing.T) {
	c := qt.New(t)
	c.Assert(LittleEndian.String(), qt.Equals, "LittleEndian")
	c.Assert(BigEndian.String(), qt.Equals, "BigEndian")
	c.Assert(ByteOrderUnknown.String(), qt.Equals, "Unknown")
}
