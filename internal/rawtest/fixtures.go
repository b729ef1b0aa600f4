// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

package rawtest

import (
	"encoding/binary"
)

// Image payloads stored in the fixtures.
var (
	JPEGData      = []byte{0xff, 0xd8, 0xff, 0xd9}
	QuarterData   = []byte("QUARTER!")
	RGBData       = []byte("RGB")
	CR2RawData    = []byte("RAWDT")
	NEFRawData    = []byte("NEFRAW")
	FixtureDate   = "2024:03:01 10:20:30"
	FixtureDateDT = "2024:03:01 10:20:29"
)

// CR2 returns a little endian CR2 with four chained directories.
//
//	dir0 @16:    width, length, make, model, datetime, strip (quarter size), exif
//	dir1 @0x100: thumbnail pair
//	dir2 @0x200: strip (uncompressed RGB)
//	dir3 @0x300: strip (raw), cr2_slice
//	exif @0x600: exposure time, datetime original, makernote @0x700
func CR2() *File {
	f := New(binary.LittleEndian, 2)
	f.CR2Header(16, 0x300)

	f.Dir(16, 0x100,
		ShortEntry(0x0100, 6000),
		ShortEntry(0x0101, 4000),
		PointerEntry(0x010f, ASCII, 6, 0x400),
		PointerEntry(0x0110, ASCII, 13, 0x410),
		LongEntry(0x0111, 0x500),
		LongEntry(0x0117, uint32(len(QuarterData))),
		PointerEntry(0x0132, ASCII, 20, 0x420),
		LongEntry(0x8769, 0x600),
	)
	f.Dir(0x100, 0x200,
		LongEntry(0x0201, 0x520),
		LongEntry(0x0202, uint32(len(JPEGData))),
	)
	f.Dir(0x200, 0x300,
		LongEntry(0x0111, 0x530),
		LongEntry(0x0117, uint32(len(RGBData))),
	)
	f.Dir(0x300, 0,
		LongEntry(0x0111, 0x540),
		LongEntry(0x0117, uint32(len(CR2RawData))),
		PointerEntry(0xc640, Short, 3, 0x460),
	)
	f.Dir(0x600, 0,
		PointerEntry(0x829a, Rational, 1, 0x480),
		PointerEntry(0x9003, ASCII, 20, 0x440),
		PointerEntry(0x927c, Undefined, 2, 0x700),
	)
	f.Dir(0x700, 0,
		PointerEntry(0x0006, ASCII, 10, 0x720),
	)

	f.PutString(0x400, "Canon")
	f.PutString(0x410, "Canon EOS R5")
	f.PutString(0x420, FixtureDate)
	f.PutString(0x440, FixtureDateDT)
	f.PutUint16s(0x460, 1, 2, 3)
	f.PutUint32s(0x480, 1, 200)
	f.Put(0x500, QuarterData)
	f.Put(0x520, JPEGData)
	f.Put(0x530, RGBData)
	f.Put(0x540, CR2RawData)
	f.PutString(0x720, "CR2 image")

	return f
}

// NEF returns a little endian NEF with a preview and a raw sub-directory.
//
//	dir0 @8:     make, model, sub_ifds @0x460 -> [0x100, 0x200], exif
//	preview @0x100: JPEG pair
//	raw @0x200:     width, strip
//	exif @0x300:    datetime original
func NEF() *File {
	f := New(binary.LittleEndian, 4)
	f.TIFFHeader(8)

	f.Dir(8, 0,
		PointerEntry(0x010f, ASCII, 6, 0x400),
		PointerEntry(0x0110, ASCII, 5, 0x410),
		PointerEntry(0x014a, Long, 2, 0x460),
		LongEntry(0x8769, 0x300),
	)
	f.Dir(0x100, 0,
		LongEntry(0x0201, 0x500),
		LongEntry(0x0202, uint32(len(JPEGData))),
	)
	f.Dir(0x200, 0,
		ShortEntry(0x0100, 8256),
		LongEntry(0x0111, 0x520),
		LongEntry(0x0117, uint32(len(NEFRawData))),
	)
	f.Dir(0x300, 0,
		PointerEntry(0x9003, ASCII, 20, 0x420),
	)

	f.PutString(0x400, "NIKON")
	f.PutString(0x410, "D850")
	f.PutString(0x420, FixtureDateDT)
	f.PutUint32s(0x460, 0x100, 0x200)
	f.Put(0x500, JPEGData)
	f.Put(0x520, NEFRawData)

	return f
}

// TIFF returns a big endian TIFF with two chained directories.
//
//	dir0 @8:     width, height, make, model, datetime, exif
//	dir1 @0x100: JPEG pair
//	exif @0x200: exposure time, datetime original
func TIFF() *File {
	f := New(binary.BigEndian, 4)
	f.TIFFHeader(8)

	f.Dir(8, 0x100,
		LongEntry(0x0100, 640),
		ShortEntry(0x0101, 480),
		PointerEntry(0x010f, ASCII, 9, 0x400),
		PointerEntry(0x0110, ASCII, 5, 0x410),
		PointerEntry(0x0132, ASCII, 20, 0x420),
		LongEntry(0x8769, 0x200),
	)
	f.Dir(0x100, 0,
		LongEntry(0x0201, 0x500),
		LongEntry(0x0202, uint32(len(JPEGData))),
	)
	f.Dir(0x200, 0,
		PointerEntry(0x829a, Rational, 1, 0x480),
		PointerEntry(0x9003, ASCII, 20, 0x440),
	)

	f.PutString(0x400, "FUJIFILM")
	f.PutString(0x410, "X-T5")
	f.PutString(0x420, FixtureDate)
	f.PutString(0x440, FixtureDateDT)
	f.PutUint32s(0x480, 1, 250)
	f.Put(0x500, JPEGData)

	return f
}
