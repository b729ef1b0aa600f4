// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

package rawphoto

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/photoshell/rawphoto/internal/rawtest"
	"golang.org/x/text/encoding/charmap"
)

type countingReader struct {
	*bytes.Reader
	reads int
}

func (r *countingReader) Read(p []byte) (int, error) {
	r.reads++
	return r.Reader.Read(p)
}

func TestResolveEndToEnd(t *testing.T) {
	c := qt.New(t)

	f := rawtest.New(binary.LittleEndian, 4)
	f.Put(0, []byte{0x49, 0x49, 0x2a, 0x00, 0x10, 0x00, 0x00, 0x00})
	f.Dir(16, 0, rawtest.PointerEntry(0x0110, rawtest.ASCII, 6, 0x40))
	f.PutString(0x40, "Canon")

	ct, err := Open(f.Reader(), Options{Format: TIFF})
	c.Assert(err, qt.IsNil)
	defer ct.Close()

	v, ok, err := ct.Lookup(ct.Directories[0], "model")
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, "Canon")
}

func TestResolve(t *testing.T) {
	c := qt.New(t)

	c.Run("Inline value needs no reads", func(c *qt.C) {
		r := &countingReader{Reader: bytes.NewReader(cr2DirBytes)}
		opts := Options{}
		opts.init()
		sr, err := newStreamReader(r, binary.LittleEndian)
		c.Assert(err, qt.IsNil)
		d := newDecoder(sr, dialectCR2, opts)
		dir, err := d.decodeDirectory(0, 0)
		c.Assert(err, qt.IsNil)

		reads := r.reads
		e := dir.Entries["thumbnail_length"]
		v1, _, err := d.resolve(e)
		c.Assert(err, qt.IsNil)
		v2, _, err := d.resolve(e)
		c.Assert(err, qt.IsNil)
		c.Assert(v1, qt.Equals, uint32(11600))
		c.Assert(v2, qt.Equals, v1)
		c.Assert(r.reads, qt.Equals, reads)
	})

	c.Run("Indirect value is cached", func(c *qt.C) {
		r := &countingReader{Reader: rawtest.CR2().Reader()}
		ct, err := Open(r, Options{Format: CR2})
		c.Assert(err, qt.IsNil)

		e := ct.Directories[0].Entries["make"]
		_, ok := e.InlineValue()
		c.Assert(ok, qt.IsFalse)
		v, err := ct.Value(e)
		c.Assert(err, qt.IsNil)
		c.Assert(v, qt.Equals, "Canon")

		reads := r.reads
		v, err = ct.Value(e)
		c.Assert(err, qt.IsNil)
		c.Assert(v, qt.Equals, "Canon")
		c.Assert(r.reads, qt.Equals, reads)
	})

	c.Run("Restores read position", func(c *qt.C) {
		r := rawtest.CR2().Reader()
		ct, err := Open(r, Options{Format: CR2})
		c.Assert(err, qt.IsNil)

		_, err = r.Seek(123, io.SeekStart)
		c.Assert(err, qt.IsNil)
		_, err = ct.Value(ct.Directories[0].Entries["model"])
		c.Assert(err, qt.IsNil)
		pos, err := r.Seek(0, io.SeekCurrent)
		c.Assert(err, qt.IsNil)
		c.Assert(pos, qt.Equals, int64(123))
	})

	c.Run("One null terminator removed", func(c *qt.C) {
		f := rawtest.New(binary.LittleEndian, 4)
		f.Dir(0, 0, rawtest.PointerEntry(0x010f, rawtest.ASCII, 4, 0x40))
		f.Put(0x40, []byte("ab\x00\x00"))
		d := newTestDecoder(c, f.Bytes(), binary.LittleEndian, dialectTIFF, Options{})
		dir, err := d.decodeDirectory(0, 0)
		c.Assert(err, qt.IsNil)
		v, _, err := d.resolve(dir.Entries["make"])
		c.Assert(err, qt.IsNil)
		c.Assert(v, qt.Equals, "ab\x00")
	})

	c.Run("Bytes are returned raw", func(c *qt.C) {
		f := rawtest.New(binary.LittleEndian, 4)
		f.Dir(0, 0, rawtest.PointerEntry(0xc634, rawtest.Undefined, 3, 0x40))
		f.Put(0x40, []byte("a\x00\x00"))
		d := newTestDecoder(c, f.Bytes(), binary.LittleEndian, dialectTIFF, Options{})
		dir, err := d.decodeDirectory(0, 0)
		c.Assert(err, qt.IsNil)
		v, _, err := d.resolve(dir.Entries["dng_private_data"])
		c.Assert(err, qt.IsNil)
		c.Assert(v, qt.DeepEquals, []byte("a\x00\x00"))
	})

	c.Run("Byte values are copied", func(c *qt.C) {
		f := rawtest.New(binary.LittleEndian, 4)
		f.TIFFHeader(8)
		f.Dir(8, 0, rawtest.PointerEntry(0xc634, rawtest.Undefined, 3, 0x40))
		f.Put(0x40, []byte("abc"))
		ct, err := Open(f.Reader(), Options{Format: TIFF})
		c.Assert(err, qt.IsNil)
		defer ct.Close()
		e, _ := ct.Directories[0].Entry("dng_private_data")
		v, err := ct.Value(e)
		c.Assert(err, qt.IsNil)
		v.([]byte)[0] = 'x'
		v, err = ct.Value(e)
		c.Assert(err, qt.IsNil)
		c.Assert(v, qt.DeepEquals, []byte("abc"))
	})

	c.Run("Multiple values", func(c *qt.C) {
		ct, err := Open(rawtest.CR2().Reader(), Options{Format: CR2})
		c.Assert(err, qt.IsNil)
		v, ok, err := ct.Lookup(ct.Directories[3], "cr2_slice")
		c.Assert(err, qt.IsNil)
		c.Assert(ok, qt.IsTrue)
		c.Assert(v, qt.DeepEquals, []uint16{1, 2, 3})
	})

	c.Run("Rational", func(c *qt.C) {
		ct, err := Open(rawtest.TIFF().Reader(), Options{Format: TIFF})
		c.Assert(err, qt.IsNil)
		v, _, err := ct.Lookup(ct.Directories[0].SubDirectories["exif"], "exposure_time")
		c.Assert(err, qt.IsNil)
		r, ok := v.(Rat[uint32])
		c.Assert(ok, qt.IsTrue)
		c.Assert(r.Num(), qt.Equals, uint32(1))
		c.Assert(r.Den(), qt.Equals, uint32(250))
		c.Assert(r.String(), qt.Equals, "1/250")
	})

	c.Run("Short read returns the offset", func(c *qt.C) {
		var w warnings
		f := rawtest.New(binary.LittleEndian, 4)
		f.Dir(0, 0, rawtest.PointerEntry(0x010f, rawtest.ASCII, 100, 0x20))
		f.Put(0x20, []byte("short"))
		d := newTestDecoder(c, f.Bytes(), binary.LittleEndian, dialectTIFF, Options{Warnf: w.warnf})
		dir, err := d.decodeDirectory(0, 0)
		c.Assert(err, qt.IsNil)
		e := dir.Entries["make"]
		v, fellBack, err := d.resolve(e)
		c.Assert(err, qt.IsNil)
		c.Assert(fellBack, qt.IsTrue)
		c.Assert(v, qt.Equals, uint32(0x20))
		c.Assert(w, qt.HasLen, 1)
		_, ok := e.InlineValue()
		c.Assert(ok, qt.IsFalse)
	})

	c.Run("Value size limit", func(c *qt.C) {
		f := rawtest.New(binary.LittleEndian, 4)
		f.Dir(0, 0, rawtest.PointerEntry(0x010f, rawtest.ASCII, 100, 0x20))
		d := newTestDecoder(c, f.Bytes(), binary.LittleEndian, dialectTIFF, Options{LimitValueSize: 10})
		dir, err := d.decodeDirectory(0, 0)
		c.Assert(err, qt.IsNil)
		_, _, err = d.resolve(dir.Entries["make"])
		c.Assert(IsInvalidFormat(err), qt.IsTrue)
	})
}

func TestResolveInvalidUTF8(t *testing.T) {
	c := qt.New(t)

	file := func() []byte {
		f := rawtest.New(binary.LittleEndian, 4)
		f.Dir(0, 0, rawtest.PointerEntry(0x010f, rawtest.ASCII, 6, 0x40))
		f.Put(0x40, []byte("Caf\xe9!\x00"))
		return f.Bytes()
	}

	c.Run("No fallback", func(c *qt.C) {
		d := newTestDecoder(c, file(), binary.LittleEndian, dialectTIFF, Options{})
		dir, err := d.decodeDirectory(0, 0)
		c.Assert(err, qt.IsNil)
		_, _, err = d.resolve(dir.Entries["make"])
		var serr *StringDecodeError
		c.Assert(errors.As(err, &serr), qt.IsTrue)
		c.Assert(serr.Tag, qt.Equals, "make")
		c.Assert(serr.Raw, qt.DeepEquals, []byte("Caf\xe9!"))
		c.Assert(IsInvalidFormat(err), qt.IsFalse)
	})

	c.Run("ISO 8859-1 fallback", func(c *qt.C) {
		d := newTestDecoder(c, file(), binary.LittleEndian, dialectTIFF, Options{StringFallback: charmap.ISO8859_1})
		dir, err := d.decodeDirectory(0, 0)
		c.Assert(err, qt.IsNil)
		v, _, err := d.resolve(dir.Entries["make"])
		c.Assert(err, qt.IsNil)
		c.Assert(v, qt.Equals, "Café!")
	})
}
