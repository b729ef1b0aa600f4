// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

package rawphoto

import (
	"encoding"
	"math"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestStringer(t *testing.T) {
	c := qt.New(t)
	c.Assert(TypeRational.String(), qt.Equals, "Rational")

	var format Format
	c.Assert(TIFF.String(), qt.Equals, "TIFF")
	c.Assert(NEF.String(), qt.Equals, "NEF")
	c.Assert(format.String(), qt.Equals, "FormatUnknown")
	c.Assert(ImageThumbnail.String(), qt.Equals, "thumbnail")
	c.Assert(ImageKind(42).String(), qt.Equals, "ImageKind(42)")
}

func BenchmarkPrintableString(b *testing.B) {
	runBench := func(b *testing.B, name, s string) {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = printableString(s)
			}
		})
	}

	runBench(b, "ASCII", "Hello, World!")
	runBench(b, "ASCII with whitespace", "   Hello, World!   ")
	runBench(b, "UTF-8", "Hello, 世界!")
	runBench(b, "Unprintable", "Hello, \x00World!")
}

func TestPrintableString(t *testing.T) {
	c := qt.New(t)
	c.Assert(printableString("  Canon EOS\x00 "), qt.Equals, "Canon EOS")
	c.Assert(printableString("NIKON\x01\x02"), qt.Equals, "NIKON")
}

func TestTrimNullTerminator(t *testing.T) {
	c := qt.New(t)
	c.Assert(trimNullTerminator([]byte("a\x00\x00")), qt.DeepEquals, []byte("a\x00"))
	c.Assert(trimNullTerminator([]byte("a")), qt.DeepEquals, []byte("a"))
	c.Assert(trimNullTerminator(nil), qt.HasLen, 0)
}

func TestToUint32s(t *testing.T) {
	c := qt.New(t)

	for _, test := range []struct {
		in   any
		want []uint32
	}{
		{uint8(1), []uint32{1}},
		{uint16(2), []uint32{2}},
		{uint32(3), []uint32{3}},
		{[]uint16{4, 5}, []uint32{4, 5}},
		{[]uint32{6, 7}, []uint32{6, 7}},
	} {
		got, ok := toUint32s(test.in)
		c.Assert(ok, qt.IsTrue)
		c.Assert(got, qt.DeepEquals, test.want)
	}

	_, ok := toUint32s("8")
	c.Assert(ok, qt.IsFalse)
	_, ok = toUint32s(int32(9))
	c.Assert(ok, qt.IsFalse)
}

func TestRat(t *testing.T) {
	c := qt.New(t)

	c.Run("NewRat", func(c *qt.C) {
		ru, err := NewRat[uint32](1, 2)
		c.Assert(err, qt.Equals, nil)
		c.Assert(ru.Num(), qt.Equals, uint32(1))
		c.Assert(ru.Den(), qt.Equals, uint32(2))

		ri, err := NewRat[int32](1, 2)
		c.Assert(err, qt.Equals, nil)
		c.Assert(ri.Num(), qt.Equals, int32(1))
		c.Assert(ri.Den(), qt.Equals, int32(2))

		_, err = NewRat[int32](10, 0)
		c.Assert(err, qt.ErrorMatches, "denominator must be non-zero")

		// Normalization
		// Denominator must be positive.
		ri, err = NewRat[int32](13, -3)
		c.Assert(err, qt.Equals, nil)
		c.Assert(ri.Num(), qt.Equals, int32(-13))
		c.Assert(ri.Den(), qt.Equals, int32(3))
		// Remove the greatest common divisor.
		ri, err = NewRat[int32](6, 9)
		c.Assert(err, qt.Equals, nil)
		c.Assert(ri.Num(), qt.Equals, int32(2))
		c.Assert(ri.Den(), qt.Equals, int32(3))
		ri, err = NewRat[int32](90, 600)
		c.Assert(err, qt.Equals, nil)
		c.Assert(ri.Num(), qt.Equals, int32(3))
		c.Assert(ri.Den(), qt.Equals, int32(20))
	})

	c.Run("Lenient", func(c *qt.C) {
		r := newRatLenient[uint32](5, 0)
		c.Assert(r.Num(), qt.Equals, uint32(5))
		c.Assert(r.Den(), qt.Equals, uint32(0))
		c.Assert(math.IsInf(r.Float64(), 1), qt.IsTrue)

		r = newRatLenient[uint32](10, 20)
		c.Assert(r.String(), qt.Equals, "1/2")
		c.Assert(r.Float64(), qt.Equals, 0.5)
	})

	c.Run("MarshalText", func(c *qt.C) {
		ru, _ := NewRat[uint32](1, 2)
		text, err := ru.(encoding.TextMarshaler).MarshalText()
		c.Assert(err, qt.Equals, nil)
		c.Assert(string(text), qt.Equals, "1/2")
	})

	c.Run("String", func(c *qt.C) {
		ru, _ := NewRat[uint32](1, 2)
		c.Assert(ru.String(), qt.Equals, "1/2")
		ru, _ = NewRat[uint32](4, 1)
		c.Assert(ru.String(), qt.Equals, "4")
	})
}
