// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

// Package rawphoto decodes the directory structure of TIFF-derived camera raw
// containers (generic TIFF/EXIF, Canon CR2 and Nikon NEF) and locates the
// images embedded in them.
package rawphoto

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
)

// Options contains the options for Open.
type Options struct {
	// The container format. OpenFile detects it from the file extension when not set.
	Format Format

	// Dialect overrides the built-in dialect of Format.
	Dialect *Dialect

	// Warnf will be called for each warning,
	// e.g. when a lenient fallback is taken on malformed input.
	Warnf func(string, ...any)

	// LimitNumTags is the maximum number of directory entries to decode in total.
	// Default value is 5000.
	LimitNumTags uint32

	// LimitValueSize is the maximum size in bytes of an indirect tag value.
	// Default value is 10 MB.
	LimitValueSize uint32

	// LimitImageSize is the maximum size in bytes of an extracted image.
	// Default value is 1 GB.
	LimitImageSize uint64

	// MaxDepth is the maximum nesting depth of sub-directories.
	// Default value is 8.
	MaxDepth int

	// MaxDirectories is the maximum length of the top level directory chain.
	// Default value is 64.
	MaxDirectories int

	// StringFallback, if set, decodes string values that are not valid UTF-8.
	// If not set, such values fail with a *StringDecodeError.
	StringFallback encoding.Encoding
}

func (o *Options) init() {
	const (
		defaultLimitNumTags   = 5000
		defaultLimitImageSize = 1 << 30
		defaultMaxDepth       = 8
		defaultMaxDirectories = 64
	)

	if o.Warnf == nil {
		o.Warnf = func(string, ...any) {}
	}
	if o.LimitNumTags == 0 {
		o.LimitNumTags = defaultLimitNumTags
	}
	if o.LimitValueSize == 0 {
		o.LimitValueSize = maxBufSize
	}
	if o.LimitImageSize == 0 {
		o.LimitImageSize = defaultLimitImageSize
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = defaultMaxDepth
	}
	if o.MaxDirectories == 0 {
		o.MaxDirectories = defaultMaxDirectories
	}
}

// Container is an opened raw container.
// It owns its byte source, which is released by Close.
//
// A Container is not safe for concurrent use: every read moves the
// position of the shared source.
type Container struct {
	// Format is the container kind selected at open time.
	Format Format

	// Header is the decoded preamble.
	Header Header

	// CR2 holds the extended preamble of CR2 containers, nil otherwise.
	CR2 *CR2Header

	// Directories is the top level directory chain in chain order.
	Directories []*Directory

	dec    *decoder
	closer io.Closer
	closed bool
}

// Open decodes the header and the directory chain of the container in r,
// starting at the current position of r.
// If r implements io.Closer, the container takes ownership of it: r is
// closed by Container.Close, or before Open returns an error.
func Open(r io.ReadSeeker, opts Options) (c *Container, err error) {
	closer, _ := r.(io.Closer)
	defer func() {
		if err != nil && closer != nil {
			closer.Close()
		}
	}()

	if r == nil {
		return nil, fmt.Errorf("no reader provided")
	}

	dialect := opts.Dialect
	if dialect == nil {
		dialect = opts.Format.Dialect()
	}
	if dialect == nil {
		return nil, fmt.Errorf("no format provided")
	}
	if err := dialect.validate(); err != nil {
		return nil, err
	}

	opts.init()

	sr, err := newStreamReader(r, binary.BigEndian)
	if err != nil {
		return nil, err
	}

	c = &Container{
		Format: opts.Format,
		closer: closer,
	}

	defer func() {
		if isInvalidFormatErrorCandidate(err) {
			err = newInvalidFormatError(err)
		}
	}()

	preamble := make([]byte, dialect.HeaderSize)
	n, err := sr.readAt(preamble, 0)
	if err != nil && !isShortRead(err) {
		return nil, err
	}
	preamble = preamble[:n]

	if dialect.HeaderSize == cr2HeaderSize {
		h, err := DecodeCR2Header(preamble)
		if err != nil {
			return nil, err
		}
		c.Header, c.CR2 = h.Header, &h
	} else {
		h, err := DecodeHeader(preamble)
		if err != nil {
			return nil, err
		}
		c.Header = h
	}

	if c.Header.ByteOrder == ByteOrderUnknown {
		opts.Warnf("unknown byte order marker, decoding in native byte order")
	}
	if c.Header.MagicWord != TIFFMagicWord {
		opts.Warnf("unexpected magic word %d", c.Header.MagicWord)
	}

	sr.byteOrder = c.Header.ByteOrder.Binary()
	c.dec = newDecoder(sr, dialect, opts)

	c.Directories, err = c.dec.decodeChain(c.Header.FirstDirectoryOffset)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// OpenFile opens the named file and decodes it with Open.
// If opts.Format is not set, it is selected from the file extension.
func OpenFile(filename string, opts Options) (*Container, error) {
	if opts.Format == FormatUnknown && opts.Dialect == nil {
		opts.Format = FormatFromPath(filename)
		if opts.Format == FormatUnknown {
			return nil, fmt.Errorf("%s: file format not recognized", filename)
		}
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	c, err := Open(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return c, nil
}

// Close releases the byte source. Calling Close more than once is a no-op.
func (c *Container) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}

// Dialect returns the dialect the container was decoded with.
func (c *Container) Dialect() *Dialect {
	return c.dec.dialect
}

// Directory returns the directory at index i of the top level chain.
func (c *Container) Directory(i int) (*Directory, error) {
	if i < 0 || i >= len(c.Directories) {
		return nil, fmt.Errorf("%w: %d (chain has %d directories)", ErrIndexOutOfRange, i, len(c.Directories))
	}
	return c.Directories[i], nil
}

// Value returns the value of e, which must belong to one of the container's directories.
//
// Scalars are returned as uint8, int8, uint16, int16, uint32, int32,
// float32, float64, Rat[uint32] or Rat[int32]; more than one element as a
// slice of that type. Strings (one trailing null removed) are returned as
// string, byte sequences as []byte. The returned []byte is a copy.
//
// If fewer bytes than expected are stored at an indirect value's offset,
// the offset itself is returned as a uint32.
func (c *Container) Value(e *Entry) (any, error) {
	v := e.value
	if !e.resolved {
		if c.closed {
			return nil, ErrClosed
		}
		var err error
		v, _, err = c.dec.resolve(e)
		if err != nil {
			if isInvalidFormatErrorCandidate(err) {
				err = newInvalidFormatError(err)
			}
			return nil, err
		}
	}
	if b, ok := v.([]byte); ok {
		v = bytes.Clone(b)
	}
	return v, nil
}

// Lookup returns the value of the entry named name in dir.
// The second return value is false if dir has no such entry.
func (c *Container) Lookup(dir *Directory, name string) (any, bool, error) {
	e, ok := dir.Entry(name)
	if !ok {
		return nil, false, nil
	}
	v, err := c.Value(e)
	return v, true, err
}
