// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

package rawphoto

import (
	"encoding/binary"
	"errors"
	"io"
)

// 10 MB should be plenty for a single tag value.
const maxBufSize = 10 * 1024 * 1024

// streamReader is a wrapper around a ReadSeeker that provides methods to read
// binary data at offsets relative to readerOffset, the position of the source
// when it was handed to us.
// Every read restores the read position of the underlying source.
// Note that this is not thread safe.
type streamReader struct {
	r         io.ReadSeeker
	byteOrder binary.ByteOrder

	buf []byte

	readerOffset int64

	// size is the number of bytes from readerOffset to the end of the source.
	size int64
}

func newStreamReader(r io.ReadSeeker, byteOrder binary.ByteOrder) (*streamReader, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return nil, err
	}
	return &streamReader{
		r:            r,
		byteOrder:    byteOrder,
		readerOffset: pos,
		size:         max(end-pos, 0),
	}, nil
}

// available returns how many of the n bytes at off are inside the source.
func (e *streamReader) available(off, n uint64) uint64 {
	size := uint64(e.size)
	if off >= size {
		return 0
	}
	return min(n, size-off)
}

func (e *streamReader) allocateBuf(length int) {
	if length > cap(e.buf) {
		e.buf = make([]byte, length)
	}
}

// pos returns the absolute position of the underlying source.
func (e *streamReader) pos() (int64, error) {
	return e.r.Seek(0, io.SeekCurrent)
}

// seek moves to pos relative to readerOffset.
func (e *streamReader) seek(pos int64) error {
	_, err := e.r.Seek(pos+e.readerOffset, io.SeekStart)
	return err
}

func (e *streamReader) preservePos(f func() error) error {
	pos, err := e.pos()
	if err != nil {
		return err
	}
	err = f()
	if _, err2 := e.r.Seek(pos, io.SeekStart); err == nil {
		err = err2
	}
	return err
}

// readAt reads len(p) bytes at off and returns the number of bytes read.
// A short read returns io.EOF or io.ErrUnexpectedEOF, see isShortRead.
func (e *streamReader) readAt(p []byte, off int64) (int, error) {
	var n int
	err := e.preservePos(func() error {
		if err := e.seek(off); err != nil {
			return err
		}
		var err error
		n, err = io.ReadFull(e.r, p)
		return err
	})
	return n, err
}

// readBytesVolatileAt reads n bytes at off into a buffer
// which is not guaranteed to be valid after the next read.
func (e *streamReader) readBytesVolatileAt(n int, off int64) ([]byte, error) {
	e.allocateBuf(n)
	if _, err := e.readAt(e.buf[:n], off); err != nil {
		return nil, err
	}
	return e.buf[:n], nil
}

func (e *streamReader) read2At(off int64) (uint16, error) {
	const n = 2
	b, err := e.readBytesVolatileAt(n, off)
	if err != nil {
		return 0, err
	}
	return e.byteOrder.Uint16(b), nil
}

func isShortRead(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
