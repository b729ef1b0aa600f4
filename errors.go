// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

package rawphoto

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrInvalidFormat is matched by all errors caused by malformed input.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrMalformedHeader is returned when the container preamble is truncated.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrUnsupportedType is returned for a directory entry with a type code
	// missing from the type table. Its element width is unknowable, so the
	// directory holding it cannot be decoded.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrIndexOutOfRange is returned when a directory index not present in
	// the chain is requested.
	ErrIndexOutOfRange = errors.New("directory index out of range")

	// ErrUnsupportedImage is returned when an image kind is requested from a
	// format that does not carry it.
	ErrUnsupportedImage = errors.New("image kind not supported by format")

	// ErrClosed is returned when reading from a closed container.
	ErrClosed = errors.New("container is closed")
)

// InvalidFormatError wraps an error caused by malformed input.
type InvalidFormatError struct {
	Err error
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidFormat, e.Err)
}

// Is reports whether target is ErrInvalidFormat.
func (e *InvalidFormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// IsInvalidFormat reports whether err was caused by malformed input.
func IsInvalidFormat(err error) bool {
	return errors.Is(err, ErrInvalidFormat)
}

func newInvalidFormatError(err error) error {
	if err == nil || IsInvalidFormat(err) {
		return err
	}
	return &InvalidFormatError{Err: err}
}

func newInvalidFormatErrorf(format string, args ...any) error {
	return &InvalidFormatError{Err: fmt.Errorf(format, args...)}
}

func isInvalidFormatErrorCandidate(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, ErrMalformedHeader) ||
		errors.Is(err, ErrUnsupportedType)
}

// StringDecodeError is returned when a string value is not valid UTF-8
// and no fallback encoding is configured.
// Raw holds the value bytes with the terminator removed.
type StringDecodeError struct {
	Tag string
	Raw []byte
}

func (e *StringDecodeError) Error() string {
	return fmt.Sprintf("tag %s: invalid UTF-8 in string value (%d bytes)", e.Tag, len(e.Raw))
}
