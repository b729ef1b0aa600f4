// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

package rawphoto

import (
	"encoding/binary"
	"fmt"
)

const (
	byteOrderBigEndian    = 0x4d4d
	byteOrderLittleEndian = 0x4949

	tiffHeaderSize = 8
	cr2HeaderSize  = 16

	// TIFFMagicWord is the conventional magic word of TIFF-family files.
	// It is not enforced.
	TIFFMagicWord = 42
)

// ByteOrder is the byte order declared by a container's order marker.
type ByteOrder int

const (
	// ByteOrderUnknown means the order marker was neither "II" nor "MM".
	// Decoding proceeds in the platform's native order.
	ByteOrderUnknown ByteOrder = iota
	// LittleEndian is selected by the "II" marker.
	LittleEndian
	// BigEndian is selected by the "MM" marker.
	BigEndian
)

func (o ByteOrder) String() string {
	switch o {
	case LittleEndian:
		return "LittleEndian"
	case BigEndian:
		return "BigEndian"
	default:
		return "Unknown"
	}
}

// Binary returns the encoding/binary order used to decode multi-byte fields.
func (o ByteOrder) Binary() binary.ByteOrder {
	switch o {
	case LittleEndian:
		return binary.LittleEndian
	case BigEndian:
		return binary.BigEndian
	default:
		return binary.NativeEndian
	}
}

// Header is the fixed preamble of a TIFF-family container:
//
//	u16 order marker | u16 magic word | u32 first directory offset
type Header struct {
	ByteOrder            ByteOrder
	MagicWord            uint16
	FirstDirectoryOffset uint32
}

// CR2Header extends Header with the Canon fields of the 16 byte CR2 preamble:
//
//	... | u16 vendor magic | u8 major | u8 minor | u32 raw directory offset
type CR2Header struct {
	Header
	VendorMagic        uint16
	MajorVersion       uint8
	MinorVersion       uint8
	RawDirectoryOffset uint32
}

// DecodeHeader decodes the 8 byte TIFF preamble at the start of b.
// An unrecognized order marker is not an error, and neither is a magic word other than 42.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < tiffHeaderSize {
		return Header{}, newInvalidFormatError(fmt.Errorf("%w: need %d bytes, got %d", ErrMalformedHeader, tiffHeaderSize, len(b)))
	}

	var h Header
	switch binary.BigEndian.Uint16(b[:2]) {
	case byteOrderLittleEndian:
		h.ByteOrder = LittleEndian
	case byteOrderBigEndian:
		h.ByteOrder = BigEndian
	default:
		h.ByteOrder = ByteOrderUnknown
	}

	order := h.ByteOrder.Binary()
	h.MagicWord = order.Uint16(b[2:4])
	h.FirstDirectoryOffset = order.Uint32(b[4:8])

	return h, nil
}

// DecodeCR2Header decodes the 16 byte CR2 preamble at the start of b.
func DecodeCR2Header(b []byte) (CR2Header, error) {
	if len(b) < cr2HeaderSize {
		return CR2Header{}, newInvalidFormatError(fmt.Errorf("%w: need %d bytes, got %d", ErrMalformedHeader, cr2HeaderSize, len(b)))
	}
	h, err := DecodeHeader(b)
	if err != nil {
		return CR2Header{}, err
	}
	order := h.ByteOrder.Binary()
	return CR2Header{
		Header:             h,
		VendorMagic:        order.Uint16(b[8:10]),
		MajorVersion:       b[10],
		MinorVersion:       b[11],
		RawDirectoryOffset: order.Uint32(b[12:16]),
	}, nil
}

// VendorMagicString returns the vendor magic as it appears in the file, e.g. "CR".
func (h CR2Header) VendorMagicString() string {
	var b [2]byte
	h.ByteOrder.Binary().PutUint16(b[:], h.VendorMagic)
	return string(b[:])
}
