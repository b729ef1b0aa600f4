// Copyright 2024 The rawphoto Authors
// SPDX-License-Identifier: MIT

package rawphoto

import (
	"encoding/binary"
	"math"
	"strconv"
)

// TypeCode is the value type of a directory entry.
type TypeCode uint16

const (
	TypeByte      TypeCode = 1
	TypeASCII     TypeCode = 2
	TypeShort     TypeCode = 3
	TypeLong      TypeCode = 4
	TypeRational  TypeCode = 5
	TypeSByte     TypeCode = 6
	TypeUndefined TypeCode = 7
	TypeSShort    TypeCode = 8
	TypeSLong     TypeCode = 9
	TypeSRational TypeCode = 10
	TypeFloat     TypeCode = 11
	TypeDouble    TypeCode = 12

	// TypeIFD is an unsigned 32-bit offset of a child directory.
	TypeIFD TypeCode = 13
)

type typeInfo struct {
	name string
	size uint32
}

// Size in bytes of each element.
var typeTable = map[TypeCode]typeInfo{
	TypeByte:      {"Byte", 1},
	TypeASCII:     {"ASCII", 1},
	TypeShort:     {"Short", 2},
	TypeLong:      {"Long", 4},
	TypeRational:  {"Rational", 8},
	TypeSByte:     {"SByte", 1},
	TypeUndefined: {"Undefined", 1},
	TypeSShort:    {"SShort", 2},
	TypeSLong:     {"SLong", 4},
	TypeSRational: {"SRational", 8},
	TypeFloat:     {"Float", 4},
	TypeDouble:    {"Double", 8},
	TypeIFD:       {"IFD", 4},
}

// Size returns the byte width of one element of t.
// The second return value is false if t is not in the type table.
func (t TypeCode) Size() (uint32, bool) {
	info, ok := typeTable[t]
	return info.size, ok
}

func (t TypeCode) String() string {
	if info, ok := typeTable[t]; ok {
		return info.name
	}
	return "TypeCode(" + strconv.Itoa(int(t)) + ")"
}

// opaque types are never unpacked in the value slot.
func (t TypeCode) opaque() bool {
	return t == TypeASCII || t == TypeUndefined
}

// decodeValues unpacks count elements of typ from b, which must hold at
// least count times the element width.
// A single element is returned as a scalar, more as a typed slice.
func decodeValues(typ TypeCode, count uint32, b []byte, order binary.ByteOrder) any {
	if count == 0 {
		return nil
	}

	switch typ {
	case TypeByte:
		return decodeElements(count, 1, b, func(b []byte) uint8 { return b[0] })
	case TypeSByte:
		return decodeElements(count, 1, b, func(b []byte) int8 { return int8(b[0]) })
	case TypeShort:
		return decodeElements(count, 2, b, order.Uint16)
	case TypeSShort:
		return decodeElements(count, 2, b, func(b []byte) int16 { return int16(order.Uint16(b)) })
	case TypeLong, TypeIFD:
		return decodeElements(count, 4, b, order.Uint32)
	case TypeSLong:
		return decodeElements(count, 4, b, func(b []byte) int32 { return int32(order.Uint32(b)) })
	case TypeRational:
		return decodeElements(count, 8, b, func(b []byte) Rat[uint32] {
			return newRatLenient(order.Uint32(b), order.Uint32(b[4:]))
		})
	case TypeSRational:
		return decodeElements(count, 8, b, func(b []byte) Rat[int32] {
			return newRatLenient(int32(order.Uint32(b)), int32(order.Uint32(b[4:])))
		})
	case TypeFloat:
		return decodeElements(count, 4, b, func(b []byte) float32 { return math.Float32frombits(order.Uint32(b)) })
	case TypeDouble:
		return decodeElements(count, 8, b, func(b []byte) float64 { return math.Float64frombits(order.Uint64(b)) })
	case TypeUndefined:
		v := make([]byte, count)
		copy(v, b)
		return v
	case TypeASCII:
		return string(b[:count])
	default:
		return nil
	}
}

func decodeElements[T any](count uint32, size int, b []byte, f func([]byte) T) any {
	if count == 1 {
		return f(b[:size])
	}
	values := make([]T, count)
	for i := range values {
		values[i] = f(b[i*size : (i+1)*size])
	}
	return values
}
