package rawphoto

import (
	"encoding"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Rat is a rational number.
type Rat[T int32 | uint32] interface {
	Num() T
	Den() T
	Float64() float64

	// String returns the string representation of the rational number.
	// If the denominator is 1, the string will be the numerator only.
	String() string
}

var _ encoding.TextMarshaler = rat[int32]{}

// rat is a rational number.
// It's a lightweight version of math/big.rat.
type rat[T int32 | uint32] struct {
	num T
	den T
}

// Num returns the numerator of the rational number.
func (r rat[T]) Num() T {
	return r.num
}

// Den returns the denominator of the rational number.
func (r rat[T]) Den() T {
	return r.den
}

// Float64 returns the float64 representation of the rational number.
// A zero denominator gives ±Inf or NaN.
func (r rat[T]) Float64() float64 {
	return float64(r.num) / float64(r.den)
}

// String returns the string representation of the rational number.
// If the denominator is 1, the string will be the numerator only.
func (r rat[T]) String() string {
	if r.den == 1 {
		return fmt.Sprintf("%d", r.num)
	}
	return fmt.Sprintf("%d/%d", r.num, r.den)
}

func (r rat[T]) MarshalText() (text []byte, err error) {
	return []byte(r.String()), nil
}

var errZeroDenominator = errors.New("denominator must be non-zero")

// NewRat returns a new Rat with the given numerator and denominator.
func NewRat[T int32 | uint32](num, den T) (Rat[T], error) {
	if den == 0 {
		return nil, errZeroDenominator
	}

	// Remove the greatest common divisor.
	gcd := func(a, b T) T {
		for b != 0 {
			a, b = b, a%b
		}
		return a
	}
	d := gcd(num, den)
	if d != 1 && d != 0 {
		num, den = num/d, den/d
	}

	// Denominator must be positive.
	if den < 0 {
		num, den = -num, -den
	}

	return &rat[T]{num: num, den: den}, nil
}

// newRatLenient is used when decoding: files do store zero denominators,
// and those are kept as is.
func newRatLenient[T int32 | uint32](num, den T) Rat[T] {
	if den == 0 {
		return &rat[T]{num: num, den: den}
	}
	r, _ := NewRat(num, den)
	return r
}

func printableString(s string) string {
	ss := strings.Map(func(r rune) rune {
		if unicode.IsGraphic(r) {
			return r
		}
		return -1
	}, s)

	return strings.TrimSpace(ss)
}

// trimNullTerminator removes exactly one trailing null byte, if present.
func trimNullTerminator(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == 0 {
		return b[:len(b)-1]
	}
	return b
}

// toUint32s converts any unsigned integer value or slice to []uint32.
func toUint32s(v any) ([]uint32, bool) {
	switch vv := v.(type) {
	case uint8:
		return []uint32{uint32(vv)}, true
	case uint16:
		return []uint32{uint32(vv)}, true
	case uint32:
		return []uint32{vv}, true
	case []uint8:
		out := make([]uint32, len(vv))
		for i, x := range vv {
			out[i] = uint32(x)
		}
		return out, true
	case []uint16:
		out := make([]uint32, len(vv))
		for i, x := range vv {
			out[i] = uint32(x)
		}
		return out, true
	case []uint32:
		return vv, true
	default:
		return nil, false
	}
}

func toInt(v any) (int, bool) {
	switch vv := v.(type) {
	case uint8:
		return int(vv), true
	case uint16:
		return int(vv), true
	case uint32:
		return int(vv), true
	case int8:
		return int(vv), true
	case int16:
		return int(vv), true
	case int32:
		return int(vv), true
	default:
		return 0, false
	}
}
