// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package intmath provides integer arithmetic that reports, rather than
// silently wraps or truncates, results that its types cannot hold.
package intmath

import (
	"errors"
	"math"
	"math/bits"
)

var (
	// ErrOverflow is returned if a return value would have overflowed its type.
	ErrOverflow = errors.New("overflow")
	// ErrUnderflow is returned if a return value would have been negative.
	ErrUnderflow = errors.New("underflow")
	// ErrNotFinite is returned for NaN and infinite inputs.
	ErrNotFinite = errors.New("not finite")
)

// MulDiv returns the quotient and remainder of `(a*b)/den` without overflow in
// the event that `a*b>=2^64`. However, if the quotient were to overflow then
// [ErrOverflow] is returned. It panics if `den` is zero.
func MulDiv[T ~uint64](a, b, den T) (quo, rem T, err error) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if uint64(den) <= hi {
		return 0, 0, ErrOverflow
	}
	q, r := bits.Div64(hi, lo, uint64(den))
	return T(q), T(r), nil
}

// Mul returns `a*b`, or [ErrOverflow] if the product doesn't fit in 64 bits.
func Mul[T ~uint64](a, b T) (T, error) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 {
		return 0, ErrOverflow
	}
	return T(lo), nil
}

// twoTo64 is the smallest float64 that can't be converted to a uint64.
const twoTo64 = float64(1 << 64)

// Floor returns `floor(x)` as an unsigned integer.
func Floor[T ~uint64](x float64) (T, error) {
	switch {
	case math.IsNaN(x) || math.IsInf(x, 0):
		return 0, ErrNotFinite
	case x < 0:
		return 0, ErrUnderflow
	case x >= twoTo64:
		return 0, ErrOverflow
	}
	return T(math.Floor(x)), nil
}

// FloorDiv returns `floor(num/den)` for finite, non-negative `num` and finite,
// positive `den`. Unlike `math.Floor(num/den)`, the quotient is derived from
// the exact remainder so a quotient that rounds up to an integer isn't
// mistaken for one that reaches it.
func FloorDiv(num, den float64) float64 {
	mod := math.Mod(num, den)
	div := (num - mod) / den
	q := math.Floor(div)
	if div-q > 0.5 {
		q++
	}
	return q
}
