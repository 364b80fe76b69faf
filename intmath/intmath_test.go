// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package intmath

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

const max = math.MaxUint64

func TestMulDiv(t *testing.T) {
	tests := []struct {
		a, b, div        uint64
		wantQuo, wantRem uint64
	}{
		{a: 5, b: 2, div: 3, wantQuo: 3, wantRem: 1},
		{a: 5, b: 3, div: 3, wantQuo: 5, wantRem: 0},
		{a: 4_194_304, b: 2, div: 768, wantQuo: 10_922, wantRem: 512},
		{a: max, b: 4, div: 8, wantQuo: max / 2, wantRem: 4}, // must avoid overflow
	}

	for _, tt := range tests {
		if gotQuo, gotRem, err := MulDiv(tt.a, tt.b, tt.div); err != nil || gotQuo != tt.wantQuo || gotRem != tt.wantRem {
			t.Errorf("MulDiv[%T](%[1]d, %d, %d) got (%d, %d, %v); want (%d, %d, nil)", tt.a, tt.b, tt.div, gotQuo, gotRem, err, tt.wantQuo, tt.wantRem)
		}
	}

	if _, _, err := MulDiv[uint64](max, 2, 1); !errors.Is(err, ErrOverflow) {
		t.Errorf("MulDiv[uint64]([max uint64], 2, 1) got error %v; want %v", err, ErrOverflow)
	}
}

func TestMul(t *testing.T) {
	tests := []struct {
		a, b    uint64
		want    uint64
		wantErr error
	}{
		{a: 0, b: max, want: 0},
		{a: 1 << 27, b: 2, want: 1 << 28},
		{a: 1 << 32, b: 1<<32 - 1, want: max - (1<<32 - 1)},
		{a: 1 << 32, b: 1 << 32, wantErr: ErrOverflow},
		{a: max, b: 2, wantErr: ErrOverflow},
	}

	for _, tt := range tests {
		got, err := Mul(tt.a, tt.b)
		if !errors.Is(err, tt.wantErr) || got != tt.want {
			t.Errorf("Mul[%T](%[1]d, %d) got (%d, %v); want (%d, %v)", tt.a, tt.b, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestFloor(t *testing.T) {
	tests := []struct {
		x       float64
		want    uint64
		wantErr error
	}{
		{x: 0, want: 0},
		{x: math.Copysign(0, -1), want: 0},
		{x: 0.999, want: 0},
		{x: 4_194_304, want: 4_194_304},
		{x: 10_922.666, want: 10_922},
		{x: 1 << 63, want: 1 << 63},
		{x: -0.5, wantErr: ErrUnderflow},
		{x: 1 << 64, wantErr: ErrOverflow},
		{x: math.NaN(), wantErr: ErrNotFinite},
		{x: math.Inf(1), wantErr: ErrNotFinite},
		{x: math.Inf(-1), wantErr: ErrNotFinite},
	}

	for _, tt := range tests {
		got, err := Floor[uint64](tt.x)
		if !errors.Is(err, tt.wantErr) || got != tt.want {
			t.Errorf("Floor[uint64](%v) got (%d, %v); want (%d, %v)", tt.x, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestFloorDiv(t *testing.T) {
	type test struct {
		num, den, want float64
	}

	tests := []test{
		{num: 0, den: 12, want: 0},
		{num: 11, den: 12, want: 0},
		{num: 12, den: 12, want: 1},
		{num: 144, den: 12, want: 12},
		{num: 536.8708, den: 12, want: 44},
		{num: 0.7, den: 0.1, want: 6}, // 0.7/0.1 rounds up to exactly 7
	}

	rng := rand.New(rand.NewPCG(0, 0)) //nolint:gosec // Reproducibility is valuable for tests
	for range 50 {
		q := float64(rng.Uint32())
		d := float64(1 + rng.IntN(1000))
		tests = append(tests, []test{
			{num: q * d, den: d, want: q},
			{num: q*d + d/2, den: d, want: q},
		}...)
	}

	for _, tt := range tests {
		if got := FloorDiv(tt.num, tt.den); got != tt.want {
			t.Errorf("FloorDiv(%v, %v) got %v; want %v", tt.num, tt.den, got, tt.want)
		}
	}
}
