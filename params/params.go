// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package params declares the economic constants and input domains used to
// relate validator minimum stake to validator count, finality time and
// consensus message traffic.
package params

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// TotalSupply is the fixed total token supply, 2^27.
const TotalSupply = 1 << 27

// ParticipationPercent is the share of [TotalSupply] assumed to be staked.
const ParticipationPercent = 10

// FullParticipation is the participation percentage at which the chart and the
// live labels are evaluated, i.e. all of [TotalSupply] is considered.
const FullParticipation = 100

// MessagesPerValidator is the number of messages that a single validator sends
// per finality round.
const MessagesPerValidator = 2

// TargetTrafficPerSec is the baseline message rate from which the required
// finality time of a validator set is derived.
const TargetTrafficPerSec = 5000

// SlotSeconds is the length of a slot.
const SlotSeconds = 12

// Slider defaults. They are literal and deliberately not derived from the
// other constants.
const (
	DefaultMinStake        = 32
	DefaultFinalityTimeSec = 12 * 32 * 2
)

// A Number is any numeric type usable as a slider value.
type Number interface {
	constraints.Integer | constraints.Float
}

// A Range is the closed interval of values that a slider accepts.
type Range[T Number] struct {
	Min, Max, Default, Step T
}

// Contains reports whether `v` is in `[r.Min, r.Max]`. NaN is never contained.
func (r Range[T]) Contains(v T) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range[T]) validate(name string) error {
	switch {
	case r.Min <= 0:
		return fmt.Errorf("%s minimum (%v) is not positive", name, r.Min)
	case r.Max < r.Min:
		return fmt.Errorf("%s maximum (%v) is less than minimum (%v)", name, r.Max, r.Min)
	case !r.Contains(r.Default):
		return fmt.Errorf("%s default (%v) is out of range [%v, %v]", name, r.Default, r.Min, r.Max)
	case r.Step <= 0:
		return fmt.Errorf("%s step (%v) is not positive", name, r.Step)
	}
	return nil
}

// SweepConfig shapes the static finality curve computed at startup.
type SweepConfig struct {
	// Start and Stop are the first and last minimum-stake samples, inclusive.
	Start, Stop float64
	// Samples is the number of evenly spaced samples in [Start, Stop].
	Samples int
}

// Config is the complete, immutable parameter set. It is passed by value to
// every consumer, which then owns its copy.
type Config struct {
	TotalSupply          uint64
	ParticipationPercent float64
	MessagesPerValidator uint64
	TargetTrafficPerSec  float64
	SlotSeconds          float64
	// TokenSymbol is used only for presentation.
	TokenSymbol string

	MinStake        Range[float64]
	FinalityTimeSec Range[uint64]
	Sweep           SweepConfig
}

// DefaultConfig returns the parameters of the Ethereum mainnet model: 2^27 ETH
// of supply, 12 s slots and 5000 messages per second of tolerable overhead.
func DefaultConfig() Config {
	return Config{
		TotalSupply:          TotalSupply,
		ParticipationPercent: ParticipationPercent,
		MessagesPerValidator: MessagesPerValidator,
		TargetTrafficPerSec:  TargetTrafficPerSec,
		SlotSeconds:          SlotSeconds,
		TokenSymbol:          "ETH",
		MinStake: Range[float64]{
			Min:     1,
			Max:     100,
			Default: DefaultMinStake,
			Step:    1,
		},
		FinalityTimeSec: Range[uint64]{
			Min:     1,
			Max:     1000,
			Default: DefaultFinalityTimeSec,
			Step:    1,
		},
		Sweep: SweepConfig{
			Start:   1,
			Stop:    100,
			Samples: 100,
		},
	}
}

// Validate returns an error describing the first invalid parameter, if any.
func (c *Config) Validate() error {
	if c.TotalSupply == 0 {
		return fmt.Errorf("total supply (%d) is 0", c.TotalSupply)
	}
	if !isFinite(c.ParticipationPercent) || c.ParticipationPercent <= 0 || c.ParticipationPercent > 100 {
		return fmt.Errorf("participation percent (%v) is out of range (0, 100]", c.ParticipationPercent)
	}
	if c.MessagesPerValidator == 0 {
		return fmt.Errorf("messages per validator (%d) is 0", c.MessagesPerValidator)
	}
	if !isFinite(c.TargetTrafficPerSec) || c.TargetTrafficPerSec <= 0 {
		return fmt.Errorf("target traffic per second (%v) is not positive", c.TargetTrafficPerSec)
	}
	if !isFinite(c.SlotSeconds) || c.SlotSeconds <= 0 {
		return fmt.Errorf("slot seconds (%v) is not positive", c.SlotSeconds)
	}
	if err := c.MinStake.validate("min stake"); err != nil {
		return err
	}
	if math.IsInf(c.MinStake.Max, 0) {
		return fmt.Errorf("min stake maximum (%v) is not finite", c.MinStake.Max)
	}
	if err := c.FinalityTimeSec.validate("finality time"); err != nil {
		return err
	}

	s := c.Sweep
	if s.Samples < 2 {
		return fmt.Errorf("sweep samples (%d) is less than 2", s.Samples)
	}
	if !isFinite(s.Start) || !isFinite(s.Stop) || s.Start <= 0 || s.Stop <= s.Start {
		return fmt.Errorf("sweep interval [%v, %v] is not positive and increasing", s.Start, s.Stop)
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
