// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package formula implements the closed-form relations between minimum stake,
// validator count, finality time and consensus message traffic.
//
// All methods are pure. Inputs for which a formula is undefined (e.g. a zero
// divisor) result in a [DomainError] instead of an infinity or a panic.
package formula

import (
	"fmt"
	"math"

	"github.com/ava-labs/stakeviz/intmath"
	"github.com/ava-labs/stakeviz/params"
)

// A Calculator evaluates formulas against a fixed [params.Config]. The zero
// value is not useful; use [New].
type Calculator struct {
	cfg params.Config
}

// New returns a [Calculator] bound to a copy of `cfg`. It is the caller's
// responsibility to have validated `cfg`.
func New(cfg params.Config) Calculator {
	return Calculator{cfg: cfg}
}

// ValidatorCount returns the number of validators implied by the total supply
// when `participationPercent` of it is staked in units of `minStake`, i.e.
// `floor(TotalSupply / minStake * participationPercent / 100)`.
func (c Calculator) ValidatorCount(minStake, participationPercent float64) (uint64, error) {
	const op = "ValidatorCount"
	if !positive(minStake) {
		return 0, domainErr(op, "minStake", minStake, "must be positive and finite")
	}
	if !finite(participationPercent) || participationPercent < 0 {
		return 0, domainErr(op, "participationPercent", participationPercent, "must be non-negative and finite")
	}

	v := float64(c.cfg.TotalSupply) / minStake * (participationPercent / 100)
	n, err := intmath.Floor[uint64](v)
	if err != nil {
		return 0, domainErr(op, "minStake", minStake, fmt.Sprintf("validator count %v: %v", v, err))
	}
	return n, nil
}

// TrafficPerSec returns the aggregate message rate of `validators` each sending
// `messagesPerValidator` messages within `finalitySec` seconds, i.e.
// `floor(validators * messagesPerValidator / finalitySec)`.
func (c Calculator) TrafficPerSec(validators, finalitySec, messagesPerValidator uint64) (uint64, error) {
	const op = "TrafficPerSec"
	if finalitySec == 0 {
		return 0, domainErr(op, "finalitySec", finalitySec, "must be positive")
	}
	quo, _, err := intmath.MulDiv(validators, messagesPerValidator, finalitySec)
	if err != nil {
		return 0, domainErr(op, "validators", validators, err.Error())
	}
	return quo, nil
}

// RequiredFinalityTime is equivalent to [Calculator.RequiredFinalityTimeAt]
// with the configured target traffic rate.
func (c Calculator) RequiredFinalityTime(validators, messagesPerValidator uint64) (float64, error) {
	return c.RequiredFinalityTimeAt(validators, messagesPerValidator, c.cfg.TargetTrafficPerSec)
}

// RequiredFinalityTimeAt returns the number of seconds needed for `validators`
// to each send `messagesPerValidator` messages if the network carries
// `targetPerSec` messages per second. The result is not floored.
func (c Calculator) RequiredFinalityTimeAt(validators, messagesPerValidator uint64, targetPerSec float64) (float64, error) {
	const op = "RequiredFinalityTime"
	if !positive(targetPerSec) {
		return 0, domainErr(op, "targetMessagesPerSec", targetPerSec, "must be positive and finite")
	}
	msgs, err := intmath.Mul(validators, messagesPerValidator)
	if err != nil {
		return 0, domainErr(op, "validators", validators, err.Error())
	}
	return float64(msgs) / targetPerSec, nil
}

// SecondsToSlots returns the number of whole slots in `seconds`.
func (c Calculator) SecondsToSlots(seconds float64) (uint64, error) {
	const op = "SecondsToSlots"
	if !finite(seconds) || seconds < 0 {
		return 0, domainErr(op, "seconds", seconds, "must be non-negative and finite")
	}
	n, err := intmath.Floor[uint64](intmath.FloorDiv(seconds, c.cfg.SlotSeconds))
	if err != nil {
		return 0, domainErr(op, "seconds", seconds, err.Error())
	}
	return n, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func positive(x float64) bool {
	return finite(x) && x > 0
}
