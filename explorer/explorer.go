// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package explorer implements the interactive layer of the validator-economics
// explorer: two user-controlled inputs, minimum stake and finality time, from
// which display labels are recomputed in full on every change.
package explorer

import (
	"fmt"
	"strconv"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/stakeviz/formula"
	"github.com/ava-labs/stakeviz/params"
	"github.com/ava-labs/stakeviz/sweep"
)

// Inputs are the slider-controlled values.
type Inputs struct {
	MinStake        float64 `json:"minStake"`
	FinalityTimeSec uint64  `json:"finalityTimeSec"`
}

// Outputs are everything displayed in response to a change of [Inputs].
type Outputs struct {
	MinStakeLabel string `json:"minStakeLabel"`
	FinalityLabel string `json:"finalityLabel"`
	TrafficLabel  string `json:"trafficLabel"`

	Validators    uint64 `json:"validators"`
	TrafficPerSec uint64 `json:"trafficPerSec"`
}

// State is the last accepted [Inputs] and the [Outputs] computed from them.
type State struct {
	Inputs  Inputs
	Outputs Outputs
}

// An Explorer computes [Outputs] from [Inputs]. It holds no per-viewer state
// and is safe for concurrent use.
type Explorer struct {
	cfg     params.Config
	calc    formula.Calculator
	log     logging.Logger
	dataset *sweep.Dataset
	initial State
}

// New validates `cfg` and returns an [Explorer] bound to a copy of it. The
// static finality curve is computed once, here.
func New(cfg params.Config, log logging.Logger) (*Explorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	ds, err := sweep.FinalityCurve(cfg)
	if err != nil {
		return nil, fmt.Errorf("computing finality curve: %w", err)
	}

	e := &Explorer{
		cfg:     cfg,
		calc:    formula.New(cfg),
		log:     log,
		dataset: ds,
	}
	out, err := e.compute(Inputs{
		MinStake:        cfg.MinStake.Default,
		FinalityTimeSec: cfg.FinalityTimeSec.Default,
	})
	if err != nil {
		return nil, fmt.Errorf("computing defaults: %w", err)
	}
	e.initial = out

	log.Info(
		"Explorer initialised",
		zap.Int("sweep_samples", len(ds.X)),
		zap.Float64("default_min_stake", cfg.MinStake.Default),
		zap.Uint64("default_finality_sec", cfg.FinalityTimeSec.Default),
	)
	return e, nil
}

// Config returns the parameters that the [Explorer] was constructed with.
func (e *Explorer) Config() params.Config {
	return e.cfg
}

// Dataset returns the static finality curve. It MUST NOT be modified.
func (e *Explorer) Dataset() *sweep.Dataset {
	return e.dataset
}

// Initial returns the [State] for the default slider positions.
func (e *Explorer) Initial() State {
	return e.initial
}

// Info returns the static lines displayed alongside the chart.
func (e *Explorer) Info() []string {
	return []string{
		fmt.Sprintf("Participation Rate of %[1]s staked vs. Total %[1]s available (%%): %v", e.cfg.TokenSymbol, e.cfg.ParticipationPercent),
		fmt.Sprintf("Messages (Traffic) Per Validator for Finality: %d", e.cfg.MessagesPerValidator),
	}
}

// OnInputsChanged is the state transition invoked whenever either slider moves.
// All outputs are recomputed from scratch. If either input is outside of its
// configured range, a [formula.DomainError] is returned along with the
// unchanged `s`.
func (e *Explorer) OnInputsChanged(s State, minStake float64, finalitySec uint64) (State, Outputs, error) {
	next, err := e.compute(Inputs{
		MinStake:        minStake,
		FinalityTimeSec: finalitySec,
	})
	if err != nil {
		return s, Outputs{}, err
	}
	return next, next.Outputs, nil
}

// Evaluate is equivalent to [Explorer.OnInputsChanged] without a prior state.
func (e *Explorer) Evaluate(in Inputs) (Outputs, error) {
	s, err := e.compute(in)
	return s.Outputs, err
}

func (e *Explorer) compute(in Inputs) (State, error) {
	if err := e.validate(in); err != nil {
		e.log.Warn("Rejected inputs", zap.Error(err))
		return State{}, err
	}

	validators, err := e.calc.ValidatorCount(in.MinStake, params.FullParticipation)
	if err != nil {
		return State{}, err
	}
	traffic, err := e.calc.TrafficPerSec(validators, in.FinalityTimeSec, e.cfg.MessagesPerValidator)
	if err != nil {
		return State{}, err
	}

	e.log.Debug(
		"Recomputed outputs",
		zap.Float64("min_stake", in.MinStake),
		zap.Uint64("finality_sec", in.FinalityTimeSec),
		zap.Uint64("validators", validators),
		zap.Uint64("traffic_per_sec", traffic),
	)
	return State{
		Inputs: in,
		Outputs: Outputs{
			MinStakeLabel: "Min Stake: " + formatNumber(in.MinStake),
			FinalityLabel: "Finality in Sec: " + strconv.FormatUint(in.FinalityTimeSec, 10),
			TrafficLabel:  "Overhead per Second: " + strconv.FormatUint(traffic, 10) + " messages",
			Validators:    validators,
			TrafficPerSec: traffic,
		},
	}, nil
}

func (e *Explorer) validate(in Inputs) error {
	const op = "OnInputsChanged"
	if r := e.cfg.MinStake; !r.Contains(in.MinStake) {
		return &formula.DomainError{
			Op:     op,
			Param:  "minStake",
			Value:  in.MinStake,
			Reason: fmt.Sprintf("out of range [%v, %v]", r.Min, r.Max),
		}
	}
	if r := e.cfg.FinalityTimeSec; !r.Contains(in.FinalityTimeSec) {
		return &formula.DomainError{
			Op:     op,
			Param:  "finalityTimeSec",
			Value:  in.FinalityTimeSec,
			Reason: fmt.Sprintf("out of range [%d, %d]", r.Min, r.Max),
		}
	}
	return nil
}

// formatNumber renders `x` in the shortest form that parses back to it, e.g.
// "32" and "32.5".
func formatNumber(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
