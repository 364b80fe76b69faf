// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sweep computes the static finality-time curve that is rendered once,
// when the explorer starts.
package sweep

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/ava-labs/stakeviz/formula"
	"github.com/ava-labs/stakeviz/params"
)

// Linspace returns `n` evenly spaced samples over `[start, stop]`, both
// endpoints included. Sample `i` is `start + i*step` except for the last, which
// is exactly `stop`. For `n == 1` the only sample is `start`; non-positive `n`
// returns an empty slice.
func Linspace(start, stop float64, n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{start}
	}
	xs := floats.Span(make([]float64, n), start, stop)
	xs[n-1] = stop
	return xs
}

// A Dataset is a single line trace plus the presentation metadata required to
// render it. It is independent of any charting library.
type Dataset struct {
	Title         string    `json:"title"`
	Subtitle      string    `json:"subtitle"`
	XAxisTitle    string    `json:"xAxisTitle"`
	YAxisTitle    string    `json:"yAxisTitle"`
	TraceName     string    `json:"traceName"`
	Mode          string    `json:"mode"`
	HoverTemplate string    `json:"hoverTemplate"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	X             []float64 `json:"x"`
	Y             []uint64  `json:"y"`
}

// FinalityCurve samples the configured minimum-stake interval and, for each
// sample, computes the finality time in slots that the implied validator set
// needs at the target traffic rate, assuming full participation.
func FinalityCurve(cfg params.Config) (*Dataset, error) {
	calc := formula.New(cfg)
	xs := Linspace(cfg.Sweep.Start, cfg.Sweep.Stop, cfg.Sweep.Samples)
	ys := make([]uint64, len(xs))

	for i, x := range xs {
		v, err := calc.ValidatorCount(x, params.FullParticipation)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		secs, err := calc.RequiredFinalityTime(v, cfg.MessagesPerValidator)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		if ys[i], err = calc.SecondsToSlots(secs); err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
	}

	return &Dataset{
		Title:      "Impact of Min Stake on Finality Time",
		Subtitle:   fmt.Sprintf("(Overhead per Second = %v messages)", cfg.TargetTrafficPerSec),
		XAxisTitle: fmt.Sprintf("Min Stake in %s", cfg.TokenSymbol),
		YAxisTitle: "Finality Time in Slots",
		TraceName:  "Finality Time",
		Mode:       "lines",
		HoverTemplate: fmt.Sprintf(
			"<b>Min Stake</b>: %%{x:.2f} %s<br><b>Finality Time</b>: %%{y:.2f} slots<br><extra></extra>",
			cfg.TokenSymbol,
		),
		Width:  500,
		Height: 450,
		X:      xs,
		Y:      ys,
	}, nil
}
