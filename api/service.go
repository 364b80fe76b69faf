// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"errors"
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/stakeviz/explorer"
	"github.com/ava-labs/stakeviz/formula"
	"github.com/ava-labs/stakeviz/params"
	"github.com/ava-labs/stakeviz/sweep"
)

// Service is the JSON-RPC service registered as "stakeviz". Method names are
// exposed in lower camel case, e.g. "stakeviz.getDataset".
type Service struct {
	explorer *explorer.Explorer
	sessions *explorer.Sessions
	metrics  *metrics
	log      logging.Logger
}

// EmptyArgs are accepted by methods that take no arguments.
type EmptyArgs struct{}

// EmptyReply is returned by methods with nothing to report.
type EmptyReply struct{}

// GetDataset returns the static finality curve.
func (s *Service) GetDataset(_ *http.Request, _ *EmptyArgs, reply *sweep.Dataset) error {
	s.log.Debug("API called", zap.String("method", "stakeviz.getDataset"))
	*reply = *s.explorer.Dataset()
	return nil
}

// Domain describes the accepted range of a slider.
type Domain struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Step    float64 `json:"step"`
}

func domainOf[T params.Number](r params.Range[T]) Domain {
	return Domain{
		Min:     float64(r.Min),
		Max:     float64(r.Max),
		Default: float64(r.Default),
		Step:    float64(r.Step),
	}
}

// ConstantsReply is the reply of [Service.GetConstants].
type ConstantsReply struct {
	TotalSupply          json.Uint64 `json:"totalSupply"`
	ParticipationPercent float64     `json:"participationPercent"`
	MessagesPerValidator json.Uint64 `json:"messagesPerValidator"`
	TargetTrafficPerSec  float64     `json:"targetTrafficPerSec"`
	SlotSeconds          float64     `json:"slotSeconds"`
	TokenSymbol          string      `json:"tokenSymbol"`
	MinStake             Domain      `json:"minStake"`
	FinalityTimeSec      Domain      `json:"finalityTimeSec"`
	Info                 []string    `json:"info"`
}

// GetConstants returns the fixed parameters, slider domains and static
// informational lines.
func (s *Service) GetConstants(_ *http.Request, _ *EmptyArgs, reply *ConstantsReply) error {
	s.log.Debug("API called", zap.String("method", "stakeviz.getConstants"))
	cfg := s.explorer.Config()
	*reply = ConstantsReply{
		TotalSupply:          json.Uint64(cfg.TotalSupply),
		ParticipationPercent: cfg.ParticipationPercent,
		MessagesPerValidator: json.Uint64(cfg.MessagesPerValidator),
		TargetTrafficPerSec:  cfg.TargetTrafficPerSec,
		SlotSeconds:          cfg.SlotSeconds,
		TokenSymbol:          cfg.TokenSymbol,
		MinStake:             domainOf(cfg.MinStake),
		FinalityTimeSec:      domainOf(cfg.FinalityTimeSec),
		Info:                 s.explorer.Info(),
	}
	return nil
}

// InputsArgs carry slider positions.
type InputsArgs struct {
	MinStake        float64     `json:"minStake"`
	FinalityTimeSec json.Uint64 `json:"finalityTimeSec"`
}

// OutputsReply carries the recomputed labels and the numbers behind them.
type OutputsReply struct {
	MinStakeLabel string      `json:"minStakeLabel"`
	FinalityLabel string      `json:"finalityLabel"`
	TrafficLabel  string      `json:"trafficLabel"`
	Validators    json.Uint64 `json:"validators"`
	TrafficPerSec json.Uint64 `json:"trafficPerSec"`
}

func outputsReply(o explorer.Outputs) OutputsReply {
	return OutputsReply{
		MinStakeLabel: o.MinStakeLabel,
		FinalityLabel: o.FinalityLabel,
		TrafficLabel:  o.TrafficLabel,
		Validators:    json.Uint64(o.Validators),
		TrafficPerSec: json.Uint64(o.TrafficPerSec),
	}
}

// Evaluate computes outputs for the given inputs without reference to a
// session.
func (s *Service) Evaluate(_ *http.Request, args *InputsArgs, reply *OutputsReply) error {
	s.log.Debug("API called", zap.String("method", "stakeviz.evaluate"))
	out, err := s.explorer.Evaluate(explorer.Inputs{
		MinStake:        args.MinStake,
		FinalityTimeSec: uint64(args.FinalityTimeSec),
	})
	if err := s.metrics.observe(err); err != nil {
		return err
	}
	*reply = outputsReply(out)
	return nil
}

// SessionReply is the reply of [Service.OpenSession].
type SessionReply struct {
	SessionID ids.ID       `json:"sessionID"`
	Inputs    InputsArgs   `json:"inputs"`
	Outputs   OutputsReply `json:"outputs"`
}

// OpenSession starts a new viewer session at the default slider positions.
func (s *Service) OpenSession(_ *http.Request, _ *EmptyArgs, reply *SessionReply) error {
	s.log.Debug("API called", zap.String("method", "stakeviz.openSession"))
	id, st, err := s.sessions.Open()
	if err != nil {
		return err
	}
	*reply = SessionReply{
		SessionID: id,
		Inputs: InputsArgs{
			MinStake:        st.Inputs.MinStake,
			FinalityTimeSec: json.Uint64(st.Inputs.FinalityTimeSec),
		},
		Outputs: outputsReply(st.Outputs),
	}
	return nil
}

// UpdateInputsArgs are the arguments of [Service.UpdateInputs].
type UpdateInputsArgs struct {
	SessionID ids.ID `json:"sessionID"`
	InputsArgs
}

// UpdateInputs moves the sliders of a session.
func (s *Service) UpdateInputs(_ *http.Request, args *UpdateInputsArgs, reply *OutputsReply) error {
	s.log.Debug(
		"API called",
		zap.String("method", "stakeviz.updateInputs"),
		zap.Stringer("session", args.SessionID),
	)
	out, err := s.sessions.Update(args.SessionID, args.MinStake, uint64(args.FinalityTimeSec))
	if err := s.metrics.observe(err); err != nil {
		return err
	}
	*reply = outputsReply(out)
	return nil
}

// SessionArgs identify a session.
type SessionArgs struct {
	SessionID ids.ID `json:"sessionID"`
}

// CloseSession ends a session.
func (s *Service) CloseSession(_ *http.Request, args *SessionArgs, _ *EmptyReply) error {
	s.log.Debug(
		"API called",
		zap.String("method", "stakeviz.closeSession"),
		zap.Stringer("session", args.SessionID),
	)
	return s.sessions.Close(args.SessionID)
}

// observe records the outcome of a recomputation, passing `err` through.
func (m *metrics) observe(err error) error {
	switch {
	case err == nil:
		m.recomputations.Inc()
	case errors.Is(err, formula.ErrDomain):
		m.domainErrors.Inc()
	}
	return err
}
