// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package explorer

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
	"go.uber.org/zap"

	"github.com/ava-labs/stakeviz/cache"
)

// ErrUnknownSession is returned when a session ID was never opened, was
// closed, or has expired.
var ErrUnknownSession = errors.New("unknown session")

type session struct {
	state    State
	lastSeen time.Time
}

// Sessions holds an independent [State] for each viewer so that moving a slider
// in one session never affects another. It is safe for concurrent use.
type Sessions struct {
	explorer *Explorer
	ttl      time.Duration
	data     *cache.UniformlyKeyed[ids.ID, *session]

	// Clock is used to measure idleness for [Sessions.Expire]. It is exposed so
	// that tests can control the passage of time.
	Clock mockable.Clock
}

// NewSessions returns an empty [Sessions] set, the members of which expire
// after being idle for `ttl`. A non-positive `ttl` disables expiry.
func (e *Explorer) NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		explorer: e,
		ttl:      ttl,
		data:     cache.NewUniformlyKeyed[ids.ID, *session](),
	}
}

// Open starts a new session at the default slider positions.
func (s *Sessions) Open() (ids.ID, State, error) {
	st := s.explorer.Initial()
	for {
		var id ids.ID
		if _, err := rand.Read(id[:]); err != nil {
			return ids.Empty, State{}, fmt.Errorf("generating session ID: %w", err)
		}
		if s.data.StoreIfAbsent(id, &session{state: st, lastSeen: s.Clock.Time()}) {
			s.explorer.log.Debug("Session opened", zap.Stringer("session", id))
			return id, st, nil
		}
	}
}

// Get returns the current [State] of the session.
func (s *Sessions) Get(id ids.ID) (State, error) {
	sess, ok := s.data.Load(id)
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	// Sessions are replaced, never mutated, so reading outside of the lock is
	// safe.
	return sess.state, nil
}

// Update applies [Explorer.OnInputsChanged] to the session's state. On error
// the session is left unchanged.
func (s *Sessions) Update(id ids.ID, minStake float64, finalitySec uint64) (Outputs, error) {
	var out Outputs
	found, err := s.data.Update(id, func(sess *session) (*session, error) {
		next, o, err := s.explorer.OnInputsChanged(sess.state, minStake, finalitySec)
		if err != nil {
			return nil, err
		}
		out = o
		return &session{state: next, lastSeen: s.Clock.Time()}, nil
	})
	if !found {
		return Outputs{}, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	if err != nil {
		return Outputs{}, err
	}
	return out, nil
}

// Close ends the session.
func (s *Sessions) Close(id ids.ID) error {
	if !s.data.Delete(id) {
		return fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	return nil
}

// Len returns the number of open sessions.
func (s *Sessions) Len() int {
	return s.data.Len()
}

// CloseAll closes every open session, returning the number closed.
func (s *Sessions) CloseAll() int {
	n := s.data.Len()
	s.data.Clear()
	return n
}

// Expire closes all sessions that have been idle for longer than the TTL,
// returning the number closed.
func (s *Sessions) Expire() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.Clock.Time().Add(-s.ttl)
	n := s.data.DeleteFunc(func(_ ids.ID, sess *session) bool {
		return sess.lastSeen.Before(cutoff)
	})
	if n > 0 {
		s.explorer.log.Debug("Sessions expired", zap.Int("count", n))
	}
	return n
}

// Run calls [Sessions.Expire] every `interval` until `ctx` is cancelled.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Expire()
		}
	}
}
