// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package formula

import (
	"errors"
	"fmt"
)

// ErrDomain is wrapped by every [DomainError].
var ErrDomain = errors.New("outside of formula domain")

// A DomainError reports an input for which a formula is undefined, typically a
// non-positive divisor.
type DomainError struct {
	Op     string // formula or operation, e.g. "ValidatorCount"
	Param  string // offending parameter, e.g. "minStake"
	Value  any
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s = %v: %s", e.Op, e.Param, e.Value, e.Reason)
}

// Unwrap returns [ErrDomain].
func (e *DomainError) Unwrap() error {
	return ErrDomain
}

func domainErr(op, param string, val any, reason string) *DomainError {
	return &DomainError{
		Op:     op,
		Param:  param,
		Value:  val,
		Reason: reason,
	}
}
