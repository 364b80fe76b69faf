// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/stakeviz/formula"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEval(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{
			args: []string{"eval"},
			want: "Min Stake: 32\nFinality in Sec: 768\nOverhead per Second: 10922 messages\n",
		},
		{
			args: []string{"eval", "--min-stake", "100", "--finality-sec", "1000"},
			want: "Min Stake: 100\nFinality in Sec: 1000\nOverhead per Second: 2684 messages\n",
		},
	}
	for _, tt := range tests {
		got, err := execute(t, tt.args...)
		require.NoErrorf(t, err, "%q", tt.args)
		assert.Equalf(t, tt.want, got, "%q", tt.args)
	}
}

func TestEvalDomainError(t *testing.T) {
	_, err := execute(t, "eval", "--min-stake", "0")
	require.ErrorIs(t, err, formula.ErrDomain)
}

func TestSweepCSV(t *testing.T) {
	got, err := execute(t, "sweep", "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(got), "\n")
	require.Len(t, lines, 101, "header plus one row per sample")
	assert.Equal(t, "min_stake,finality_slots", lines[0])
	assert.Equal(t, "1,4473", lines[1])
	assert.Equal(t, "100,44", lines[100])
}

func TestSweepTable(t *testing.T) {
	got, err := execute(t, "sweep")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "Impact of Min Stake on Finality Time (Overhead per Second = 5000 messages)\n"))
	assert.Contains(t, got, "4,473")

	_, err = execute(t, "sweep", "--format", "xml")
	assert.Error(t, err, "unknown format")
}

func TestConstants(t *testing.T) {
	got, err := execute(t, "constants")
	require.NoError(t, err)
	for _, want := range []string{
		"134,217,728 ETH",
		"Participation Rate of ETH staked vs. Total ETH available (%): 10",
		"Messages (Traffic) Per Validator for Finality: 2",
	} {
		assert.Contains(t, got, want)
	}
}

func TestLogFlags(t *testing.T) {
	for _, f := range []logFlags{
		{level: "debug", format: "plain"},
		{level: "warn", format: "json"},
	} {
		log, err := f.logger()
		require.NoErrorf(t, err, "%+v.logger()", f)
		assert.Equalf(t, f.level == "debug", log.Enabled(logging.Debug), "%+v debug enabled", f)
	}

	for _, f := range []logFlags{
		{level: "loud", format: "plain"},
		{level: "info", format: "yaml"},
	} {
		_, err := f.logger()
		assert.Errorf(t, err, "%+v.logger()", f)
	}
}
