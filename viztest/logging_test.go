// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package viztest

import (
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLogRecorder(t *testing.T) {
	rec := NewLogRecorder(logging.Info)

	rec.Debug("dropped")
	rec.Info("kept", zap.Int("n", 1))
	rec.With(zap.String("session", "abc")).Warn("warned", zap.Uint64("x", 2))

	require.Len(t, rec.AtLeast(logging.Debug), 2, "Debug below level must be dropped")
	require.Len(t, rec.At(logging.Warn), 1)

	w := rec.At(logging.Warn)[0]
	assert.Equal(t, "warned", w.Msg)
	assert.Equal(t, map[string]any{"session": "abc", "x": uint64(2)}, w.Fields)

	assert.True(t, rec.Enabled(logging.Warn), "Enabled(Warn)")
	assert.False(t, rec.Enabled(logging.Debug), "Enabled(Debug)")
}
