// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package viztest

import (
	"runtime"
	"slices"
	"sync"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger plumbs all levels at or above a threshold into a handler function.
type logger struct {
	level  logging.Level
	handle func(logging.Level, string, ...zap.Field)
	with   []zap.Field
	// Methods that aren't implemented will panic, which is better than
	// embedding a [logging.NoLog] that could silently drop important entries.
	logging.Logger
}

var _ logging.Logger = (*logger)(nil)

func (l *logger) With(fields ...zap.Field) logging.Logger {
	return &logger{
		level:  l.level,
		handle: l.handle,
		with:   slices.Concat(l.with, fields),
	}
}

func (l *logger) Enabled(lvl logging.Level) bool {
	return lvl >= l.level
}

func (l *logger) log(lvl logging.Level, msg string, fields ...zap.Field) {
	if lvl < l.level {
		return
	}
	l.handle(lvl, msg, slices.Concat(l.with, fields)...)
}

func (l *logger) Verbo(msg string, fs ...zap.Field) { l.log(logging.Verbo, msg, fs...) }
func (l *logger) Debug(msg string, fs ...zap.Field) { l.log(logging.Debug, msg, fs...) }
func (l *logger) Trace(msg string, fs ...zap.Field) { l.log(logging.Trace, msg, fs...) }
func (l *logger) Info(msg string, fs ...zap.Field)  { l.log(logging.Info, msg, fs...) }
func (l *logger) Warn(msg string, fs ...zap.Field)  { l.log(logging.Warn, msg, fs...) }
func (l *logger) Error(msg string, fs ...zap.Field) { l.log(logging.Error, msg, fs...) }
func (l *logger) Fatal(msg string, fs ...zap.Field) { l.log(logging.Fatal, msg, fs...) }

// A LogRecorder is a [logging.Logger] that stores all logs as [LogRecord]
// entries for inspection. It is safe for concurrent use.
type LogRecorder struct {
	*logger
	mu      sync.Mutex
	records []*LogRecord
}

// A LogRecord is a single entry in a [LogRecorder].
type LogRecord struct {
	Level  logging.Level
	Msg    string
	Fields map[string]any
}

// NewLogRecorder constructs a new [LogRecorder] at the specified level.
func NewLogRecorder(level logging.Level) *LogRecorder {
	r := new(LogRecorder)
	r.logger = &logger{
		level:  level,
		handle: r.record,
	}
	return r
}

func (r *LogRecorder) record(lvl logging.Level, msg string, fields ...zap.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, &LogRecord{
		Level:  lvl,
		Msg:    msg,
		Fields: encode(fields),
	})
}

// Filter returns the recorded logs for which `fn` returns true.
func (r *LogRecorder) Filter(fn func(*LogRecord) bool) []*LogRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*LogRecord
	for _, rec := range r.records {
		if fn(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// At returns all recorded logs at the specified [logging.Level].
func (r *LogRecorder) At(lvl logging.Level) []*LogRecord {
	return r.Filter(func(rec *LogRecord) bool { return rec.Level == lvl })
}

// AtLeast returns all recorded logs at or above the specified [logging.Level].
func (r *LogRecorder) AtLeast(lvl logging.Level) []*LogRecord {
	return r.Filter(func(rec *LogRecord) bool { return rec.Level >= lvl })
}

// NewTBLogger constructs a logger that propagates logs to [testing.TB]. ERROR
// logs are sent to [testing.TB.Errorf] while FATAL is sent to
// [testing.TB.Fatalf]. All other logs, including WARN, are sent to
// [testing.TB.Logf] because rejected user input is expected to warn.
//
//nolint:thelper // The outputs include the logging site while the TB site is most useful if here
func NewTBLogger(tb testing.TB, level logging.Level) logging.Logger {
	return &logger{
		level: level,
		handle: func(lvl logging.Level, msg string, fields ...zap.Field) {
			var to func(string, ...any)
			switch {
			case lvl == logging.Error:
				to = tb.Errorf
			case lvl >= logging.Fatal:
				to = tb.Fatalf
			default:
				to = tb.Logf
			}
			_, file, line, _ := runtime.Caller(3)
			to("[Log@%s] %s %v - %s:%d", lvl, msg, encode(fields), file, line)
		},
	}
}

func encode(fields []zap.Field) map[string]any {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}
	return enc.Fields
}
