package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(debug bool) (*ZapLogger, *observer.ObservedLogs) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if debug {
		level.SetLevel(zap.DebugLevel)
	}
	core, logs := observer.New(level)
	return NewFromZap(zap.New(core), level), logs
}

func TestDebugFollowsSetDebug(t *testing.T) {
	logger, logs := newObserved(false)

	logger.Debugf("hidden %d", 1)
	assert.Equal(t, 0, logs.Len())
	assert.False(t, logger.DebugEnabled())

	logger.SetDebug(true)
	logger.Debugf("shown %d", 2)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "shown 2", logs.All()[0].Message)
	assert.Equal(t, zapcore.DebugLevel, logs.All()[0].Level)
}

func TestLevelsAndFields(t *testing.T) {
	logger, logs := newObserved(false)
	child := logger.With("run", "abc")

	child.Infof("frames=%d", 10)
	child.Warnf("slow")
	child.Errorf("broken")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "abc", entries[0].ContextMap()["run"])
}

func TestErrorw(t *testing.T) {
	logger, logs := newObserved(false)

	assert.False(t, Errorw(logger, nil, "nothing"))
	assert.True(t, Errorw(logger, errors.New("boom"), "stage %s", "init"))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "stage init: boom", logs.All()[0].Message)
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.SetDebug(true)
	assert.False(t, l.DebugEnabled())
	assert.NotNil(t, l.With("k", "v"))
}
