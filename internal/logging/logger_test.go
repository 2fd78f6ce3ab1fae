package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWithSink_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithSink(zapcore.AddSync(&buf), zapcore.WarnLevel)

	log.Info("index loaded")
	log.Warn("index is stale", zap.String("source", "fia2026.pdf"))
	_ = log.Sync()

	out := buf.String()
	assert.NotContains(t, out, "index loaded")
	assert.Contains(t, out, "index is stale")
	assert.Contains(t, out, "fia2026.pdf")
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}

func TestNew_Levels(t *testing.T) {
	assert.True(t, New(true, false).Core().Enabled(zapcore.DebugLevel))
	assert.False(t, New(false, false).Core().Enabled(zapcore.DebugLevel))
	assert.False(t, New(false, true).Core().Enabled(zapcore.InfoLevel))
}
