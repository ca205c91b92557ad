package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"quickload-admin/internal/common/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestZapAdapter_FieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).
		WithFields(map[string]interface{}{"resource": "products"}).
		WithError(errors.New("boom"))

	log.Warn("fetch failed", map[string]interface{}{"attempt": 1, "cause": errors.New("timeout")})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "fetch failed", entry.Message)
	ctx := entry.ContextMap()
	assert.Equal(t, "products", ctx["resource"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, "timeout", ctx["cause"])
	assert.EqualValues(t, 1, ctx["attempt"])
}

func TestFromConfig_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin.log")
	l := FromConfig(config.LoggingConfig{
		Level:      "info",
		Format:     "json",
		Output:     path,
		MaxSizeMB:  1,
		MaxBackups: 1,
	})

	l.Info("hello", zap.String("k", "v"))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
}

func TestFromConfig_Console(t *testing.T) {
	l := FromConfig(config.LoggingConfig{Level: "debug", Format: "console", Output: "stdout"})
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}
