package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/huynhanx03/blobvec/pkg/settings"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name string
		want zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, level(tt.name), "level %q", tt.name)
	}
}

func TestNew_Stderr(t *testing.T) {
	l := New(settings.Logger{LogLevel: "warn"})
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blobvec.log")
	l := New(settings.Logger{LogLevel: "debug", FileLogName: path, MaxSize: 1})

	l.Debug("grow", zap.Int("cap", 8))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"grow"`)
	assert.Contains(t, string(data), `"cap":8`)
	assert.Contains(t, string(data), `"time":`)
}
