package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		settings *Settings
		wantErr  bool
	}{
		{
			name:     "console logger",
			settings: &Settings{Level: LevelInfo, Type: TypeConsole},
		},
		{
			name:     "invalid level",
			settings: &Settings{Level: "verbose", Type: TypeConsole},
			wantErr:  true,
		},
		{
			name:     "unsupported type",
			settings: &Settings{Level: LevelInfo, Type: "syslog"},
			wantErr:  true,
		},
		{
			name:     "file logger without path",
			settings: &Settings{Level: LevelInfo, Type: TypeFile, MaxSize: 10, MaxBackups: 3, MaxAge: 28},
			wantErr:  true,
		},
		{
			name:     "file logger with bad rotation",
			settings: &Settings{Level: LevelInfo, Type: TypeFile, FilePath: "/tmp/x.log"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, l)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestFileLogger_WritesRecords(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")

	l, err := New(&Settings{Level: LevelInfo, Type: TypeFile, FilePath: logPath, MaxSize: 1, MaxBackups: 1, MaxAge: 1})
	require.NoError(t, err)

	l.Debug("hidden message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	out := string(content)
	assert.Contains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
	assert.NotContains(t, out, "hidden message")
}

func TestL_FallsBackToConsole(t *testing.T) {
	SetDefault(nil)
	assert.NotNil(t, L())
}
