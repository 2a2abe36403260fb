package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_DRIVER", "DATABASE_URL", "LOG_LEVEL", "LOG_FORMAT", "CORS_ORIGINS", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "") // viper treats empty variables as unset
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Contains(t, cfg.DatabaseURL, "postgres://")
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "/var/lib/issues/issues.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "/var/lib/issues/issues.db", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"port out of range", "PORT", "70000", "PORT"},
		{"unknown driver", "DATABASE_DRIVER", "mongodb", "DATABASE_DRIVER"},
		{"bad log level", "LOG_LEVEL", "loud", "LOG_LEVEL"},
		{"bad log format", "LOG_FORMAT", "xml", "LOG_FORMAT"},
		{"bad timeout", "SHUTDOWN_TIMEOUT", "soon", "SHUTDOWN_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer

	Config{LogLevel: "warn", LogFormat: "json"}.Logger(&buf).Info("hidden")
	assert.Empty(t, buf.String())

	Config{LogLevel: "warn", LogFormat: "json"}.Logger(&buf).Warn("shown", "project", "apitest")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"project":"apitest"`)

	buf.Reset()
	Config{LogLevel: "debug", LogFormat: "text"}.Logger(&buf).Debug("detail")
	assert.Contains(t, buf.String(), "msg=detail")
}
