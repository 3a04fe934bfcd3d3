package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/tmp/emergent_projects", cfg.Store.BasePath)
	assert.Equal(t, 24*time.Hour, cfg.Store.ExportRetention)
	assert.Equal(t, 30*time.Second, cfg.Exec.Timeout)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "2.0.0", cfg.App.Version)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PROJECTS_BASE_PATH", "/data/projects")
	t.Setenv("EXEC_TIMEOUT", "45s")
	t.Setenv("EXPORT_RETENTION", "2h")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/data/projects", cfg.Store.BasePath)
	assert.Equal(t, 45*time.Second, cfg.Exec.Timeout)
	assert.Equal(t, 2*time.Hour, cfg.Store.ExportRetention)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "sk-test", cfg.Providers.OpenAIKey)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("EXEC_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 30*time.Second, cfg.Exec.Timeout)
}

func TestValidate(t *testing.T) {
	base := Config{
		Server: ServerConfig{Port: "8080"},
		Store:  StoreConfig{BasePath: "/tmp/x"},
		Exec:   ExecConfig{Timeout: time.Second},
	}
	assert.NoError(t, base.Validate())

	noPort := base
	noPort.Server.Port = ""
	assert.EqualError(t, noPort.Validate(), "PORT is required")

	noBase := base
	noBase.Store.BasePath = ""
	assert.EqualError(t, noBase.Validate(), "PROJECTS_BASE_PATH is required")

	badTimeout := base
	badTimeout.Exec.Timeout = 0
	assert.EqualError(t, badTimeout.Validate(), "EXEC_TIMEOUT must be positive")
}
