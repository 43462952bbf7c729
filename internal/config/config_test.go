package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9090
  host: "0.0.0.0"

database:
  url: "postgres://localhost/leadmailer_test?sslmode=disable"
  max_open_conns: 10

bedrock:
  region: "us-west-2"
  access_key: "test-access"
  secret_key: "test-secret"
  model_id: "anthropic.claude-3-haiku-20240307-v1:0"
  timeout_seconds: 45
  enabled: true

ses:
  region: "eu-west-1"
  timeout_seconds: 20

mailing:
  default_tone: "friendly"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	assert.Equal(t, "postgres://localhost/leadmailer_test?sslmode=disable", cfg.Database.URL)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns) // default

	assert.Equal(t, "us-west-2", cfg.Bedrock.Region)
	assert.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", cfg.Bedrock.ModelID)
	assert.Equal(t, 45*time.Second, cfg.Bedrock.Timeout())
	assert.True(t, cfg.Bedrock.Configured())

	assert.Equal(t, "eu-west-1", cfg.SES.Region)
	assert.Equal(t, 20*time.Second, cfg.SES.Timeout())
	assert.False(t, cfg.SES.Configured())

	assert.Equal(t, "friendly", cfg.Mailing.DefaultTone)
}

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("server:\n  port: 0\n"), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "us-east-1", cfg.Bedrock.Region)
	assert.Equal(t, "anthropic.claude-3-sonnet-20240229-v1:0", cfg.Bedrock.ModelID)
	assert.Equal(t, 500, cfg.Bedrock.MaxTokens)
	assert.Equal(t, 30*time.Second, cfg.SES.Timeout())
	assert.Equal(t, "professional", cfg.Mailing.DefaultTone)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadFromEnvMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env-host/db")
	t.Setenv("AWS_SES_ACCESS_KEY", "env-key")
	t.Setenv("AWS_SES_SECRET_KEY", "env-secret")

	cfg, err := LoadFromEnv(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "postgres://env-host/db", cfg.Database.URL)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.SES.Configured())
	assert.False(t, cfg.Bedrock.Configured())
}
