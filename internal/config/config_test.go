package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 5, cfg.Session.MemoryLimit)
	assert.Equal(t, "vendedor", cfg.Session.DefaultMode)
	assert.Equal(t, "local", cfg.Reply.Strategy)
	assert.Equal(t, 512, cfg.Reply.MaxTokens)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.Groq.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.SMTP.Enabled())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9090
session:
  backend: redis
  memory_limit: 3
reply:
  strategy: llm
  provider: openai
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USER", "mailer")
	t.Setenv("GROQ_API_KEY", "gsk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Session.Backend)
	assert.Equal(t, 3, cfg.Session.MemoryLimit)
	assert.Equal(t, "llm", cfg.Reply.Strategy)
	assert.Equal(t, "openai", cfg.Reply.Provider)
	assert.Equal(t, "gsk-test", cfg.LLM.Groq.APIKey)
	assert.True(t, cfg.SMTP.Enabled())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			"explicit url wins",
			DatabaseConfig{Driver: "postgres", URL: "postgres://u:p@db:5432/x"},
			"postgres://u:p@db:5432/x",
		},
		{
			"postgres",
			DatabaseConfig{Driver: "postgres", User: "u", Password: "p", Host: "h", Port: 5432, Database: "d", SSLMode: "disable"},
			"postgres://u:p@h:5432/d?sslmode=disable",
		},
		{
			"mysql",
			DatabaseConfig{Driver: "mysql", User: "u", Password: "p", Host: "h", Port: 3306, Database: "d"},
			"u:p@tcp(h:3306)/d?parseTime=true",
		},
		{
			"sqlite",
			DatabaseConfig{Driver: "sqlite", Path: "shop.db"},
			"file:shop.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}

func TestDatabaseConfig_MigrationURL(t *testing.T) {
	assert.Equal(t, "sqlite://shop.db", DatabaseConfig{Driver: "sqlite", Path: "shop.db"}.MigrationURL())
	assert.Equal(t,
		"mysql://u:p@tcp(h:3306)/d?multiStatements=true",
		DatabaseConfig{Driver: "mysql", User: "u", Password: "p", Host: "h", Port: 3306, Database: "d"}.MigrationURL(),
	)
}
