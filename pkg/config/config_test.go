package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 5*time.Minute, cfg.Redis.PolicyTTL)
	assert.Equal(t, "omni-moderation-latest", cfg.Classifier.Model)
	assert.Equal(t, "openai", cfg.Interpreter.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Interpreter.Model)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  port: 9000
bot:
  id: bot-123
redis:
  policy_ttl: 30s
interpreter:
  provider: anthropic
  model: claude-haiku-4-5
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0600))
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("CLASSIFIER_API_KEY", "sk-test")

	cfg, err := load(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "bot-123", cfg.Bot.ID)
	assert.Equal(t, 30*time.Second, cfg.Redis.PolicyTTL)
	assert.Equal(t, "anthropic", cfg.Interpreter.Provider)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "sk-test", cfg.Classifier.APIKey)
}

func TestLoad_SetsGlobal(t *testing.T) {
	require.NoError(t, Load(t.TempDir()))
	assert.Equal(t, 9090, GetConfig().Server.MetricsPort)
}
