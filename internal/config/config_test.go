package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.True(t, cfg.Storage.Seed)
	assert.Equal(t, "file://migrations", cfg.DB.Migrations)
	assert.Equal(t, 10*time.Minute, cfg.Redis.PreviewTTL)
	assert.Equal(t, "portfolio.activity", cfg.Kafka.ActivityTopic)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.Chrome.Timeout)
	assert.Equal(t, time.Second, cfg.CV.PreviewDelay)
	assert.Equal(t, DataSourceMock, cfg.CV.DataSource)
	assert.Equal(t, "Careerone_CV.pdf", cfg.CV.Filename)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
app:
  port: "9090"
storage:
  driver: postgres
  seed: false
cv:
  preview_delay: 250ms
  data_source: portfolio
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("APP_PORT", "7070")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.App.Port, "environment wins over the file")
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.False(t, cfg.Storage.Seed)
	assert.Equal(t, 250*time.Millisecond, cfg.CV.PreviewDelay)
	assert.Equal(t, DataSourcePortfolio, cfg.CV.DataSource)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}
