package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads values from the file", func(t *testing.T) {
		// Given: a config file with every section
		path := writeConfig(t, `
log-level: debug
http-port: "8080"
socket-port: "8081"
storage: redis
session-ttl: 30m
redis:
  host: cache
  port: "6380"
bolt:
  path: /tmp/games.db
`)

		// When: loading it
		conf, err := Load(path)

		// Then: every value is taken from the file
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "8081", conf.SocketPort)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, 30*time.Minute, conf.SessionTTL)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, "/tmp/games.db", conf.Bolt.Path)
	})

	t.Run("Falls back to defaults", func(t *testing.T) {
		// Given: an empty config file
		path := writeConfig(t, "log-level: info\n")

		// When: loading it
		conf, err := Load(path)

		// Then: defaults are applied
		require.NoError(t, err)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, 24*time.Hour, conf.SessionTTL)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, "tictactoe.db", conf.Bolt.Path)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a file selecting redis and an env var selecting bolt
		path := writeConfig(t, "storage: redis\n")
		t.Setenv("STORAGE", StorageBolt)

		// When: loading it
		conf, err := Load(path)

		// Then: the environment wins
		require.NoError(t, err)
		assert.Equal(t, StorageBolt, conf.Storage)
	})

	t.Run("Rejects an unknown storage", func(t *testing.T) {
		path := writeConfig(t, "storage: postgres\n")

		_, err := Load(path)

		assert.ErrorIs(t, err, ErrUnknownStorage)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		assert.Error(t, err)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("Reads the file", func(t *testing.T) {
		path := writeConfig(t, "http-port: \"8080\"\n")

		conf := MustLoad(path)

		assert.Equal(t, "8080", conf.HTTPPort)
	})

	t.Run("Falls back to the environment without a file", func(t *testing.T) {
		// Given: no config file and the storage chosen by env
		t.Setenv("STORAGE", StorageBolt)

		// When: loading
		conf := MustLoad(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: env values and defaults are used
		assert.Equal(t, StorageBolt, conf.Storage)
		assert.Equal(t, "9090", conf.HTTPPort)
	})

	t.Run("Panics on an invalid config", func(t *testing.T) {
		path := writeConfig(t, "storage: postgres\n")

		assert.Panics(t, func() {
			MustLoad(path)
		})
	})
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "7000")
	t.Setenv("REDIS_HOST", "redis")

	conf, err := LoadEnv()

	require.NoError(t, err)
	assert.Equal(t, "7000", conf.HTTPPort)
	assert.Equal(t, "redis:6379", conf.Redis.GetRedisAddr())
}
