package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapi/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "JWT_SECRET", "MONGO_URI", "MONGO_DATABASE", "MONGO_CONNECT_TIMEOUT", "LOG_LEVEL", "SERVICE_NAME"} {
		t.Setenv(key, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, "dev-secret", cfg.JWTSecret)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "todos", cfg.Mongo.Database)
	assert.Equal(t, 5*time.Second, cfg.Mongo.ConnectTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "todo-api", cfg.Logging.ServiceName)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")
	t.Setenv("MONGO_DATABASE", "todos_prod")
	t.Setenv("MONGO_CONNECT_TIMEOUT", "2s")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_DEVELOPMENT", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Equal(t, "mongodb://mongo:27017", cfg.Mongo.URI)
	assert.Equal(t, "todos_prod", cfg.Mongo.Database)
	assert.Equal(t, 2*time.Second, cfg.Mongo.ConnectTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
}

func TestLoadIgnoresBadDuration(t *testing.T) {
	t.Setenv("MONGO_CONNECT_TIMEOUT", "not-a-duration")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Mongo.ConnectTimeout)
}
