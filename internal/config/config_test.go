package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_NAME", "coverapi")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("GROQ_API_KEY", "q")
	t.Setenv("IMAGE_API_KEY", "i")
	t.Setenv("STORAGE_BACKEND", "minio")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("MINIO_ACCESS_KEY", "ak")
	t.Setenv("MINIO_SECRET_KEY", "sk")
	t.Setenv("MINIO_BUCKET", "files")
}

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("STORAGE_BACKEND", "GCS")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, 120, cfg.Database.ConnMaxIdleSec)
	assert.Equal(t, 5, cfg.Database.PingTimeoutSec)
	assert.True(t, cfg.Storage.MinIO.UseSSL)
	assert.Equal(t, "gcs", cfg.Storage.Backend)
	assert.Equal(t, 900, cfg.Storage.SignedURLTTLSec)
	assert.Equal(t, 24, cfg.Auth.ExpirationHours)
	assert.Equal(t, "@every 10m", cfg.CachePurgeSchedule)
}

func TestValidate(t *testing.T) {
	t.Run("complete config", func(t *testing.T) {
		setRequired(t)
		require.NoError(t, Load().Validate())
	})

	t.Run("missing provider key fails fast", func(t *testing.T) {
		setRequired(t)
		t.Setenv("GROQ_API_KEY", "")

		err := Load().Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GROQ_API_KEY")
	})

	t.Run("gcs backend needs only its bucket", func(t *testing.T) {
		setRequired(t)
		t.Setenv("STORAGE_BACKEND", "gcs")
		t.Setenv("MINIO_ENDPOINT", "")
		t.Setenv("GCS_BUCKET", "")

		err := Load().Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GCS_BUCKET")

		t.Setenv("GCS_BUCKET", "files")
		assert.NoError(t, Load().Validate())
	})

	t.Run("unknown backend", func(t *testing.T) {
		setRequired(t)
		t.Setenv("STORAGE_BACKEND", "ftp")
		assert.Error(t, Load().Validate())
	})

	t.Run("bcrypt cost out of range", func(t *testing.T) {
		setRequired(t)
		t.Setenv("BCRYPT_COST", "4")
		assert.Error(t, Load().Validate())
	})
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
