package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("SLOT_DRIVER", "sqlite")
	t.Setenv("SLOT_KEY", "")
	t.Setenv("NOTIFY_TIMEOUT", "750ms")
	t.Setenv("S3_PATH_STYLE", "true")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, DriverSQLite, cfg.Slot.Driver)
	assert.Equal(t, "gexp_items_v1", cfg.Slot.Key)
	assert.Equal(t, 750*time.Millisecond, cfg.Notify.Timeout)
	assert.True(t, cfg.S3.PathStyle)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Equal(t, 24*time.Hour, cfg.ExportShareTTL)
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.Local, (&AppConfig{}).Location())
	assert.Equal(t, time.Local, (&AppConfig{Timezone: "Local"}).Location())
	assert.Equal(t, time.Local, (&AppConfig{Timezone: "Not/AZone"}).Location())
	assert.Equal(t, "UTC", (&AppConfig{Timezone: "UTC"}).Location().String())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	t.Setenv(key, "value")

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	t.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	t.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	t.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	t.Setenv(key, "")
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	t.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	t.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	t.Setenv(key, "")
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_DURATION_VAR"

	t.Setenv(key, "2s")
	assert.Equal(t, 2*time.Second, getEnvDuration(key, time.Second))

	t.Setenv(key, "two seconds")
	assert.Equal(t, time.Second, getEnvDuration(key, time.Second))
}
