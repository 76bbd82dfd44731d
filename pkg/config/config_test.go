package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("APP_STORAGE", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_MIGRATE", "false")
	t.Setenv("LOGIN_RATE_WINDOW_SECONDS", "30")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.App.Storage)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.DB.Migrate)
	assert.Equal(t, 30*time.Second, cfg.Redis.LoginRateWindow)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5, cfg.Redis.LoginRateLimit)
	assert.Equal(t, "restaurante-api", cfg.JWT.Issuer)
}

func TestFromViper_Validaciones(t *testing.T) {
	v := viper.New()
	_, err := fromViper(v)
	assert.ErrorContains(t, err, "JWT_SECRET")

	v.Set("JWT_SECRET", "s")
	v.Set("APP_STORAGE", "mongo")
	_, err = fromViper(v)
	assert.ErrorContains(t, err, "APP_STORAGE")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "restaurante", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/restaurante?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
