package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "dev-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "jwt", cfg.Cookie.Name)
	assert.Equal(t, 7*24*time.Hour, cfg.Cookie.MaxAge)
	assert.Equal(t, 24*time.Hour, cfg.JWT.SessionTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "dev-secret")
	t.Setenv("DB_DRIVER", "sqlite")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestLoad_ProductionRules(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("DB_SSLMODE", "disable")
	t.Setenv("SESSION_COOKIE_SECURE", "false")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
	assert.Contains(t, err.Error(), "DB_PASSWORD is required")
	assert.Contains(t, err.Error(), "DB_SSLMODE=disable")
	assert.Contains(t, err.Error(), "SESSION_COOKIE_SECURE=false")
}

func TestLoad_Mongo(t *testing.T) {
	t.Setenv("JWT_SECRET", "dev-secret")
	t.Setenv("DB_DRIVER", "MONGO")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
}

func TestGetEnvSlice(t *testing.T) {
	t.Setenv("FRONTEND_URL", " https://a.example , ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, getEnvSlice("FRONTEND_URL", nil))

	t.Setenv("FRONTEND_URL", " , ")
	assert.Equal(t, []string{"x"}, getEnvSlice("FRONTEND_URL", []string{"x"}))
}
