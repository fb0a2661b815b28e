package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_EnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "5000")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "3s")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("RATE_LIMIT_REQUESTS", "60")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("PAGINATION_MAX_LIMIT", "50")

	cfg := Load()

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, 60, cfg.RateLimit.Requests)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, uint(50), cfg.Pagination.MaxLimit)
}

func TestServerConfig_Location(t *testing.T) {
	assert.Equal(t, time.Local, ServerConfig{}.Location())
	assert.Equal(t, time.Local, ServerConfig{Timezone: "local"}.Location())
	assert.Equal(t, time.Local, ServerConfig{Timezone: "Mars/Olympus_Mons"}.Location())
	assert.Equal(t, "UTC", ServerConfig{Timezone: "UTC"}.Location().String())
}
