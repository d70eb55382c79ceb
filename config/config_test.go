package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_TTL", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg := Load()
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("DEBUG_METRICS_ENABLED", "true")
	t.Setenv("ELASTICSEARCH_ADDRS", "http://es1:9200, http://es2:9200,,")

	cfg := Load()
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.True(t, cfg.DebugMetricsEnabled)
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.ESAddrs())
}

func TestLoadFallsBackOnGarbage(t *testing.T) {
	t.Setenv("BCRYPT_COST", "lots")
	t.Setenv("JWT_TTL", "forever")
	t.Setenv("HTTP_LOG_ENABLED", "maybe")

	cfg := Load()
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.HTTPLogEnabled)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5433", DBName: "blog", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5433/blog?sslmode=disable", cfg.PostgresDSN())
}
