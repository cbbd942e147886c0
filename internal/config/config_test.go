package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")
	t.Setenv("REQUIRE_AUTH", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Contains(t, cfg.DatabaseDSN, "tcp(localhost:3306)")
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.RequireAuth)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REQUIRE_AUTH", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:3000, https://codemingle.dev ,")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "codemingle.db", cfg.DatabaseDSN)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.RequireAuth)
	assert.Equal(t, []string{"http://localhost:3000", "https://codemingle.dev"}, cfg.CORSAllowOrigins)
}
