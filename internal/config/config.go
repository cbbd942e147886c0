package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort       string
	DBDriver         string
	DatabaseDSN      string
	ResetDB          bool
	RedisAddr        string
	RedisDB          int
	RedisPass        string
	JWTSecret        string
	SwaggerHost      string
	LogMode          string
	CORSAllowOrigins []string
	// RequireAuth puts every mutating CRUD route behind the bearer-token guard.
	RequireAuth bool
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is read first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not read .env: %v", err)
	}

	driver := strings.ToLower(getEnv("DB_DRIVER", "mysql"))
	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		DBDriver:         driver,
		DatabaseDSN:      getEnv("DATABASE_DSN", defaultDSN(driver)),
		ResetDB:          getEnvBool("RESET_DB", false),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		JWTSecret:        getEnv("JWT_SECRET", "change-me"),
		SwaggerHost:      os.Getenv("SWAGGER_HOST"),
		LogMode:          getEnv("LOG_MODE", "dev"),
		CORSAllowOrigins: getEnvList("CORS_ALLOW_ORIGINS", []string{"*"}),
		RequireAuth:      getEnvBool("REQUIRE_AUTH", false),
	}
}

func defaultDSN(driver string) string {
	switch driver {
	case "postgres":
		return "host=localhost user=postgres password=postgres dbname=codemingle port=5432 sslmode=disable"
	case "sqlite":
		return "codemingle.db"
	default:
		return "user:password@tcp(localhost:3306)/codemingle?charset=utf8mb4&parseTime=True&loc=Local"
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
