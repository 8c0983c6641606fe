package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Postgres    PostgresConfig
	WS          WSConfig
	HTTP        HTTPConfig
	Auth        AuthConfig
	Comments    CommentsConfig
	StorageType string
	LogLevel    string
}

type PostgresConfig struct {
	User          string
	Password      string
	DB            string
	Host          string
	Port          int
	SSLMode       string
	MigrationsDir string
}

func (pc PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pc.User,
		pc.Password,
		pc.Host,
		pc.Port,
		pc.DB,
		pc.SSLMode,
	)
}

type HTTPConfig struct {
	Port           string
	AllowedOrigins []string
}

type WSConfig struct {
	KeepAliveSeconds int
}

type AuthConfig struct {
	JWTSecret  string
	BcryptCost int
}

type CommentsConfig struct {
	// RootsScope is the default scope of root listings: "owner" or "post".
	RootsScope string
}

// LoadConfig reads the environment. Missing required values panic.
func LoadConfig() Config {
	storageType := getEnv("STORAGE_TYPE", StorageMemory)

	cfg := Config{
		StorageType: storageType,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTP: HTTPConfig{
			Port:           getEnv("HTTP_PORT", "8080"),
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		WS: WSConfig{
			KeepAliveSeconds: getInt("WS_KEEPALIVE_SECONDS", 30),
		},
		Auth: AuthConfig{
			JWTSecret:  mustGetEnv("JWT_SECRET"),
			BcryptCost: getInt("BCRYPT_COST", 10),
		},
		Comments: CommentsConfig{
			RootsScope: getEnv("COMMENT_ROOTS_SCOPE", "owner"),
		},
	}

	switch storageType {
	case StorageMemory:
	case StoragePostgres:
		cfg.Postgres = PostgresConfig{
			User:          mustGetEnv("POSTGRES_USER"),
			Password:      mustGetEnv("POSTGRES_PASSWORD"),
			DB:            mustGetEnv("POSTGRES_DB"),
			Host:          mustGetEnv("POSTGRES_HOST"),
			Port:          mustGetInt("POSTGRES_PORT"),
			SSLMode:       getEnv("POSTGRES_SSLMODE", "disable"),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		}
	default:
		panic("unknown STORAGE_TYPE: " + storageType)
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic("missing required env var: " + key)
	}
	return val
}

func mustGetInt(key string) int {
	val := mustGetEnv(key)
	i, err := strconv.Atoi(val)
	if err != nil {
		panic("invalid int for env var " + key + ": " + val)
	}
	return i
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	if os.Getenv(key) == "" {
		return def
	}
	return mustGetInt(key)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
