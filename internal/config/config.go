package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort    string
	DBDriver      string // "sqlite" or "mysql"
	SQLitePath    string
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	JWTSecret     string
	UploadRoot    string
	IconDir       string
	MaxUploadSize string // echo body-limit syntax, e.g. "512M"
	SwaggerHost   string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		SQLitePath:    getEnv("SQLITE_PATH", "nestcloud.db"),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/nestcloud?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		UploadRoot:    getEnv("UPLOAD_ROOT", "uploads"),
		IconDir:       getEnv("ICON_DIR", "static/file_icons"),
		MaxUploadSize: getEnv("MAX_UPLOAD_SIZE", "512M"),
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
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
