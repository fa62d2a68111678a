package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays SITEREG_* environment variables onto config. The admin
// credential also honours the unprefixed ADMIN_EMAIL / ADMIN_PASSWORD.
// Empty or unparsable values are ignored.
func parseEnv(config *Config) {
	config.HTTPAddr = envOrDefault("SITEREG_HTTP_ADDR", config.HTTPAddr)
	config.GRPCAddr = envOrDefault("SITEREG_GRPC_ADDR", config.GRPCAddr)
	config.DatabaseDSN = envOrDefault("SITEREG_DATABASE_DSN", envOrDefault("DATABASE_URL", config.DatabaseDSN))
	config.SecretKey = envOrDefault("SITEREG_SECRET_KEY", config.SecretKey)
	config.SessionValidityDuration = envDuration("SITEREG_SESSION_VALIDITY", config.SessionValidityDuration)
	config.AdminEmail = envOrDefault("SITEREG_ADMIN_EMAIL", envOrDefault("ADMIN_EMAIL", config.AdminEmail))
	config.AdminPassword = envOrDefault("SITEREG_ADMIN_PASSWORD", envOrDefault("ADMIN_PASSWORD", config.AdminPassword))
	config.AdminPasswordHash = envOrDefault("SITEREG_ADMIN_PASSWORD_HASH", config.AdminPasswordHash)
	config.LoginMaxAttempts = envInt("SITEREG_LOGIN_MAX_ATTEMPTS", config.LoginMaxAttempts)
	config.LoginLockoutWindow = envDuration("SITEREG_LOGIN_LOCKOUT_WINDOW", config.LoginLockoutWindow)
	config.RedisURL = envOrDefault("SITEREG_REDIS_URL", envOrDefault("REDIS_URL", config.RedisURL))
	config.S3RootUser = envOrDefault("SITEREG_S3_ROOT_USER", config.S3RootUser)
	config.S3RootPassword = envOrDefault("SITEREG_S3_ROOT_PASSWORD", config.S3RootPassword)
	config.S3Bucket = envOrDefault("SITEREG_S3_BUCKET", config.S3Bucket)
	config.S3Region = envOrDefault("SITEREG_S3_REGION", config.S3Region)
	config.S3BaseEndpoint = envOrDefault("SITEREG_S3_BASE_ENDPOINT", config.S3BaseEndpoint)
	config.RedirectDelay = envDuration("SITEREG_REDIRECT_DELAY", config.RedirectDelay)
	config.CalendarWeekStart = envOrDefault("SITEREG_CALENDAR_WEEK_START", config.CalendarWeekStart)
	config.LogLevel = envOrDefault("SITEREG_LOG_LEVEL", config.LogLevel)
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// envDuration accepts Go duration strings such as "90s" or "8h".
func envDuration(name string, fallback time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return v
}
