package utils

import (
	"os"
	"strconv"
	"time"
)

// GetEnv reads an environment variable, falling back when unset.
func GetEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

// GetEnvAsInt reads an integer environment variable, falling back when unset
// or unparseable.
func GetEnvAsInt(key string, defaultValue int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetEnvAsDuration reads a duration environment variable ("30s", "2h"),
// falling back when unset or unparseable.
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
