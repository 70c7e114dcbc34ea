package config

import "os"

// GetEnv returns an environment variable's value, empty when unset.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvOrDefault returns an environment variable's value or the given
// fallback when unset.
func GetEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
