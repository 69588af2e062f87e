package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// lookupEnv is a seam for tests.
var lookupEnv = os.LookupEnv

// parseEnv overlays values from the process environment.
//
//	PORT                  listen port; becomes ":<PORT>"
//	DB_CONNECTION_STRING  PostgreSQL DSN
//	JWT_SECRET_KEY        HMAC secret
//	ACCESS_TOKEN_TTL      token lifetime, e.g. "15m"
//	CORS_ORIGIN           allowed origin
//	LOG_LEVEL             debug, info, warn, error
//	ARGON2_MEMORY_KIB, ARGON2_ITERATIONS, ARGON2_PARALLELISM
func parseEnv(config *Config) {
	if port, ok := lookupEnv("PORT"); ok && port != "" {
		config.EndpointAddrHTTP = ":" + port
	}
	config.DatabaseDSN = getString("DB_CONNECTION_STRING", config.DatabaseDSN)
	config.SecretKey = getString("JWT_SECRET_KEY", config.SecretKey)
	config.AccessTokenValidityDuration = getDuration("ACCESS_TOKEN_TTL", config.AccessTokenValidityDuration)
	config.CORSOrigin = getString("CORS_ORIGIN", config.CORSOrigin)
	config.LogLevel = getString("LOG_LEVEL", config.LogLevel)
	config.Argon2Memory = uint32(getUint("ARGON2_MEMORY_KIB", uint64(config.Argon2Memory), 32))
	config.Argon2Iterations = uint32(getUint("ARGON2_ITERATIONS", uint64(config.Argon2Iterations), 32))
	config.Argon2Parallelism = uint8(getUint("ARGON2_PARALLELISM", uint64(config.Argon2Parallelism), 8))
}

func getString(key, fallback string) string {
	if value, ok := lookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getUint(key string, fallback uint64, bits int) uint64 {
	value, ok := lookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.ParseUint(value, 10, bits)
	if err != nil {
		log.Printf("invalid value for %s: %v", key, err)
		return fallback
	}
	return parsed
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := lookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid value for %s: %v", key, err)
		return fallback
	}
	return parsed
}
