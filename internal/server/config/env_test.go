package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, c *Config)
	}{
		{
			name: "all values",
			env: map[string]string{
				"PORT":                 "5000",
				"DB_CONNECTION_STRING": "postgres://env",
				"JWT_SECRET_KEY":       "env-secret",
				"ACCESS_TOKEN_TTL":     "45s",
				"CORS_ORIGIN":          "https://front.example",
				"LOG_LEVEL":            "debug",
				"ARGON2_MEMORY_KIB":    "16384",
				"ARGON2_ITERATIONS":    "2",
				"ARGON2_PARALLELISM":   "4",
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, ":5000", c.EndpointAddrHTTP)
				assert.Equal(t, "postgres://env", c.DatabaseDSN)
				assert.Equal(t, "env-secret", c.SecretKey)
				assert.Equal(t, 45*time.Second, c.AccessTokenValidityDuration)
				assert.Equal(t, "https://front.example", c.CORSOrigin)
				assert.Equal(t, "debug", c.LogLevel)
				assert.Equal(t, uint32(16384), c.Argon2Memory)
				assert.Equal(t, uint32(2), c.Argon2Iterations)
				assert.Equal(t, uint8(4), c.Argon2Parallelism)
			},
		},
		{
			name: "invalid numbers fall back",
			env: map[string]string{
				"ACCESS_TOKEN_TTL":   "soon",
				"ARGON2_ITERATIONS":  "-1",
				"ARGON2_PARALLELISM": "300",
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
				assert.Equal(t, uint32(3), c.Argon2Iterations)
				assert.Equal(t, uint8(2), c.Argon2Parallelism)
			},
		},
		{
			name: "empty values ignored",
			env:  map[string]string{"PORT": "", "JWT_SECRET_KEY": ""},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, ":3000", c.EndpointAddrHTTP)
				assert.Equal(t, "secretKey", c.SecretKey)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubEnv(t, tt.env)
			c := &Config{}
			c.LoadDefaults()
			parseEnv(c)
			tt.check(t, c)
		})
	}
}
