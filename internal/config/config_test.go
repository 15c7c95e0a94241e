package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "STORE_DRIVER", "MONGO_URL", "MONGO_DATABASE", "DATABASE_URL",
		"STORE_TIMEOUT", "ALLOWED_ORIGINS", "ENVIRONMENT", "LOG_LEVEL", "LOG_FORMAT",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "OPENAPI_VALIDATION",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, "mongodb://localhost/project-mongo", cfg.MongoURL)
	assert.Equal(t, "project-mongo", cfg.MongoDatabase)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, "*", cfg.AllowedOrigins)
	assert.Equal(t, 20.0, cfg.RateLimitRPS)
	assert.Equal(t, 50, cfg.RateLimitBurst)
	assert.True(t, cfg.OpenAPIValidationEnabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("MONGO_URL", "mongodb://db.internal:27017/happy-thoughts")
	t.Setenv("STORE_TIMEOUT", "250ms")
	t.Setenv("OPENAPI_VALIDATION", "false")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "happy-thoughts", cfg.MongoDatabase)
	assert.Equal(t, 250*time.Millisecond, cfg.StoreTimeout)
	assert.False(t, cfg.OpenAPIValidationEnabled())
}

func TestFromEnv_ExplicitMongoDatabaseWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URL", "mongodb://localhost/from-url")
	t.Setenv("MONGO_DATABASE", "explicit")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "explicit", cfg.MongoDatabase)
}

func TestFromEnv_ProductionDisablesValidationByDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.OpenAPIValidationEnabled())
}

func TestFromEnv_MalformedValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_TIMEOUT", "soon")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read environment")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:           "8080",
			StoreDriver:    DriverMongo,
			MongoURL:       "mongodb://localhost/project-mongo",
			DatabaseURL:    "postgres://localhost/thoughts",
			StoreTimeout:   time.Second,
			RateLimitRPS:   1,
			RateLimitBurst: 1,
		}
	}

	tests := []struct {
		name          string
		mutate        func(c *Config)
		errorContains string
	}{
		{"valid_mongo", func(c *Config) {}, ""},
		{"valid_postgres", func(c *Config) { c.StoreDriver = DriverPostgres }, ""},
		{"non_numeric_port", func(c *Config) { c.Port = "http" }, "PORT must be numeric"},
		{"unknown_driver", func(c *Config) { c.StoreDriver = "redis" }, "STORE_DRIVER must be"},
		{"missing_mongo_url", func(c *Config) { c.MongoURL = "" }, "MONGO_URL must be set"},
		{"missing_database_url", func(c *Config) {
			c.StoreDriver = DriverPostgres
			c.DatabaseURL = ""
		}, "DATABASE_URL must be set"},
		{"zero_timeout", func(c *Config) { c.StoreTimeout = 0 }, "STORE_TIMEOUT must be positive"},
		{"zero_burst", func(c *Config) { c.RateLimitBurst = 0 }, "RATE_LIMIT_RPS and RATE_LIMIT_BURST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    bool
	}{
		{"production", "production", true},
		{"prod", "prod", true},
		{"development", "development", false},
		{"staging", "staging", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.environment}
			assert.Equal(t, tt.expected, cfg.IsProduction())
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    bool
	}{
		{"development", "development", true},
		{"dev", "dev", true},
		{"empty", "", true},
		{"production", "production", false},
		{"staging", "staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.environment}
			assert.Equal(t, tt.expected, cfg.IsDevelopment())
		})
	}
}

func TestDatabaseFromURL(t *testing.T) {
	assert.Equal(t, "project-mongo", databaseFromURL("mongodb://localhost/project-mongo"))
	assert.Equal(t, "thoughts", databaseFromURL("mongodb+srv://u:p@cluster.example.net/thoughts?retryWrites=true"))
	assert.Equal(t, "project-mongo", databaseFromURL("mongodb://localhost:27017"))
	assert.Equal(t, "project-mongo", databaseFromURL("::not a url"))
}
