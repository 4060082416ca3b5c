package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGODB_DSN", "MONGO_DB", "STATS_TIMEZONE", "FLEX_MAX_DAYS", "CORS_ALLOWED_ORIGINS", "DEV_ENDPOINTS", "READ_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "Europe/Zurich", cfg.StatsTimezone)
	assert.Equal(t, 30, cfg.FlexMaxDays)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
	assert.Equal(t, []string{"https://localhost:7108", "http://localhost:5006"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.DevEndpoints)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FLEX_MAX_DAYS", "14")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("DEV_ENDPOINTS", "true")
	t.Setenv("READ_TIMEOUT", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 14, cfg.FlexMaxDays)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.DevEndpoints)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
}

func TestLoadConfig_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("FLEX_MAX_DAYS", "lots")
	t.Setenv("DEV_ENDPOINTS", "maybe")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.FlexMaxDays)
	assert.False(t, cfg.DevEndpoints)
}

func TestValidate(t *testing.T) {
	valid := Config{MongoURI: "mongodb://localhost:27017", MongoDB: "flighttracker", Port: "8080", FlexMaxDays: 30}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty mongo uri", mutate: func(c *Config) { c.MongoURI = "" }},
		{name: "empty mongo db", mutate: func(c *Config) { c.MongoDB = "" }},
		{name: "port not a number", mutate: func(c *Config) { c.Port = "http" }},
		{name: "port zero", mutate: func(c *Config) { c.Port = "0" }},
		{name: "negative flex max", mutate: func(c *Config) { c.FlexMaxDays = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
