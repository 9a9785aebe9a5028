package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg := FromViper(v)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, "managers", cfg.ApproverRecipient)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.IsProduction)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	v.Set("LOG_LEVEL", "DEBUG")
	v.Set("IS_PRODUCTION", "true")

	cfg := FromViper(v)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.IsProduction)
}
