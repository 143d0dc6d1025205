package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Auth: AuthConfig{
			JWTSecret:        "0123456789abcdef0123456789abcdef",
			PasswordHashCost: 10,
		},
		Geocoding: GeocodingConfig{BaseURL: "https://api-adresse.data.gouv.fr"},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_ShortJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "too-short"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestValidate_BadHashCost(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.PasswordHashCost = 99

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password_hash_cost")
}

func TestValidate_GeocodingTrailingSlash(t *testing.T) {
	cfg := validConfig()
	cfg.Geocoding.BaseURL = "https://api-adresse.data.gouv.fr/"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")
}

func TestValidate_BadPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0

	require.Error(t, cfg.Validate())
}

func TestValidateLegacyDB(t *testing.T) {
	cfg := validConfig()
	err := cfg.ValidateLegacyDB()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MYSQL_ADDON_HOST")

	cfg.LegacyDB = LegacyDBConfig{
		Host:     "db.example.com",
		Port:     3306,
		User:     "reader",
		Password: "secret",
		Database: "cocorico",
	}
	require.NoError(t, cfg.ValidateLegacyDB())
}
