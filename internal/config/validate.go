package config

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be between %d and %d (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}

	if c.Geocoding.BaseURL == "" {
		return fmt.Errorf("geocoding.base_url must not be empty")
	}
	if strings.HasSuffix(c.Geocoding.BaseURL, "/") {
		return fmt.Errorf("geocoding.base_url must not end with a slash (got %q)", c.Geocoding.BaseURL)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port (got %d)", c.Server.Port)
	}

	return nil
}

// ValidateLegacyDB checks that the legacy source database is fully
// configured. Only the migrate-legacy command calls this.
func (c *Config) ValidateLegacyDB() error {
	var missing []string
	if c.LegacyDB.Host == "" {
		missing = append(missing, "MYSQL_ADDON_HOST")
	}
	if c.LegacyDB.User == "" {
		missing = append(missing, "MYSQL_ADDON_USER")
	}
	if c.LegacyDB.Password == "" {
		missing = append(missing, "MYSQL_ADDON_PASSWORD")
	}
	if c.LegacyDB.Database == "" {
		missing = append(missing, "MYSQL_ADDON_DB")
	}
	if len(missing) > 0 {
		return fmt.Errorf("legacy_db: missing %s", strings.Join(missing, ", "))
	}
	return nil
}
