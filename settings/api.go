package settings

import (
	"fmt"
	"os"
	"strconv"
)

// API holds the configuration for the REST API variant. The database block is
// repeated from Ingestion so the API can run as a separate deployment with
// its own environment.
type API struct {
	Title       string
	Host        string
	Port        int
	Environment string

	JWTSecretKey           string
	JWTAlgorithm           string
	JWTAccessExpireMinutes int

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
}

var apiEnvironments = map[string]bool{
	"development": true,
	"production":  true,
	"testing":     true,
}

// LoadAPI reads the API settings from the environment. The token-signing
// secret is required and the algorithm must be an HMAC one; "none" and
// anything unknown are rejected outright.
func LoadAPI() (*API, error) {
	LoadDotenv()

	s := &API{
		Title:        getDefault("API_TITLE", "catalog REST API"),
		Host:         getDefault("API_HOST", "0.0.0.0"),
		JWTAlgorithm: getDefault("JWT_ALGORITHM", "HS256"),
		Environment:  getDefault("API_ENVIRONMENT", "development"),
	}

	var err error
	if s.Port, err = port("API_PORT", 8000); err != nil {
		return nil, err
	}
	if !apiEnvironments[s.Environment] {
		return nil, fmt.Errorf("API_ENVIRONMENT must be development, production or testing, got %q", s.Environment)
	}
	if s.JWTSecretKey, err = require("JWT_SECRET_KEY"); err != nil {
		return nil, err
	}
	switch s.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return nil, fmt.Errorf("JWT_ALGORITHM %q not supported", s.JWTAlgorithm)
	}
	if s.JWTAccessExpireMinutes, err = minutes("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", 30); err != nil {
		return nil, err
	}

	if s.DBHost, err = require("DB_HOST"); err != nil {
		return nil, err
	}
	if s.DBUser, err = require("DB_USER"); err != nil {
		return nil, err
	}
	if s.DBPassword, err = require("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if s.DBName, err = require("DB_NAME"); err != nil {
		return nil, err
	}
	if s.DBPort, err = port("DB_PORT", 5432); err != nil {
		return nil, err
	}
	return s, nil
}

func minutes(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	m, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s is not a number: %q", key, raw)
	}
	if m <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, m)
	}
	return m, nil
}
