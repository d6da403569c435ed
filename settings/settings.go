package settings

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Ingestion holds the configuration for the Excel ingestion workflow:
// AWS credentials, the landing bucket and the Postgres target.
type Ingestion struct {
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string

	S3Bucket string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	AppEnv string
}

const defaultBucket = "catalog-ingest-raw"

// LoadIngestion reads the ingestion settings from the environment, after
// loading a local .env file when one exists. Any missing or malformed
// required key is an error; configuration problems are fatal at startup.
func LoadIngestion() (*Ingestion, error) {
	LoadDotenv()

	s := &Ingestion{
		S3Bucket: getDefault("S3_BUCKET_NAME", defaultBucket),
		AppEnv:   getDefault("APP_ENV", "development"),
	}

	var err error
	if s.AWSAccessKeyID, err = require("AWS_ACCESS_KEY_ID"); err != nil {
		return nil, err
	}
	if s.AWSSecretAccessKey, err = require("AWS_SECRET_ACCESS_KEY"); err != nil {
		return nil, err
	}
	if s.AWSRegion, err = require("AWS_REGION"); err != nil {
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

// DatabaseURL renders the pgx connection string for the target database.
func (s *Ingestion) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		s.DBUser, s.DBPassword, s.DBHost, s.DBPort, s.DBName)
}

// MaintenanceURL renders a connection string against the postgres maintenance
// database, used only to create the target database when it is absent.
func (s *Ingestion) MaintenanceURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/postgres?sslmode=disable",
		s.DBUser, s.DBPassword, s.DBHost, s.DBPort)
}

// Redacted returns the database URL with the password masked, for logging.
func (s *Ingestion) Redacted() string {
	return strings.Replace(s.DatabaseURL(), s.DBPassword, "****", 1)
}

// LoadDotenv loads a .env file from the working directory when present.
// Absence is not an error; real environments configure via the process env.
func LoadDotenv() {
	_ = godotenv.Load()
}

func require(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%s not set (in .env or environment)", key)
	}
	return v, nil
}

func getDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func port(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	p, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s is not a number: %q", key, raw)
	}
	if p < 0 || p > 65535 {
		return 0, fmt.Errorf("%s out of range: %d", key, p)
	}
	return p, nil
}
