package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL environment variable is required")
	ErrInvalidWriteRate   = errors.New("ENRICH_WRITES_PER_SEC must be a non-negative number")
	ErrInvalidNamespace   = errors.New("ROSTER_NAMESPACE must be a UUID")
)

// DefaultRosterNamespace keeps roster-seeded wrestler ids stable across
// environments. Changing it changes every seeded id.
const DefaultRosterNamespace = "6f1c8f5e-3b0e-4c7a-9a55-0d9b7e3f2a11"

const DefaultCORSOrigins = "http://localhost:5173,http://localhost:3000"

// Config holds runtime settings for the CLI and the API server.
type Config struct {
	DatabaseURL string
	Port        string

	LogLevel string
	LogFile  string

	// Directory holding catalogue.yaml and the batch files. Empty means the
	// catalogue embedded in the binary.
	DataDir string

	// Upper bound on profile saves per second; 0 disables pacing.
	WritesPerSecond float64

	// bcrypt hash of the key accepted by POST /enrichment/run.
	APIKeyHash string

	CORSOrigins     []string
	RosterNamespace string
}

// LoadFromEnv reads configuration from environment variables.
//
// Environment variables:
//   - DATABASE_URL: postgres URL/DSN, or sqlite:<path> for a local file
//   - PORT: API listen port (default: 5050)
//   - LOG_LEVEL: debug, info, warn or error (default: info)
//   - LOG_FILE: optional log file path
//   - ENRICH_DATA_DIR: catalogue directory override
//   - ENRICH_WRITES_PER_SEC: save pacing (default: 0, unlimited)
//   - ENRICH_API_KEY_HASH: bcrypt hash guarding the run endpoint
//   - CORS_ORIGINS: comma-separated allow-list
//   - ROSTER_NAMESPACE: UUID namespace for roster-seeded ids
func LoadFromEnv() (Config, error) {
	cfg := Config{
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Port:            envOr("PORT", "5050"),
		LogLevel:        strings.ToLower(envOr("LOG_LEVEL", "info")),
		LogFile:         strings.TrimSpace(os.Getenv("LOG_FILE")),
		DataDir:         strings.TrimSpace(os.Getenv("ENRICH_DATA_DIR")),
		APIKeyHash:      strings.TrimSpace(os.Getenv("ENRICH_API_KEY_HASH")),
		CORSOrigins:     splitList(envOr("CORS_ORIGINS", DefaultCORSOrigins)),
		RosterNamespace: envOr("ROSTER_NAMESPACE", DefaultRosterNamespace),
	}

	if raw := strings.TrimSpace(os.Getenv("ENRICH_WRITES_PER_SEC")); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate < 0 {
			return cfg, fmt.Errorf("%w (got %q)", ErrInvalidWriteRate, raw)
		}
		cfg.WritesPerSecond = rate
	}

	return cfg, nil
}

// Validate checks the settings every database-backed command needs.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if _, err := uuid.Parse(c.RosterNamespace); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidNamespace, err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
