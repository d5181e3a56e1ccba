// Package config provides configuration management for the collector and viewer.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultLeagueURLs are the SBTF division listings collected when
// LEAGUE_URLS is not set.
var DefaultLeagueURLs = []string{
	"https://www.profixio.com/fx/serieoppsett.php?t=SBTF_SERIE_AVD17203&k=LS17203&p=1",
	"https://www.profixio.com/fx/serieoppsett.php?t=SBTF_SERIE_AVD17205&k=LS17205&p=1",
}

// Config holds all configuration values for the application.
type Config struct {
	// Collection
	LeagueURLs  []string
	LeagueDelay time.Duration

	// Ranking directory
	RankingBaseURL string
	RankingPDF     string

	// Redis ranking cache, disabled when empty
	RedisURL string

	// Google Sheets export, disabled when empty
	SheetsCredentials string
	SheetsURL         string

	// Paths
	DataDir string

	// Viewer
	ViewerAddr string
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	delay, err := time.ParseDuration(getEnvOrDefault("LEAGUE_DELAY", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEAGUE_DELAY: %w", err)
	}

	cfg := &Config{
		LeagueURLs:  splitList(os.Getenv("LEAGUE_URLS")),
		LeagueDelay: delay,

		RankingBaseURL: os.Getenv("RANKING_BASE_URL"),
		RankingPDF:     os.Getenv("RANKING_PDF"),

		RedisURL: os.Getenv("REDIS_URL"),

		SheetsCredentials: os.Getenv("SHEETS_CREDENTIALS"),
		SheetsURL:         os.Getenv("SHEETS_URL"),

		DataDir: getEnvOrDefault("DATA_DIR", "data"),

		ViewerAddr: getEnvOrDefault("VIEWER_ADDR", ":8501"),
	}

	if len(cfg.LeagueURLs) == 0 {
		cfg.LeagueURLs = append([]string(nil), DefaultLeagueURLs...)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	for _, u := range c.LeagueURLs {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			errs = append(errs, fmt.Errorf("league URL %q is not absolute", u))
		}
	}

	if c.LeagueDelay < 0 {
		errs = append(errs, errors.New("LEAGUE_DELAY must not be negative"))
	}

	if (c.SheetsCredentials == "") != (c.SheetsURL == "") {
		errs = append(errs, errors.New("SHEETS_CREDENTIALS and SHEETS_URL must be set together"))
	}

	return errors.Join(errs...)
}

// SheetsEnabled reports whether league tables should also be uploaded to Google Sheets
func (c *Config) SheetsEnabled() bool {
	return c.SheetsCredentials != "" && c.SheetsURL != ""
}

// splitList splits a comma separated list, dropping empty entries
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
