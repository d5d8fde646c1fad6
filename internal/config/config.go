// Package config loads ratewait configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Manjussha/ratewait/internal/platform"
)

// Config holds all runtime configuration for ratewait.
type Config struct {
	// LogPath is the append-only diagnostic log file.
	LogPath string

	// BufferMinutes is the safety margin added after a resolved reset
	// instant before the hook resumes the caller.
	BufferMinutes int

	// TranscriptTail is how many trailing transcript lines are searched
	// for rate-limit phrasing.
	TranscriptTail int

	// ProgressInterval is how often manual mode prints a countdown line.
	ProgressInterval time.Duration
}

// Load reads .env (if present) and environment variables and returns a Config.
// Every field has a working default; nothing is required.
func Load() *Config {
	// Best effort: a missing .env is the normal case for a hook binary.
	_ = godotenv.Load()

	return &Config{
		LogPath:          getEnv("RATEWAIT_LOG", platform.DefaultLogPath()),
		BufferMinutes:    getEnvInt("RATEWAIT_BUFFER_MINUTES", 5),
		TranscriptTail:   getEnvInt("RATEWAIT_TRANSCRIPT_TAIL", 20),
		ProgressInterval: getEnvDuration("RATEWAIT_PROGRESS_INTERVAL", 30*time.Second),
	}
}

// Buffer returns BufferMinutes as a time.Duration.
func (c *Config) Buffer() time.Duration {
	return time.Duration(c.BufferMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
