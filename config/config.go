// Package config reads simulator settings from an optional dotenv file and
// the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is loaded when present and no other file is named.
const DefaultEnvFile = ".env"

const (
	EnvPageSize         = "PAGESIM_PAGE_SIZE"
	EnvMemoryAccessTime = "PAGESIM_MEMORY_ACCESS_TIME"
	EnvDiskAccessTime   = "PAGESIM_DISK_ACCESS_TIME"
	EnvLogLevel         = "PAGESIM_LOG_LEVEL"
	EnvLogFile          = "PAGESIM_LOG_FILE"
	EnvProgressCadence  = "PAGESIM_PROGRESS_CADENCE"
)

// ErrInvalidValue is wrapped by every error about a malformed setting.
var ErrInvalidValue = errors.New("invalid configuration value")

type Config struct {
	PageSize         uint64
	MemoryAccessTime time.Duration
	DiskAccessTime   time.Duration
	LogLevel         string
	LogFile          string
	// ProgressCadence is the number of references between progress
	// reports. Zero reports ten times per run.
	ProgressCadence int
}

func Default() Config {
	return Config{
		PageSize:         4096,
		MemoryAccessTime: 100 * time.Nanosecond,
		DiskAccessTime:   10 * time.Millisecond,
		LogLevel:         "INFO",
	}
}

// Load applies envFile, then the environment, over the defaults. An empty
// envFile tries DefaultEnvFile and ignores its absence; a named file must
// exist. Variables already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", DefaultEnvFile, err)
		}
	} else if err := godotenv.Load(envFile); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	return FromEnv()
}

// FromEnv reads the settings from the environment only.
func FromEnv() (Config, error) {
	cfg := Default()

	if v, ok := os.LookupEnv(EnvPageSize); ok {
		size, err := strconv.ParseUint(v, 10, 64)
		if err != nil || size == 0 {
			return Config{}, fmt.Errorf("%w: %s=%q must be a positive integer",
				ErrInvalidValue, EnvPageSize, v)
		}
		cfg.PageSize = size
	}

	var err error
	if cfg.MemoryAccessTime, err = duration(EnvMemoryAccessTime, cfg.MemoryAccessTime); err != nil {
		return Config{}, err
	}
	if cfg.DiskAccessTime, err = duration(EnvDiskAccessTime, cfg.DiskAccessTime); err != nil {
		return Config{}, err
	}

	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	cfg.LogFile = os.Getenv(EnvLogFile)

	if v, ok := os.LookupEnv(EnvProgressCadence); ok {
		every, err := strconv.Atoi(v)
		if err != nil || every < 0 {
			return Config{}, fmt.Errorf("%w: %s=%q must be a non-negative integer",
				ErrInvalidValue, EnvProgressCadence, v)
		}
		cfg.ProgressCadence = every
	}

	return cfg, nil
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: %s=%q must be a non-negative duration",
			ErrInvalidValue, key, v)
	}
	return d, nil
}
