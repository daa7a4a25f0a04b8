package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // SCHEDULE_TZ must resolve on hosts without zoneinfo

	"github.com/joho/godotenv"

	"github.com/danielhkuo/dailyfictions/catalog"
	"github.com/danielhkuo/dailyfictions/cycle"
)

// DatabaseMemory keeps everything in process. Nothing survives a restart.
const DatabaseMemory = "memory"

const (
	defaultPort           = 3318
	defaultLockSchedule   = "fri 16:00"
	defaultUnlockSchedule = "mon 00:00"
	defaultScheduleTZ     = "Asia/Kuala_Lumpur"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// Shared secret for the weekly trigger endpoints
	CronSecret string

	// Optional redis vote ledger; empty RedisAddr keeps votes in the database
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Optional movie catalog; empty TMDBAPIKey disables enrichment
	TMDBAPIKey  string
	TMDBBaseURL string

	SchedulerEnabled bool
	LockSchedule     cycle.Schedule
	UnlockSchedule   cycle.Schedule

	LogLevel  slog.Level
	LogFormat string
}

// ParseFlags validates flags and fills the rest from the environment.
// A .env file is loaded first when present; real env vars win over it.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fs := flag.NewFlagSet("dailyfictions", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or memory)")
	fs.StringVar(&envFile, "env-file", "", "Load environment from this file (default .env if present)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.CronSecret, "cron-secret", "", "Bearer secret for /cron endpoints (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = defaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	switch cfg.DatabaseType {
	case "sqlite", "postgres", DatabaseMemory:
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_TYPE %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseType != DatabaseMemory {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	// Secrets - MUST be provided
	if cfg.CronSecret == "" {
		cfg.CronSecret = os.Getenv("CRON_SECRET")
	}
	if cfg.CronSecret == "" {
		return Config{}, errors.New("CRON_SECRET required")
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, errors.New("invalid REDIS_DB env variable")
		}
		cfg.RedisDB = n
	}

	cfg.TMDBAPIKey = os.Getenv("TMDB_API_KEY")
	cfg.TMDBBaseURL = envOr("TMDB_BASE_URL", catalog.DefaultTMDBBaseURL)

	if v := os.Getenv("SCHEDULER_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, errors.New("invalid SCHEDULER_ENABLED env variable")
		}
		cfg.SchedulerEnabled = enabled
	}

	loc, err := time.LoadLocation(envOr("SCHEDULE_TZ", defaultScheduleTZ))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SCHEDULE_TZ: %w", err)
	}
	if cfg.LockSchedule, err = cycle.ParseSchedule(envOr("LOCK_SCHEDULE", defaultLockSchedule), loc); err != nil {
		return Config{}, fmt.Errorf("invalid LOCK_SCHEDULE: %w", err)
	}
	if cfg.UnlockSchedule, err = cycle.ParseSchedule(envOr("UNLOCK_SCHEDULE", defaultUnlockSchedule), loc); err != nil {
		return Config{}, fmt.Errorf("invalid UNLOCK_SCHEDULE: %w", err)
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}
	cfg.LogFormat = strings.ToLower(envOr("LOG_FORMAT", "text"))

	return cfg, nil
}

// loadEnvFile loads path, or .env when path is empty. Only an explicitly
// named file has to exist.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
