package cliparse

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

const (
	defaultPort         = 8765
	defaultSQLitePath   = "htmx-demo.db"
	defaultPageSize     = 10
	defaultSeedCount    = 100
	defaultPollInterval = 2 * time.Second
	defaultLogLevel     = "info"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	CSRFSecret     string
	PageSize       int
	SeedCount      int
	SeedIfEmpty    bool
	ReseedSchedule string
	PollInterval   time.Duration
	LogLevel       string
}

// fileConfig mirrors Config for the optional YAML config file.
type fileConfig struct {
	Port           int    `yaml:"port"`
	DatabaseURL    string `yaml:"database_url"`
	DatabaseType   string `yaml:"database_type"`
	CSRFSecret     string `yaml:"csrf_secret"`
	PageSize       int    `yaml:"page_size"`
	SeedCount      int    `yaml:"seed_count"`
	SeedIfEmpty    *bool  `yaml:"seed_if_empty"`
	ReseedSchedule string `yaml:"reseed_schedule"`
	PollInterval   string `yaml:"poll_interval"`
	LogLevel       string `yaml:"log_level"`
}

// ParseFlags builds the config. Precedence: flags, environment (including a
// .env file in the working directory), the YAML file named by -c or
// CONFIG_FILE, then defaults.
func ParseFlags(args []string) (Config, error) {
	return parse("htmx-demo", args, nil)
}

// ParseSeedFlags is ParseFlags plus the seeder's -reset flag.
func ParseSeedFlags(args []string) (Config, bool, error) {
	var reset bool
	cfg, err := parse("seed", args, func(fs *flag.FlagSet) {
		fs.BoolVar(&reset, "reset", false, "Delete existing articles before seeding")
	})
	return cfg, reset, err
}

func parse(name string, args []string, extra func(*flag.FlagSet)) (Config, error) {
	var cfg Config
	var configPath, pollInterval, seedIfEmpty string

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if extra != nil {
		extra(fs)
	}

	fs.StringVar(&configPath, "c", "", "Path to YAML config file")

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (postgres DSN or sqlite path)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.CSRFSecret, "csrf-secret", "", "CSRF token signing secret (prefer env)")

	// App behaviour
	fs.IntVar(&cfg.PageSize, "page-size", 0, "Maximum articles per page")
	fs.IntVar(&cfg.SeedCount, "seed-count", 0, "Number of articles generated by the seeder")
	fs.StringVar(&seedIfEmpty, "seed-if-empty", "", "Seed the articles table at startup when empty (true/false)")
	fs.StringVar(&cfg.ReseedSchedule, "reseed", "", "Cron schedule for resetting demo data (empty disables)")
	fs.StringVar(&pollInterval, "poll-interval", "", "Raffle poll interval, e.g. 2s")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	if configPath == "" {
		configPath = os.Getenv("CONFIG_FILE")
	}
	file, err := loadFile(configPath)
	if err != nil {
		return Config{}, err
	}

	// Fall back to environment variables, then the config file
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else if file.Port != 0 {
			cfg.Port = file.Port
		} else {
			cfg.Port = defaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = firstNonEmpty(os.Getenv("DATABASE_TYPE"), file.DatabaseType, DatabaseSQLite)
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = firstNonEmpty(os.Getenv("DATABASE_URL"), file.DatabaseURL)
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == DatabasePostgres {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = defaultSQLitePath
	}

	if cfg.PageSize == 0 {
		cfg.PageSize, err = intSetting("PAGE_SIZE", file.PageSize, defaultPageSize)
		if err != nil {
			return Config{}, err
		}
	}
	if cfg.PageSize < 1 {
		return Config{}, errors.New("page size must be positive")
	}

	if cfg.SeedCount == 0 {
		cfg.SeedCount, err = intSetting("SEED_COUNT", file.SeedCount, defaultSeedCount)
		if err != nil {
			return Config{}, err
		}
	}
	if cfg.SeedCount < 0 {
		return Config{}, errors.New("seed count must not be negative")
	}

	if seedIfEmpty == "" {
		seedIfEmpty = os.Getenv("SEED_IF_EMPTY")
	}
	switch {
	case seedIfEmpty != "":
		cfg.SeedIfEmpty, err = strconv.ParseBool(seedIfEmpty)
		if err != nil {
			return Config{}, fmt.Errorf("invalid seed-if-empty value %q", seedIfEmpty)
		}
	case file.SeedIfEmpty != nil:
		cfg.SeedIfEmpty = *file.SeedIfEmpty
	default:
		cfg.SeedIfEmpty = true
	}

	if cfg.ReseedSchedule == "" {
		cfg.ReseedSchedule = firstNonEmpty(os.Getenv("RESEED_SCHEDULE"), file.ReseedSchedule)
	}

	if pollInterval == "" {
		pollInterval = firstNonEmpty(os.Getenv("POLL_INTERVAL"), file.PollInterval)
	}
	if pollInterval == "" {
		cfg.PollInterval = defaultPollInterval
	} else {
		cfg.PollInterval, err = time.ParseDuration(pollInterval)
		if err != nil || cfg.PollInterval <= 0 {
			return Config{}, fmt.Errorf("invalid poll interval %q", pollInterval)
		}
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = firstNonEmpty(os.Getenv("LOG_LEVEL"), file.LogLevel, defaultLogLevel)
	}

	// Without a configured secret, tokens only survive until restart
	if cfg.CSRFSecret == "" {
		cfg.CSRFSecret = firstNonEmpty(os.Getenv("CSRF_SECRET"), file.CSRFSecret)
	}
	if cfg.CSRFSecret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return Config{}, fmt.Errorf("failed to generate CSRF secret: %w", err)
		}
		cfg.CSRFSecret = hex.EncodeToString(b)
	}

	return cfg, nil
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config yaml: %w", err)
	}
	return fc, nil
}

func intSetting(env string, fromFile, fallback int) (int, error) {
	if s := os.Getenv(env); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid %s env variable", env)
		}
		return n, nil
	}
	if fromFile != 0 {
		return fromFile, nil
	}
	return fallback, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// NewLogger returns a JSON logger writing to w at cfg.LogLevel. Unknown
// levels log at info.
func NewLogger(w io.Writer, cfg Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
}

func logLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return slog.LevelInfo
	}
	return level
}
