// cliparse/cliparse_test.go
package cliparse

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every variable ParseFlags reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL", "DATABASE_TYPE", "CSRF_SECRET", "PAGE_SIZE",
		"SEED_COUNT", "SEED_IF_EMPTY", "RESEED_SCHEDULE", "POLL_INTERVAL",
		"LOG_LEVEL", "CONFIG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != defaultPort {
		t.Errorf("expected port %d, got %d", defaultPort, cfg.Port)
	}
	if cfg.DatabaseType != DatabaseSQLite {
		t.Errorf("expected sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != defaultSQLitePath {
		t.Errorf("expected %s, got %s", defaultSQLitePath, cfg.DatabaseURL)
	}
	if cfg.PageSize != 10 {
		t.Errorf("expected page size 10, got %d", cfg.PageSize)
	}
	if cfg.SeedCount != 100 {
		t.Errorf("expected seed count 100, got %d", cfg.SeedCount)
	}
	if !cfg.SeedIfEmpty {
		t.Error("expected SeedIfEmpty to default to true")
	}
	if cfg.PollInterval != 2*time.Second {
		t.Errorf("expected poll interval 2s, got %s", cfg.PollInterval)
	}
	if cfg.CSRFSecret == "" {
		t.Error("expected a generated CSRF secret")
	}
	if cfg.ReseedSchedule != "" {
		t.Errorf("expected reseed disabled, got %q", cfg.ReseedSchedule)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("CSRF_SECRET", "test-secret")
	t.Setenv("PAGE_SIZE", "5")
	t.Setenv("POLL_INTERVAL", "500ms")
	t.Setenv("SEED_IF_EMPTY", "false")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabasePostgres {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.CSRFSecret != "test-secret" {
		t.Errorf("expected env secret, got %s", cfg.CSRFSecret)
	}
	if cfg.PageSize != 5 {
		t.Errorf("expected page size 5, got %d", cfg.PageSize)
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %s", cfg.PollInterval)
	}
	if cfg.SeedIfEmpty {
		t.Error("expected SeedIfEmpty false from env")
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-csrf-secret", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "file:test.db" {
		t.Errorf("expected file:test.db, got %s", cfg.DatabaseURL)
	}
}

func TestParseFlags_ConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
port: 7000
database_url: demo.db
page_size: 20
seed_count: 30
seed_if_empty: false
reseed_schedule: "0 3 * * *"
poll_interval: 5s
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	// Env beats file
	t.Setenv("PAGE_SIZE", "15")

	cfg, err := ParseFlags([]string{"-c", path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 7000 {
		t.Errorf("expected port from file, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "demo.db" {
		t.Errorf("expected demo.db, got %s", cfg.DatabaseURL)
	}
	if cfg.PageSize != 15 {
		t.Errorf("env should override file: expected 15, got %d", cfg.PageSize)
	}
	if cfg.SeedCount != 30 {
		t.Errorf("expected seed count 30, got %d", cfg.SeedCount)
	}
	if cfg.SeedIfEmpty {
		t.Error("expected SeedIfEmpty false from file")
	}
	if cfg.ReseedSchedule != "0 3 * * *" {
		t.Errorf("unexpected reseed schedule %q", cfg.ReseedSchedule)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("expected 5s, got %s", cfg.PollInterval)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug, got %s", cfg.LogLevel)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"postgres without url", []string{"-t", "postgres"}, nil},
		{"unknown database type", []string{"-t", "mysql"}, nil},
		{"invalid port env", nil, map[string]string{"PORT": "abc"}},
		{"negative page size", []string{"-page-size", "-1"}, nil},
		{"invalid poll interval", []string{"-poll-interval", "soon"}, nil},
		{"invalid seed-if-empty", []string{"-seed-if-empty", "maybe"}, nil},
		{"missing config file", []string{"-c", "/does/not/exist.yaml"}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags(tc.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseSeedFlags(t *testing.T) {
	clearEnv(t)

	cfg, reset, err := ParseSeedFlags([]string{"-reset", "-seed-count", "25"})
	if err != nil {
		t.Fatal(err)
	}
	if !reset {
		t.Error("expected reset to be set")
	}
	if cfg.SeedCount != 25 {
		t.Errorf("expected seed count 25, got %d", cfg.SeedCount)
	}

	_, reset, err = ParseSeedFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if reset {
		t.Error("expected reset to default to false")
	}

	// The server does not accept the seeder's flag
	if _, err := ParseFlags([]string{"-reset"}); err == nil {
		t.Error("expected -reset to be rejected by ParseFlags")
	}
}

func TestNewLogger(t *testing.T) {
	clearEnv(t)

	cfg, _, err := ParseSeedFlags([]string{"-log-level", "warn"})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger := NewLogger(&buf, cfg)
	logger.Info("seeded articles")
	logger.Warn("table not empty")

	out := buf.String()
	if strings.Contains(out, "seeded articles") {
		t.Errorf("expected info to be suppressed at warn, got %s", out)
	}
	if !strings.Contains(out, `"level":"WARN"`) || !strings.Contains(out, `"msg":"table not empty"`) {
		t.Errorf("expected JSON warn record, got %s", out)
	}
}

func TestNewLogger_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, Config{LogLevel: "loud"})
	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("expected info level fallback, got %s", out)
	}
}
