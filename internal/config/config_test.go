package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("WORDNIK_API_KEY", "test-api-key")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// chdirTemp moves into an empty temp dir so no stray config.yaml or .env is picked up.
func chdirTemp(t *testing.T) {
	t.Helper()
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

store:
  driver: "postgres"
  op_timeout: "3s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 4

provider:
  base_url: "http://wordnik.test/v4"
  api_key: "yaml-key"
  timeout: "2s"
  limit: 5

quiz:
  session_ttl: "30m"

share:
  app_url: "https://portfolio.example.com/"
  target_page: "Quiz_Taker"

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	chdirTemp(t)
	path := writeFile(t, t.TempDir(), "config.yaml", validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// Store
	if cfg.Store.Driver != domain.StoreDriverPostgres {
		t.Errorf("store.driver = %q, want postgres", cfg.Store.Driver)
	}
	if cfg.Store.OpTimeout != 3*time.Second {
		t.Errorf("store.op_timeout = %v, want 3s", cfg.Store.OpTimeout)
	}
	if cfg.Database.MaxConns != 4 {
		t.Errorf("database.max_conns = %d, want 4", cfg.Database.MaxConns)
	}

	// Provider
	if cfg.Provider.APIKey != "yaml-key" {
		t.Errorf("provider.api_key = %q", cfg.Provider.APIKey)
	}
	if cfg.Provider.Limit != 5 {
		t.Errorf("provider.limit = %d, want 5", cfg.Provider.Limit)
	}

	// Quiz
	if cfg.Quiz.SessionTTL != 30*time.Minute {
		t.Errorf("quiz.session_ttl = %v, want 30m", cfg.Quiz.SessionTTL)
	}
	if cfg.Quiz.MaxSessions != 1000 {
		t.Errorf("quiz.max_sessions = %d, want 1000 (default)", cfg.Quiz.MaxSessions)
	}

	// Mongo defaults survive even when another driver is selected.
	if cfg.Mongo.Database != "portfolio_project" {
		t.Errorf("mongo.database = %q, want portfolio_project", cfg.Mongo.Database)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	chdirTemp(t)
	path := writeFile(t, t.TempDir(), "config.yaml", validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("WORDNIK_API_KEY", "env-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Provider.APIKey != "env-key" {
		t.Errorf("provider.api_key = %q, want %q (ENV override)", cfg.Provider.APIKey, "env-key")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Store.Driver != domain.StoreDriverMongo {
		t.Errorf("store.driver = %q, want mongo (default)", cfg.Store.Driver)
	}
	if cfg.Provider.BaseURL != "https://api.wordnik.com/v4" {
		t.Errorf("provider.base_url = %q", cfg.Provider.BaseURL)
	}
}

func TestLoad_DotEnvSuppliesSecrets(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	chdirTemp(t)

	// Start from an unset key; t.Setenv restores the original value afterwards.
	t.Setenv("WORDNIK_API_KEY", "")
	os.Unsetenv("WORDNIK_API_KEY")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	path := writeFile(t, t.TempDir(), "test.env", "WORDNIK_API_KEY=from-dotenv\n")
	t.Setenv("DOTENV_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider.APIKey != "from-dotenv" {
		t.Errorf("provider.api_key = %q, want from-dotenv", cfg.Provider.APIKey)
	}
}

func TestLoad_ExplicitDotEnvNotFound(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DOTENV_PATH", "/nonexistent/.env")
	chdirTemp(t)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit dotenv path")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	chdirTemp(t)
	path := writeFile(t, t.TempDir(), "config.yaml", `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Driver = "sqlite"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown store driver")
	}
}

func TestValidate_MongoWithoutURI(t *testing.T) {
	cfg := validConfig()
	cfg.Mongo.URI = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for mongo driver without uri")
	}
}

func TestValidate_PostgresWithoutDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Driver = domain.StoreDriverPostgres
	cfg.Database.DSN = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for postgres driver without dsn")
	}
}

func TestValidate_MemoryNeedsNoConnection(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Driver = domain.StoreDriverMemory
	cfg.Mongo.URI = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error for memory driver: %v", err)
	}
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.Provider.APIKey = "  "

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestValidate_ZeroTimeouts(t *testing.T) {
	cfg := validConfig()
	cfg.Provider.Timeout = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero provider timeout")
	}

	cfg = validConfig()
	cfg.Store.OpTimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero store op timeout")
	}
}

func TestValidate_QuizSessions(t *testing.T) {
	cfg := validConfig()
	cfg.Quiz.SessionTTL = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero session_ttl")
	}

	cfg = validConfig()
	cfg.Quiz.MaxSessions = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero max_sessions")
	}
}

// The word-count bound and the mask placeholder are fixed by the domain
// package; a deployment must not be able to change them.
func TestQuizConfig_WordBoundsAndPlaceholderNotConfigurable(t *testing.T) {
	fixed := map[string]bool{
		"min_words": true, "max_words": true, "placeholder": true,
		"QUIZ_MIN_WORDS": true, "QUIZ_MAX_WORDS": true, "QUIZ_PLACEHOLDER": true,
	}
	typ := reflect.TypeOf(QuizConfig{})
	for i := range typ.NumField() {
		f := typ.Field(i)
		if fixed[f.Tag.Get("yaml")] || fixed[f.Tag.Get("env")] {
			t.Errorf("QuizConfig.%s exposes a fixed quiz setting", f.Name)
		}
	}
}

func TestValidate_RateLimit(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.PerMinute = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for enabled rate limit with zero budget")
	}

	cfg.RateLimit.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled rate limit should not be validated: %v", err)
	}
}

func TestShareConfig_ShareURL(t *testing.T) {
	t.Parallel()

	s := ShareConfig{AppURL: "https://portfolio.example.com/", TargetPage: "Quiz_Taker"}
	got := s.ShareURL("65a1f0c2e4b0a1b2c3d4e5f6")
	want := "https://portfolio.example.com/Quiz_Taker/?quiz=65a1f0c2e4b0a1b2c3d4e5f6"
	if got != want {
		t.Errorf("ShareURL = %q, want %q", got, want)
	}
}

func validConfig() Config {
	return Config{
		Store: StoreConfig{Driver: domain.StoreDriverMongo, OpTimeout: 5 * time.Second},
		Mongo: MongoConfig{URI: "mongodb://localhost:27017", Database: "portfolio_project"},
		Provider: ProviderConfig{
			BaseURL: "https://api.wordnik.com/v4",
			APIKey:  "key",
			Timeout: 5 * time.Second,
			Limit:   10,
		},
		Quiz: QuizConfig{
			SessionTTL:  time.Hour,
			MaxSessions: 100,
		},
		Share:     ShareConfig{AppURL: "http://localhost:8080/", TargetPage: "Quiz_Taker"},
		RateLimit: RateLimitConfig{Enabled: true, PerMinute: 30, CleanupInterval: time.Minute},
	}
}
