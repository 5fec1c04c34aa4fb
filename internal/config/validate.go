package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Store.validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	switch c.Store.Driver {
	case domain.StoreDriverMongo:
		if strings.TrimSpace(c.Mongo.URI) == "" {
			return fmt.Errorf("mongo.uri is required when store.driver is %q", c.Store.Driver)
		}
		if c.Mongo.Database == "" {
			return fmt.Errorf("mongo.database is required")
		}
	case domain.StoreDriverPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required when store.driver is %q", c.Store.Driver)
		}
	}

	if err := c.Provider.validate(); err != nil {
		return fmt.Errorf("provider: %w", err)
	}

	if err := c.Quiz.validate(); err != nil {
		return fmt.Errorf("quiz: %w", err)
	}

	if _, err := url.Parse(c.Share.AppURL); err != nil {
		return fmt.Errorf("share.app_url: %w", err)
	}

	if c.RateLimit.Enabled && c.RateLimit.PerMinute <= 0 {
		return fmt.Errorf("rate_limit.per_minute must be > 0 (got %d)", c.RateLimit.PerMinute)
	}

	return nil
}

func (s *StoreConfig) validate() error {
	if !s.Driver.IsValid() {
		return fmt.Errorf("unknown driver %q (want mongo, postgres or memory)", s.Driver)
	}
	if s.OpTimeout <= 0 {
		return fmt.Errorf("op_timeout must be > 0 (got %v)", s.OpTimeout)
	}
	return nil
}

func (p *ProviderConfig) validate() error {
	if strings.TrimSpace(p.APIKey) == "" {
		return fmt.Errorf("api_key is required")
	}
	if _, err := url.ParseRequestURI(p.BaseURL); err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", p.Timeout)
	}
	if p.Limit <= 0 {
		return fmt.Errorf("limit must be > 0 (got %d)", p.Limit)
	}
	return nil
}

func (q *QuizConfig) validate() error {
	if q.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be > 0 (got %v)", q.SessionTTL)
	}
	if q.MaxSessions <= 0 {
		return fmt.Errorf("max_sessions must be > 0 (got %d)", q.MaxSessions)
	}
	return nil
}

// ShareURL builds the public link of a persisted quiz.
func (s ShareConfig) ShareURL(id domain.QuizID) string {
	return fmt.Sprintf("%s%s/?quiz=%s", s.AppURL, s.TargetPage, id)
}
