// Package wordnik fetches usage examples for a word from the Wordnik API.
package wordnik

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://api.wordnik.com/v4"
	defaultLimit   = 10
	retryDelay     = 500 * time.Millisecond
)

// Provider fetches example sentences from the Wordnik API.
type Provider struct {
	baseURL    string
	apiKey     string
	limit      int
	httpClient *http.Client
	log        *slog.Logger
}

// Options configures a Provider. Zero values fall back to defaults.
type Options struct {
	BaseURL string
	APIKey  string
	Limit   int
	Timeout time.Duration
}

// NewProvider creates a Provider. The timeout bounds every single HTTP attempt.
func NewProvider(opts Options, logger *slog.Logger) *Provider {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Provider{
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		limit:      opts.Limit,
		httpClient: &http.Client{Timeout: opts.Timeout},
		log:        logger.With("adapter", "wordnik"),
	}
}

// FetchExamples returns the raw example sentences for word.
// Returns nil, nil if the API has nothing for the word (4xx other than
// auth and throttling errors).
func (p *Provider) FetchExamples(ctx context.Context, word string) ([]string, error) {
	reqURL := p.baseURL + "/word.json/" + url.PathEscape(word) + "/examples?" + url.Values{
		"limit":             {strconv.Itoa(p.limit)},
		"includeDuplicates": {"false"},
	}.Encode()

	p.log.DebugContext(ctx, "wordnik request", slog.String("word", word))

	resp, err := p.doWithRetry(ctx, reqURL, word)
	if err != nil {
		p.log.ErrorContext(ctx, "wordnik request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("wordnik: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("wordnik: unauthorized (status %d)", resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("wordnik: rate limited (status %d)", resp.StatusCode)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		p.log.DebugContext(ctx, "wordnik has no examples",
			slog.String("word", word),
			slog.Int("status", resp.StatusCode),
		)
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("wordnik: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("wordnik: read body: %w", err)
	}

	var payload apiExamples
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("wordnik: decode json: %w", err)
	}

	examples := make([]string, 0, len(payload.Examples))
	for _, ex := range payload.Examples {
		if ex.Text == "" {
			continue
		}
		examples = append(examples, ex.Text)
	}

	p.log.DebugContext(ctx, "wordnik response",
		slog.String("word", word),
		slog.Int("status", resp.StatusCode),
		slog.Int("examples", len(examples)),
	)

	return examples, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
// Each attempt gets a fresh request since a sent request cannot be reused safely.
func (p *Provider) doWithRetry(ctx context.Context, reqURL, word string) (*http.Response, error) {
	resp, err := p.do(ctx, reqURL)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		if resp != nil {
			return resp, nil
		}
		return nil, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "wordnik retry", slog.String("word", word), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(retryDelay):
	}

	return p.do(ctx, reqURL)
}

func (p *Provider) do(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("api_key", p.apiKey)
	req.Header.Set("Accept", "application/json")
	return p.httpClient.Do(req)
}
