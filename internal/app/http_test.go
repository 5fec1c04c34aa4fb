package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/quizmaker-backend/internal/adapter/memory"
	"github.com/heartmarshall/quizmaker-backend/internal/config"
	"github.com/heartmarshall/quizmaker-backend/internal/domain"
	quizsvc "github.com/heartmarshall/quizmaker-backend/internal/service/quiz"
	"github.com/heartmarshall/quizmaker-backend/internal/service/quizbuilder"
	"github.com/heartmarshall/quizmaker-backend/internal/transport/middleware"
)

type examplesStub map[string][]string

func (s examplesStub) FetchExamples(_ context.Context, word string) ([]string, error) {
	return s[word], nil
}

func testConfig() *config.Config {
	return &config.Config{
		Store: config.StoreConfig{Driver: domain.StoreDriverMemory, OpTimeout: time.Second},
		CORS: config.CORSConfig{
			AllowedOrigins: "https://portfolio.example.com",
			AllowedMethods: "GET,POST,DELETE,OPTIONS",
			AllowedHeaders: "Content-Type,X-Request-Id",
			MaxAge:         600,
		},
		RateLimit: config.RateLimitConfig{Enabled: true, PerMinute: 100},
		Share:     config.ShareConfig{AppURL: "https://portfolio.example.com/", TargetPage: "Quiz_Taker"},
	}
}

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testConfig()
	store := memory.New()
	provider := examplesStub{
		"apple":  {"I ate an apple.", "Apple pie is sweet."},
		"banana": {"A banana split."},
		"cherry": {"Cherry trees bloom."},
	}

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	handler := NewHTTPHandler(logger, cfg, Services{
		Store:     store,
		StoreName: "memory",
		Builder:   quizbuilder.NewBuilder(logger, store, provider, quizbuilder.Options{}),
		Sessions:  quizbuilder.NewRegistry(logger, time.Hour, 10),
		Quizzes:   quizsvc.NewService(logger, store, cfg.Share),
		Limiter:   limiter,
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestHTTPHandler_Health(t *testing.T) {
	srv := newTestAPI(t)

	resp, body := call(t, http.MethodGet, srv.URL+"/health", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, BuildVersion(), body["version"])
	components, ok := body["components"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, components, "memory")
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
}

func TestHTTPHandler_BuildAndFetchQuiz(t *testing.T) {
	srv := newTestAPI(t)
	base := srv.URL + "/api/quiz-sessions"

	resp, created := call(t, http.MethodPost, base, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := created["sessionId"].(string)

	resp, choosing := call(t, http.MethodPost, base+"/"+id+"/words", map[string]any{"text": "Cherry, apple, banana"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "CHOOSING", choosing["stage"])
	assert.Equal(t, []any{"cherry", "apple", "banana"}, choosing["words"])

	candidates := choosing["candidates"].(map[string]any)
	choices := map[string]string{}
	for word, list := range candidates {
		choices[word] = list.([]any)[0].(string)
	}
	assert.Equal(t, "I ate an _.", choices["apple"])

	resp, editing := call(t, http.MethodPost, base+"/"+id+"/choices", map[string]any{"choices": choices})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "EDITING", editing["stage"])

	resp, confirming := call(t, http.MethodPost, base+"/"+id+"/edits", map[string]any{
		"edits": map[string]string{"banana": "I peeled a _."},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "CONFIRMING", confirming["stage"])

	resp, persisted := call(t, http.MethodPost, base+"/"+id+"/confirm", map[string]any{"title": "Fruit"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "PERSISTED", persisted["stage"])
	quizID := persisted["quizId"].(string)
	assert.Equal(t, "https://portfolio.example.com/Quiz_Taker/?quiz="+quizID, persisted["shareUrl"])

	resp, again := call(t, http.MethodPost, base+"/"+id+"/confirm", map[string]any{})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.NotEmpty(t, again["error"])

	resp, quiz := call(t, http.MethodGet, srv.URL+"/api/quizzes/"+quizID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Fruit", quiz["title"])
	questions := quiz["questions"].([]any)
	require.Len(t, questions, 3)
	assert.Equal(t, "_ trees bloom.", questions[0].(map[string]any)["sentence"])
	assert.Equal(t, "I ate an _.", questions[1].(map[string]any)["sentence"])
	assert.Equal(t, "I peeled a _.", questions[2].(map[string]any)["sentence"])
}

func TestHTTPHandler_CORSPreflight(t *testing.T) {
	srv := newTestAPI(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/quiz-sessions", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://portfolio.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://portfolio.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestHTTPHandler_UnknownQuiz(t *testing.T) {
	srv := newTestAPI(t)

	resp, _ := call(t, http.MethodGet, srv.URL+"/api/quizzes/0123456789abcdef01234567", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, http.MethodGet, srv.URL+"/api/quizzes/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
