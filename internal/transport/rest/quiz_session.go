package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizmaker-backend/internal/domain"
	"github.com/heartmarshall/quizmaker-backend/internal/service/quizbuilder"
	"github.com/heartmarshall/quizmaker-backend/pkg/ctxutil"
)

type quizBuilder interface {
	Submit(ctx context.Context, s *quizbuilder.Session, event quizbuilder.Event) (quizbuilder.Outcome, error)
}

type sessionRegistry interface {
	Create() (uuid.UUID, error)
	Do(id uuid.UUID, fn func(s *quizbuilder.Session) error) error
	View(id uuid.UUID, fn func(s *quizbuilder.Session)) error
	Delete(id uuid.UUID) error
}

type quizLinker interface {
	ShareURL(id domain.QuizID) string
}

// QuizSessionHandler serves the quiz-building workflow over REST. Each
// session is addressed by id; every POST submits one event.
type QuizSessionHandler struct {
	builder  quizBuilder
	sessions sessionRegistry
	links    quizLinker
	log      *slog.Logger
}

// NewQuizSessionHandler creates a QuizSessionHandler.
func NewQuizSessionHandler(builder quizBuilder, sessions sessionRegistry, links quizLinker, logger *slog.Logger) *QuizSessionHandler {
	return &QuizSessionHandler{
		builder:  builder,
		sessions: sessions,
		links:    links,
		log:      logger.With("handler", "quiz_session"),
	}
}

// Register mounts the session routes on mux.
func (h *QuizSessionHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/quiz-sessions", h.Create)
	mux.HandleFunc("GET /api/quiz-sessions/{id}", h.Get)
	mux.HandleFunc("DELETE /api/quiz-sessions/{id}", h.Cancel)
	mux.HandleFunc("POST /api/quiz-sessions/{id}/words", h.SubmitWords)
	mux.HandleFunc("POST /api/quiz-sessions/{id}/choices", h.SubmitChoices)
	mux.HandleFunc("POST /api/quiz-sessions/{id}/edits", h.SubmitEdits)
	mux.HandleFunc("POST /api/quiz-sessions/{id}/confirm", h.Confirm)
}

type wordsRequest struct {
	Words []string `json:"words"`
	// Text is a comma-separated alternative to Words.
	Text string `json:"text"`
}

type choicesRequest struct {
	Choices map[string]string `json:"choices"`
}

type editsRequest struct {
	Edits map[string]string `json:"edits"`
}

type confirmRequest struct {
	Title *string `json:"title"`
}

type sessionResponse struct {
	ID         string              `json:"sessionId"`
	Stage      string              `json:"stage"`
	Next       string              `json:"next,omitempty"`
	Words      []string            `json:"words"`
	Candidates map[string][]string `json:"candidates,omitempty"`
	Missing    []string            `json:"missing,omitempty"`
	Chosen     map[string]string   `json:"chosen,omitempty"`
	QuizID     string              `json:"quizId,omitempty"`
	ShareURL   string              `json:"shareUrl,omitempty"`
}

// Create handles POST /api/quiz-sessions.
func (h *QuizSessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessions.Create()
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var resp sessionResponse
	if err := h.sessions.View(id, func(s *quizbuilder.Session) { resp = h.toResponse(id, s) }); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Get handles GET /api/quiz-sessions/{id}.
func (h *QuizSessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var resp sessionResponse
	if err := h.sessions.View(id, func(s *quizbuilder.Session) { resp = h.toResponse(id, s) }); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Cancel handles DELETE /api/quiz-sessions/{id}.
func (h *QuizSessionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Delete(id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SubmitWords handles POST /api/quiz-sessions/{id}/words.
func (h *QuizSessionHandler) SubmitWords(w http.ResponseWriter, r *http.Request) {
	var req wordsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	words := req.Words
	if len(words) == 0 {
		words = domain.SplitWords(req.Text)
	}

	h.submit(w, r, quizbuilder.SubmitWords{Words: words})
}

// SubmitChoices handles POST /api/quiz-sessions/{id}/choices.
func (h *QuizSessionHandler) SubmitChoices(w http.ResponseWriter, r *http.Request) {
	var req choicesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.submit(w, r, quizbuilder.SubmitChoices{Choices: req.Choices})
}

// SubmitEdits handles POST /api/quiz-sessions/{id}/edits.
func (h *QuizSessionHandler) SubmitEdits(w http.ResponseWriter, r *http.Request) {
	var req editsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.submit(w, r, quizbuilder.SubmitEdits{Edits: req.Edits})
}

// Confirm handles POST /api/quiz-sessions/{id}/confirm.
func (h *QuizSessionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.submit(w, r, quizbuilder.Confirm{Title: req.Title})
}

func (h *QuizSessionHandler) submit(w http.ResponseWriter, r *http.Request, event quizbuilder.Event) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	ctx := ctxutil.WithSessionID(r.Context(), id)

	var resp sessionResponse
	err := h.sessions.Do(id, func(s *quizbuilder.Session) error {
		out, err := h.builder.Submit(ctx, s, event)
		if err != nil {
			return err
		}
		resp = h.toResponse(id, s)
		resp.Missing = out.Missing
		return nil
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *QuizSessionHandler) toResponse(id uuid.UUID, s *quizbuilder.Session) sessionResponse {
	resp := sessionResponse{
		ID:      id.String(),
		Stage:   s.Stage().String(),
		Next:    string(quizbuilder.Accepts(s.Stage())),
		Words:   s.Words(),
		Missing: s.Missing(),
		Chosen:  s.Chosen(),
	}

	if s.Stage() == domain.QuizStageChoosing {
		resp.Candidates = make(map[string][]string, len(resp.Words))
		for _, word := range resp.Words {
			resp.Candidates[word] = s.Candidates(word)
		}
	}

	if qid := s.QuizID(); qid != "" {
		resp.QuizID = qid.String()
		resp.ShareURL = h.links.ShareURL(qid)
	}

	return resp
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}
