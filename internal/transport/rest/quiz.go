package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/quizmaker-backend/internal/domain"
	"github.com/heartmarshall/quizmaker-backend/internal/render/quizsheet"
	"github.com/heartmarshall/quizmaker-backend/internal/service/quiz"
)

type quizService interface {
	GetQuiz(ctx context.Context, rawID string) (*domain.Quiz, error)
	ShareURL(id domain.QuizID) string
}

// QuizHandler serves persisted quizzes to quiz takers.
type QuizHandler struct {
	svc quizService
	log *slog.Logger
}

// NewQuizHandler creates a QuizHandler.
func NewQuizHandler(svc quizService, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{svc: svc, log: logger.With("handler", "quiz")}
}

// Register mounts the quiz routes on mux.
func (h *QuizHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/quizzes/{id}", h.Get)
	mux.HandleFunc("GET /api/quizzes/{id}/sheet", h.Sheet)
}

type questionResponse struct {
	Number   int    `json:"number"`
	Sentence string `json:"sentence"`
}

type quizResponse struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	WordBank  [][]string         `json:"wordBank"`
	Questions []questionResponse `json:"questions"`
	ShareURL  string             `json:"shareUrl"`
	CreatedAt time.Time          `json:"createdAt"`
}

// Get handles GET /api/quizzes/{id}. Answers are not included.
func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	q, err := h.svc.GetQuiz(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	questions := make([]questionResponse, len(q.Entries))
	for i, e := range q.Entries {
		questions[i] = questionResponse{Number: i + 1, Sentence: e.Sentence}
	}

	writeJSON(w, http.StatusOK, quizResponse{
		ID:        q.ID.String(),
		Title:     q.DisplayTitle(),
		WordBank:  quiz.WordBank(q),
		Questions: questions,
		ShareURL:  h.svc.ShareURL(q.ID),
		CreatedAt: q.CreatedAt,
	})
}

// Sheet handles GET /api/quizzes/{id}/sheet: a printable HTML page, or the
// Markdown source with ?format=md.
func (h *QuizHandler) Sheet(w http.ResponseWriter, r *http.Request) {
	q, err := h.svc.GetQuiz(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	sheet := quizsheet.FromQuiz(q, quiz.WordBank(q))

	switch r.URL.Query().Get("format") {
	case "", "html":
		body, err := sheet.HTML()
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(body) //nolint:errcheck
	case "md", "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(sheet.Markdown()) //nolint:errcheck
	default:
		writeError(w, http.StatusBadRequest, "format must be html or md")
	}
}
