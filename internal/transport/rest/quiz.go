package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vocaquiz/backend/internal/domain"
	"github.com/vocaquiz/backend/internal/service/quiz"
	"github.com/vocaquiz/backend/pkg/ctxutil"
)

type quizService interface {
	GenerateQuestion(ctx context.Context, level string) (*domain.Question, error)
	GeneratePersonalQuestion(ctx context.Context, userID uuid.UUID) (*domain.Question, error)
	CheckAnswer(ctx context.Context, input quiz.CheckAnswerInput) (*domain.AnswerResult, error)
}

// QuizHandler serves question generation and answer checking.
type QuizHandler struct {
	svc quizService
	log *slog.Logger
}

// NewQuizHandler creates a QuizHandler.
func NewQuizHandler(svc quizService, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{
		svc: svc,
		log: logger.With("handler", "quiz"),
	}
}

type questionResponse struct {
	Word    string   `json:"word"`
	Options []string `json:"options"`
}

// Question handles GET /api/question/{level}.
func (h *QuizHandler) Question(w http.ResponseWriter, r *http.Request) {
	level := chi.URLParam(r, "level")

	q, err := h.svc.GenerateQuestion(r.Context(), level)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, questionResponse{Word: q.Word, Options: q.Options})
}

// PersonalQuestion handles GET /api/vocabulary-question. Builds a question
// from the caller's personal library.
func (h *QuizHandler) PersonalQuestion(w http.ResponseWriter, r *http.Request) {
	sc, ok := ctxutil.SessionFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q, err := h.svc.GeneratePersonalQuestion(r.Context(), sc.UserID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, questionResponse{Word: q.Word, Options: q.Options})
}

type checkAnswerRequest struct {
	Word     string `json:"word"`
	Selected string `json:"selected"`
	Level    string `json:"level"`
}

type checkAnswerResponse struct {
	Correct            bool   `json:"correct"`
	CorrectTranslation string `json:"correctTranslation"`
}

// CheckAnswer handles POST /api/check-answer. Anonymous callers get the
// verdict only; authenticated callers also get the answer recorded against
// their progress when a level is supplied.
func (h *QuizHandler) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	var req checkAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := quiz.CheckAnswerInput{
		Word:     req.Word,
		Selected: req.Selected,
		Level:    req.Level,
	}
	if sc, ok := ctxutil.SessionFromCtx(r.Context()); ok {
		input.Session = sc
	}

	res, err := h.svc.CheckAnswer(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, checkAnswerResponse{
		Correct:            res.Correct,
		CorrectTranslation: res.CorrectTranslation,
	})
}
