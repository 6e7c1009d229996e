package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vocaquiz/backend/internal/domain"
	"github.com/vocaquiz/backend/pkg/ctxutil"
)

type progressService interface {
	Stats(ctx context.Context, userID uuid.UUID) ([]domain.LevelStats, error)
	Mistakes(ctx context.Context, userID uuid.UUID, level string) ([]domain.Mistake, error)
}

// ProgressHandler serves per-user learning reports.
type ProgressHandler struct {
	svc progressService
	log *slog.Logger
}

// NewProgressHandler creates a ProgressHandler.
func NewProgressHandler(svc progressService, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{
		svc: svc,
		log: logger.With("handler", "progress"),
	}
}

type levelStatsResponse struct {
	Level          string  `json:"level"`
	WordsPracticed int     `json:"wordsPracticed"`
	TotalCorrect   int     `json:"totalCorrect"`
	TotalIncorrect int     `json:"totalIncorrect"`
	Accuracy       float64 `json:"accuracy"`
}

type statsResponse struct {
	Stats []levelStatsResponse `json:"stats"`
}

// Stats handles GET /api/user/stats.
func (h *ProgressHandler) Stats(w http.ResponseWriter, r *http.Request) {
	sc, ok := ctxutil.SessionFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stats, err := h.svc.Stats(r.Context(), sc.UserID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := statsResponse{Stats: make([]levelStatsResponse, 0, len(stats))}
	for _, s := range stats {
		resp.Stats = append(resp.Stats, levelStatsResponse{
			Level:          s.Level,
			WordsPracticed: s.WordsPracticed,
			TotalCorrect:   s.TotalCorrect,
			TotalIncorrect: s.TotalIncorrect,
			Accuracy:       s.Accuracy,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

type mistakeResponse struct {
	Word           string    `json:"word"`
	Level          string    `json:"level"`
	Translation    string    `json:"translation"`
	CorrectCount   int       `json:"correctCount"`
	IncorrectCount int       `json:"incorrectCount"`
	LastPracticed  time.Time `json:"lastPracticed"`
}

type mistakesResponse struct {
	Mistakes []mistakeResponse `json:"mistakes"`
}

// Mistakes handles GET /api/user/mistakes. An optional level query parameter
// narrows the report.
func (h *ProgressHandler) Mistakes(w http.ResponseWriter, r *http.Request) {
	sc, ok := ctxutil.SessionFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	mistakes, err := h.svc.Mistakes(r.Context(), sc.UserID, r.URL.Query().Get("level"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := mistakesResponse{Mistakes: make([]mistakeResponse, 0, len(mistakes))}
	for _, m := range mistakes {
		resp.Mistakes = append(resp.Mistakes, mistakeResponse{
			Word:           m.Word,
			Level:          m.Level,
			Translation:    m.Translation,
			CorrectCount:   m.CorrectCount,
			IncorrectCount: m.IncorrectCount,
			LastPracticed:  m.LastPracticed,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
