package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vocaquiz/backend/internal/domain"
	"github.com/vocaquiz/backend/internal/service/vocabulary"
	"github.com/vocaquiz/backend/pkg/ctxutil"
)

type vocabularyService interface {
	Levels(ctx context.Context) (map[string][]string, error)
	WordsByLevel(ctx context.Context, level string) ([]string, error)
	AddWord(ctx context.Context, input vocabulary.AddWordInput) error
	RemoveWord(ctx context.Context, userID uuid.UUID, word string) error
	UpdateNotes(ctx context.Context, userID uuid.UUID, word, notes string) error
	RecordReview(ctx context.Context, userID uuid.UUID, word string) error
	List(ctx context.Context, userID uuid.UUID, search, level string) ([]domain.LibraryEntry, error)
	Suggestions(ctx context.Context, userID uuid.UUID, query, level string) ([]domain.Suggestion, error)
	SearchCatalog(ctx context.Context, userID uuid.UUID, query, level string) ([]domain.CatalogHit, error)
}

// VocabularyHandler serves corpus browsing and personal library management.
type VocabularyHandler struct {
	svc vocabularyService
	log *slog.Logger
}

// NewVocabularyHandler creates a VocabularyHandler.
func NewVocabularyHandler(svc vocabularyService, logger *slog.Logger) *VocabularyHandler {
	return &VocabularyHandler{
		svc: svc,
		log: logger.With("handler", "vocabulary"),
	}
}

type levelInfo struct {
	Name      string `json:"name"`
	WordCount int    `json:"wordCount"`
}

type levelsResponse struct {
	Levels []levelInfo `json:"levels"`
}

// Levels handles GET /api/levels. An empty corpus is a deployment fault
// (the ingestion job has not run), reported as a server error rather than an
// empty list.
func (h *VocabularyHandler) Levels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.svc.Levels(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if len(levels) == 0 {
		h.log.ErrorContext(r.Context(), "vocabulary corpus is empty")
		writeError(w, http.StatusInternalServerError, "vocabulary corpus is empty")
		return
	}

	resp := levelsResponse{Levels: make([]levelInfo, 0, len(levels))}
	for name, words := range levels {
		resp.Levels = append(resp.Levels, levelInfo{Name: name, WordCount: len(words)})
	}
	sort.Slice(resp.Levels, func(i, j int) bool {
		return resp.Levels[i].Name < resp.Levels[j].Name
	})

	writeJSON(w, http.StatusOK, resp)
}

type levelWordsResponse struct {
	Level string   `json:"level"`
	Words []string `json:"words"`
}

// WordsByLevel handles GET /api/levels/{level}/words.
func (h *VocabularyHandler) WordsByLevel(w http.ResponseWriter, r *http.Request) {
	level := chi.URLParam(r, "level")

	words, err := h.svc.WordsByLevel(r.Context(), level)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, levelWordsResponse{Level: level, Words: words})
}

type libraryEntryResponse struct {
	Word         string     `json:"word"`
	Translation  *string    `json:"translation"`
	Level        *string    `json:"level"`
	Notes        *string    `json:"notes"`
	AddedFrom    string     `json:"addedFrom"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastReviewed *time.Time `json:"lastReviewed"`
}

type libraryResponse struct {
	Entries []libraryEntryResponse `json:"entries"`
}

func toLibraryResponse(entries []domain.LibraryEntry) libraryResponse {
	resp := libraryResponse{Entries: make([]libraryEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, libraryEntryResponse{
			Word:         e.Word,
			Translation:  e.Translation,
			Level:        e.Level,
			Notes:        e.Notes,
			AddedFrom:    e.AddedFrom,
			CreatedAt:    e.CreatedAt,
			LastReviewed: e.LastReviewed,
		})
	}
	return resp
}

// List handles GET /api/vocabulary.
func (h *VocabularyHandler) List(w http.ResponseWriter, r *http.Request) {
	sc, ok := ctxutil.SessionFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entries, err := h.svc.List(r.Context(), sc.UserID,
		r.URL.Query().Get("search"), r.URL.Query().Get("level"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toLibraryResponse(entries))
}

type addWordRequest struct {
	Word        string  `json:"word"`
	Translation *string `json:"translation"`
	Level       *string `json:"level"`
	Notes       *string `json:"notes"`
	AddedFrom   string  `json:"addedFrom"`
}

// AddWord handles POST /api/vocabulary.
func (h *VocabularyHandler) AddWord(w http.ResponseWriter, r *http.Request) {
	sc, ok := ctxutil.SessionFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req addWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.svc.AddWord(r.Context(), vocabulary.AddWordInput{
		UserID:      sc.UserID,
		Word:        req.Word,
		Translation: req.Translation,
		Level:       req.Level,
		Notes:       req.Notes,
		AddedFrom:   req.AddedFrom,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// RemoveWord handles DELETE /api/vocabulary/{word}.
func (h *VocabularyHandler) RemoveWord(w http.ResponseWriter, r *http.Request) {
	sc, ok := ctxutil.SessionFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.RemoveWord(r.Context(), sc.UserID, chi.URLParam(r, "word")); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

// UpdateNotes handles PUT /api/vocabulary/{word}/notes.
func (h *VocabularyHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	sc, ok := ctxutil.SessionFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req updateNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.UpdateNotes(r.Context(), sc.UserID, chi.URLParam(r, "word"), req.Notes); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// RecordReview handles POST /api/vocabulary/{word}/review.
func (h *VocabularyHandler) RecordReview(w http.ResponseWriter, r *http.Request) {
	sc, ok := ctxutil.SessionFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.RecordReview(r.Context(), sc.UserID, chi.URLParam(r, "word")); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "reviewed"})
}

type suggestionResponse struct {
	Word  string  `json:"word"`
	Level *string `json:"level"`
}

type suggestionsResponse struct {
	Suggestions []suggestionResponse `json:"suggestions"`
}

// Suggestions handles GET /api/vocabulary/suggestions.
func (h *VocabularyHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	sc, ok := ctxutil.SessionFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	suggestions, err := h.svc.Suggestions(r.Context(), sc.UserID,
		r.URL.Query().Get("search"), r.URL.Query().Get("level"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := suggestionsResponse{Suggestions: make([]suggestionResponse, 0, len(suggestions))}
	for _, s := range suggestions {
		resp.Suggestions = append(resp.Suggestions, suggestionResponse{Word: s.Word, Level: s.Level})
	}

	writeJSON(w, http.StatusOK, resp)
}

type catalogHitResponse struct {
	Word        string `json:"word"`
	Level       string `json:"level"`
	Translation string `json:"translation,omitempty"`
}

type catalogSearchResponse struct {
	Results []catalogHitResponse `json:"results"`
}

// SearchCatalog handles GET /api/vocabulary/search. Finds corpus words not
// yet in the caller's library.
func (h *VocabularyHandler) SearchCatalog(w http.ResponseWriter, r *http.Request) {
	sc, ok := ctxutil.SessionFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	hits, err := h.svc.SearchCatalog(r.Context(), sc.UserID,
		r.URL.Query().Get("search"), r.URL.Query().Get("level"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := catalogSearchResponse{Results: make([]catalogHitResponse, 0, len(hits))}
	for _, hit := range hits {
		resp.Results = append(resp.Results, catalogHitResponse{
			Word:        hit.Word,
			Level:       hit.Level,
			Translation: hit.Translation,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
