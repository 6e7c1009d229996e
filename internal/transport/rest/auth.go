package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/vocaquiz/backend/internal/domain"
	"github.com/vocaquiz/backend/internal/service/auth"
	"github.com/vocaquiz/backend/pkg/ctxutil"
)

type authService interface {
	Signup(ctx context.Context, input auth.SignupInput) (*auth.AuthResult, error)
	Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	Logout(ctx context.Context, token string) error
	CheckActivationCode(ctx context.Context, code string) (bool, error)
	CreateActivationCodes(ctx context.Context, input auth.GenerateCodesInput) ([]string, error)
	AvailableCodes(ctx context.Context) ([]string, error)
}

// AuthHandler serves account and session endpoints.
type AuthHandler struct {
	svc authService
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc: svc,
		log: logger.With("handler", "auth"),
	}
}

type signupRequest struct {
	ActivationCode string `json:"activationCode"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      userResponse `json:"user"`
}

func toAuthResponse(res *auth.AuthResult) authResponse {
	return authResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      toUserResponse(res.Account),
	}
}

func toUserResponse(acc *domain.Account) userResponse {
	u := userResponse{ID: acc.ID.String()}
	if acc.Username != nil {
		u.Username = *acc.Username
	}
	if acc.Email != nil {
		u.Email = *acc.Email
	}
	return u
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.svc.Signup(r.Context(), auth.SignupInput{
		ActivationCode: req.ActivationCode,
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAuthResponse(res))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.svc.Login(r.Context(), auth.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(res))
}

// Logout handles POST /api/auth/logout. Revokes the session the request
// arrived on.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := ctxutil.SessionTokenFromCtx(r.Context())
	if err := h.svc.Logout(r.Context(), token); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sc, ok := ctxutil.SessionFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		ID:       sc.UserID.String(),
		Username: sc.Username,
		Email:    sc.Email,
	})
}

type checkCodeRequest struct {
	ActivationCode string `json:"activationCode"`
}

type checkCodeResponse struct {
	Valid bool `json:"valid"`
}

// CheckActivationCode handles POST /api/auth/check-activation-code.
func (h *AuthHandler) CheckActivationCode(w http.ResponseWriter, r *http.Request) {
	var req checkCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	valid, err := h.svc.CheckActivationCode(r.Context(), req.ActivationCode)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, checkCodeResponse{Valid: valid})
}

type generateCodesRequest struct {
	Count int `json:"count"`
}

type codesResponse struct {
	Codes []string `json:"codes"`
}

// GenerateCodes handles POST /api/auth/generate-codes.
func (h *AuthHandler) GenerateCodes(w http.ResponseWriter, r *http.Request) {
	var req generateCodesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	codes, err := h.svc.CreateActivationCodes(r.Context(), auth.GenerateCodesInput{Count: req.Count})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, codesResponse{Codes: codes})
}

// AvailableCodes handles GET /api/auth/available-codes.
func (h *AuthHandler) AvailableCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := h.svc.AvailableCodes(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, codesResponse{Codes: codes})
}
