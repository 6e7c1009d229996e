package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vocaquiz/backend/internal/domain"
	"github.com/vocaquiz/backend/internal/service/auth"
	"github.com/vocaquiz/backend/pkg/ctxutil"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type authServiceMock struct {
	SignupFunc                func(ctx context.Context, input auth.SignupInput) (*auth.AuthResult, error)
	LoginFunc                 func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	LogoutFunc                func(ctx context.Context, token string) error
	CheckActivationCodeFunc   func(ctx context.Context, code string) (bool, error)
	CreateActivationCodesFunc func(ctx context.Context, input auth.GenerateCodesInput) ([]string, error)
	AvailableCodesFunc        func(ctx context.Context) ([]string, error)
}

func (m *authServiceMock) Signup(ctx context.Context, input auth.SignupInput) (*auth.AuthResult, error) {
	return m.SignupFunc(ctx, input)
}

func (m *authServiceMock) Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
	return m.LoginFunc(ctx, input)
}

func (m *authServiceMock) Logout(ctx context.Context, token string) error {
	return m.LogoutFunc(ctx, token)
}

func (m *authServiceMock) CheckActivationCode(ctx context.Context, code string) (bool, error) {
	return m.CheckActivationCodeFunc(ctx, code)
}

func (m *authServiceMock) CreateActivationCodes(ctx context.Context, input auth.GenerateCodesInput) ([]string, error) {
	return m.CreateActivationCodesFunc(ctx, input)
}

func (m *authServiceMock) AvailableCodes(ctx context.Context) ([]string, error) {
	return m.AvailableCodesFunc(ctx)
}

func testAuthResult() *auth.AuthResult {
	username := "alice01"
	email := "a@example.com"
	return &auth.AuthResult{
		Token:     "tok-abc",
		ExpiresAt: time.Date(2026, 1, 8, 12, 0, 0, 0, time.UTC),
		Account: &domain.Account{
			ID:       uuid.New(),
			Username: &username,
			Email:    &email,
		},
	}
}

func TestAuthHandler_Signup(t *testing.T) {
	t.Parallel()

	var gotInput auth.SignupInput
	svc := &authServiceMock{
		SignupFunc: func(ctx context.Context, input auth.SignupInput) (*auth.AuthResult, error) {
			gotInput = input
			return testAuthResult(), nil
		},
	}
	h := NewAuthHandler(svc, newTestLogger())

	body := `{"activationCode":"ABC12345","username":"alice01","email":"a@example.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotInput.ActivationCode != "ABC12345" || gotInput.Username != "alice01" {
		t.Fatalf("unexpected input: %+v", gotInput)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "tok-abc" {
		t.Fatalf("expected token in response, got %q", resp.Token)
	}
	if resp.User.Username != "alice01" {
		t.Fatalf("expected username in response, got %q", resp.User.Username)
	}
}

func TestAuthHandler_Signup_InvalidBody(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&authServiceMock{}, newTestLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_UsedCode(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		SignupFunc: func(ctx context.Context, input auth.SignupInput) (*auth.AuthResult, error) {
			return nil, domain.ErrInvalidActivationCode
		},
	}
	h := NewAuthHandler(svc, newTestLogger())

	body := `{"activationCode":"USED1234","username":"bob_2","email":"b@example.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for used code, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "invalid activation code" {
		t.Fatalf("unexpected error message: %q", resp.Error)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		LoginFunc: func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(svc, newTestLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"alice01","password":"wrong"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_UsesBearerToken(t *testing.T) {
	t.Parallel()

	var revoked string
	svc := &authServiceMock{
		LogoutFunc: func(ctx context.Context, token string) error {
			revoked = token
			return nil
		},
	}
	h := NewAuthHandler(svc, newTestLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req = req.WithContext(ctxutil.WithSessionToken(req.Context(), "tok-xyz"))
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if revoked != "tok-xyz" {
		t.Fatalf("expected token from context revoked, got %q", revoked)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&authServiceMock{}, newTestLogger())

	sc := &domain.SessionContext{UserID: uuid.New(), Username: "alice01", Email: "a@example.com"}
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(ctxutil.WithSession(req.Context(), sc))
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Username != "alice01" || resp.ID != sc.UserID.String() {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Me_Anonymous(t *testing.T) {
	t.Parallel()

	h := NewAuthHandler(&authServiceMock{}, newTestLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_CheckActivationCode(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		CheckActivationCodeFunc: func(ctx context.Context, code string) (bool, error) {
			return code == "FREE1234", nil
		},
	}
	h := NewAuthHandler(svc, newTestLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/check-activation-code",
		strings.NewReader(`{"activationCode":"FREE1234"}`))
	rec := httptest.NewRecorder()

	h.CheckActivationCode(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp checkCodeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Valid {
		t.Fatal("expected valid=true")
	}
}

func TestAuthHandler_GenerateCodes(t *testing.T) {
	t.Parallel()

	svc := &authServiceMock{
		CreateActivationCodesFunc: func(ctx context.Context, input auth.GenerateCodesInput) ([]string, error) {
			if input.Count != 3 {
				t.Errorf("expected count 3, got %d", input.Count)
			}
			return []string{"AAAA", "BBBB", "CCCC"}, nil
		},
	}
	h := NewAuthHandler(svc, newTestLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/generate-codes",
		strings.NewReader(`{"count":3}`))
	rec := httptest.NewRecorder()

	h.GenerateCodes(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp codesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Codes) != 3 {
		t.Fatalf("expected 3 codes, got %d", len(resp.Codes))
	}
}
