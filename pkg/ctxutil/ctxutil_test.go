package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/vocaquiz/backend/internal/domain"
)

func TestWithSession_And_SessionFromCtx(t *testing.T) {
	t.Parallel()

	sc := &domain.SessionContext{UserID: uuid.New(), Username: "alice_1"}
	ctx := WithSession(context.Background(), sc)

	got, ok := SessionFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for stored session")
	}
	if got != sc {
		t.Fatalf("expected %+v, got %+v", sc, got)
	}
}

func TestSessionFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got, ok := SessionFromCtx(context.Background())
	if ok {
		t.Fatal("expected ok=false for empty context")
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestSessionFromCtx_NilSession(t *testing.T) {
	t.Parallel()

	ctx := WithSession(context.Background(), nil)

	got, ok := SessionFromCtx(ctx)
	if ok {
		t.Fatal("expected ok=false for nil session")
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestSessionFromCtx_WrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), ctxKey("session"), "not-a-session")

	got, ok := SessionFromCtx(ctx)
	if ok {
		t.Fatal("expected ok=false for wrong type")
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestWithSessionToken_And_SessionTokenFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithSessionToken(context.Background(), "tok-abc")

	if got := SessionTokenFromCtx(ctx); got != "tok-abc" {
		t.Fatalf("expected tok-abc, got %s", got)
	}
}

func TestSessionTokenFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	if got := SessionTokenFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}

func TestWithRequestID_And_RequestIDFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")

	got := RequestIDFromCtx(ctx)
	if got != "req-123" {
		t.Fatalf("expected req-123, got %s", got)
	}
}

func TestRequestIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got := RequestIDFromCtx(context.Background())
	if got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}

func TestRequestIDFromCtx_WrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), ctxKey("request_id"), 12345)

	got := RequestIDFromCtx(ctx)
	if got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}
