package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vocaquiz/backend/internal/adapter/postgres/account"
	"github.com/vocaquiz/backend/internal/adapter/postgres/testhelper"
	"github.com/vocaquiz/backend/internal/domain"
)

func TestRepo_Redeem(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := account.New(pool)
	ctx := context.Background()

	code := testhelper.SeedCode(t, pool)

	free, err := repo.CodeIsFree(ctx, code)
	if err != nil {
		t.Fatalf("CodeIsFree: %v", err)
	}
	if !free {
		t.Fatal("expected fresh code to be free")
	}

	acc, err := repo.Redeem(ctx, code, "alice_1", "alice1@example.com", "hash")
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if acc.Username == nil || *acc.Username != "alice_1" {
		t.Fatalf("expected username alice_1, got %v", acc.Username)
	}
	if !acc.IsActive {
		t.Fatal("expected redeemed account to be active")
	}
	if acc.ActivatedAt == nil {
		t.Fatal("expected activated_at to be set")
	}

	// A code is single use.
	_, err = repo.Redeem(ctx, code, "bob_1", "bob1@example.com", "hash")
	if !errors.Is(err, domain.ErrInvalidActivationCode) {
		t.Fatalf("expected ErrInvalidActivationCode on second redeem, got %v", err)
	}

	free, err = repo.CodeIsFree(ctx, code)
	if err != nil {
		t.Fatalf("CodeIsFree after redeem: %v", err)
	}
	if free {
		t.Fatal("expected redeemed code to no longer be free")
	}
}

func TestRepo_Redeem_UnknownCode(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := account.New(pool)

	_, err := repo.Redeem(context.Background(), "NOPE000000000000", "carol_1", "carol1@example.com", "hash")
	if !errors.Is(err, domain.ErrInvalidActivationCode) {
		t.Fatalf("expected ErrInvalidActivationCode, got %v", err)
	}
}

func TestRepo_Redeem_DuplicateUsername(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := account.New(pool)
	ctx := context.Background()

	existing := testhelper.SeedAccount(t, pool)
	code := testhelper.SeedCode(t, pool)

	_, err := repo.Redeem(ctx, code, *existing.Username, "other@example.com", "hash")
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRepo_GetByUsername(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := account.New(pool)
	ctx := context.Background()

	seeded := testhelper.SeedAccount(t, pool)

	acc, err := repo.GetByUsername(ctx, *seeded.Username)
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if acc.ID != seeded.ID {
		t.Fatalf("expected account %s, got %s", seeded.ID, acc.ID)
	}

	_, err = repo.GetByUsername(ctx, "no_such_user")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_InsertCode(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := account.New(pool)
	ctx := context.Background()

	if err := repo.InsertCode(ctx, "AAAA111122223333"); err != nil {
		t.Fatalf("InsertCode: %v", err)
	}

	err := repo.InsertCode(ctx, "AAAA111122223333")
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists on duplicate code, got %v", err)
	}
}
