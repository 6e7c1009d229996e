package testhelper

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vocaquiz/backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedCode inserts one unredeemed activation code and returns it.
func SeedCode(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	ctx := context.Background()

	code := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:16]

	_, err := pool.Exec(ctx,
		`INSERT INTO accounts (id, activation_code) VALUES ($1, $2)`,
		uuid.New(), code,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCode insert: %v", err)
	}

	return code
}

// SeedAccount creates a fully activated account with a bcrypt-free sentinel
// password hash. Returns a filled domain.Account.
func SeedAccount(t *testing.T, pool *pgxpool.Pool) domain.Account {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	username := "testuser_" + suffix
	email := "testuser-" + suffix + "@example.com"
	hash := "not-a-real-hash-" + suffix
	code := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:16]
	now := time.Now().UTC().Truncate(time.Microsecond)

	account := domain.Account{
		ID:             uuid.New(),
		ActivationCode: code,
		Username:       &username,
		Email:          &email,
		PasswordHash:   &hash,
		CreatedAt:      now,
		ActivatedAt:    &now,
		IsActive:       true,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO accounts (id, activation_code, username, email, password_hash, created_at, activated_at, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)`,
		account.ID, account.ActivationCode, account.Username, account.Email,
		account.PasswordHash, account.CreatedAt, account.ActivatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAccount insert: %v", err)
	}

	return account
}

// SeedCorpus inserts words into system_vocabulary at the given level.
func SeedCorpus(t *testing.T, pool *pgxpool.Pool, level string, words ...string) {
	t.Helper()
	ctx := context.Background()

	for _, w := range words {
		_, err := pool.Exec(ctx,
			`INSERT INTO system_vocabulary (word, level) VALUES ($1, $2)
			 ON CONFLICT (word, level) DO NOTHING`,
			w, level,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedCorpus insert %q: %v", w, err)
		}
	}
}

// SeedLibraryEntry adds a word to the account's library with a translation.
func SeedLibraryEntry(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, word, translation string) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO vocabulary_library (user_id, word, translation, added_from)
		 VALUES ($1, $2, $3, 'manual')`,
		userID, word, translation,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLibraryEntry insert %q: %v", word, err)
	}
}
