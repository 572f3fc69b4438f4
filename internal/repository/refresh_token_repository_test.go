package repository

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

func seedRefreshToken(t *testing.T, userID uuid.UUID) *domain.RefreshToken {
	t.Helper()
	repo := NewRefreshTokenRepository(testDB)

	token := &domain.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     "token-" + uuid.NewString(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
		CreatedAt: time.Now(),
	}
	if err := repo.Create(context.Background(), token); err != nil {
		t.Fatalf("failed to seed refresh token: %v", err)
	}
	t.Cleanup(func() {
		_, _ = testDB.Exec("DELETE FROM refresh_tokens WHERE id = $1", token.ID)
	})
	return token
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	userID := seedBuyer(t)
	repo := NewRefreshTokenRepository(testDB)
	ctx := context.Background()

	token := seedRefreshToken(t, userID)

	retrieved, err := repo.FindByToken(ctx, token.Token)
	if err != nil {
		t.Fatalf("failed to find token: %v", err)
	}
	if retrieved.UserID != userID {
		t.Errorf("user mismatch: %s", retrieved.UserID)
	}
	if retrieved.Revoked {
		t.Error("fresh token marked revoked")
	}
}

func TestRefreshTokenRevocation(t *testing.T) {
	userID := seedBuyer(t)
	repo := NewRefreshTokenRepository(testDB)
	ctx := context.Background()

	token := seedRefreshToken(t, userID)

	if err := repo.Revoke(ctx, token.Token); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	if _, err := repo.FindByToken(ctx, token.Token); err != ErrRefreshTokenRevoked {
		t.Errorf("expected ErrRefreshTokenRevoked, got %v", err)
	}

	// Revoking again still succeeds; the row exists
	if err := repo.Revoke(ctx, token.Token); err != nil {
		t.Errorf("second revoke failed: %v", err)
	}
}

func TestRefreshTokenNotFound(t *testing.T) {
	repo := NewRefreshTokenRepository(testDB)
	ctx := context.Background()

	if _, err := repo.FindByToken(ctx, "no-such-token"); err != ErrRefreshTokenNotFound {
		t.Errorf("expected ErrRefreshTokenNotFound, got %v", err)
	}
	if err := repo.Revoke(ctx, "no-such-token"); err != ErrRefreshTokenNotFound {
		t.Errorf("expected ErrRefreshTokenNotFound on revoke, got %v", err)
	}
}

func TestRefreshTokenCascadesWithUser(t *testing.T) {
	userID := seedBuyer(t)
	repo := NewRefreshTokenRepository(testDB)
	ctx := context.Background()

	token := seedRefreshToken(t, userID)

	if _, err := testDB.Exec("DELETE FROM users WHERE id = $1", userID); err != nil {
		t.Fatalf("failed to delete user: %v", err)
	}

	if _, err := repo.FindByToken(ctx, token.Token); err != ErrRefreshTokenNotFound {
		t.Errorf("expected token to cascade with its user, got %v", err)
	}
}
