package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/personeltakip/backend/internal/models"
	"github.com/personeltakip/backend/internal/repository"
)

// CredentialVerifier checks a phone/password pair. Every denial reason maps to
// ErrInvalidCredentials so callers cannot tell which part was wrong.
type CredentialVerifier struct {
	users  UserStore
	hasher *PasswordHasher
}

func NewCredentialVerifier(users UserStore, hasher *PasswordHasher) *CredentialVerifier {
	return &CredentialVerifier{users: users, hasher: hasher}
}

func (v *CredentialVerifier) Verify(ctx context.Context, phone, password string) (*models.User, error) {
	user, err := v.users.GetByPhone(ctx, phone)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !user.IsActive || !v.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
