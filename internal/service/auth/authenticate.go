package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/lemarche/marketplace-backend/internal/domain"
)

// Authenticate resolves a bearer credential to a user id. The credential is
// either a JWT access token or, for API consumers, the user's API key.
// Returns ErrUnauthorized when neither matches or the account is inactive.
func (s *Service) Authenticate(ctx context.Context, token string) (int64, error) {
	if userID, _, err := s.jwt.ValidateAccessToken(token); err == nil {
		return userID, nil
	}

	user, err := s.users.GetByAPIKey(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrUnauthorized
		}
		return 0, fmt.Errorf("auth.Authenticate: %w", err)
	}
	if !user.IsActive {
		return 0, domain.ErrUnauthorized
	}
	return user.ID, nil
}
