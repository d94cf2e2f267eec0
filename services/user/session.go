package user

import (
	"context"

	"careerpath/models"
	"careerpath/utils"

	"go.uber.org/zap"
)

// AuthCacheKey is where the active token hash of a user is cached.
func AuthCacheKey(userID string) string {
	return utils.AuthCachePrefix + userID
}

// issueSession signs a token for u, records its hash and primes the auth cache.
// Issuing a new token invalidates the previous one.
func (s *DefaultUserService) issueSession(ctx context.Context, u *models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, string(u.Role), s.tokenTTL())
	if err != nil {
		return nil, utils.NewServerError("Failed to generate auth token.", err)
	}

	hash := utils.HashToken(token)
	if err := s.Repo.SetTokenHash(ctx, u.ID, hash); err != nil {
		return nil, utils.NewServerError("Failed to store session.", err)
	}
	u.TokenHash = hash

	if s.AuthCache != nil {
		if err := s.AuthCache.Set(ctx, AuthCacheKey(u.ID), hash, utils.AuthCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("Failed to prime auth cache", zap.String("userID", u.ID), zap.Error(err))
		}
	}
	return &models.AuthResponse{User: *u, Token: token}, nil
}
