package user

import (
	"context"
	"errors"

	userRepo "careerpath/database/repository/user"
	"careerpath/models"
	"careerpath/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Invalid email or password."

// Login verifies credentials and issues a fresh token.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	if email == "" || password == "" {
		return nil, utils.NewInvalidRequest("Email and password are required.")
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, utils.NewUnauthorized(invalidCredentials)
		}
		return nil, utils.NewServerError("Authentication failed, please try again.", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, utils.NewUnauthorized(invalidCredentials)
	}
	return s.issueSession(ctx, u)
}

// Logout revokes the user's active token.
func (s *DefaultUserService) Logout(ctx context.Context, userID string) error {
	if err := s.Repo.SetTokenHash(ctx, userID, ""); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return utils.NewNotFound("User not found.")
		}
		return utils.NewServerError("Failed to sign out.", err)
	}
	if s.AuthCache != nil {
		if err := s.AuthCache.Del(ctx, AuthCacheKey(userID)).Err(); err != nil {
			utils.GetLogger().Warn("Failed to clear auth cache", zap.String("userID", userID), zap.Error(err))
		}
	}
	return nil
}
