package user

import (
	"context"
	"time"

	counselorRepo "careerpath/database/repository/counselor"
	userRepo "careerpath/database/repository/user"
	"careerpath/models"

	"github.com/go-redis/redis/v8"
)

type UserService interface {
	// Registration
	Register(ctx context.Context, req models.UserRegistrationRequest) (*models.AuthResponse, error)
	RegisterCounselor(ctx context.Context, req models.CounselorRegistrationRequest) (*models.AuthResponse, error)

	// Authentication
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Logout(ctx context.Context, userID string) error
}

// DefaultUserService is the production implementation.
// AuthCache may be nil, in which case sessions are checked against Mongo only.
type DefaultUserService struct {
	Repo       userRepo.UserRepository
	Counselors counselorRepo.CounselorRepository
	AuthCache  *redis.Client
	TokenTTL   time.Duration
	Now        func() time.Time
}

// NewDefaultUserService wires the service with the wall clock.
func NewDefaultUserService(repo userRepo.UserRepository, counselors counselorRepo.CounselorRepository, authCache *redis.Client, tokenTTL time.Duration) *DefaultUserService {
	return &DefaultUserService{
		Repo:       repo,
		Counselors: counselors,
		AuthCache:  authCache,
		TokenTTL:   tokenTTL,
		Now:        time.Now,
	}
}

func (s *DefaultUserService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultUserService) tokenTTL() time.Duration {
	if s.TokenTTL <= 0 {
		return 24 * time.Hour
	}
	return s.TokenTTL
}
