package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	userRepo "careerpath/database/repository/user"
	"careerpath/models"
	"careerpath/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const emailTakenMessage = "A user with this email already exists."

// Register creates a student account and signs it in.
func (s *DefaultUserService) Register(ctx context.Context, req models.UserRegistrationRequest) (*models.AuthResponse, error) {
	u, err := s.createUser(ctx, req, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	return s.issueSession(ctx, u)
}

// RegisterCounselor creates a counselor account plus its profile and signs it in.
// Availability is validated before anything is written.
func (s *DefaultUserService) RegisterCounselor(ctx context.Context, req models.CounselorRegistrationRequest) (*models.AuthResponse, error) {
	windows := make([]models.AvailabilityWindow, 0, len(req.Availability))
	for i, in := range req.Availability {
		w, err := in.ToWindow()
		if err != nil {
			return nil, utils.NewInvalidRequest(fmt.Sprintf("Availability window %d: %v", i+1, err))
		}
		windows = append(windows, w)
	}

	u, err := s.createUser(ctx, req.UserRegistrationRequest, models.RoleCounselor)
	if err != nil {
		return nil, err
	}

	now := s.now()
	profile := &models.Counselor{
		ID:              uuid.New().String(),
		UserID:          u.ID,
		Specializations: req.Specializations,
		Bio:             strings.TrimSpace(req.Bio),
		Availability:    windows,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if profile.Specializations == nil {
		profile.Specializations = []string{}
	}
	if err := s.Counselors.Create(ctx, profile); err != nil {
		return nil, utils.NewServerError("Failed to create counselor profile.", err)
	}
	utils.GetLogger().Info("Counselor registered", zap.String("userID", u.ID), zap.String("counselorID", profile.ID))
	return s.issueSession(ctx, u)
}

func (s *DefaultUserService) createUser(ctx context.Context, req models.UserRegistrationRequest, role models.Role) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || req.Password == "" {
		return nil, utils.NewInvalidRequest("Name, email and password are required.")
	}
	if len(req.Password) < 6 {
		return nil, utils.NewInvalidRequest("Password must be at least 6 characters long.")
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, userRepo.ErrNotFound) {
		return nil, utils.NewServerError("Registration failed, please try again.", err)
	}
	if existing != nil {
		return nil, utils.NewConflict(emailTakenMessage)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewServerError("Registration failed, please try again.", err)
	}

	now := s.now()
	u := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			return nil, utils.NewConflict(emailTakenMessage)
		}
		return nil, utils.NewServerError("Registration failed, please try again.", err)
	}
	return u, nil
}
