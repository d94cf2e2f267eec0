package counselorRepo

import (
	"careerpath/models"
	"context"
	"errors"
)

// ErrNotFound is returned when no counselor matches the lookup.
var ErrNotFound = errors.New("counselor not found")

// CounselorRepository defines methods for counselor profile access.
type CounselorRepository interface {
	// GetByID retrieves a counselor by its profile ID.
	GetByID(ctx context.Context, id string) (*models.Counselor, error)
	// GetByUserID retrieves the counselor profile linked to a user account.
	GetByUserID(ctx context.Context, userID string) (*models.Counselor, error)
	// GetByIDs retrieves the counselors with the given IDs keyed by ID. Unknown IDs are skipped.
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Counselor, error)
	// GetAll retrieves all counselors, most recently created first.
	GetAll(ctx context.Context) ([]models.Counselor, error)
	// Create inserts a new counselor profile.
	Create(ctx context.Context, counselor *models.Counselor) error
	// UpdateAvailability replaces the availability windows of a counselor.
	UpdateAvailability(ctx context.Context, id string, windows []models.AvailabilityWindow) (*models.Counselor, error)
	// EnsureIndexes creates the collection indexes.
	EnsureIndexes(ctx context.Context) error
}
