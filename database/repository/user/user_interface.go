package userRepo

import (
	"careerpath/models"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the email unique index rejects an insert.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByIDs retrieves the users with the given IDs keyed by ID. Unknown IDs are skipped.
	GetByIDs(ctx context.Context, ids []string) (map[string]models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// SetTokenHash stores (or clears, with "") the hash of the user's active session token.
	SetTokenHash(ctx context.Context, id, tokenHash string) error
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.User, error)
	// EnsureIndexes creates the collection indexes.
	EnsureIndexes(ctx context.Context) error
}
