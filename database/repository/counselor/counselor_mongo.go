package counselorRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"careerpath/database"
	"careerpath/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCounselorRepo implements CounselorRepository using MongoDB.
type MongoCounselorRepo struct {
	coll *mongo.Collection
}

// NewMongoCounselorRepo creates a new instance of CounselorRepository using MongoDB.
func NewMongoCounselorRepo() CounselorRepository {
	return &MongoCounselorRepo{coll: database.DB().Collection("counselors")}
}

func (r *MongoCounselorRepo) findOne(ctx context.Context, filter bson.M) (*models.Counselor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var counselor models.Counselor
	if err := r.coll.FindOne(ctx, filter).Decode(&counselor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch counselor: %w", err)
	}
	return &counselor, nil
}

func (r *MongoCounselorRepo) GetByID(ctx context.Context, id string) (*models.Counselor, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoCounselorRepo) GetByUserID(ctx context.Context, userID string) (*models.Counselor, error) {
	return r.findOne(ctx, bson.M{"user": userID})
}

func (r *MongoCounselorRepo) GetByIDs(ctx context.Context, ids []string) (map[string]models.Counselor, error) {
	counselors := make(map[string]models.Counselor, len(ids))
	if len(ids) == 0 {
		return counselors, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve counselors: %w", err)
	}
	defer cursor.Close(ctx)

	var found []models.Counselor
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("failed to decode counselors: %w", err)
	}
	for _, c := range found {
		counselors[c.ID] = c
	}
	return counselors, nil
}

func (r *MongoCounselorRepo) GetAll(ctx context.Context) ([]models.Counselor, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve counselors: %w", err)
	}
	defer cursor.Close(ctx)

	counselors := []models.Counselor{}
	for cursor.Next(ctx) {
		var c models.Counselor
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode counselor: %w", err)
		}
		counselors = append(counselors, c)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return counselors, nil
}

func (r *MongoCounselorRepo) Create(ctx context.Context, counselor *models.Counselor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	counselor.CreatedAt = now
	counselor.UpdatedAt = now
	if counselor.Availability == nil {
		counselor.Availability = []models.AvailabilityWindow{}
	}

	if _, err := r.coll.InsertOne(ctx, counselor); err != nil {
		return fmt.Errorf("failed to create counselor: %w", err)
	}
	return nil
}

func (r *MongoCounselorRepo) UpdateAvailability(ctx context.Context, id string, windows []models.AvailabilityWindow) (*models.Counselor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"availability": windows,
		"updatedAt":    time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var counselor models.Counselor
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&counselor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update availability for counselor %s: %w", id, err)
	}
	return &counselor, nil
}
