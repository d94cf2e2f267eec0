package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"careerpath/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the appointments collection.
func (r *MongoAppointmentRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels()); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}

func indexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Last-resort guard against two bookings of the same start time.
		// Partial on Scheduled so a cancelled slot can be booked again.
		{
			Keys: bson.D{{Key: "counselor", Value: 1}, {Key: "appointmentTime", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_counselor_time").
				SetPartialFilterExpression(bson.M{"status": models.StatusScheduled}),
		},
		{
			Keys:    bson.D{{Key: "counselor", Value: 1}, {Key: "status", Value: 1}, {Key: "appointmentTime", Value: 1}},
			Options: options.Index().SetName("counselor_status_time_idx"),
		},
		{
			Keys:    bson.D{{Key: "student", Value: 1}, {Key: "appointmentTime", Value: -1}},
			Options: options.Index().SetName("student_time_idx"),
		},
	}
}
