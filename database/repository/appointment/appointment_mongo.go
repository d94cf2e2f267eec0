package appointmentRepo

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

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo() AppointmentRepository {
	return &MongoAppointmentRepo{coll: database.DB().Collection("appointments")}
}

func scheduledBetweenFilter(counselorID string, from, to time.Time) bson.M {
	return bson.M{
		"counselor":       counselorID,
		"status":          models.StatusScheduled,
		"appointmentTime": bson.M{"$gte": from, "$lt": to},
	}
}

func overlappingFilter(counselorID string, start, end time.Time) bson.M {
	return bson.M{
		"counselor":       counselorID,
		"status":          models.StatusScheduled,
		"appointmentTime": bson.M{"$lt": end},
		"endTime":         bson.M{"$gt": start},
	}
}

func statusUpdate(status models.AppointmentStatus, notes string, now time.Time) bson.M {
	set := bson.M{
		"status":    status,
		"updatedAt": now,
	}
	if notes != "" {
		set["notes"] = notes
	}
	return bson.M{"$set": set}
}

// Create inserts a new appointment document.
func (r *MongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("error creating appointment: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment document by ID.
func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

// FindScheduledBetween fetches Scheduled appointments starting within [from, to).
func (r *MongoAppointmentRepo) FindScheduledBetween(ctx context.Context, counselorID string, from, to time.Time) ([]models.Appointment, error) {
	return r.find(ctx, scheduledBetweenFilter(counselorID, from, to), options.Find().SetSort(bson.D{{Key: "appointmentTime", Value: 1}}))
}

// FindScheduledOverlapping fetches Scheduled appointments intersecting [start, end).
func (r *MongoAppointmentRepo) FindScheduledOverlapping(ctx context.Context, counselorID string, start, end time.Time) ([]models.Appointment, error) {
	return r.find(ctx, overlappingFilter(counselorID, start, end), nil)
}

// UpdateStatus sets status (and notes) and returns the updated document.
func (r *MongoAppointmentRepo) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus, notes string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var appt models.Appointment
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, statusUpdate(status, notes, time.Now()), opts).Decode(&appt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateSlot
		}
		return nil, fmt.Errorf("error updating appointment %s: %w", id, err)
	}
	return &appt, nil
}

// ListByStudent fetches all appointments of a student, newest first.
func (r *MongoAppointmentRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"student": studentID}, options.Find().SetSort(bson.D{{Key: "appointmentTime", Value: -1}}))
}

// ListByCounselor fetches all appointments of a counselor, newest first.
func (r *MongoAppointmentRepo) ListByCounselor(ctx context.Context, counselorID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"counselor": counselorID}, options.Find().SetSort(bson.D{{Key: "appointmentTime", Value: -1}}))
}

func (r *MongoAppointmentRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if opts == nil {
		opts = options.Find()
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}
