// File: database/repository/booking/mongo.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"janjitemu/database"
	"janjitemu/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() (BookingRepository, error) {
	db := database.MongoClient.Database("janjitemu")
	repo := &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

// EnsureIndexes creates the indexes on the bookings collection. The unique
// compound index on (date, time, officer) is what turns the read-then-append
// availability check into a conditional write: a second session racing for
// the same slot fails at insert instead of double-booking.
func (r *mongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}, {Key: "officer", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_date_time_officer"),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "officer", Value: 1}},
			Options: options.Index().SetName("date_officer_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

// Append inserts a new confirmed booking record.
func (r *mongoBookingRepo) Append(ctx context.Context, booking models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusConfirmed
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}

	_, err := r.coll.InsertOne(ctx, booking)
	if mongo.IsDuplicateKeyError(err) {
		return ErrSlotTaken
	}
	if err != nil {
		return fmt.Errorf("failed to append booking: %w", err)
	}
	return nil
}

// ListAll returns every booking record.
func (r *mongoBookingRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListByDateOfficer returns the bookings for a given date and officer.
func (r *mongoBookingRepo) ListByDateOfficer(ctx context.Context, date, officer string) ([]models.Booking, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"date": date, "officer": officer})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
