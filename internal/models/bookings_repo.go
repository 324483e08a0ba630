package models

import (
	"context"
	"fmt"

	"github.com/joshua-takyi/carrental/internal/connect"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	ListBookings(ctx context.Context, limit int) ([]*Booking, error)
	CountBookings(ctx context.Context) (int64, error)
	EnsureBookingIndexes(ctx context.Context) error
	State() connect.State
}

// EnsureBookingIndexes creates the advisory unique index on bookingId. The
// index backs duplicate-key detection; collisions that slip past it are
// still caught by the retry policy in the service layer.
func (mdb *MongodbRepo) EnsureBookingIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(BookingDbName, BookingColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	_, err = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "bookingId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("error creating bookingId index: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	if err := booking.ValidateBooking(); err != nil {
		return nil, err
	}
	if err := booking.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare booking for creation: %w", err)
	}

	col, err := mdb.GetCollection(BookingDbName, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if _, err := col.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, booking.BookingID)
		}
		return nil, fmt.Errorf("error inserting booking: %w", err)
	}

	return booking, nil
}

func (mdb *MongodbRepo) ListBookings(ctx context.Context, limit int) ([]*Booking, error) {
	col, err := mdb.GetCollection(BookingDbName, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*Booking
	for cursor.Next(ctx) {
		var booking Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return bookings, nil
}

func (mdb *MongodbRepo) CountBookings(ctx context.Context) (int64, error) {
	col, err := mdb.GetCollection(BookingDbName, BookingColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %w", err)
	}

	count, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("error counting bookings: %w", err)
	}
	return count, nil
}
