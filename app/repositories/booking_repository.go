package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/rasoi/app/models"
	"github.com/shashiranjanraj/rasoi/pkg/metrics"
)

// BookingRepository persists event bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Booking, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error)
	FindByServices(ctx context.Context, serviceIDs []primitive.ObjectID) ([]models.Booking, error)
	All(ctx context.Context) ([]models.Booking, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error
}

type mongoBookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) BookingRepository {
	return &mongoBookingRepository{col: db.Collection("bookings")}
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	defer metrics.ObserveDBQuery("bookings", "insert", time.Now())

	booking.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, booking)
	if err != nil {
		return err
	}
	booking.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Booking, error) {
	defer metrics.ObserveDBQuery("bookings", "findOne", time.Now())

	var booking models.Booking
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Booking{}, ErrNotFound
	}
	return booking, err
}

func (r *mongoBookingRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error) {
	defer metrics.ObserveDBQuery("bookings", "find", time.Now())
	return r.findAll(ctx, bson.M{"user": userID})
}

func (r *mongoBookingRepository) FindByServices(ctx context.Context, serviceIDs []primitive.ObjectID) ([]models.Booking, error) {
	defer metrics.ObserveDBQuery("bookings", "find", time.Now())

	if len(serviceIDs) == 0 {
		return []models.Booking{}, nil
	}
	return r.findAll(ctx, bson.M{"cateringService": bson.M{"$in": serviceIDs}})
}

func (r *mongoBookingRepository) All(ctx context.Context) ([]models.Booking, error) {
	defer metrics.ObserveDBQuery("bookings", "find", time.Now())
	return r.findAll(ctx, bson.M{})
}

func (r *mongoBookingRepository) findAll(ctx context.Context, query bson.M) ([]models.Booking, error) {
	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoBookingRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	defer metrics.ObserveDBQuery("bookings", "update", time.Now())

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
