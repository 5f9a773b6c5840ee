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

// FeedbackRepository persists service ratings. Listings are newest-first.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *models.Feedback) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Feedback, error)
	FindByService(ctx context.Context, serviceID primitive.ObjectID) ([]models.Feedback, error)
	All(ctx context.Context) ([]models.Feedback, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoFeedbackRepository struct {
	col *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) FeedbackRepository {
	return &mongoFeedbackRepository{col: db.Collection("feedbacks")}
}

func (r *mongoFeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	defer metrics.ObserveDBQuery("feedbacks", "insert", time.Now())

	fb.Date = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, fb)
	if err != nil {
		return err
	}
	fb.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoFeedbackRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Feedback, error) {
	defer metrics.ObserveDBQuery("feedbacks", "findOne", time.Now())

	var fb models.Feedback
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&fb)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Feedback{}, ErrNotFound
	}
	return fb, err
}

func (r *mongoFeedbackRepository) FindByService(ctx context.Context, serviceID primitive.ObjectID) ([]models.Feedback, error) {
	defer metrics.ObserveDBQuery("feedbacks", "find", time.Now())
	return r.findAll(ctx, bson.M{"cateringService": serviceID})
}

func (r *mongoFeedbackRepository) All(ctx context.Context) ([]models.Feedback, error) {
	defer metrics.ObserveDBQuery("feedbacks", "find", time.Now())
	return r.findAll(ctx, bson.M{})
}

func (r *mongoFeedbackRepository) findAll(ctx context.Context, query bson.M) ([]models.Feedback, error) {
	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	feedbacks := []models.Feedback{}
	if err := cur.All(ctx, &feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (r *mongoFeedbackRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveDBQuery("feedbacks", "delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
