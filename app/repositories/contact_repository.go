package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/rasoi/app/models"
	"github.com/shashiranjanraj/rasoi/pkg/metrics"
)

// ContactRepository persists support messages.
type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	All(ctx context.Context) ([]models.ContactMessage, error)
}

type mongoContactRepository struct {
	col *mongo.Collection
}

func NewContactRepository(db *mongo.Database) ContactRepository {
	return &mongoContactRepository{col: db.Collection("contacts")}
}

func (r *mongoContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	defer metrics.ObserveDBQuery("contacts", "insert", time.Now())

	msg.Date = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, msg)
	if err != nil {
		return err
	}
	msg.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoContactRepository) All(ctx context.Context) ([]models.ContactMessage, error) {
	defer metrics.ObserveDBQuery("contacts", "find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	messages := []models.ContactMessage{}
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
