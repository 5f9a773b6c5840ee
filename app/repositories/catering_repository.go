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

// ServiceFilter narrows catering service listings. Nil fields match all.
type ServiceFilter struct {
	Location *string
}

// CateringServiceRepository persists provider listings.
type CateringServiceRepository interface {
	Create(ctx context.Context, svc *models.CateringService) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.CateringService, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.CateringService, error)
	Find(ctx context.Context, filter ServiceFilter) ([]models.CateringService, error)
	FindByManager(ctx context.Context, managerID primitive.ObjectID) ([]models.CateringService, error)
	Update(ctx context.Context, svc *models.CateringService) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	PushCategory(ctx context.Context, serviceID, categoryID primitive.ObjectID) error
	PushMenuItem(ctx context.Context, serviceID, itemID primitive.ObjectID) error
}

type mongoCateringRepository struct {
	col *mongo.Collection
}

func NewCateringServiceRepository(db *mongo.Database) CateringServiceRepository {
	return &mongoCateringRepository{col: db.Collection("cateringservices")}
}

func (r *mongoCateringRepository) Create(ctx context.Context, svc *models.CateringService) error {
	defer metrics.ObserveDBQuery("cateringservices", "insert", time.Now())

	if svc.Categories == nil {
		svc.Categories = []primitive.ObjectID{}
	}
	if svc.MenuItems == nil {
		svc.MenuItems = []primitive.ObjectID{}
	}
	svc.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, svc)
	if err != nil {
		return err
	}
	svc.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoCateringRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.CateringService, error) {
	defer metrics.ObserveDBQuery("cateringservices", "findOne", time.Now())

	var svc models.CateringService
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&svc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.CateringService{}, ErrNotFound
	}
	return svc, err
}

func (r *mongoCateringRepository) Find(ctx context.Context, filter ServiceFilter) ([]models.CateringService, error) {
	defer metrics.ObserveDBQuery("cateringservices", "find", time.Now())

	query := bson.M{}
	if filter.Location != nil {
		query["location"] = primitive.Regex{Pattern: *filter.Location, Options: "i"}
	}
	return r.findAll(ctx, query)
}

func (r *mongoCateringRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.CateringService, error) {
	defer metrics.ObserveDBQuery("cateringservices", "find", time.Now())

	if len(ids) == 0 {
		return []models.CateringService{}, nil
	}
	return r.findAll(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *mongoCateringRepository) FindByManager(ctx context.Context, managerID primitive.ObjectID) ([]models.CateringService, error) {
	defer metrics.ObserveDBQuery("cateringservices", "find", time.Now())
	return r.findAll(ctx, bson.M{"manager": managerID})
}

func (r *mongoCateringRepository) findAll(ctx context.Context, query bson.M) ([]models.CateringService, error) {
	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	services := []models.CateringService{}
	if err := cur.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *mongoCateringRepository) Update(ctx context.Context, svc *models.CateringService) error {
	defer metrics.ObserveDBQuery("cateringservices", "replace", time.Now())

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": svc.ID}, svc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoCateringRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveDBQuery("cateringservices", "delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoCateringRepository) PushCategory(ctx context.Context, serviceID, categoryID primitive.ObjectID) error {
	defer metrics.ObserveDBQuery("cateringservices", "update", time.Now())

	_, err := r.col.UpdateOne(ctx, bson.M{"_id": serviceID}, bson.M{"$push": bson.M{"categories": categoryID}})
	return err
}

func (r *mongoCateringRepository) PushMenuItem(ctx context.Context, serviceID, itemID primitive.ObjectID) error {
	defer metrics.ObserveDBQuery("cateringservices", "update", time.Now())

	_, err := r.col.UpdateOne(ctx, bson.M{"_id": serviceID}, bson.M{"$push": bson.M{"menuItems": itemID}})
	return err
}
