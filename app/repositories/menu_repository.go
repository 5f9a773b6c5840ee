package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/rasoi/app/models"
	"github.com/shashiranjanraj/rasoi/pkg/metrics"
)

// MenuCategoryRepository persists Veg / Non-Veg menu sections.
type MenuCategoryRepository interface {
	Create(ctx context.Context, category *models.MenuCategory) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.MenuCategory, error)
	FindByService(ctx context.Context, serviceID primitive.ObjectID) ([]models.MenuCategory, error)
	FindByName(ctx context.Context, name models.CategoryLabel) ([]models.MenuCategory, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ItemFilter narrows menu item queries. Nil fields match all.
type ItemFilter struct {
	ServiceID  *primitive.ObjectID
	CategoryID *primitive.ObjectID
	MinPrice   *float64
	MaxPrice   *float64
}

// MenuItemRepository persists dishes.
type MenuItemRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.MenuItem, error)
	Find(ctx context.Context, filter ItemFilter) ([]models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoCategoryRepository struct {
	col *mongo.Collection
}

func NewMenuCategoryRepository(db *mongo.Database) MenuCategoryRepository {
	return &mongoCategoryRepository{col: db.Collection("menucategories")}
}

func (r *mongoCategoryRepository) Create(ctx context.Context, category *models.MenuCategory) error {
	defer metrics.ObserveDBQuery("menucategories", "insert", time.Now())

	res, err := r.col.InsertOne(ctx, category)
	if err != nil {
		return err
	}
	category.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoCategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.MenuCategory, error) {
	defer metrics.ObserveDBQuery("menucategories", "findOne", time.Now())

	var category models.MenuCategory
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.MenuCategory{}, ErrNotFound
	}
	return category, err
}

func (r *mongoCategoryRepository) FindByService(ctx context.Context, serviceID primitive.ObjectID) ([]models.MenuCategory, error) {
	defer metrics.ObserveDBQuery("menucategories", "find", time.Now())
	return r.findAll(ctx, bson.M{"cateringService": serviceID})
}

func (r *mongoCategoryRepository) FindByName(ctx context.Context, name models.CategoryLabel) ([]models.MenuCategory, error) {
	defer metrics.ObserveDBQuery("menucategories", "find", time.Now())
	return r.findAll(ctx, bson.M{"name": name})
}

func (r *mongoCategoryRepository) findAll(ctx context.Context, query bson.M) ([]models.MenuCategory, error) {
	cur, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	categories := []models.MenuCategory{}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *mongoCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveDBQuery("menucategories", "delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type mongoItemRepository struct {
	col *mongo.Collection
}

func NewMenuItemRepository(db *mongo.Database) MenuItemRepository {
	return &mongoItemRepository{col: db.Collection("menuitems")}
}

func (r *mongoItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	defer metrics.ObserveDBQuery("menuitems", "insert", time.Now())

	res, err := r.col.InsertOne(ctx, item)
	if err != nil {
		return err
	}
	item.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoItemRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.MenuItem, error) {
	defer metrics.ObserveDBQuery("menuitems", "findOne", time.Now())

	var item models.MenuItem
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.MenuItem{}, ErrNotFound
	}
	return item, err
}

func (r *mongoItemRepository) Find(ctx context.Context, filter ItemFilter) ([]models.MenuItem, error) {
	defer metrics.ObserveDBQuery("menuitems", "find", time.Now())

	query := bson.M{}
	if filter.ServiceID != nil {
		query["cateringService"] = *filter.ServiceID
	}
	if filter.CategoryID != nil {
		query["category"] = *filter.CategoryID
	}
	price := bson.M{}
	if filter.MinPrice != nil {
		price["$gte"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		price["$lte"] = *filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	cur, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	items := []models.MenuItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *mongoItemRepository) Update(ctx context.Context, item *models.MenuItem) error {
	defer metrics.ObserveDBQuery("menuitems", "replace", time.Now())

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoItemRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveDBQuery("menuitems", "delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
