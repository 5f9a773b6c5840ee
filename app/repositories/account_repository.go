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

// AccountRepository persists registered accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	FindByEmail(ctx context.Context, email string) (models.Account, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Account, error)
	Update(ctx context.Context, account *models.Account) error
}

type mongoAccountRepository struct {
	col *mongo.Collection
}

// NewAccountRepository builds the Mongo-backed account store and ensures the
// unique email index exists.
func NewAccountRepository(db *mongo.Database) AccountRepository {
	col := db.Collection("accounts")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &mongoAccountRepository{col: col}
}

func (r *mongoAccountRepository) Create(ctx context.Context, account *models.Account) error {
	defer metrics.ObserveDBQuery("accounts", "insert", time.Now())

	account.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	account.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoAccountRepository) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	defer metrics.ObserveDBQuery("accounts", "findOne", time.Now())

	var account models.Account
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Account{}, ErrNotFound
	}
	return account, err
}

func (r *mongoAccountRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Account, error) {
	defer metrics.ObserveDBQuery("accounts", "findOne", time.Now())

	var account models.Account
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Account{}, ErrNotFound
	}
	return account, err
}

func (r *mongoAccountRepository) Update(ctx context.Context, account *models.Account) error {
	defer metrics.ObserveDBQuery("accounts", "replace", time.Now())

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": account.ID}, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
