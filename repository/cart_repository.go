package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NgocDuong9/be-betaw/models"
)

// CartRepository is the data-access interface for the carts collection.
type CartRepository interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	GetOrCreate(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	ReplaceItems(ctx context.Context, userID primitive.ObjectID, items []models.CartItem) error
}

// MongoCartRepository implements CartRepository on MongoDB.
type MongoCartRepository struct {
	collection *mongo.Collection
}

// NewCartRepository creates a cart repository over db.
func NewCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{collection: db.Collection("carts")}
}

func (r *MongoCartRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// GetOrCreate returns the user's cart, creating an empty one when none
// exists yet. The unique userId index keeps this to one cart per user
// even under concurrent upserts.
func (r *MongoCartRepository) GetOrCreate(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	now := time.Now().UTC()

	var cart models.Cart
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$setOnInsert": bson.M{
				"userId":    userID,
				"items":     []models.CartItem{},
				"createdAt": now,
				"updatedAt": now,
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&cart)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *MongoCartRepository) ReplaceItems(ctx context.Context, userID primitive.ObjectID, items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{
			"items":     items,
			"updatedAt": time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
