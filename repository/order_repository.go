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

// OrderStats aggregates order counts and revenue, either per user or
// store-wide.
type OrderStats struct {
	TotalOrders   int64   `bson:"totalOrders" json:"totalOrders"`
	TotalRevenue  float64 `bson:"totalRevenue" json:"totalRevenue"`
	AvgOrderValue float64 `bson:"avgOrderValue" json:"avgOrderValue"`
}

// OrderRepository is the data-access interface for the orders collection.
type OrderRepository interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindAll(ctx context.Context, status models.OrderStatus, page, limit int) ([]models.Order, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Order, error)
	Stats(ctx context.Context, userID *primitive.ObjectID) (*OrderStats, error)
}

// MongoOrderRepository implements OrderRepository on MongoDB.
type MongoOrderRepository struct {
	collection *mongo.Collection
}

// NewOrderRepository creates an order repository over db.
func NewOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{collection: db.Collection("orders")}
}

func (r *MongoOrderRepository) Insert(ctx context.Context, order *models.Order) error {
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoOrderRepository) FindByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"_id": id, "userId": userID})
}

func (r *MongoOrderRepository) findOne(ctx context.Context, filter bson.M) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, filter).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *MongoOrderRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *MongoOrderRepository) FindAll(ctx context.Context, status models.OrderStatus, page, limit int) ([]models.Order, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *MongoOrderRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Order, error) {
	delete(updates, "_id")
	updates["updatedAt"] = time.Now().UTC()

	var order models.Order
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Stats computes order count, total revenue and average order value.
// With a userID it is scoped to that user, otherwise store-wide.
func (r *MongoOrderRepository) Stats(ctx context.Context, userID *primitive.ObjectID) (*OrderStats, error) {
	match := bson.M{}
	if userID != nil {
		match["userId"] = *userID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"totalOrders":   bson.M{"$sum": 1},
			"totalRevenue":  bson.M{"$sum": "$total"},
			"avgOrderValue": bson.M{"$avg": "$total"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []OrderStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &OrderStats{}, nil
	}
	return &results[0], nil
}
