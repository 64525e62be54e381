package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NgocDuong9/be-betaw/models"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientStock is returned when a conditional stock
	// decrement finds fewer units than requested.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductSort is a catalog sort order.
type ProductSort string

const (
	SortPriceAsc  ProductSort = "price-asc"
	SortPriceDesc ProductSort = "price-desc"
	SortNameAsc   ProductSort = "name-asc"
	SortNameDesc  ProductSort = "name-desc"
	SortNewest    ProductSort = "newest"
)

// Valid reports whether s is a known sort order.
func (s ProductSort) Valid() bool {
	switch s {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortNewest:
		return true
	}
	return false
}

// ProductFilter is a typed catalog filter built from validated query
// parameters. The repository translates it into a Mongo query.
type ProductFilter struct {
	Search          string
	Category        models.ProductCategory
	Brands          []string
	MinPrice        *float64
	MaxPrice        *float64
	OnlyNew         bool
	OnlyFeatured    bool
	IncludeInactive bool
}

// Query translates the filter into a bson document.
func (f ProductFilter) Query() bson.M {
	query := bson.M{}

	if !f.IncludeInactive {
		query["isActive"] = true
	}

	if f.Search != "" {
		pattern := regexp.QuoteMeta(f.Search)
		query["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"brand": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}

	if f.Category != "" {
		query["category"] = f.Category
	}

	if len(f.Brands) > 0 {
		patterns := make(bson.A, 0, len(f.Brands))
		for _, b := range f.Brands {
			patterns = append(patterns, primitive.Regex{
				Pattern: "^" + regexp.QuoteMeta(b) + "$",
				Options: "i",
			})
		}
		query["brand"] = bson.M{"$in": patterns}
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		query["price"] = price
	}

	if f.OnlyNew {
		query["isNew"] = true
	}
	if f.OnlyFeatured {
		query["isFeatured"] = true
	}

	return query
}

// SortDoc translates a sort order into a Mongo sort document.
func SortDoc(sort ProductSort) bson.D {
	switch sort {
	case SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}
	case SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	case SortNameAsc:
		return bson.D{{Key: "name", Value: 1}}
	case SortNameDesc:
		return bson.D{{Key: "name", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

// ProductRepository is the data-access interface for the products
// collection.
type ProductRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	Find(ctx context.Context, filter ProductFilter, sort ProductSort, page, limit int) ([]models.Product, int64, error)
	FindLimited(ctx context.Context, filter ProductFilter, sort ProductSort, limit int) ([]models.Product, error)
	DistinctBrands(ctx context.Context) ([]string, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Product, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error
	IncrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error
	Count(ctx context.Context, filter ProductFilter) (int64, error)
	CountOutOfStock(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, products []models.Product) error
	DeleteAll(ctx context.Context) (int64, error)
}

// MongoProductRepository implements ProductRepository on MongoDB.
type MongoProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a product repository over db.
func NewProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{collection: db.Collection("products")}
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *MongoProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *MongoProductRepository) Find(ctx context.Context, filter ProductFilter, sort ProductSort, page, limit int) ([]models.Product, int64, error) {
	query := filter.Query()

	findOptions := options.Find().
		SetSort(SortDoc(sort)).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *MongoProductRepository) FindLimited(ctx context.Context, filter ProductFilter, sort ProductSort, limit int) ([]models.Product, error) {
	findOptions := options.Find().SetSort(SortDoc(sort))
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter.Query(), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *MongoProductRepository) DistinctBrands(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "brand", bson.M{"isActive": true})
	if err != nil {
		return nil, err
	}

	brands := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			brands = append(brands, s)
		}
	}
	return brands, nil
}

func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}
	return nil
}

func (r *MongoProductRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Product, error) {
	delete(updates, "_id")
	updates["updatedAt"] = time.Now().UTC()

	var product models.Product
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *MongoProductRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.Update(ctx, id, bson.M{"isActive": false})
	return err
}

// DecrementStock subtracts quantity from the product's stock only when
// enough units remain. The condition and the decrement run as one
// atomic update, so concurrent orders cannot oversell.
func (r *MongoProductRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": quantity}},
		bson.M{
			"$inc": bson.M{"stock": -quantity},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if result.ModifiedCount == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// IncrementStock returns quantity units to the product's stock. Used to
// compensate a partially applied multi-line decrement.
func (r *MongoProductRepository) IncrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"stock": quantity},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	return nil
}

func (r *MongoProductRepository) Count(ctx context.Context, filter ProductFilter) (int64, error) {
	return r.collection.CountDocuments(ctx, filter.Query())
}

func (r *MongoProductRepository) CountOutOfStock(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"isActive": true, "stock": bson.M{"$lte": 0}})
}

func (r *MongoProductRepository) InsertMany(ctx context.Context, products []models.Product) error {
	docs := make([]interface{}, 0, len(products))
	now := time.Now().UTC()
	for i := range products {
		if products[i].CreatedAt.IsZero() {
			products[i].CreatedAt = now
		}
		products[i].UpdatedAt = now
		docs = append(docs, products[i])
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *MongoProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
