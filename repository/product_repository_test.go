package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NgocDuong9/be-betaw/models"
)

func TestProductFilterQuery(t *testing.T) {
	t.Run("Default Hides Inactive", func(t *testing.T) {
		query := ProductFilter{}.Query()
		assert.Equal(t, bson.M{"isActive": true}, query)
	})

	t.Run("IncludeInactive Drops The Flag", func(t *testing.T) {
		query := ProductFilter{IncludeInactive: true}.Query()
		_, ok := query["isActive"]
		assert.False(t, ok)
	})

	t.Run("Search Escapes Regex Metacharacters", func(t *testing.T) {
		query := ProductFilter{Search: "GMT (Pepsi)"}.Query()
		or, ok := query["$or"].(bson.A)
		assert.True(t, ok)
		assert.Len(t, or, 3)

		name := or[0].(bson.M)["name"].(bson.M)
		assert.Equal(t, `GMT \(Pepsi\)`, name["$regex"])
		assert.Equal(t, "i", name["$options"])
	})

	t.Run("Brands Match Case-Insensitively", func(t *testing.T) {
		query := ProductFilter{Brands: []string{"Rolex", "A. Lange"}}.Query()
		in := query["brand"].(bson.M)["$in"].(bson.A)
		assert.Len(t, in, 2)
		assert.Equal(t, primitive.Regex{Pattern: "^Rolex$", Options: "i"}, in[0])
		assert.Equal(t, primitive.Regex{Pattern: `^A\. Lange$`, Options: "i"}, in[1])
	})

	t.Run("Price Range", func(t *testing.T) {
		min, max := 100.0, 500.0
		query := ProductFilter{MinPrice: &min, MaxPrice: &max}.Query()
		assert.Equal(t, bson.M{"$gte": 100.0, "$lte": 500.0}, query["price"])

		query = ProductFilter{MinPrice: &min}.Query()
		assert.Equal(t, bson.M{"$gte": 100.0}, query["price"])
	})

	t.Run("Category And Flags", func(t *testing.T) {
		query := ProductFilter{
			Category:     models.CategoryDiving,
			OnlyNew:      true,
			OnlyFeatured: true,
		}.Query()
		assert.Equal(t, models.CategoryDiving, query["category"])
		assert.Equal(t, true, query["isNew"])
		assert.Equal(t, true, query["isFeatured"])
	})
}

func TestSortDoc(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, SortDoc(SortPriceAsc))
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, SortDoc(SortPriceDesc))
	assert.Equal(t, bson.D{{Key: "name", Value: 1}}, SortDoc(SortNameAsc))
	assert.Equal(t, bson.D{{Key: "name", Value: -1}}, SortDoc(SortNameDesc))
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, SortDoc(SortNewest))
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, SortDoc(""))
}

func TestProductSortValid(t *testing.T) {
	assert.True(t, SortPriceAsc.Valid())
	assert.True(t, SortNewest.Valid())
	assert.False(t, ProductSort("").Valid())
	assert.False(t, ProductSort("alphabetical").Valid())
}
