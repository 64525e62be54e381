package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/NgocDuong9/be-betaw/common/errors"
	"github.com/NgocDuong9/be-betaw/models"
	"github.com/NgocDuong9/be-betaw/repository"
)

func TestListProducts(t *testing.T) {
	t.Run("Pagination Math", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)

		repo.On("Find", mock.Anything, mock.Anything, repository.ProductSort(""), 1, 10).
			Return([]models.Product{{Name: "Speedmaster"}}, int64(25), nil)

		page, err := svc.List(context.Background(), ListProductsParams{})
		require.NoError(t, err)
		assert.Equal(t, int64(25), page.Total)
		assert.Equal(t, int64(3), page.TotalPages)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 10, page.Limit)
	})

	t.Run("Limit Clamped", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)

		repo.On("Find", mock.Anything, mock.Anything, repository.ProductSort(""), 1, 100).
			Return([]models.Product{}, int64(0), nil)

		_, err := svc.List(context.Background(), ListProductsParams{Page: -4, Limit: 5000})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestGetProduct(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("Soft-Deleted Hidden From Customers", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)

		repo.On("FindByID", mock.Anything, id).
			Return(&models.Product{ID: id, IsActive: false}, nil)

		_, err := svc.Get(context.Background(), id)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperrors.From(err).Code)

		product, err := svc.GetAny(context.Background(), id)
		require.NoError(t, err)
		assert.False(t, product.IsActive)
	})

	t.Run("Unknown ID", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)

		repo.On("FindByID", mock.Anything, id).Return(nil, repository.ErrNotFound)

		_, err := svc.Get(context.Background(), id)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperrors.From(err).Code)
	})
}

func TestCreateProduct(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.IsActive && p.Images != nil
	})).Return(nil)

	product, err := svc.Create(context.Background(), CreateProductRequest{
		Name:        "Reverso Classic",
		Brand:       "Jaeger-LeCoultre",
		Price:       8950,
		Description: "Art deco reversible case",
		Category:    models.CategoryClassic,
		Stock:       4,
	})
	require.NoError(t, err)
	assert.True(t, product.IsActive)
	assert.NotNil(t, product.Images)

	t.Run("Invalid Category", func(t *testing.T) {
		_, err := svc.Create(context.Background(), CreateProductRequest{
			Name:     "Mystery",
			Category: models.ProductCategory("pocketwatch"),
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Code)
	})
}

func TestUpdateProduct(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("Only Provided Fields Are Set", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)

		price := 9999.0
		inactive := false
		repo.On("Update", mock.Anything, id,
			bson.M{"price": price, "isActive": inactive}).
			Return(&models.Product{ID: id, Price: price}, nil)

		product, err := svc.Update(context.Background(), id, UpdateProductRequest{
			Price:    &price,
			IsActive: &inactive,
		})
		require.NoError(t, err)
		assert.Equal(t, price, product.Price)
		repo.AssertExpectations(t)
	})

	t.Run("Empty Payload Rejected", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo)

		_, err := svc.Update(context.Background(), id, UpdateProductRequest{})
		require.Error(t, err)
		assert.Equal(t, "No update fields provided", apperrors.From(err).Message)
		repo.AssertNotCalled(t, "Update")
	})
}

func TestProductStats(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)

	repo.On("Count", mock.Anything, repository.ProductFilter{IncludeInactive: true}).
		Return(int64(12), nil)
	repo.On("Count", mock.Anything, repository.ProductFilter{}).
		Return(int64(10), nil)
	repo.On("CountOutOfStock", mock.Anything).Return(int64(2), nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.Total)
	assert.Equal(t, int64(10), stats.Active)
	assert.Equal(t, int64(2), stats.Inactive)
	assert.Equal(t, int64(2), stats.OutOfStock)
}
