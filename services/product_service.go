package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/NgocDuong9/be-betaw/common/errors"
	"github.com/NgocDuong9/be-betaw/models"
	"github.com/NgocDuong9/be-betaw/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
	latestLimit  = 8
	featured     = 4
	searchLimit  = 20
)

// ListProductsParams are the validated catalog query parameters.
type ListProductsParams struct {
	Page   int
	Limit  int
	Sort   repository.ProductSort
	Filter repository.ProductFilter
}

// Normalize clamps pagination to sane bounds.
func (p *ListProductsParams) Normalize() {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
}

// PaginatedProducts is a page of catalog results.
type PaginatedProducts struct {
	Data       []models.Product `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int64            `json:"totalPages"`
}

// CreateProductRequest is the payload for product creation.
type CreateProductRequest struct {
	Name             string                      `json:"name" binding:"required"`
	Brand            string                      `json:"brand" binding:"required"`
	Price            float64                     `json:"price" binding:"required,gte=0"`
	OriginalPrice    *float64                    `json:"originalPrice" binding:"omitempty,gte=0"`
	Description      string                      `json:"description" binding:"required"`
	ShortDescription string                      `json:"shortDescription"`
	Images           []string                    `json:"images"`
	Category         models.ProductCategory      `json:"category" binding:"required"`
	Specifications   models.ProductSpecification `json:"specifications" binding:"required"`
	Stock            int                         `json:"stock" binding:"gte=0"`
	IsNew            *bool                       `json:"isNew"`
	IsFeatured       *bool                       `json:"isFeatured"`
	IsActive         *bool                       `json:"isActive"`
}

// UpdateProductRequest is the payload for product updates. Nil fields
// are left untouched.
type UpdateProductRequest struct {
	Name             *string                      `json:"name"`
	Brand            *string                      `json:"brand"`
	Price            *float64                     `json:"price" binding:"omitempty,gte=0"`
	OriginalPrice    *float64                     `json:"originalPrice" binding:"omitempty,gte=0"`
	Description      *string                      `json:"description"`
	ShortDescription *string                      `json:"shortDescription"`
	Images           []string                     `json:"images"`
	Category         *models.ProductCategory      `json:"category"`
	Specifications   *models.ProductSpecification `json:"specifications"`
	Stock            *int                         `json:"stock" binding:"omitempty,gte=0"`
	IsNew            *bool                        `json:"isNew"`
	IsFeatured       *bool                        `json:"isFeatured"`
	IsActive         *bool                        `json:"isActive"`
}

// ProductStats summarizes the catalog for the admin dashboard.
type ProductStats struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	Inactive   int64 `json:"inactive"`
	OutOfStock int64 `json:"outOfStock"`
}

// ProductService implements catalog browsing and management.
type ProductService struct {
	products repository.ProductRepository
}

// NewProductService creates a ProductService.
func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// List returns a filtered, sorted, paginated catalog page.
func (s *ProductService) List(ctx context.Context, params ListProductsParams) (*PaginatedProducts, error) {
	params.Normalize()

	products, total, err := s.products.Find(ctx, params.Filter, params.Sort, params.Page, params.Limit)
	if err != nil {
		return nil, err
	}

	totalPages := (total + int64(params.Limit) - 1) / int64(params.Limit)
	return &PaginatedProducts{
		Data:       products,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages,
	}, nil
}

// Get returns an active product. Soft-deleted products 404 here;
// admins use GetAny.
func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.GetAny(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, apperrors.NotFound("Product not found")
	}
	return product, nil
}

// GetAny returns a product regardless of its active flag.
func (s *ProductService) GetAny(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, err
	}
	return product, nil
}

// Latest returns the newest new-arrival products.
func (s *ProductService) Latest(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = latestLimit
	}
	return s.products.FindLimited(ctx,
		repository.ProductFilter{OnlyNew: true}, repository.SortNewest, limit)
}

// Featured returns featured products.
func (s *ProductService) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = featured
	}
	return s.products.FindLimited(ctx,
		repository.ProductFilter{OnlyFeatured: true}, repository.SortNewest, limit)
}

// ByCategory returns active products in a category, newest first.
func (s *ProductService) ByCategory(ctx context.Context, category models.ProductCategory, limit int) ([]models.Product, error) {
	if !category.Valid() {
		return nil, apperrors.BadRequest("Invalid category")
	}
	return s.products.FindLimited(ctx,
		repository.ProductFilter{Category: category}, repository.SortNewest, limit)
}

// Search returns up to 20 active products matching the free-text query.
func (s *ProductService) Search(ctx context.Context, query string) ([]models.Product, error) {
	return s.products.FindLimited(ctx,
		repository.ProductFilter{Search: query}, repository.SortNewest, searchLimit)
}

// Brands returns the distinct brands of active products.
func (s *ProductService) Brands(ctx context.Context) ([]string, error) {
	return s.products.DistinctBrands(ctx)
}

// Create adds a product to the catalog.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*models.Product, error) {
	if !req.Category.Valid() {
		return nil, apperrors.BadRequest("Invalid category")
	}

	product := &models.Product{
		Name:             req.Name,
		Brand:            req.Brand,
		Price:            req.Price,
		OriginalPrice:    req.OriginalPrice,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Images:           req.Images,
		Category:         req.Category,
		Specifications:   req.Specifications,
		Stock:            req.Stock,
		IsActive:         true,
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	if req.IsNew != nil {
		product.IsNew = *req.IsNew
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update modifies a product.
func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, req UpdateProductRequest) (*models.Product, error) {
	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		updates["originalPrice"] = *req.OriginalPrice
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ShortDescription != nil {
		updates["shortDescription"] = *req.ShortDescription
	}
	if req.Images != nil {
		updates["images"] = req.Images
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			return nil, apperrors.BadRequest("Invalid category")
		}
		updates["category"] = *req.Category
	}
	if req.Specifications != nil {
		updates["specifications"] = *req.Specifications
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, apperrors.BadRequest("Stock cannot be negative")
		}
		updates["stock"] = *req.Stock
	}
	if req.IsNew != nil {
		updates["isNew"] = *req.IsNew
	}
	if req.IsFeatured != nil {
		updates["isFeatured"] = *req.IsFeatured
	}
	if req.IsActive != nil {
		updates["isActive"] = *req.IsActive
	}
	if len(updates) == 0 {
		return nil, apperrors.BadRequest("No update fields provided")
	}

	product, err := s.products.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, err
	}
	return product, nil
}

// Delete soft-deletes a product: it disappears from the catalog but
// stays retrievable through admin lookup.
func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.products.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Product not found")
		}
		return err
	}
	return nil
}

// Count returns the number of active products.
func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.products.Count(ctx, repository.ProductFilter{})
}

// Stats summarizes the catalog for the admin dashboard.
func (s *ProductService) Stats(ctx context.Context) (*ProductStats, error) {
	total, err := s.products.Count(ctx, repository.ProductFilter{IncludeInactive: true})
	if err != nil {
		return nil, err
	}
	active, err := s.products.Count(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	outOfStock, err := s.products.CountOutOfStock(ctx)
	if err != nil {
		return nil, err
	}

	return &ProductStats{
		Total:      total,
		Active:     active,
		Inactive:   total - active,
		OutOfStock: outOfStock,
	}, nil
}
