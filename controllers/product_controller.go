package controllers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	apperrors "github.com/NgocDuong9/be-betaw/common/errors"
	"github.com/NgocDuong9/be-betaw/common/response"
	"github.com/NgocDuong9/be-betaw/models"
	"github.com/NgocDuong9/be-betaw/repository"
	"github.com/NgocDuong9/be-betaw/services"
)

// ProductAPI is the catalog surface the controller needs; implemented
// by *services.ProductService.
type ProductAPI interface {
	List(ctx context.Context, params services.ListProductsParams) (*services.PaginatedProducts, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	GetAny(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Latest(ctx context.Context, limit int) ([]models.Product, error)
	Featured(ctx context.Context, limit int) ([]models.Product, error)
	ByCategory(ctx context.Context, category models.ProductCategory, limit int) ([]models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	Brands(ctx context.Context) ([]string, error)
	Create(ctx context.Context, req services.CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, req services.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProductController serves the catalog endpoints.
type ProductController struct {
	products ProductAPI
	cache    *CacheManager
}

// NewProductController creates a ProductController. cache may be nil,
// in which case every read goes to the database.
func NewProductController(products ProductAPI, cache *CacheManager) *ProductController {
	return &ProductController{products: products, cache: cache}
}

// List handles GET /products.
func (ctl *ProductController) List(c *gin.Context) {
	params, err := parseListParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	params.Normalize()

	if ctl.cache != nil {
		if page, ok := ctl.cache.GetProductList(c.Request.Context(), *params); ok {
			response.OK(c, page)
			return
		}
	}

	page, err := ctl.products.List(c.Request.Context(), *params)
	if err != nil {
		zap.L().Error("failed to list products", zap.Error(err))
		response.Error(c, err)
		return
	}

	if ctl.cache != nil {
		ctl.cache.SetProductListAsync(*params, page)
	}
	response.OK(c, page)
}

// Get handles GET /products/:id.
func (ctl *ProductController) Get(c *gin.Context) {
	id, err := parseObjectID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if ctl.cache != nil {
		if product, ok := ctl.cache.GetProduct(c.Request.Context(), id.Hex()); ok && product.IsActive {
			response.OK(c, product)
			return
		}
	}

	product, err := ctl.products.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if ctl.cache != nil {
		ctl.cache.SetProductAsync(id.Hex(), product)
	}
	response.OK(c, product)
}

// Latest handles GET /products/latest.
func (ctl *ProductController) Latest(c *gin.Context) {
	products, err := ctl.products.Latest(c.Request.Context(), queryInt(c, "limit", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, products)
}

// Featured handles GET /products/featured.
func (ctl *ProductController) Featured(c *gin.Context) {
	products, err := ctl.products.Featured(c.Request.Context(), queryInt(c, "limit", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, products)
}

// ByCategory handles GET /products/category/:category.
func (ctl *ProductController) ByCategory(c *gin.Context) {
	category := models.ProductCategory(c.Param("category"))
	products, err := ctl.products.ByCategory(c.Request.Context(), category, queryInt(c, "limit", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, products)
}

// Search handles GET /products/search.
func (ctl *ProductController) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		response.Error(c, apperrors.BadRequest("Search query is required"))
		return
	}

	products, err := ctl.products.Search(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, products)
}

// Brands handles GET /products/brands.
func (ctl *ProductController) Brands(c *gin.Context) {
	brands, err := ctl.products.Brands(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, brands)
}

// ListAdmin handles GET /admin/products. Unlike List it includes
// soft-deleted products and never touches the cache.
func (ctl *ProductController) ListAdmin(c *gin.Context) {
	params, err := parseListParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	params.Filter.IncludeInactive = true
	params.Normalize()

	page, err := ctl.products.List(c.Request.Context(), *params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

// GetAdmin handles GET /admin/products/:id, returning soft-deleted
// products too.
func (ctl *ProductController) GetAdmin(c *gin.Context) {
	id, err := parseObjectID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	product, err := ctl.products.GetAny(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, product)
}

// Create handles POST /products.
func (ctl *ProductController) Create(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.BadRequest(err.Error()))
		return
	}

	product, err := ctl.products.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	ctl.invalidate(c, product.ID.Hex())
	response.Created(c, product, "Product created successfully")
}

// Update handles PUT /products/:id.
func (ctl *ProductController) Update(c *gin.Context) {
	id, err := parseObjectID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.BadRequest(err.Error()))
		return
	}

	product, err := ctl.products.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	ctl.invalidate(c, id.Hex())
	response.Message(c, product, "Product updated successfully")
}

// Delete handles DELETE /products/:id.
func (ctl *ProductController) Delete(c *gin.Context) {
	id, err := parseObjectID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := ctl.products.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	ctl.invalidate(c, id.Hex())
	response.Message(c, nil, "Product deleted successfully")
}

func (ctl *ProductController) invalidate(c *gin.Context, productID string) {
	if ctl.cache != nil {
		ctl.cache.InvalidateProduct(c.Request.Context(), productID)
	}
}

func parseListParams(c *gin.Context) (*services.ListProductsParams, error) {
	params := &services.ListProductsParams{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 10),
	}

	if sort := c.Query("sort"); sort != "" {
		s := repository.ProductSort(sort)
		if !s.Valid() {
			return nil, apperrors.BadRequest("Invalid sort option")
		}
		params.Sort = s
	}

	f := &params.Filter
	f.Search = strings.TrimSpace(c.Query("search"))

	if category := c.Query("category"); category != "" {
		cat := models.ProductCategory(category)
		if !cat.Valid() {
			return nil, apperrors.BadRequest("Invalid category")
		}
		f.Category = cat
	}

	// brand may repeat or hold a comma-separated list.
	for _, raw := range c.QueryArray("brand") {
		for _, brand := range strings.Split(raw, ",") {
			if brand = strings.TrimSpace(brand); brand != "" {
				f.Brands = append(f.Brands, brand)
			}
		}
	}

	var err error
	if f.MinPrice, err = queryFloat(c, "minPrice"); err != nil {
		return nil, err
	}
	if f.MaxPrice, err = queryFloat(c, "maxPrice"); err != nil {
		return nil, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, apperrors.BadRequest("minPrice cannot exceed maxPrice")
	}

	f.OnlyNew = c.Query("isNew") == "true"
	f.OnlyFeatured = c.Query("isFeatured") == "true"

	return params, nil
}

func parseObjectID(c *gin.Context, param string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		return primitive.NilObjectID, apperrors.BadRequest("Invalid ID format")
	}
	return id, nil
}

func queryInt(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return value
}

func queryFloat(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return nil, apperrors.BadRequest("Invalid " + name)
	}
	return &value, nil
}
