package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/NgocDuong9/be-betaw/models"
	"github.com/NgocDuong9/be-betaw/services"
)

const (
	productCachePrefix     = "product:detail:"
	productListCachePrefix = "products:v:"
	cacheVersionKey        = "products:version"
)

// CacheManager is a read-through cache for the catalog. List caches
// are keyed by a version counter so one INCR invalidates every page at
// once; detail caches are deleted individually.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewCacheManager creates a CacheManager with the given entry TTL.
func NewCacheManager(rdb *redis.Client, ttl time.Duration) *CacheManager {
	return &CacheManager{redis: rdb, ttl: ttl}
}

// GetProductList retrieves a cached catalog page.
func (cm *CacheManager) GetProductList(ctx context.Context, params services.ListProductsParams) (*services.PaginatedProducts, bool) {
	version, err := cm.getCacheVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	cached, err := cm.redis.Get(ctx, cm.listCacheKey(version, params)).Result()
	if err != nil {
		return nil, false
	}

	var page services.PaginatedProducts
	if err := json.Unmarshal([]byte(cached), &page); err != nil {
		zap.L().Warn("failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return &page, true
}

// SetProductListAsync caches a catalog page without blocking the
// request.
func (cm *CacheManager) SetProductListAsync(params services.ListProductsParams, page *services.PaginatedProducts) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getCacheVersion(bgCtx)
		if err != nil || version == 0 {
			return
		}

		data, err := json.Marshal(page)
		if err != nil {
			zap.L().Warn("failed to marshal product list for cache", zap.Error(err))
			return
		}

		if err := cm.redis.Set(bgCtx, cm.listCacheKey(version, params), data, cm.ttl).Err(); err != nil {
			zap.L().Warn("failed to cache product list", zap.Error(err))
		}
	}()
}

// GetProduct retrieves a cached product detail.
func (cm *CacheManager) GetProduct(ctx context.Context, productID string) (*models.Product, bool) {
	cached, err := cm.redis.Get(ctx, productCachePrefix+productID).Result()
	if err != nil {
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal([]byte(cached), &product); err != nil {
		zap.L().Warn("failed to unmarshal cached product",
			zap.String("productId", productID), zap.Error(err))
		return nil, false
	}
	return &product, true
}

// SetProductAsync caches a product detail without blocking the
// request.
func (cm *CacheManager) SetProductAsync(productID string, product *models.Product) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(product)
		if err != nil {
			zap.L().Warn("failed to marshal product for cache",
				zap.String("productId", productID), zap.Error(err))
			return
		}

		if err := cm.redis.Set(bgCtx, productCachePrefix+productID, data, cm.ttl).Err(); err != nil {
			zap.L().Warn("failed to cache product",
				zap.String("productId", productID), zap.Error(err))
		}
	}()
}

// Invalidate drops all list caches by bumping the version counter.
func (cm *CacheManager) Invalidate(ctx context.Context) error {
	newVersion, err := cm.redis.Incr(ctx, cacheVersionKey).Result()
	if err != nil {
		return fmt.Errorf("invalidate cache: %w", err)
	}
	zap.L().Info("catalog cache invalidated", zap.Int64("version", newVersion))
	return nil
}

// InvalidateProduct drops the list caches and one product's detail
// cache.
func (cm *CacheManager) InvalidateProduct(ctx context.Context, productID string) {
	if err := cm.Invalidate(ctx); err != nil {
		zap.L().Error("failed to invalidate catalog cache",
			zap.String("productId", productID), zap.Error(err))
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cm.redis.Del(bgCtx, productCachePrefix+productID).Err(); err != nil {
			zap.L().Warn("failed to delete product cache",
				zap.String("productId", productID), zap.Error(err))
		}
	}()
}

func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		ver, err := cm.redis.Get(ctx, cacheVersionKey).Int64()
		if err == nil && ver > 0 {
			return ver, nil
		}

		if err == redis.Nil {
			if err := cm.redis.Set(ctx, cacheVersionKey, 1, 0).Err(); err == nil {
				return 1, nil
			}
		}

		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(50 * time.Millisecond):
			}
		}
	}
	return 0, fmt.Errorf("failed to get cache version after %d retries", maxRetries)
}

func (cm *CacheManager) listCacheKey(version int64, params services.ListProductsParams) string {
	f := params.Filter
	return fmt.Sprintf(
		"%s%d:p:%d:l:%d:s:%s:q:%s:c:%s:b:%s:min:%s:max:%s:new:%t:feat:%t",
		productListCachePrefix,
		version,
		params.Page,
		params.Limit,
		params.Sort,
		f.Search,
		f.Category,
		strings.Join(f.Brands, ","),
		formatFloatForCache(f.MinPrice),
		formatFloatForCache(f.MaxPrice),
		f.OnlyNew,
		f.OnlyFeatured,
	)
}

func formatFloatForCache(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
