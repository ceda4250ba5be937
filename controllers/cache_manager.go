package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/yashrajoria/storefront/models"
	"github.com/yashrajoria/storefront/services"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ProductCachePrefix     = "product:detail:v"
	ProductListCachePrefix = "products:v:"
	CacheVersionKey        = "products:version"

	DefaultCacheTTL = 10 * time.Minute
)

// CacheManager caches the product list and product details in Redis. Every
// key embeds the catalog version; bumping the version retires all of them.
// Readers take the version before loading from the database and fill under
// that same version, so a fill that loses the race with a write lands on a
// retired key. A nil *CacheManager or one without a client caches nothing.
type CacheManager struct {
	redis   *redis.Client
	ttl     time.Duration
	metrics services.MetricsRecorder
}

func NewCacheManager(client *redis.Client, ttl time.Duration, metrics services.MetricsRecorder) *CacheManager {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CacheManager{redis: client, ttl: ttl, metrics: metrics}
}

func (cm *CacheManager) enabled() bool {
	return cm != nil && cm.redis != nil
}

// GetProductList retrieves the cached product list. The returned version is
// the one a miss should be filled under; zero means do not fill.
func (cm *CacheManager) GetProductList(ctx context.Context) ([]models.Product, int64, bool) {
	if !cm.enabled() {
		return nil, 0, false
	}
	version, err := cm.getCacheVersion(ctx)
	if err != nil {
		cm.record(services.MetricCacheMisses, "list")
		return nil, 0, false
	}

	var products []models.Product
	if !cm.get(ctx, cm.listKey(version), &products) {
		cm.record(services.MetricCacheMisses, "list")
		return nil, version, false
	}
	cm.record(services.MetricCacheHits, "list")
	return products, version, true
}

// SetProductListAsync caches a product list under version asynchronously
func (cm *CacheManager) SetProductListAsync(version int64, products []models.Product) {
	if !cm.enabled() || version <= 0 {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cm.set(bgCtx, cm.listKey(version), products)
	}()
}

// GetProduct retrieves a cached product. The version works as in GetProductList.
func (cm *CacheManager) GetProduct(ctx context.Context, productID string) (*models.Product, int64, bool) {
	if !cm.enabled() {
		return nil, 0, false
	}
	version, err := cm.getCacheVersion(ctx)
	if err != nil {
		cm.record(services.MetricCacheMisses, "detail")
		return nil, 0, false
	}

	var product models.Product
	if !cm.get(ctx, cm.detailKey(version, productID), &product) {
		cm.record(services.MetricCacheMisses, "detail")
		return nil, version, false
	}
	cm.record(services.MetricCacheHits, "detail")
	return &product, version, true
}

// SetProductAsync caches a single product under version asynchronously
func (cm *CacheManager) SetProductAsync(version int64, productID string, product *models.Product) {
	if !cm.enabled() || version <= 0 || product == nil {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cm.set(bgCtx, cm.detailKey(version, productID), product)
	}()
}

// Invalidate retires every cached list and product by bumping the version
func (cm *CacheManager) Invalidate(ctx context.Context) error {
	if !cm.enabled() {
		return nil
	}
	newVersion, err := cm.redis.Incr(ctx, CacheVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	zap.L().Debug("Product cache invalidated", zap.Int64("new_version", newVersion))
	return nil
}

// InvalidateProduct is Invalidate for a single product write; failures are logged.
func (cm *CacheManager) InvalidateProduct(ctx context.Context, productID string) {
	if !cm.enabled() {
		return
	}
	if err := cm.Invalidate(ctx); err != nil {
		zap.L().Error("Failed to invalidate product cache", zap.Error(err), zap.String("product_id", productID))
	}
}

func (cm *CacheManager) get(ctx context.Context, key string, dst interface{}) bool {
	cached, err := cm.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Debug("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(cached, dst); err != nil {
		zap.L().Warn("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (cm *CacheManager) set(ctx context.Context, key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		zap.L().Warn("Failed to marshal value for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := cm.redis.Set(ctx, key, payload, cm.ttl).Err(); err != nil {
		zap.L().Warn("Failed to write cache", zap.String("key", key), zap.Error(err))
	}
}

// getCacheVersion returns the current list version, initialising it to 1.
func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	ver, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
	if err == nil && ver > 0 {
		return ver, nil
	}
	if errors.Is(err, redis.Nil) {
		// SetNX so a concurrent Invalidate is not overwritten.
		if err := cm.redis.SetNX(ctx, CacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return cm.redis.Get(ctx, CacheVersionKey).Int64()
	}
	if err == nil {
		err = fmt.Errorf("invalid cache version %d", ver)
	}
	return 0, err
}

func (cm *CacheManager) listKey(version int64) string {
	return ProductListCachePrefix + strconv.FormatInt(version, 10) + ":all"
}

func (cm *CacheManager) detailKey(version int64, productID string) string {
	return ProductCachePrefix + strconv.FormatInt(version, 10) + ":" + productID
}

func (cm *CacheManager) record(metric, kind string) {
	if cm.metrics == nil || !cm.metrics.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = cm.metrics.RecordCount(ctx, metric, map[string]string{"Cache": "products", "Kind": kind})
	}()
}
