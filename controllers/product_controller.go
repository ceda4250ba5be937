package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/yashrajoria/storefront/logger"
	"github.com/yashrajoria/storefront/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductController serves the public catalog: products, reviews and search.
type ProductController struct {
	catalog CatalogAPI
	cache   *CacheManager
}

func NewProductController(catalog CatalogAPI, cache *CacheManager) *ProductController {
	return &ProductController{catalog: catalog, cache: cache}
}

// GetProducts lists every product, newest first.
func (pc *ProductController) GetProducts(c *gin.Context) {
	ctx := c.Request.Context()
	products, version, ok := pc.cache.GetProductList(ctx)
	if ok {
		respondList(c, "", products, len(products), nil)
		return
	}

	products, err := pc.catalog.ListProducts(ctx)
	if err != nil {
		respondError(c, err, "Failed to fetch products")
		return
	}
	pc.cache.SetProductListAsync(version, products)
	respondList(c, "", products, len(products), nil)
}

func (pc *ProductController) GetProduct(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	product, version, ok := pc.cache.GetProduct(ctx, id)
	if ok {
		respond(c, http.StatusOK, "", product)
		return
	}

	product, err := pc.catalog.GetProduct(ctx, id)
	if err != nil {
		respondError(c, err, "Failed to fetch product")
		return
	}
	pc.cache.SetProductAsync(version, id, product)
	respond(c, http.StatusOK, "", product)
}

// SyncProducts replaces the catalog with the demo products.
func (pc *ProductController) SyncProducts(c *gin.Context) {
	ctx := c.Request.Context()
	n, err := pc.catalog.SyncCatalog(ctx)
	if err != nil {
		respondError(c, err, "Failed to sync products")
		return
	}
	if err := pc.cache.Invalidate(ctx); err != nil {
		logger.Warn(ctx, "Product cache not invalidated after sync", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Synced %d products successfully", n),
		"count":   n,
	})
}

func (pc *ProductController) GetReviews(c *gin.Context) {
	reviews, err := pc.catalog.ListReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch reviews")
		return
	}
	respondList(c, "", reviews, len(reviews), nil)
}

func (pc *ProductController) AddReview(c *gin.Context) {
	var req models.ReviewRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err, "Failed to add review")
		return
	}

	review, err := pc.catalog.AddReview(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to add review")
		return
	}
	respond(c, http.StatusCreated, "Review added successfully", review)
}

// Search matches ?q= against product names and categories.
func (pc *ProductController) Search(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("q")))

	results, err := pc.catalog.Search(c.Request.Context(), query)
	if err != nil {
		respondError(c, err, "Failed to search")
		return
	}
	respondList(c, "", results, len(results), gin.H{"query": query})
}
