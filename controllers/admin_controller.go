package controllers

import (
	"net/http"

	"github.com/yashrajoria/storefront/apperrors"
	"github.com/yashrajoria/storefront/models"

	"github.com/gin-gonic/gin"
)

// AdminController serves the admin-guarded catalog and order management
// endpoints. Product writes invalidate the product cache.
type AdminController struct {
	catalog CatalogAPI
	orders  OrderAPI
	stats   StatsAPI
	images  ImageAPI
	cache   *CacheManager
}

func NewAdminController(catalog CatalogAPI, orders OrderAPI, stats StatsAPI, images ImageAPI, cache *CacheManager) *AdminController {
	return &AdminController{catalog: catalog, orders: orders, stats: stats, images: images, cache: cache}
}

func (ac *AdminController) CreateProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err, "Failed to add product")
		return
	}

	product, err := ac.catalog.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to add product")
		return
	}
	ac.cache.InvalidateProduct(c.Request.Context(), product.ID.Hex())
	respond(c, http.StatusCreated, "Product added successfully", product)
}

func (ac *AdminController) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	var req models.ProductRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err, "Failed to update product")
		return
	}

	product, err := ac.catalog.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to update product")
		return
	}
	ac.cache.InvalidateProduct(c.Request.Context(), id)
	respond(c, http.StatusOK, "Product updated successfully", product)
}

// DeleteProduct removes a product and its reviews.
func (ac *AdminController) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := ac.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete product")
		return
	}
	ac.cache.InvalidateProduct(c.Request.Context(), id)
	respond(c, http.StatusOK, "Product deleted successfully", nil)
}

// CreateImageUpload returns a presigned S3 URL for a product image.
func (ac *AdminController) CreateImageUpload(c *gin.Context) {
	if ac.images == nil {
		respondError(c, apperrors.NotFound("Image uploads are not configured"), "Failed to create upload")
		return
	}
	var req models.ImageUploadRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err, "Failed to create upload")
		return
	}

	upload, err := ac.images.CreateUpload(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to create upload")
		return
	}
	respond(c, http.StatusCreated, "Upload URL created", upload)
}

func (ac *AdminController) ListOrders(c *gin.Context) {
	orders, err := ac.orders.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch orders")
		return
	}
	respondList(c, "", orders, len(orders), nil)
}

func (ac *AdminController) GetOrder(c *gin.Context) {
	order, err := ac.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch order")
		return
	}
	respond(c, http.StatusOK, "", order)
}

func (ac *AdminController) UpdateOrderStatus(c *gin.Context) {
	var req models.StatusRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err, "Failed to update order status")
		return
	}

	order, err := ac.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err, "Failed to update order status")
		return
	}
	respond(c, http.StatusOK, "Order status updated successfully", order)
}

func (ac *AdminController) DeleteOrder(c *gin.Context) {
	if err := ac.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete order")
		return
	}
	respond(c, http.StatusOK, "Order deleted successfully", nil)
}

func (ac *AdminController) Stats(c *gin.Context) {
	stats, err := ac.stats.Admin(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch stats")
		return
	}
	respond(c, http.StatusOK, "", stats)
}
