package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/yashrajoria/storefront/controllers"
	"github.com/yashrajoria/storefront/middleware"
	"github.com/yashrajoria/storefront/models"

	"github.com/gin-gonic/gin"
)

// Handlers bundles the controllers and guards the route table needs.
type Handlers struct {
	Auth     *controllers.AuthController
	Product  *controllers.ProductController
	Cart     *controllers.CartController
	Order    *controllers.OrderController
	Wishlist *controllers.WishlistController
	Stats    *controllers.StatsController
	Admin    *controllers.AdminController
	Health   *controllers.HealthController

	Authorizer *middleware.Authorizer
	// LoginLimiter throttles the credential endpoints. Optional.
	LoginLimiter *middleware.RateLimiter
}

// RegisterRoutes mounts the API under /api. Health is also served at /health.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", h.Health.Health)

	api := r.Group("/api")
	api.GET("/health", h.Health.Health)

	authed := h.Authorizer.RequireAuth()
	admin := []gin.HandlerFunc{authed, h.Authorizer.RequireRole(models.RoleAdmin)}
	owner := []gin.HandlerFunc{authed, h.Authorizer.RequireOwner("userId")}

	// ===== PUBLIC ROUTES =====
	api.GET("/products", h.Product.GetProducts)
	api.GET("/products/:id", h.Product.GetProduct)
	api.GET("/products/:id/reviews", h.Product.GetReviews)
	api.POST("/products/:id/reviews", h.Product.AddReview)
	api.GET("/search", h.Product.Search)
	api.POST("/cart", h.Cart.Quote)
	api.GET("/stats", h.Stats.Public)

	// ===== AUTH ROUTES =====
	auth := api.Group("/auth")
	credentials := []gin.HandlerFunc{}
	if h.LoginLimiter != nil {
		credentials = append(credentials, middleware.RateLimit(h.LoginLimiter))
	}
	auth.POST("/register", append(credentials, h.Auth.Register)...)
	auth.POST("/login", append(credentials, h.Auth.Login)...)
	auth.POST("/admin-login", append(credentials, h.Auth.AdminLogin)...)
	auth.GET("/verify", h.Auth.Verify)
	auth.PUT("/profile", authed, h.Auth.UpdateMyProfile)
	auth.GET("/profile/:userId", append(owner, h.Auth.GetProfile)...)
	auth.PUT("/profile/:userId", append(owner, h.Auth.UpdateProfile)...)

	// ===== USER ROUTES (token subject or admin) =====
	api.POST("/orders", authed, h.Order.PlaceOrder)
	api.GET("/orders/:userId", append(owner, h.Order.GetUserOrders)...)
	api.GET("/wishlist/:userId", append(owner, h.Wishlist.Get)...)
	api.POST("/wishlist/:userId/:productId", append(owner, h.Wishlist.Add)...)
	api.DELETE("/wishlist/:userId/:productId", append(owner, h.Wishlist.Remove)...)

	// ===== ADMIN ROUTES =====
	api.POST("/products/sync", append(admin, h.Product.SyncProducts)...)

	adminGroup := api.Group("/admin", admin...)
	adminGroup.POST("/products", h.Admin.CreateProduct)
	adminGroup.PUT("/products/:id", h.Admin.UpdateProduct)
	adminGroup.DELETE("/products/:id", h.Admin.DeleteProduct)
	adminGroup.POST("/products/:id/image-upload", h.Admin.CreateImageUpload)
	adminGroup.GET("/orders", h.Admin.ListOrders)
	adminGroup.GET("/orders/:id", h.Admin.GetOrder)
	adminGroup.PUT("/orders/:id/status", h.Admin.UpdateOrderStatus)
	adminGroup.DELETE("/orders/:id", h.Admin.DeleteOrder)
	adminGroup.GET("/stats", h.Admin.Stats)
}

// RegisterStatic serves product images from imagesDir under /images and, when
// staticDir is set, a built front end with index.html as the fallback for
// unknown non-API GET paths.
func RegisterStatic(r *gin.Engine, imagesDir, staticDir string) {
	if imagesDir != "" {
		r.Static("/images", imagesDir)
	}
	r.NoRoute(fallback(staticDir))
}

func fallback(staticDir string) gin.HandlerFunc {
	notFound := middleware.NotFound()
	if staticDir == "" {
		return notFound
	}
	index := filepath.Join(staticDir, "index.html")
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || path == "/api" || strings.HasPrefix(path, "/api/") {
			notFound(c)
			return
		}
		file := filepath.Join(staticDir, filepath.FromSlash(filepath.Clean("/"+path)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(index)
	}
}
