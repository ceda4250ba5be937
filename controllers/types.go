package controllers

import (
	"context"

	"github.com/yashrajoria/storefront/models"

	"github.com/gin-gonic/gin"
)

// AuthAPI is implemented by *services.AuthService.
type AuthAPI interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error)
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	AdminLogin(ctx context.Context, email, password string) (*models.AuthResult, error)
	Verify(ctx context.Context, token string) (*models.PublicProfile, error)
	GetProfile(ctx context.Context, userID string) (*models.PublicProfile, error)
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.PublicProfile, error)
}

// CatalogAPI is implemented by *services.CatalogService.
type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	ListReviews(ctx context.Context, productID string) ([]models.Review, error)
	AddReview(ctx context.Context, productID string, req models.ReviewRequest) (*models.Review, error)
	CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, req models.ProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	SyncCatalog(ctx context.Context) (int, error)
}

type CartAPI interface {
	Quote(items []models.CartItem) (*models.CartQuote, error)
}

// OrderAPI is implemented by *services.OrderService.
type OrderAPI interface {
	PlaceOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error)
	ListForUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Order, error)
	Delete(ctx context.Context, id string) error
}

type WishlistAPI interface {
	Get(ctx context.Context, userID string) ([]models.Product, error)
	Add(ctx context.Context, userID, productID string) ([]models.Product, error)
	Remove(ctx context.Context, userID, productID string) ([]models.Product, error)
}

type StatsAPI interface {
	Public(ctx context.Context) (*models.PublicStats, error)
	Admin(ctx context.Context) (*models.AdminStats, error)
}

type ImageAPI interface {
	CreateUpload(ctx context.Context, productID string, req models.ImageUploadRequest) (*models.ImageUpload, error)
}

// OwnerCheck decides whether the authenticated caller may act for userID.
type OwnerCheck interface {
	CanActFor(c *gin.Context, userID string) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}
