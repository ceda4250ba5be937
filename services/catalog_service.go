package services

import (
	"context"
	"strings"

	"github.com/yashrajoria/storefront/apperrors"
	"github.com/yashrajoria/storefront/logger"
	"github.com/yashrajoria/storefront/models"
	"github.com/yashrajoria/storefront/repository"

	"go.uber.org/zap"
)

type CatalogService struct {
	productRepo repository.ProductRepo
	reviewRepo  repository.ReviewRepo
	metrics     MetricsRecorder
}

func NewCatalogService(pr repository.ProductRepo, rr repository.ReviewRepo, metrics MetricsRecorder) *CatalogService {
	return &CatalogService{productRepo: pr, reviewRepo: rr, metrics: metrics}
}

// ListProducts returns every product, newest first.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch products", err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "Product not found", "Failed to fetch product")
	}
	return product, nil
}

// Search matches query case-insensitively against product name or category.
func (s *CatalogService) Search(ctx context.Context, query string) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.Validation("Search query required")
	}
	products, err := s.productRepo.Search(ctx, query)
	if err != nil {
		return nil, apperrors.Internal("Failed to search", err)
	}
	return products, nil
}

func (s *CatalogService) ListReviews(ctx context.Context, productID string) ([]models.Review, error) {
	reviews, err := s.reviewRepo.ListByProduct(ctx, canonicalID(productID))
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch reviews", err)
	}
	return reviews, nil
}

func (s *CatalogService) AddReview(ctx context.Context, productID string, req models.ReviewRequest) (*models.Review, error) {
	author := strings.TrimSpace(req.User)
	comment := strings.TrimSpace(req.Comment)
	if author == "" || req.Rating == 0 || comment == "" {
		return nil, apperrors.Validation("User, rating, and comment are required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.Validation("Rating must be between 1 and 5")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, repoErr(err, "Product not found", "Failed to add review")
	}

	images := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	review := &models.Review{
		ProductID: product.ID.Hex(),
		User:      author,
		Rating:    int(req.Rating),
		Comment:   comment,
		Images:    images,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, apperrors.Internal("Failed to add review", err)
	}
	return review, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	product, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, apperrors.Internal("Failed to add product", err)
	}
	logger.Info(ctx, "Product created", zap.String("product_id", product.ID.Hex()), zap.String("name", product.Name))
	recordCount(s.metrics, MetricProductsCreated, map[string]string{"Category": product.Category})
	return product, nil
}

// UpdateProduct replaces every editable field of the product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req models.ProductRequest) (*models.Product, error) {
	product, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}
	updated, err := s.productRepo.Replace(ctx, id, product)
	if err != nil {
		return nil, repoErr(err, "Product not found", "Failed to update product")
	}
	return updated, nil
}

// DeleteProduct removes the product and all of its reviews. Orders keep
// their item snapshots.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return repoErr(err, "Product not found", "Failed to delete product")
	}
	id = product.ID.Hex()
	removed, err := s.reviewRepo.DeleteByProduct(ctx, id)
	if err != nil {
		return apperrors.Internal("Failed to delete product", err)
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return repoErr(err, "Product not found", "Failed to delete product")
	}
	logger.Info(ctx, "Product deleted", zap.String("product_id", id), zap.Int64("reviews_removed", removed))
	return nil
}

// SyncCatalog deletes every product and recreates the demo catalog.
func (s *CatalogService) SyncCatalog(ctx context.Context) (int, error) {
	if _, err := s.productRepo.DeleteAll(ctx); err != nil {
		return 0, apperrors.Internal("Failed to sync products", err)
	}
	products := DemoCatalog()
	if err := s.productRepo.CreateMany(ctx, products); err != nil {
		return 0, apperrors.Internal("Failed to sync products", err)
	}
	return len(products), nil
}

func productFromRequest(req models.ProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	category := strings.TrimSpace(req.Category)
	if name == "" || req.Price == 0 || category == "" {
		return nil, apperrors.Validation("Name, price, and category are required")
	}
	if req.Price < 0 {
		return nil, apperrors.Validation("Price must be a positive number")
	}
	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}
	if stock < 0 {
		return nil, apperrors.Validation("Stock cannot be negative")
	}
	return &models.Product{
		Name:        name,
		Price:       int64(req.Price),
		Category:    category,
		Stock:       stock,
		Description: strings.TrimSpace(req.Description),
		ImageURL:    strings.TrimSpace(req.ImageURL),
	}, nil
}
