package services

import (
	"context"
	"strings"

	"github.com/yashrajoria/storefront/apperrors"
	"github.com/yashrajoria/storefront/models"
	"github.com/yashrajoria/storefront/repository"
)

// WishlistService stores product ids on the user and returns them hydrated.
// Add and remove both return the hydrated list.
type WishlistService struct {
	userRepo    repository.UserRepo
	productRepo repository.ProductRepo
}

func NewWishlistService(ur repository.UserRepo, pr repository.ProductRepo) *WishlistService {
	return &WishlistService{userRepo: ur, productRepo: pr}
}

func (s *WishlistService) Get(ctx context.Context, userID string) ([]models.Product, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, repoErr(err, "User not found", "Failed to fetch wishlist")
	}
	return s.hydrate(ctx, user.Wishlist, "Failed to fetch wishlist")
}

// Add is idempotent: a product already on the list is not added twice.
func (s *WishlistService) Add(ctx context.Context, userID, productID string) ([]models.Product, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, repoErr(err, "User not found", "Failed to update wishlist")
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, repoErr(err, "Product not found", "Failed to update wishlist")
	}
	user, err := s.userRepo.AddToWishlist(ctx, userID, product.ID.Hex())
	if err != nil {
		return nil, repoErr(err, "User not found", "Failed to update wishlist")
	}
	return s.hydrate(ctx, user.Wishlist, "Failed to update wishlist")
}

// Remove is idempotent: removing an absent product is not an error.
func (s *WishlistService) Remove(ctx context.Context, userID, productID string) ([]models.Product, error) {
	user, err := s.userRepo.RemoveFromWishlist(ctx, userID, strings.ToLower(strings.TrimSpace(productID)))
	if err != nil {
		return nil, repoErr(err, "User not found", "Failed to update wishlist")
	}
	return s.hydrate(ctx, user.Wishlist, "Failed to update wishlist")
}

// hydrate loads the products for ids, in wishlist order. Products deleted
// since they were added are skipped.
func (s *WishlistService) hydrate(ctx context.Context, ids []string, internalMsg string) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Internal(internalMsg, err)
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID.Hex()] = p
	}
	out := make([]models.Product, 0, len(products))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
			delete(byID, id)
		}
	}
	return out, nil
}
