package services

import (
	"context"

	"github.com/yashrajoria/storefront/apperrors"
	"github.com/yashrajoria/storefront/models"
	"github.com/yashrajoria/storefront/repository"
)

// StatsService aggregates dashboard figures. Nothing is cached.
type StatsService struct {
	productRepo repository.ProductRepo
	orderRepo   repository.OrderRepo
	userRepo    repository.UserRepo
}

func NewStatsService(pr repository.ProductRepo, or repository.OrderRepo, ur repository.UserRepo) *StatsService {
	return &StatsService{productRepo: pr, orderRepo: or, userRepo: ur}
}

func (s *StatsService) Public(ctx context.Context) (*models.PublicStats, error) {
	admin, err := s.Admin(ctx)
	if err != nil {
		return nil, err
	}
	return &admin.PublicStats, nil
}

func (s *StatsService) Admin(ctx context.Context) (*models.AdminStats, error) {
	products, err := s.productRepo.Summary(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch stats", err)
	}
	orders, err := s.orderRepo.Summary(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch stats", err)
	}
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch stats", err)
	}

	return &models.AdminStats{
		PublicStats: models.PublicStats{
			TotalProducts: products.Count,
			TotalOrders:   orders.Count,
			TotalUsers:    users,
			TotalRevenue:  orders.Revenue,
			TotalStock:    products.Stock,
		},
		PendingOrders:    orders.Pending,
		CompletedOrders:  orders.Delivered,
		LowStockProducts: products.LowStock,
	}, nil
}
