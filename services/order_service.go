package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yashrajoria/storefront/apperrors"
	"github.com/yashrajoria/storefront/logger"
	"github.com/yashrajoria/storefront/models"
	"github.com/yashrajoria/storefront/repository"

	"go.uber.org/zap"
)

const (
	// DeliveryWindow is added to the order time to estimate delivery.
	DeliveryWindow = 5 * 24 * time.Hour
	// maxCodeAttempts bounds order-code regeneration on collisions.
	maxCodeAttempts = 5
)

var errCodeSpaceExhausted = errors.New("could not generate a unique order id")

type OrderService struct {
	orderRepo   repository.OrderRepo
	userRepo    repository.UserRepo
	productRepo repository.ProductRepo
	events      EventPublisher
	metrics     MetricsRecorder
	maxItems    int
	now         func() time.Time
	newCode     func() string
}

func NewOrderService(or repository.OrderRepo, ur repository.UserRepo, pr repository.ProductRepo, events EventPublisher, metrics MetricsRecorder, maxItems int) *OrderService {
	return &OrderService{
		orderRepo:   or,
		userRepo:    ur,
		productRepo: pr,
		events:      events,
		metrics:     metrics,
		maxItems:    maxItems,
		now:         time.Now,
		newCode:     NewOrderCode,
	}
}

// PlaceOrder snapshots the requested products from the live catalog,
// computes the total server side and stores the order as Pending.
func (s *OrderService) PlaceOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" || len(req.Items) == 0 || req.Total == 0 {
		return nil, apperrors.Validation("Missing required fields")
	}

	units := 0
	ids := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return nil, apperrors.Validation("Every item needs a product_id")
		}
		if item.Quantity < 1 {
			return nil, apperrors.Validation("Quantity must be at least 1")
		}
		units += item.Quantity
		ids = append(ids, item.ProductID)
	}
	if err := checkUnits(units, s.maxItems); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, repoErr(err, "User not found", "Failed to place order")
	}

	items, err := s.snapshot(ctx, req.Items, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]PriceLine, len(items))
	for i, it := range items {
		lines[i] = PriceLine{Price: it.Price, Quantity: it.Quantity}
	}
	_, _, total := Totals(lines)
	if int64(req.Total) != total {
		logger.Warn(ctx, "Order total differs from catalog pricing",
			zap.String("user_id", userID),
			zap.Int64("client_total", int64(req.Total)),
			zap.Int64("computed_total", total),
		)
	}

	address := strings.TrimSpace(req.Address)
	if address == "" {
		address = user.ShippingAddress()
	}

	now := s.now().UTC()
	order := &models.Order{
		UserID:            user.ID.Hex(),
		Items:             items,
		Total:             total,
		Address:           address,
		Status:            models.OrderStatusPending,
		EstimatedDelivery: now.Add(DeliveryWindow),
		CreatedAt:         now,
	}
	if err := s.insertWithUniqueCode(ctx, order); err != nil {
		return nil, apperrors.Internal("Failed to place order", err)
	}

	logger.Info(ctx, "Order placed", zap.String("order_id", order.OrderID), zap.String("user_id", userID), zap.Int64("total", total))
	s.publish(ctx, EventOrderPlaced, order)
	recordCount(s.metrics, MetricOrdersCreated, nil)
	return order, nil
}

// insertWithUniqueCode generates order codes until one is accepted by the
// unique index on order_id.
func (s *OrderService) insertWithUniqueCode(ctx context.Context, order *models.Order) error {
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code := s.newCode()

		exists, err := s.orderRepo.ExistsByOrderID(ctx, code)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		order.OrderID = code
		err = s.orderRepo.Create(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return err
		}
		logger.Warn(ctx, "Order code collision, regenerating", zap.String("order_id", code), zap.Int("attempt", attempt))
	}
	return errCodeSpaceExhausted
}

// snapshot copies name, price and image of each requested product.
func (s *OrderService) snapshot(ctx context.Context, reqItems []models.OrderItemRequest, ids []string) ([]models.OrderItem, error) {
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Internal("Failed to place order", err)
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID.Hex()] = p
	}

	items := make([]models.OrderItem, 0, len(reqItems))
	for _, it := range reqItems {
		p, ok := byID[strings.ToLower(strings.TrimSpace(it.ProductID))]
		if !ok {
			return nil, apperrors.Validation(fmt.Sprintf("Product %s is not available", it.ProductID))
		}
		items = append(items, models.OrderItem{
			ProductID: p.ID.Hex(),
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
			ImageURL:  p.ImageURL,
		})
	}
	return items, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, canonicalID(userID))
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch orders", err)
	}
	return orders, nil
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch orders", err)
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "Order not found", "Failed to fetch order")
	}
	return order, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, apperrors.Validation("Invalid status")
	}
	order, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, repoErr(err, "Order not found", "Failed to update order status")
	}
	s.publish(ctx, EventOrderStatusChanged, order)
	if status == models.OrderStatusCancelled {
		recordCount(s.metrics, MetricOrdersCancelled, nil)
	}
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return repoErr(err, "Order not found", "Failed to delete order")
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return repoErr(err, "Order not found", "Failed to delete order")
	}
	s.publish(ctx, EventOrderDeleted, order)
	return nil
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *models.Order) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderEvent(ctx, newOrderEvent(eventType, order)); err != nil {
		logger.Warn(ctx, "Order event publish failed", zap.String("type", eventType), zap.String("order_id", order.OrderID), zap.Error(err))
	}
}
