package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

var orderStatuses = map[string]bool{
	OrderStatusPending:    true,
	OrderStatusProcessing: true,
	OrderStatusShipped:    true,
	OrderStatusDelivered:  true,
	OrderStatusCancelled:  true,
}

// ValidOrderStatus reports whether s is one of the five order states.
func ValidOrderStatus(s string) bool {
	return orderStatuses[s]
}

// OrderItem is a snapshot of a product at purchase time.
type OrderItem struct {
	ProductID string `json:"product_id" bson:"product_id"`
	Name      string `json:"name" bson:"name"`
	Price     int64  `json:"price" bson:"price"`
	Quantity  int    `json:"quantity" bson:"quantity"`
	ImageURL  string `json:"image_url" bson:"image_url"`
}

type Order struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OrderID           string             `json:"order_id" bson:"order_id"`
	UserID            string             `json:"user_id" bson:"user_id"`
	Items             []OrderItem        `json:"items" bson:"items"`
	Total             int64              `json:"total" bson:"total"`
	Address           string             `json:"address" bson:"address"`
	Status            string             `json:"status" bson:"status"`
	EstimatedDelivery time.Time          `json:"estimated_delivery" bson:"estimated_delivery"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         *time.Time         `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// PublicStats is the dashboard summary visible to everyone.
type PublicStats struct {
	TotalProducts int64 `json:"totalProducts"`
	TotalOrders   int64 `json:"totalOrders"`
	TotalUsers    int64 `json:"totalUsers"`
	TotalRevenue  int64 `json:"totalRevenue"`
	TotalStock    int64 `json:"totalStock"`
}

// AdminStats extends PublicStats with order and stock health counters.
type AdminStats struct {
	PublicStats
	PendingOrders    int64 `json:"pendingOrders"`
	CompletedOrders  int64 `json:"completedOrders"`
	LowStockProducts int64 `json:"lowStockProducts"`
}
