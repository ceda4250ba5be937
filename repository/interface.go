package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yashrajoria/storefront/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when no document matches, including when the
	// identifier is not a valid ObjectID.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateKey is returned when a write violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)

// The repository interfaces use plain Go types (no mongo-driver types) so
// services can be tested against in-memory fakes.

type UserRepo interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	// Update applies fields with $set and returns the updated document.
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error)
	AddToWishlist(ctx context.Context, userID, productID string) (*models.User, error)
	RemoveFromWishlist(ctx context.Context, userID, productID string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

type ProductRepo interface {
	List(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	CreateMany(ctx context.Context, products []models.Product) error
	Replace(ctx context.Context, id string, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	SetImageByName(ctx context.Context, name, imageURL string) error
	Count(ctx context.Context) (int64, error)
	Summary(ctx context.Context) (ProductSummary, error)
}

type ReviewRepo interface {
	ListByProduct(ctx context.Context, productID string) ([]models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	DeleteByProduct(ctx context.Context, productID string) (int64, error)
}

type OrderRepo interface {
	Create(ctx context.Context, order *models.Order) error
	ExistsByOrderID(ctx context.Context, orderID string) (bool, error)
	FindByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Order, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) (OrderSummary, error)
}

// ProductSummary is the catalog aggregate used by the dashboards.
type ProductSummary struct {
	Count    int64 `bson:"count"`
	Stock    int64 `bson:"stock"`
	LowStock int64 `bson:"low_stock"`
}

// OrderSummary is the order aggregate used by the dashboards.
type OrderSummary struct {
	Count     int64 `bson:"count"`
	Revenue   int64 `bson:"revenue"`
	Pending   int64 `bson:"pending"`
	Delivered int64 `bson:"delivered"`
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	default:
		return err
	}
}
