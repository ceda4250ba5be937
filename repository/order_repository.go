package repository

import (
	"context"
	"time"

	"github.com/yashrajoria/storefront/database"
	"github.com/yashrajoria/storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		collection: db.Collection(database.OrdersCollection),
	}
}

// Create inserts an order. A collision on order_id yields ErrDuplicateKey so
// the caller can regenerate the code.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, order)
	return translate(err)
}

func (r *OrderRepository) ExistsByOrderID(ctx context.Context, orderID string) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"order_id": orderID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var order models.Order
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Summary counts orders, sums their totals and counts pending and delivered
// orders in a single aggregation.
func (r *OrderRepository) Summary(ctx context.Context) (OrderSummary, error) {
	countStatus := func(status string) bson.D {
		return bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{
			bson.D{{Key: "$eq", Value: bson.A{"$status", status}}}, 1, 0,
		}}}}}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total"}}},
			{Key: "pending", Value: countStatus(models.OrderStatusPending)},
			{Key: "delivered", Value: countStatus(models.OrderStatusDelivered)},
		}}},
	}
	var out OrderSummary
	err := aggregateOne(ctx, r.collection, pipeline, &out)
	return out, err
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := r.collection.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
