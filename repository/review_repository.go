package repository

import (
	"context"
	"time"

	"github.com/yashrajoria/storefront/database"
	"github.com/yashrajoria/storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{
		collection: db.Collection(database.ReviewsCollection),
	}
}

func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"product_id": productID}, newestFirst)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	if review.Images == nil {
		review.Images = []string{}
	}
	_, err := r.collection.InsertOne(ctx, review)
	return translate(err)
}

// DeleteByProduct removes every review of a product.
func (r *ReviewRepository) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"product_id": productID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
