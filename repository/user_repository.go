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

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection(database.UsersCollection),
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Create inserts the user and sets its ID. A duplicate email yields
// ErrDuplicateKey.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	if user.Wishlist == nil {
		user.Wishlist = []string{}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, user)
	return translate(err)
}

func (r *UserRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	set["updated_at"] = time.Now().UTC()
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

// AddToWishlist appends productID unless it is already present.
func (r *UserRepository) AddToWishlist(ctx context.Context, userID, productID string) (*models.User, error) {
	return r.findOneAndUpdate(ctx, userID, bson.M{
		"$addToSet": bson.M{"wishlist": productID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
}

func (r *UserRepository) RemoveFromWishlist(ctx context.Context, userID, productID string) (*models.User, error) {
	return r.findOneAndUpdate(ctx, userID, bson.M{
		"$pull": bson.M{"wishlist": productID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *UserRepository) findOneAndUpdate(ctx context.Context, id string, update bson.M) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
