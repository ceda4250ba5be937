package repository

import (
	"context"
	"regexp"
	"time"

	"github.com/yashrajoria/storefront/database"
	"github.com/yashrajoria/storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection(database.ProductsCollection),
	}
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{}, newestFirst)
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var product models.Product
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&product); err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// FindByIDs returns the products whose ids are in ids. Malformed ids are
// skipped.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := objectID(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []models.Product{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, nil)
}

// Search matches query as a case-insensitive literal substring of the name
// or the category.
func (r *ProductRepository) Search(ctx context.Context, query string) ([]models.Product, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"category": pattern},
	}}
	return r.find(ctx, filter, newestFirst)
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	stamp(product)
	_, err := r.collection.InsertOne(ctx, product)
	return translate(err)
}

func (r *ProductRepository) CreateMany(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	docs := make([]interface{}, len(products))
	for i := range products {
		stamp(&products[i])
		docs[i] = products[i]
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return translate(err)
}

// Replace overwrites the editable fields of a product and returns the
// updated document.
func (r *ProductRepository) Replace(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"name":        product.Name,
		"price":       product.Price,
		"category":    product.Category,
		"stock":       product.Stock,
		"description": product.Description,
		"image_url":   product.ImageURL,
		"updated_at":  time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated); err != nil {
		return nil, translate(err)
	}
	return &updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
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

func (r *ProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// SetImageByName refreshes the image reference of the product with the given
// name. A missing product is not an error.
func (r *ProductRepository) SetImageByName(ctx context.Context, name, imageURL string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{"image_url": imageURL, "updated_at": time.Now().UTC()}},
	)
	return err
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// Summary counts products, sums their stock and counts those below the
// low-stock threshold in a single aggregation.
func (r *ProductRepository) Summary(ctx context.Context) (ProductSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "stock", Value: bson.D{{Key: "$sum", Value: "$stock"}}},
			{Key: "low_stock", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$lt", Value: bson.A{"$stock", models.LowStockThreshold}}}, 1, 0,
			}}}}}},
		}}},
	}
	var out ProductSummary
	err := aggregateOne(ctx, r.collection, pipeline, &out)
	return out, err
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func stamp(product *models.Product) {
	now := time.Now().UTC()
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
}

// aggregateOne runs a pipeline expected to yield at most one document and
// decodes it into out. An empty result leaves out untouched.
func aggregateOne(ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline, out interface{}) error {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		if err := cursor.Decode(out); err != nil {
			return err
		}
	}
	return cursor.Err()
}
