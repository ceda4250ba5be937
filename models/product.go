package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LowStockThreshold is the stock level below which a product counts as low.
const LowStockThreshold = 10

// Product prices are whole units of the smallest currency denomination.
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Price       int64              `json:"price" bson:"price"`
	Category    string             `json:"category" bson:"category"`
	Stock       int                `json:"stock" bson:"stock"`
	Description string             `json:"description" bson:"description"`
	ImageURL    string             `json:"image_url" bson:"image_url"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ProductID string             `json:"product_id" bson:"product_id"`
	User      string             `json:"user" bson:"user"`
	Rating    int                `json:"rating" bson:"rating"`
	Comment   string             `json:"comment" bson:"comment"`
	Images    []string           `json:"images" bson:"images"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
