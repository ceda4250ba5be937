package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexInt accepts a JSON number or a numeric string and rounds it to the
// nearest whole number. Clients send prices and totals both ways.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	v, ok, err := parseFlexNumber(b)
	if err != nil || !ok {
		return err
	}
	*f = FlexInt(math.Round(v))
	return nil
}

// TruncInt is FlexInt that drops the fraction instead of rounding, so a
// rating of "4.9" is 4.
type TruncInt int64

func (t *TruncInt) UnmarshalJSON(b []byte) error {
	v, ok, err := parseFlexNumber(b)
	if err != nil || !ok {
		return err
	}
	*t = TruncInt(math.Trunc(v))
	return nil
}

// parseFlexNumber reports ok=false for null and empty strings.
func parseFlexNumber(b []byte) (float64, bool, error) {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return 0, false, nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0, false, err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return 0, false, nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("%q is not a number", raw)
	}
	return v, true, nil
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdate carries a partial profile update; nil fields are left as is.
type ProfileUpdate struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zipCode"`
	Country *string `json:"country"`
}

// Empty reports whether no field was supplied.
func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Phone == nil && p.Address == nil && p.City == nil &&
		p.State == nil && p.ZipCode == nil && p.Country == nil
}

type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       FlexInt `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"required"`
	Stock       *int    `json:"stock" binding:"omitempty,gte=0"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
}

type ReviewRequest struct {
	User    string   `json:"user"`
	Rating  TruncInt `json:"rating"`
	Comment string   `json:"comment"`
	Images  []string `json:"images"`
}

type CartItem struct {
	ProductID string  `json:"product_id,omitempty"`
	Name      string  `json:"name,omitempty"`
	Price     FlexInt `json:"price" binding:"gte=0"`
	Quantity  int     `json:"quantity" binding:"gte=1"`
	ImageURL  string  `json:"image_url,omitempty"`
}

type CartRequest struct {
	Items []CartItem `json:"items" binding:"required,dive"`
}

// CartQuote is the stateless pricing of a cart.
type CartQuote struct {
	Items     []CartItem `json:"items"`
	Subtotal  int64      `json:"subtotal"`
	Tax       int64      `json:"tax"`
	Total     int64      `json:"total"`
	ItemCount int        `json:"itemCount"`
}

// OrderItemRequest names a product and a quantity. Name, price and image are
// accepted for compatibility but replaced by the live catalog values.
type OrderItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Name      string  `json:"name"`
	Price     FlexInt `json:"price"`
	Quantity  int     `json:"quantity" binding:"required,gte=1"`
	ImageURL  string  `json:"image_url"`
}

type OrderRequest struct {
	UserID  string             `json:"userId" binding:"required"`
	Items   []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Total   FlexInt            `json:"total" binding:"required"`
	Address string             `json:"address"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ImageUploadRequest asks for a presigned URL to upload a product image.
type ImageUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ImageUpload describes a presigned upload target.
type ImageUpload struct {
	UploadURL string            `json:"upload_url"`
	Method    string            `json:"method"`
	Key       string            `json:"key"`
	PublicURL string            `json:"public_url"`
	Headers   map[string]string `json:"headers,omitempty"`
	ExpiresIn int64             `json:"expires_in"`
}
