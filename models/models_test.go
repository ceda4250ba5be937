package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFlexIntAcceptsNumbersAndStrings(t *testing.T) {
	cases := map[string]FlexInt{
		`{"price": 2500}`:      2500,
		`{"price": "2500"}`:    2500,
		`{"price": 99.6}`:      100,
		`{"price": " 12.4 "}`:  12,
		`{"price": null}`:      0,
		`{"price": ""}`:        0,
		`{"price": "-3"}`:      -3,
		`{"price": 1e3}`:       1000,
		`{"price": "4.5"}`:     5,
		`{"price": "0000042"}`: 42,
	}
	for body, want := range cases {
		var req struct {
			Price FlexInt `json:"price"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		assert.Equal(t, want, req.Price, body)
	}
}

func TestFlexIntRejectsNonNumeric(t *testing.T) {
	var req struct {
		Price FlexInt `json:"price"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"price": "cheap"}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"price": true}`), &req))
}

func TestProfileOmitsPassword(t *testing.T) {
	u := &User{ID: primitive.NewObjectID(), Name: "A", Email: "a@x.com", Password: "hash", Role: RoleUser}

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")

	p := u.Profile()
	assert.Equal(t, u.ID.Hex(), p.ID)
	assert.NotNil(t, p.Wishlist)
}

func TestShippingAddressSkipsEmptyParts(t *testing.T) {
	u := &User{Address: "Street 1", City: "Mumbai", ZipCode: "400001", Country: "India"}
	assert.Equal(t, "Street 1, Mumbai 400001, India", u.ShippingAddress())
	assert.Equal(t, "", (&User{}).ShippingAddress())
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{"Pending", "Processing", "Shipped", "Delivered", "Cancelled"} {
		assert.True(t, ValidOrderStatus(s), s)
	}
	assert.False(t, ValidOrderStatus("pending"))
	assert.False(t, ValidOrderStatus(""))
}

func TestTruncIntDropsFraction(t *testing.T) {
	cases := map[string]TruncInt{
		`{"rating": 5}`:      5,
		`{"rating": "5.6"}`:  5,
		`{"rating": 4.9}`:    4,
		`{"rating": "-1.5"}`: -1,
		`{"rating": null}`:   0,
	}
	for body, want := range cases {
		var req ReviewRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		assert.Equal(t, want, req.Rating, body)
	}

	var req ReviewRequest
	assert.Error(t, json.Unmarshal([]byte(`{"rating": "great"}`), &req))
}

func TestOrderUpdatedAtOmittedUntilSet(t *testing.T) {
	order := Order{OrderID: "ORD-ABC-1234", Status: OrderStatusPending}
	raw, err := json.Marshal(order)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "updated_at")

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	order.UpdatedAt = &now
	raw, err = json.Marshal(order)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"updated_at":"2026-03-01T10:00:00Z"`)
}
