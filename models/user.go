package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a storefront account. Password holds the bcrypt hash and is never
// serialised to clients.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Phone     string             `json:"phone" bson:"phone"`
	Address   string             `json:"address" bson:"address"`
	City      string             `json:"city" bson:"city"`
	State     string             `json:"state" bson:"state"`
	ZipCode   string             `json:"zipCode" bson:"zip_code"`
	Country   string             `json:"country" bson:"country"`
	Wishlist  []string           `json:"wishlist" bson:"wishlist"`
	Role      string             `json:"role" bson:"role"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// PublicProfile is the subset of a User that is safe to return.
type PublicProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	ZipCode   string    `json:"zipCode"`
	Country   string    `json:"country"`
	Role      string    `json:"role"`
	Wishlist  []string  `json:"wishlist"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthResult is returned by register and login: the profile plus a token.
type AuthResult struct {
	PublicProfile
	Token string `json:"token"`
}

func (u *User) Profile() PublicProfile {
	wishlist := u.Wishlist
	if wishlist == nil {
		wishlist = []string{}
	}
	return PublicProfile{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		City:      u.City,
		State:     u.State,
		ZipCode:   u.ZipCode,
		Country:   u.Country,
		Role:      u.Role,
		Wishlist:  wishlist,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// ShippingAddress flattens the profile address fields into one line,
// skipping the empty ones.
func (u *User) ShippingAddress() string {
	line := ""
	add := func(part, sep string) {
		if part == "" {
			return
		}
		if line != "" {
			line += sep
		}
		line += part
	}
	add(u.Address, ", ")
	add(u.City, ", ")
	add(u.State, ", ")
	add(u.ZipCode, " ")
	add(u.Country, ", ")
	return line
}
