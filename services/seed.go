package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yashrajoria/storefront/models"
	"github.com/yashrajoria/storefront/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type demoProduct struct {
	name        string
	price       int64
	category    string
	stock       int
	description string
	image       string
}

var demoCatalog = []demoProduct{
	{"Air Max Pro Runner", 55000, "Running Sneakers", 50, "High performance running shoe with max cushioning.", "/images/SHOE1.jpg"},
	{"Classic White Sneakers", 2500, "Casual Sneakers", 100, "Clean white sneakers for everyday wear.", "/images/WhatsApp Image 2026-01-13 at 7.57.38 PM.jpeg"},
	{"Performance Runner", 30000, "Running Sneakers", 75, "Very fast and responsive running shoe.", "/images/WhatsApp Image 2026-01-13 at 7.57.39 PM (1).jpeg"},
	{"Executive Premium", 4000, "Premium Sneakers", 60, "Excellent quality for work and formal occasions.", "/images/WhatsApp Image 2026-01-13 at 7.57.39 PM.jpeg"},
	{"Athletic Performance", 55000, "Running Sneakers", 45, "Good for sports activities.", "/images/WhatsApp Image 2026-01-13 at 7.57.40 PM.jpeg"},
	{"Urban Casual", 2100, "Casual Sneakers", 120, "Light and comfortable for daily wear.", "/images/Screenshot 2026-02-04 122545.png"},
	{"Street Style Pro", 45000, "Premium Sneakers", 40, "Stylish for city walks.", "/images/Screenshot 2026-02-04 122832.png"},
	{"Comfort Walk", 2650, "Casual Sneakers", 90, "Super comfortable walking shoes.", "/images/Screenshot 2026-02-04 122857.png"},
	{"Elite Runner", 8500, "Running Sneakers", 80, "Great for long runs.", "/images/Screenshot 2026-02-04 123044.png"},
	{"Luxury Collection", 5200, "Premium Sneakers", 35, "Great for special occasions.", "/images/Screenshot 2026-02-04 123126.png"},
	{"Street Canvas", 3500, "Casual Sneakers", 70, "Retro style and comfortable.", "/images/Screenshot 2026-02-04 123222.png"},
	{"Exclusive Edition", 9500, "Premium Sneakers", 25, "Elegant and durable.", "/images/Screenshot 2026-02-04 123246.png"},
}

// DemoCatalog returns a fresh copy of the twelve demo sneakers.
func DemoCatalog() []models.Product {
	out := make([]models.Product, len(demoCatalog))
	for i, p := range demoCatalog {
		out[i] = models.Product{
			Name:        p.name,
			Price:       p.price,
			Category:    p.category,
			Stock:       p.stock,
			Description: p.description,
			ImageURL:    p.image,
		}
	}
	return out
}

// SeedResult reports what Seeder.SeedCatalog did.
type SeedResult struct {
	Inserted  int
	Refreshed int
}

// Seeder bootstraps the demo catalog and the admin account.
type Seeder struct {
	productRepo repository.ProductRepo
	userRepo    repository.UserRepo
	log         *zap.Logger
}

func NewSeeder(pr repository.ProductRepo, ur repository.UserRepo, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{productRepo: pr, userRepo: ur, log: log}
}

// SeedCatalog inserts the demo catalog into an empty products collection.
// When products already exist only the demo image references are refreshed.
func (s *Seeder) SeedCatalog(ctx context.Context) (SeedResult, error) {
	count, err := s.productRepo.Count(ctx)
	if err != nil {
		return SeedResult{}, fmt.Errorf("failed to count products: %w", err)
	}

	if count == 0 {
		products := DemoCatalog()
		if err := s.productRepo.CreateMany(ctx, products); err != nil {
			return SeedResult{}, fmt.Errorf("failed to seed products: %w", err)
		}
		s.log.Info("Seeded demo products", zap.Int("count", len(products)))
		return SeedResult{Inserted: len(products)}, nil
	}

	for _, p := range demoCatalog {
		if err := s.productRepo.SetImageByName(ctx, p.name, p.image); err != nil {
			return SeedResult{}, fmt.Errorf("failed to refresh image for %q: %w", p.name, err)
		}
	}
	s.log.Info("Refreshed demo product images", zap.Int("count", len(demoCatalog)))
	return SeedResult{Refreshed: len(demoCatalog)}, nil
}

// SeedAdmin creates an admin account unless one with email already exists.
// Both email and password must be provided; there is no built-in default.
func (s *Seeder) SeedAdmin(ctx context.Context, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("failed to look up admin: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := &models.User{
		Name:     adminName(email),
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
		Wishlist: []string{},
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	s.log.Info("Seeded admin user", zap.String("email", email))
	return true, nil
}

func adminName(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return "Admin (" + email[:at] + ")"
	}
	return "Admin"
}
