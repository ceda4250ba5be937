package services

import (
	"context"
	"testing"

	"github.com/yashrajoria/storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDemoCatalog(t *testing.T) {
	catalog := DemoCatalog()

	require.Len(t, catalog, 12)
	names := map[string]bool{}
	for _, p := range catalog {
		assert.NotEmpty(t, p.Name)
		assert.Positive(t, p.Price)
		assert.Positive(t, p.Stock)
		assert.Contains(t, p.ImageURL, "/images/")
		names[p.Name] = true
	}
	assert.Len(t, names, 12, "demo product names must be unique")

	catalog[0].Name = "mutated"
	assert.Equal(t, "Air Max Pro Runner", DemoCatalog()[0].Name)
}

func TestSeedCatalog(t *testing.T) {
	ctx := context.Background()
	products := newMemProducts()
	seeder := NewSeeder(products, newMemUsers(), nil)

	res, err := seeder.SeedCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Inserted: 12}, res)

	// a second run only refreshes images
	require.NoError(t, products.SetImageByName(ctx, "Elite Runner", "/images/stale.png"))
	res, err = seeder.SeedCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Refreshed: 12}, res)

	n, _ := products.Count(ctx)
	assert.Equal(t, int64(12), n)
	hits, _ := products.Search(ctx, "Elite Runner")
	require.Len(t, hits, 1)
	assert.Equal(t, "/images/Screenshot 2026-02-04 123044.png", hits[0].ImageURL)
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers()
	seeder := NewSeeder(newMemProducts(), users, nil)

	created, err := seeder.SeedAdmin(ctx, "", "")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = seeder.SeedAdmin(ctx, " Ops@Example.com", "admin-pass-123")
	require.NoError(t, err)
	assert.True(t, created)

	admin, err := users.FindByEmail(ctx, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "Admin (ops)", admin.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("admin-pass-123")))

	created, err = seeder.SeedAdmin(ctx, "ops@example.com", "other")
	require.NoError(t, err)
	assert.False(t, created)
	n, _ := users.Count(ctx)
	assert.Equal(t, int64(1), n)
}
