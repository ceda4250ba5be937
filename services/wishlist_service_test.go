package services

import (
	"context"
	"strings"
	"testing"

	"github.com/yashrajoria/storefront/apperrors"
	"github.com/yashrajoria/storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWishlist(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers()
	products := newMemProducts()
	svc := NewWishlistService(users, products)

	user := &models.User{Name: "Asha", Email: "asha@example.com"}
	require.NoError(t, users.Create(ctx, user))
	a := &models.Product{Name: "A", Price: 1, Category: "c"}
	b := &models.Product{Name: "B", Price: 2, Category: "c"}
	require.NoError(t, products.Create(ctx, a))
	require.NoError(t, products.Create(ctx, b))
	uid := user.ID.Hex()

	list, err := svc.Get(ctx, uid)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	_, err = svc.Add(ctx, uid, b.ID.Hex())
	require.NoError(t, err)
	list, err = svc.Add(ctx, uid, a.ID.Hex())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].Name)
	assert.Equal(t, "A", list[1].Name)

	t.Run("add is idempotent", func(t *testing.T) {
		list, err := svc.Add(ctx, uid, a.ID.Hex())
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("remove accepts any case", func(t *testing.T) {
		list, err := svc.Remove(ctx, uid, strings.ToUpper(b.ID.Hex()))
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "A", list[0].Name)

		list, err = svc.Remove(ctx, uid, b.ID.Hex())
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("deleted products are skipped", func(t *testing.T) {
		require.NoError(t, products.Delete(ctx, a.ID.Hex()))
		list, err := svc.Get(ctx, uid)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.Add(ctx, uid, primitive.NewObjectID().Hex())
		assertKind(t, err, apperrors.KindNotFound, "Product not found")
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Get(ctx, primitive.NewObjectID().Hex())
		assertKind(t, err, apperrors.KindNotFound, "User not found")
	})
}
