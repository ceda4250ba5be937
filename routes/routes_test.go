package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yashrajoria/storefront/controllers"
	"github.com/yashrajoria/storefront/middleware"
	"github.com/yashrajoria/storefront/models"
	"github.com/yashrajoria/storefront/repository"
	"github.com/yashrajoria/storefront/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "routes-test-secret-0123456789"

type stubUsers map[string]*models.User

func (s stubUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func setup(t *testing.T, staticDir string) (*gin.Engine, *services.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := services.NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)
	users := stubUsers{
		"user-1":  {Role: models.RoleUser},
		"admin-1": {Role: models.RoleAdmin},
	}

	r := gin.New()
	RegisterRoutes(r, Handlers{
		Auth:         controllers.NewAuthController(nil),
		Product:      controllers.NewProductController(nil, nil),
		Cart:         controllers.NewCartController(services.NewCartService(5)),
		Order:        controllers.NewOrderController(nil, nil),
		Wishlist:     controllers.NewWishlistController(nil),
		Stats:        controllers.NewStatsController(nil),
		Admin:        controllers.NewAdminController(nil, nil, nil, nil, nil),
		Health:       controllers.NewHealthController(okPinger{}),
		Authorizer:   middleware.NewAuthorizer(tokens, users),
		LoginLimiter: middleware.NewRateLimiter(60, 2, time.Minute),
	})
	RegisterStatic(r, "", staticDir)
	return r, tokens
}

func call(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthRoutes(t *testing.T) {
	r, _ := setup(t, "")
	for _, path := range []string{"/health", "/api/health"} {
		w := call(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), `"database":"MongoDB"`)
	}
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	r, tokens := setup(t, "")
	userToken, err := tokens.GenerateToken("user-1", "u@x.com", "U", models.RoleUser)
	require.NoError(t, err)
	// A stale admin claim does not help: the role is re-read from the store.
	staleToken, err := tokens.GenerateToken("user-1", "u@x.com", "U", models.RoleAdmin)
	require.NoError(t, err)

	guarded := []struct{ method, path string }{
		{http.MethodPost, "/api/products/sync"},
		{http.MethodPost, "/api/admin/products"},
		{http.MethodPut, "/api/admin/products/p1"},
		{http.MethodDelete, "/api/admin/products/p1"},
		{http.MethodPost, "/api/admin/products/p1/image-upload"},
		{http.MethodGet, "/api/admin/orders"},
		{http.MethodGet, "/api/admin/orders/o1"},
		{http.MethodPut, "/api/admin/orders/o1/status"},
		{http.MethodDelete, "/api/admin/orders/o1"},
		{http.MethodGet, "/api/admin/stats"},
	}
	for _, g := range guarded {
		assert.Equal(t, http.StatusUnauthorized, call(r, g.method, g.path, "").Code, g.path)
		assert.Equal(t, http.StatusForbidden, call(r, g.method, g.path, userToken).Code, g.path)
		assert.Equal(t, http.StatusForbidden, call(r, g.method, g.path, staleToken).Code, g.path)
	}
}

func TestUserRoutesRequireOwner(t *testing.T) {
	r, tokens := setup(t, "")
	userToken, err := tokens.GenerateToken("user-1", "u@x.com", "U", models.RoleUser)
	require.NoError(t, err)

	others := []struct{ method, path string }{
		{http.MethodGet, "/api/orders/user-2"},
		{http.MethodGet, "/api/wishlist/user-2"},
		{http.MethodPost, "/api/wishlist/user-2/p1"},
		{http.MethodDelete, "/api/wishlist/user-2/p1"},
		{http.MethodGet, "/api/auth/profile/user-2"},
		{http.MethodPut, "/api/auth/profile/user-2"},
	}
	for _, o := range others {
		assert.Equal(t, http.StatusUnauthorized, call(r, o.method, o.path, "").Code, o.path)
		assert.Equal(t, http.StatusForbidden, call(r, o.method, o.path, userToken).Code, o.path)
	}

	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodPost, "/api/orders", "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodPut, "/api/auth/profile", "").Code)
}

func TestPublicCartRoute(t *testing.T) {
	r, _ := setup(t, "")
	req := httptest.NewRequest(http.MethodPost, "/api/cart", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Request body is required")
}

func TestLoginRateLimited(t *testing.T) {
	r, _ := setup(t, "")
	var last int
	for i := 0; i < 3; i++ {
		last = call(r, http.MethodPost, "/api/auth/login", "").Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestUnknownRoute(t *testing.T) {
	r, _ := setup(t, "")
	w := call(r, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Route not found"}`, w.Body.String())
}

func TestStaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	r, _ := setup(t, dir)

	w := call(r, http.MethodGet, "/app.js", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w = call(r, http.MethodGet, "/checkout", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "app")

	w = call(r, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
