package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yashrajoria/storefront/models"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	registerFn      func(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error)
	loginFn         func(ctx context.Context, email, password string) (*models.AuthResult, error)
	adminLoginFn    func(ctx context.Context, email, password string) (*models.AuthResult, error)
	verifyFn        func(ctx context.Context, token string) (*models.PublicProfile, error)
	getProfileFn    func(ctx context.Context, userID string) (*models.PublicProfile, error)
	updateProfileFn func(ctx context.Context, userID string, update models.ProfileUpdate) (*models.PublicProfile, error)
}

func (f *fakeAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthService) AdminLogin(ctx context.Context, email, password string) (*models.AuthResult, error) {
	return f.adminLoginFn(ctx, email, password)
}

func (f *fakeAuthService) Verify(ctx context.Context, token string) (*models.PublicProfile, error) {
	return f.verifyFn(ctx, token)
}

func (f *fakeAuthService) GetProfile(ctx context.Context, userID string) (*models.PublicProfile, error) {
	return f.getProfileFn(ctx, userID)
}

func (f *fakeAuthService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.PublicProfile, error) {
	return f.updateProfileFn(ctx, userID, update)
}

type fakeCatalogService struct {
	listCalled int

	listFn        func(ctx context.Context) ([]models.Product, error)
	getFn         func(ctx context.Context, id string) (*models.Product, error)
	searchFn      func(ctx context.Context, query string) ([]models.Product, error)
	listReviewsFn func(ctx context.Context, productID string) ([]models.Review, error)
	addReviewFn   func(ctx context.Context, productID string, req models.ReviewRequest) (*models.Review, error)
	createFn      func(ctx context.Context, req models.ProductRequest) (*models.Product, error)
	updateFn      func(ctx context.Context, id string, req models.ProductRequest) (*models.Product, error)
	deleteFn      func(ctx context.Context, id string) error
	syncFn        func(ctx context.Context) (int, error)
}

func (f *fakeCatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	f.listCalled++
	return f.listFn(ctx)
}

func (f *fakeCatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return f.getFn(ctx, id)
}

func (f *fakeCatalogService) Search(ctx context.Context, query string) ([]models.Product, error) {
	return f.searchFn(ctx, query)
}

func (f *fakeCatalogService) ListReviews(ctx context.Context, productID string) ([]models.Review, error) {
	return f.listReviewsFn(ctx, productID)
}

func (f *fakeCatalogService) AddReview(ctx context.Context, productID string, req models.ReviewRequest) (*models.Review, error) {
	return f.addReviewFn(ctx, productID, req)
}

func (f *fakeCatalogService) CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	return f.createFn(ctx, req)
}

func (f *fakeCatalogService) UpdateProduct(ctx context.Context, id string, req models.ProductRequest) (*models.Product, error) {
	return f.updateFn(ctx, id, req)
}

func (f *fakeCatalogService) DeleteProduct(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeCatalogService) SyncCatalog(ctx context.Context) (int, error) {
	return f.syncFn(ctx)
}

type fakeCartService struct {
	quoteFn func(items []models.CartItem) (*models.CartQuote, error)
}

func (f *fakeCartService) Quote(items []models.CartItem) (*models.CartQuote, error) {
	return f.quoteFn(items)
}

type fakeOrderService struct {
	placeFn        func(ctx context.Context, req models.OrderRequest) (*models.Order, error)
	listForUserFn  func(ctx context.Context, userID string) ([]models.Order, error)
	listAllFn      func(ctx context.Context) ([]models.Order, error)
	getFn          func(ctx context.Context, id string) (*models.Order, error)
	updateStatusFn func(ctx context.Context, id, status string) (*models.Order, error)
	deleteFn       func(ctx context.Context, id string) error
}

func (f *fakeOrderService) PlaceOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	return f.placeFn(ctx, req)
}

func (f *fakeOrderService) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	return f.listForUserFn(ctx, userID)
}

func (f *fakeOrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return f.listAllFn(ctx)
}

func (f *fakeOrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return f.getFn(ctx, id)
}

func (f *fakeOrderService) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	return f.updateStatusFn(ctx, id, status)
}

func (f *fakeOrderService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

type fakeWishlistService struct {
	getFn    func(ctx context.Context, userID string) ([]models.Product, error)
	addFn    func(ctx context.Context, userID, productID string) ([]models.Product, error)
	removeFn func(ctx context.Context, userID, productID string) ([]models.Product, error)
}

func (f *fakeWishlistService) Get(ctx context.Context, userID string) ([]models.Product, error) {
	return f.getFn(ctx, userID)
}

func (f *fakeWishlistService) Add(ctx context.Context, userID, productID string) ([]models.Product, error) {
	return f.addFn(ctx, userID, productID)
}

func (f *fakeWishlistService) Remove(ctx context.Context, userID, productID string) ([]models.Product, error) {
	return f.removeFn(ctx, userID, productID)
}

type fakeStatsService struct {
	publicFn func(ctx context.Context) (*models.PublicStats, error)
	adminFn  func(ctx context.Context) (*models.AdminStats, error)
}

func (f *fakeStatsService) Public(ctx context.Context) (*models.PublicStats, error) {
	return f.publicFn(ctx)
}

func (f *fakeStatsService) Admin(ctx context.Context) (*models.AdminStats, error) {
	return f.adminFn(ctx)
}

type fakeImageService struct {
	createFn func(ctx context.Context, productID string, req models.ImageUploadRequest) (*models.ImageUpload, error)
}

func (f *fakeImageService) CreateUpload(ctx context.Context, productID string, req models.ImageUploadRequest) (*models.ImageUpload, error) {
	return f.createFn(ctx, productID, req)
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

// ownerFunc adapts a function to OwnerCheck.
type ownerFunc func(c *gin.Context, userID string) error

func (f ownerFunc) CanActFor(c *gin.Context, userID string) error { return f(c, userID) }

func newTestRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: "localhost:0",
		Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return nil, errors.New("redis disabled in tests")
		},
	})
}

// envelope is the decoded response body.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Query   string          `json:"query"`
}

func perform(t *testing.T, router http.Handler, method, path string, body interface{}, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
