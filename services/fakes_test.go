package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yashrajoria/storefront/models"
	"github.com/yashrajoria/storefront/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories that mirror the Mongo implementations closely enough
// for service tests.

type memUsers struct {
	mu    sync.Mutex
	byID  map[string]*models.User
	order []string
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*models.User{}} }

func (m *memUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[strings.ToLower(id)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	cp.Wishlist = append([]string{}, u.Wishlist...)
	return &cp, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	m.byID[user.ID.Hex()] = &cp
	m.order = append(m.order, user.ID.Hex())
	return nil
}

func (m *memUsers) Update(_ context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for k, v := range fields {
		s, _ := v.(string)
		switch k {
		case "name":
			u.Name = s
		case "phone":
			u.Phone = s
		case "address":
			u.Address = s
		case "city":
			u.City = s
		case "state":
			u.State = s
		case "zip_code":
			u.ZipCode = s
		case "country":
			u.Country = s
		}
	}
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	return &cp, nil
}

func (m *memUsers) AddToWishlist(_ context.Context, userID, productID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for _, id := range u.Wishlist {
		if id == productID {
			cp := *u
			return &cp, nil
		}
	}
	u.Wishlist = append(u.Wishlist, productID)
	cp := *u
	cp.Wishlist = append([]string{}, u.Wishlist...)
	return &cp, nil
}

func (m *memUsers) RemoveFromWishlist(_ context.Context, userID, productID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	kept := []string{}
	for _, id := range u.Wishlist {
		if id != productID {
			kept = append(kept, id)
		}
	}
	u.Wishlist = kept
	cp := *u
	cp.Wishlist = append([]string{}, kept...)
	return &cp, nil
}

func (m *memUsers) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.byID)), nil
}

type memProducts struct {
	mu    sync.Mutex
	items []models.Product
	seq   int
}

func newMemProducts() *memProducts { return &memProducts{} }

func (m *memProducts) add(p models.Product) models.Product {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.seq++
	// strictly increasing timestamps keep newest-first ordering stable
	p.CreatedAt = time.Unix(int64(1_700_000_000+m.seq), 0).UTC()
	p.UpdatedAt = p.CreatedAt
	m.items = append(m.items, p)
	return p
}

func (m *memProducts) newestFirst(in []models.Product) []models.Product {
	out := append([]models.Product{}, in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memProducts) List(context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.newestFirst(m.items), nil
}

func (m *memProducts) FindByID(_ context.Context, id string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.items {
		if strings.EqualFold(p.ID.Hex(), id) {
			cp := p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memProducts) FindByIDs(_ context.Context, ids []string) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := map[string]bool{}
	for _, id := range ids {
		want[strings.ToLower(id)] = true
	}
	out := []models.Product{}
	for _, p := range m.items {
		if want[p.ID.Hex()] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProducts) Search(_ context.Context, query string) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(query)
	var hits []models.Product
	for _, p := range m.items {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q) {
			hits = append(hits, p)
		}
	}
	return m.newestFirst(hits), nil
}

func (m *memProducts) Create(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	*product = m.add(*product)
	return nil
}

func (m *memProducts) CreateMany(_ context.Context, products []models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range products {
		products[i] = m.add(products[i])
	}
	return nil
}

func (m *memProducts) Replace(_ context.Context, id string, product *models.Product) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.items {
		if p.ID.Hex() == id {
			product.ID = p.ID
			product.CreatedAt = p.CreatedAt
			product.UpdatedAt = time.Now().UTC()
			m.items[i] = *product
			cp := *product
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.items {
		if p.ID.Hex() == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memProducts) DeleteAll(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.items))
	m.items = nil
	return n, nil
}

func (m *memProducts) SetImageByName(_ context.Context, name, imageURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].Name == name {
			m.items[i].ImageURL = imageURL
			return nil
		}
	}
	return nil
}

func (m *memProducts) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.items)), nil
}

func (m *memProducts) Summary(context.Context) (repository.ProductSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var s repository.ProductSummary
	for _, p := range m.items {
		s.Count++
		s.Stock += int64(p.Stock)
		if p.Stock < models.LowStockThreshold {
			s.LowStock++
		}
	}
	return s, nil
}

type memReviews struct {
	mu    sync.Mutex
	items []models.Review
}

func (m *memReviews) ListByProduct(_ context.Context, productID string) ([]models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Review{}
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].ProductID == productID {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

func (m *memReviews) Create(_ context.Context, review *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now().UTC()
	m.items = append(m.items, *review)
	return nil
}

func (m *memReviews) DeleteByProduct(_ context.Context, productID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.items[:0]
	var n int64
	for _, r := range m.items {
		if r.ProductID == productID {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.items = kept
	return n, nil
}

type memOrders struct {
	mu    sync.Mutex
	items []models.Order
	// dupOnCreate makes the next n Create calls fail with ErrDuplicateKey.
	dupOnCreate int
}

func (m *memOrders) Create(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dupOnCreate > 0 {
		m.dupOnCreate--
		return repository.ErrDuplicateKey
	}
	for _, o := range m.items {
		if o.OrderID == order.OrderID {
			return repository.ErrDuplicateKey
		}
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	m.items = append(m.items, *order)
	return nil
}

func (m *memOrders) ExistsByOrderID(_ context.Context, orderID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.items {
		if o.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memOrders) FindByID(_ context.Context, id string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.items {
		if o.ID.Hex() == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memOrders) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Order{}
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].UserID == userID {
			out = append(out, m.items[i])
		}
	}
	return out, nil
}

func (m *memOrders) ListAll(context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Order{}
	for i := len(m.items) - 1; i >= 0; i-- {
		out = append(out, m.items[i])
	}
	return out, nil
}

func (m *memOrders) UpdateStatus(_ context.Context, id, status string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID.Hex() == id {
			m.items[i].Status = status
			cp := m.items[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memOrders) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, o := range m.items {
		if o.ID.Hex() == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memOrders) Summary(context.Context) (repository.OrderSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var s repository.OrderSummary
	for _, o := range m.items {
		s.Count++
		s.Revenue += o.Total
		switch o.Status {
		case models.OrderStatusPending:
			s.Pending++
		case models.OrderStatusDelivered:
			s.Delivered++
		}
	}
	return s, nil
}

type recordedEvents struct {
	mu     sync.Mutex
	events []OrderEvent
	err    error
}

func (r *recordedEvents) PublishOrderEvent(_ context.Context, event OrderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordedEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}
