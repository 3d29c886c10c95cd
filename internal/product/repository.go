package product

import (
	"context"
	"sort"
	"sync"

	"github.com/wichananm65/marketplace-backend/internal/apperr"
)

var (
	ErrNotFound        = apperr.NotFound("product not found")
	ErrUnknownCategory = apperr.Validation("unknown category_id")
	ErrInvalidPrice    = apperr.Validation("price must be >= 0")
	ErrInvalidStock    = apperr.Validation("stock must be >= 0")
	ErrMissingName     = apperr.Validation("name is required")
)

type Repository interface {
	GetByID(ctx context.Context, id int) (Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	ListByCategory(ctx context.Context, categoryID int) ([]Product, error)
	ListBySeller(ctx context.Context, sellerID int) ([]Product, error)
	// ListByIDs returns the products whose id is in ids. Unknown ids are
	// skipped; an empty slice returns an empty result without a query.
	ListByIDs(ctx context.Context, ids []int) ([]Product, error)
	Create(ctx context.Context, p Product) (Product, error)
}

// InMemoryRepository is used for tests and local scenarios. Categories must
// be registered with it for Create to accept a category id.
type InMemoryRepository struct {
	mu         sync.RWMutex
	products   []Product
	categories map[int]bool
	nextID     int
}

func NewInMemoryRepository(seed []Product, categoryIDs ...int) *InMemoryRepository {
	r := &InMemoryRepository{
		products:   make([]Product, 0, len(seed)),
		categories: map[int]bool{},
		nextID:     1,
	}
	for _, id := range categoryIDs {
		r.categories[id] = true
	}
	for _, p := range seed {
		r.products = append(r.products, p)
		r.categories[p.CategoryID] = true
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) ListAll(_ context.Context) ([]Product, error) {
	return r.filter(func(Product) bool { return true }), nil
}

func (r *InMemoryRepository) ListByCategory(_ context.Context, categoryID int) ([]Product, error) {
	return r.filter(func(p Product) bool { return p.CategoryID == categoryID }), nil
}

func (r *InMemoryRepository) ListBySeller(_ context.Context, sellerID int) ([]Product, error) {
	return r.filter(func(p Product) bool { return p.SellerID == sellerID }), nil
}

func (r *InMemoryRepository) ListByIDs(_ context.Context, ids []int) ([]Product, error) {
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return r.filter(func(p Product) bool { return want[p.ID] }), nil
}

func (r *InMemoryRepository) Create(_ context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.categories[p.CategoryID] {
		return Product{}, ErrUnknownCategory
	}
	p.ID = r.nextID
	r.nextID++
	r.products = append(r.products, p)
	return p, nil
}

func (r *InMemoryRepository) filter(keep func(Product) bool) []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0)
	for _, p := range r.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
