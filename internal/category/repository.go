package category

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/wichananm65/marketplace-backend/internal/apperr"
)

var (
	ErrNotFound    = apperr.NotFound("category not found")
	ErrNameExists  = apperr.Duplicate("category already exists")
	ErrMissingName = apperr.Validation("name is required")
)

type Repository interface {
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id int) (Category, error)
	Create(ctx context.Context, name string) (Category, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	items  []Category
	nextID int
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	r := &InMemoryRepository{items: make([]Category, 0, len(seed)), nextID: 1}
	for _, c := range seed {
		r.items = append(r.items, c)
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
	}
	return r
}

func (r *InMemoryRepository) List(_ context.Context) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]Category(nil), r.items...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.items {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (r *InMemoryRepository) Create(_ context.Context, name string) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if strings.EqualFold(c.Name, name) {
			return Category{}, ErrNameExists
		}
	}
	c := Category{ID: r.nextID, Name: name}
	r.nextID++
	r.items = append(r.items, c)
	return c, nil
}
