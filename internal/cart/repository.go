package cart

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/marketplace-backend/internal/apperr"
	"github.com/wichananm65/marketplace-backend/internal/product"
)

var (
	ErrProductNotFound  = apperr.NotFound("product not found")
	ErrLineNotFound     = apperr.NotFound("cart item not found")
	ErrInvalidQuantity  = apperr.Validation("quantity must be at least 1")
	ErrQuantityTooLarge = apperr.Validation("quantity must be at most 2147483647")
	ErrMissingProduct   = apperr.Validation("productId is required")
)

// MaxQuantity is the largest quantity a cart line can hold, merged or not.
// It matches the INT column.
const MaxQuantity = math.MaxInt32

// Repository persists cart lines.
type Repository interface {
	// Add inserts a line or increments the quantity of the existing line for
	// the same (customer, product) pair in one step.
	Add(ctx context.Context, customerID, productID, qty int) (Line, error)
	List(ctx context.Context, customerID int) ([]Item, error)
	// Remove deletes a line only when it belongs to customerID.
	Remove(ctx context.Context, customerID, lineID int) error
}

// Catalog resolves products for the in-memory repository.
type Catalog interface {
	GetByID(ctx context.Context, id int) (product.Product, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.Mutex
	catalog Catalog
	lines   []Line
	nextID  int
}

func NewInMemoryRepository(catalog Catalog) *InMemoryRepository {
	return &InMemoryRepository{catalog: catalog, nextID: 1}
}

func (r *InMemoryRepository) Add(ctx context.Context, customerID, productID, qty int) (Line, error) {
	if _, err := r.catalog.GetByID(ctx, productID); err != nil {
		return Line{}, ErrProductNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.lines {
		if l.CustomerID == customerID && l.ProductID == productID {
			if l.Quantity > MaxQuantity-qty {
				return Line{}, ErrQuantityTooLarge
			}
			r.lines[i].Quantity += qty
			return r.lines[i], nil
		}
	}
	l := Line{ID: r.nextID, CustomerID: customerID, ProductID: productID, Quantity: qty}
	r.nextID++
	r.lines = append(r.lines, l)
	return l, nil
}

func (r *InMemoryRepository) List(ctx context.Context, customerID int) ([]Item, error) {
	r.mu.Lock()
	lines := r.linesOf(customerID)
	r.mu.Unlock()

	out := make([]Item, 0, len(lines))
	for _, l := range lines {
		p, err := r.catalog.GetByID(ctx, l.ProductID)
		if err != nil {
			continue
		}
		out = append(out, newItem(l, p.Name, p.Price))
	}
	return out, nil
}

func (r *InMemoryRepository) Remove(_ context.Context, customerID, lineID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.lines {
		if l.ID == lineID && l.CustomerID == customerID {
			r.lines = append(r.lines[:i], r.lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// Drain hands the customer's lines to fn while holding the cart lock and
// removes them only if fn succeeds. It gives in-memory checkouts the same
// all-or-nothing behaviour as the database transaction.
func (r *InMemoryRepository) Drain(customerID int, fn func([]Line) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.linesOf(customerID)
	if err := fn(lines); err != nil {
		return err
	}
	kept := r.lines[:0]
	for _, l := range r.lines {
		if l.CustomerID != customerID {
			kept = append(kept, l)
		}
	}
	r.lines = kept
	return nil
}

func (r *InMemoryRepository) linesOf(customerID int) []Line {
	out := make([]Line, 0)
	for _, l := range r.lines {
		if l.CustomerID == customerID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func newItem(l Line, name string, price decimal.Decimal) Item {
	return Item{
		ID:        l.ID,
		ProductID: l.ProductID,
		Name:      name,
		Quantity:  l.Quantity,
		Price:     price,
		Total:     price.Mul(decimal.NewFromInt(int64(l.Quantity))),
	}
}
