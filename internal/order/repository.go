package order

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/wichananm65/marketplace-backend/internal/apperr"
	"github.com/wichananm65/marketplace-backend/internal/cart"
)

var (
	ErrEmptyCart     = apperr.Validation("no items in cart")
	ErrTotalTooLarge = apperr.Validation("order total is too large")
)

// Repository defines persistence operations for orders.
type Repository interface {
	// Checkout converts every cart line of customerID into an order stamped
	// with now and empties the cart. Either all lines are converted or none.
	Checkout(ctx context.Context, customerID int, now time.Time) ([]Order, error)
	ListByCustomer(ctx context.Context, customerID int) ([]Order, error)
}

// InMemoryRepository checks out against an in-memory cart.
type InMemoryRepository struct {
	mu      sync.RWMutex
	carts   *cart.InMemoryRepository
	catalog cart.Catalog
	orders  []Order
	nextID  int

	// FailAfter makes Checkout fail once that many orders of the current
	// checkout have been built. Zero disables it.
	FailAfter int
}

func NewInMemoryRepository(carts *cart.InMemoryRepository, catalog cart.Catalog) *InMemoryRepository {
	return &InMemoryRepository{carts: carts, catalog: catalog, nextID: 1}
}

func (r *InMemoryRepository) Checkout(ctx context.Context, customerID int, now time.Time) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var created []Order
	err := r.carts.Drain(customerID, func(lines []cart.Line) error {
		if len(lines) == 0 {
			return ErrEmptyCart
		}
		built := make([]Order, 0, len(lines))
		for i, l := range lines {
			if r.FailAfter > 0 && i == r.FailAfter {
				return errInjected
			}
			p, err := r.catalog.GetByID(ctx, l.ProductID)
			if err != nil {
				return err
			}
			total, err := lineTotal(p.Price, l.Quantity)
			if err != nil {
				return err
			}
			built = append(built, Order{
				ID:         r.nextID + i,
				CustomerID: customerID,
				ProductID:  l.ProductID,
				Quantity:   l.Quantity,
				TotalPrice: total,
				OrderDate:  now,
				Status:     StatusPending,
			})
		}
		created = built
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.nextID += len(created)
	r.orders = append(r.orders, created...)
	return created, nil
}

func (r *InMemoryRepository) ListByCustomer(_ context.Context, customerID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0)
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var errInjected = errors.New("injected checkout failure")
