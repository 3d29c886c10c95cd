package seller

import (
	"context"
	"sort"
	"sync"

	"github.com/wichananm65/marketplace-backend/internal/apperr"
	"github.com/wichananm65/marketplace-backend/internal/user"
)

var (
	ErrNotFound  = apperr.NotFound("seller not found")
	ErrHasOrders = apperr.Validation("seller has orders and cannot be declined")
)

// Repository covers seller administration and the seller's view of buyers.
type Repository interface {
	List(ctx context.Context) ([]user.Seller, error)
	Approve(ctx context.Context, id int) error
	// Decline removes the seller profile and its products. The user row
	// is kept.
	Decline(ctx context.Context, id int) error
	// ListBuyers returns the distinct customers holding an order for one of
	// the seller's products.
	ListBuyers(ctx context.Context, sellerID int) ([]user.Customer, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	sellers []user.Seller
	buyers  map[int][]user.Customer
}

func NewInMemoryRepository(seed []user.Seller) *InMemoryRepository {
	return &InMemoryRepository{
		sellers: append([]user.Seller(nil), seed...),
		buyers:  map[int][]user.Customer{},
	}
}

// SetBuyers records the customers that ordered from sellerID.
func (r *InMemoryRepository) SetBuyers(sellerID int, customers []user.Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buyers[sellerID] = customers
}

func (r *InMemoryRepository) List(_ context.Context) ([]user.Seller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]user.Seller{}, r.sellers...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) Approve(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.sellers {
		if s.ID == id {
			r.sellers[i].Status = user.SellerApproved
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Decline(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.sellers {
		if s.ID == id {
			if len(r.buyers[id]) > 0 {
				return ErrHasOrders
			}
			r.sellers = append(r.sellers[:i], r.sellers[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) ListBuyers(_ context.Context, sellerID int) ([]user.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]user.Customer{}, r.buyers[sellerID]...), nil
}
