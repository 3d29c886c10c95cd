package order

import (
	"context"
	"time"

	"github.com/wichananm65/marketplace-backend/internal/product"
)

// Service provides business logic for orders.
type Service struct {
	repo     Repository
	products product.ServiceInterface
	now      func() time.Time
}

func NewService(r Repository, products product.ServiceInterface) *Service {
	return &Service{repo: r, products: products, now: time.Now}
}

// Checkout places one order per cart line of customerID.
func (s *Service) Checkout(ctx context.Context, customerID int) ([]Order, error) {
	orders, err := s.repo.Checkout(ctx, customerID, s.now().UTC())
	if err != nil {
		return nil, err
	}
	return s.withProductNames(ctx, orders), nil
}

func (s *Service) List(ctx context.Context, customerID int) ([]Order, error) {
	orders, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.withProductNames(ctx, orders), nil
}

// withProductNames fills ProductName where the repository left it empty.
// Lookup failures leave the names blank; the orders themselves are complete.
func (s *Service) withProductNames(ctx context.Context, orders []Order) []Order {
	if s.products == nil {
		return orders
	}
	idSet := map[int]struct{}{}
	for _, o := range orders {
		if o.ProductName == "" {
			idSet[o.ProductID] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return orders
	}
	ids := make([]int, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	prods, err := s.products.ListByIDs(ctx, ids)
	if err != nil {
		return orders
	}
	names := make(map[int]string, len(prods))
	for _, p := range prods {
		names[p.ID] = p.Name
	}
	for i := range orders {
		if orders[i].ProductName == "" {
			orders[i].ProductName = names[orders[i].ProductID]
		}
	}
	return orders
}
