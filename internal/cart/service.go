package cart

import "context"

// Service provides business logic for carts.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) Add(ctx context.Context, customerID, productID, qty int) (Line, error) {
	if productID <= 0 {
		return Line{}, ErrMissingProduct
	}
	if qty < 1 {
		return Line{}, ErrInvalidQuantity
	}
	if qty > MaxQuantity {
		return Line{}, ErrQuantityTooLarge
	}
	return s.repo.Add(ctx, customerID, productID, qty)
}

func (s *Service) List(ctx context.Context, customerID int) ([]Item, error) {
	return s.repo.List(ctx, customerID)
}

func (s *Service) Remove(ctx context.Context, customerID, lineID int) error {
	if lineID <= 0 {
		return ErrLineNotFound
	}
	return s.repo.Remove(ctx, customerID, lineID)
}
