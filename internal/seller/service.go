// Package seller implements seller administration and the seller's buyer list.
package seller

import (
	"context"

	"github.com/wichananm65/marketplace-backend/internal/user"
)

type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List(ctx context.Context) ([]user.Seller, error) {
	return s.repo.List(ctx)
}

func (s *Service) Approve(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.Approve(ctx, id)
}

func (s *Service) Decline(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.Decline(ctx, id)
}

func (s *Service) Buyers(ctx context.Context, sellerID int) ([]user.Customer, error) {
	return s.repo.ListBuyers(ctx, sellerID)
}
