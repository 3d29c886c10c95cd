package product

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// ServiceInterface is the read side of the catalog used by other packages.
type ServiceInterface interface {
	GetByID(ctx context.Context, id int) (Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	ListByCategory(ctx context.Context, categoryID int) ([]Product, error)
	ListByIDs(ctx context.Context, ids []int) ([]Product, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id int) (Product, error) {
	if id <= 0 {
		return Product{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]Product, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, categoryID int) ([]Product, error) {
	return s.repo.ListByCategory(ctx, categoryID)
}

func (s *Service) ListBySeller(ctx context.Context, sellerID int) ([]Product, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

func (s *Service) ListByIDs(ctx context.Context, ids []int) ([]Product, error) {
	return s.repo.ListByIDs(ctx, ids)
}

// Create adds a product owned by sellerID.
func (s *Service) Create(ctx context.Context, sellerID int, p Product) (Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return Product{}, ErrMissingName
	}
	if p.Price.LessThan(decimal.Zero) {
		return Product{}, ErrInvalidPrice
	}
	if p.Stock < 0 {
		return Product{}, ErrInvalidStock
	}
	if p.CategoryID <= 0 {
		return Product{}, ErrUnknownCategory
	}
	p.SellerID = sellerID
	p.Price = p.Price.Round(2)
	return s.repo.Create(ctx, p)
}
