package category

import (
	"context"
	"errors"
	"strings"

	"github.com/wichananm65/marketplace-backend/internal/product"
)

// Service provides business logic for categories.
type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(r Repository, products product.ServiceInterface) *Service {
	return &Service{repo: r, products: products}
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

// Products returns the products of one category. An unknown category is
// reported as ErrNotFound rather than an empty list.
func (s *Service) Products(ctx context.Context, id int) ([]product.Product, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.products.ListByCategory(ctx, id)
}

// ListWithProducts nests every product under its category. Both sets are
// read once and joined here.
func (s *Service) ListWithProducts(ctx context.Context) ([]WithProducts, error) {
	cats, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[int][]product.Product, len(cats))
	for _, p := range all {
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
	}
	out := make([]WithProducts, 0, len(cats))
	for _, c := range cats {
		items := byCategory[c.ID]
		if items == nil {
			items = []product.Product{}
		}
		out = append(out, WithProducts{Category: c, Products: items})
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrMissingName
	}
	return s.repo.Create(ctx, name)
}

// EnsureDefaults creates any of DefaultNames that do not exist yet.
func (s *Service) EnsureDefaults(ctx context.Context) (created int, err error) {
	for _, name := range DefaultNames {
		_, err := s.Create(ctx, name)
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrNameExists):
		default:
			return created, err
		}
	}
	return created, nil
}
