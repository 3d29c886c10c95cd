package main

import (
	"context"
	"math/rand"
	"testing"

	"github.com/wichananm65/marketplace-backend/internal/auth"
	"github.com/wichananm65/marketplace-backend/internal/category"
	"github.com/wichananm65/marketplace-backend/internal/product"
	"github.com/wichananm65/marketplace-backend/internal/user"
)

func newTestSeeder() (*seeder, *user.InMemoryRepository, *product.InMemoryRepository) {
	users := user.NewInMemoryRepository(nil)
	cats := category.NewInMemoryRepository(nil)
	// category ids 1..5 are created by EnsureDefaults
	products := product.NewInMemoryRepository(nil, 1, 2, 3, 4, 5)
	productService := product.NewService(products)
	return &seeder{
		users:      user.NewService(users),
		categories: category.NewService(cats, productService),
		products:   productService,
		rng:        rand.New(rand.NewSource(1)),
	}, users, products
}

func TestSeedBase_Idempotent(t *testing.T) {
	s, users, _ := newTestSeeder()
	ctx := context.Background()

	if err := s.base(ctx, "admin", "secret"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := s.base(ctx, "admin", "secret"); err != nil {
		t.Fatalf("second run: %v", err)
	}

	admin, err := users.GetByUsername(ctx, "admin")
	if err != nil || admin.Role != auth.RoleAdmin {
		t.Fatalf("expected admin account, got %+v %v", admin, err)
	}
	if n, _, _ := users.Counts(); n != 1 {
		t.Fatalf("expected a single user, got %d", n)
	}
	cats, _ := s.categories.List(ctx)
	if len(cats) != len(category.DefaultNames) {
		t.Fatalf("expected %d categories, got %d", len(category.DefaultNames), len(cats))
	}
}

func TestSeedDemo(t *testing.T) {
	s, users, products := newTestSeeder()
	ctx := context.Background()
	if err := s.base(ctx, "admin", "secret"); err != nil {
		t.Fatalf("base: %v", err)
	}
	if err := s.demo(ctx); err != nil {
		t.Fatalf("demo: %v", err)
	}

	_, customers, sellers := users.Counts()
	if customers != demoAccounts || sellers != demoAccounts {
		t.Fatalf("expected %d customers and sellers, got %d and %d", demoAccounts, customers, sellers)
	}
	all, _ := products.ListAll(ctx)
	if len(all) != len(demoProducts) {
		t.Fatalf("expected %d products, got %d", len(demoProducts), len(all))
	}
	for _, p := range all {
		if p.Price.IsNegative() || p.Stock < 1 || p.SellerID == 0 {
			t.Fatalf("unexpected demo product %+v", p)
		}
	}

	// a second run finds the accounts and adds nothing
	if err := s.demo(ctx); err != nil {
		t.Fatalf("second demo run: %v", err)
	}
	if again, _ := products.ListAll(ctx); len(again) != len(demoProducts) {
		t.Fatalf("second run must not duplicate products, got %d", len(again))
	}
}
