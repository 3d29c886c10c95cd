package category

import (
	"context"
	"errors"
	"testing"

	"github.com/wichananm65/marketplace-backend/internal/product"
)

func TestEnsureDefaults_Idempotent(t *testing.T) {
	repo := NewInMemoryRepository([]Category{{ID: 1, Name: "Electronics"}})
	svc := NewService(repo, product.NewService(product.NewInMemoryRepository(nil)))

	created, err := svc.EnsureDefaults(context.Background())
	if err != nil {
		t.Fatalf("ensure defaults: %v", err)
	}
	if created != len(DefaultNames)-1 {
		t.Fatalf("expected %d new categories, got %d", len(DefaultNames)-1, created)
	}

	created, err = svc.EnsureDefaults(context.Background())
	if err != nil || created != 0 {
		t.Fatalf("second run should create nothing, got %d %v", created, err)
	}
	all, _ := repo.List(context.Background())
	if len(all) != len(DefaultNames) {
		t.Fatalf("expected %d categories, got %d", len(DefaultNames), len(all))
	}
}

func TestCreate_RequiresName(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil), product.NewService(product.NewInMemoryRepository(nil)))
	if _, err := svc.Create(context.Background(), "  "); !errors.Is(err, ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
}
