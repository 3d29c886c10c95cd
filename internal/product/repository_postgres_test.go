package product

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/wichananm65/marketplace-backend/internal/database"
)

var productCols = []string{"id", "seller_id", "category_id", "name", "description", "price", "stock", "image"}

func TestListByCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows(productCols).
		AddRow(1, 2, 3, "Phone", "desc", "499.99", 4, "img").
		AddRow(2, 2, 3, "Case", nil, "9.50", 100, nil)
	mock.ExpectQuery("FROM products WHERE category_id").WithArgs(3).WillReturnRows(rows)

	products, err := repo.ListByCategory(context.Background(), 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if !products[0].Price.Equal(decimal.RequireFromString("499.99")) {
		t.Fatalf("unexpected price %s", products[0].Price)
	}
	if products[1].Description != "" || products[1].Image != "" {
		t.Fatalf("null columns should scan as empty strings: %+v", products[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM products WHERE id").WithArgs(9).WillReturnRows(sqlmock.NewRows(productCols))
	if _, err := repo.GetByID(context.Background(), 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// no query for an empty id list
	empty, err := repo.ListByIDs(context.Background(), nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty result, got %v %v", empty, err)
	}

	mock.ExpectQuery("ANY").WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(productCols).AddRow(5, 1, 1, "A", "", "1.00", 1, ""))
	got, err := repo.ListByIDs(context.Background(), []int{5, 6})
	if err != nil || len(got) != 1 || got[0].ID != 5 {
		t.Fatalf("unexpected result %v %v", got, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreate_UnknownCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO products").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: database.ConstraintProductCategory})
	_, err = repo.Create(context.Background(), Product{SellerID: 1, CategoryID: 77, Name: "x", Price: decimal.NewFromInt(1)})
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}

	mock.ExpectQuery("INSERT INTO products").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	p, err := repo.Create(context.Background(), Product{SellerID: 1, CategoryID: 1, Name: "x", Price: decimal.NewFromInt(1)})
	if err != nil || p.ID != 12 {
		t.Fatalf("unexpected create result %+v %v", p, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
