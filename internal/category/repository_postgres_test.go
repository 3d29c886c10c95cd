package category

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wichananm65/marketplace-backend/internal/database"
)

func TestPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, name FROM categories").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Electronics").AddRow(2, "Smart Devices"))

	items, err := NewPostgresRepository(db).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[1].Name != "Smart Devices" {
		t.Fatalf("unexpected items %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM categories WHERE id").WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	if _, err := NewPostgresRepository(db).GetByID(context.Background(), 4); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresCreate_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("INSERT INTO categories").WithArgs("Electronics").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: database.ConstraintCategoryName})
	if _, err := NewPostgresRepository(db).Create(context.Background(), "Electronics"); !errors.Is(err, ErrNameExists) {
		t.Fatalf("expected ErrNameExists, got %v", err)
	}
}
