package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wichananm65/marketplace-backend/internal/auth"
	"github.com/wichananm65/marketplace-backend/internal/database"
)

func TestCreateCustomer_CommitsBothRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").WithArgs("ann", "hash", "customer").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(4, now))
	mock.ExpectQuery("INSERT INTO customers").WithArgs(4, "Ann", "ann@example.com", "1 Main", "0712").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectCommit()

	u, c, err := repo.CreateCustomer(context.Background(),
		User{Username: "ann", PasswordHash: "hash", Role: auth.RoleCustomer},
		Customer{Name: "Ann", Email: "ann@example.com", Address: "1 Main", Phone: "0712"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if u.ID != 4 || c.ID != 9 || c.UserID != 4 {
		t.Fatalf("unexpected ids user=%+v customer=%+v", u, c)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateCustomer_ProfileFailureRollsBackIdentity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(4, time.Now()))
	mock.ExpectQuery("INSERT INTO customers").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: database.ConstraintCustomerEmail})
	mock.ExpectRollback()

	_, _, err = repo.CreateCustomer(context.Background(),
		User{Username: "ann", PasswordHash: "hash", Role: auth.RoleCustomer},
		Customer{Name: "Ann", Email: "taken@example.com", Address: "1 Main"})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("identity insert was not rolled back: %v", err)
	}
}

func TestCreateSeller_UsernameRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: database.ConstraintUsername})
	mock.ExpectRollback()

	_, _, err = repo.CreateSeller(context.Background(),
		User{Username: "shop", PasswordHash: "hash", Role: auth.RoleSeller},
		Seller{BusinessName: "Shop", BusinessEmail: "s@example.com", BusinessAddress: "Rd"})
	if !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateSeller_DefaultsToPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(2, time.Now()))
	mock.ExpectQuery("INSERT INTO sellers").WithArgs(2, "Shop", "s@example.com", "Rd", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	_, s, err := repo.CreateSeller(context.Background(),
		User{Username: "shop", PasswordHash: "hash", Role: auth.RoleSeller},
		Seller{BusinessName: "Shop", BusinessEmail: "s@example.com", BusinessAddress: "Rd"})
	if err != nil {
		t.Fatalf("create seller: %v", err)
	}
	if s.Status != SellerPending || s.UserID != 2 {
		t.Fatalf("unexpected seller %+v", s)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at"}).
		AddRow(1, "admin", "$2a$hash", "admin", time.Now())
	mock.ExpectQuery("FROM users").WithArgs("admin").WillReturnRows(rows)
	mock.ExpectQuery("FROM users").WithArgs("ghost").WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at"}))

	u, err := repo.GetByUsername(context.Background(), "admin")
	if err != nil || u.Role != auth.RoleAdmin {
		t.Fatalf("unexpected user %+v %v", u, err)
	}
	if _, err := repo.GetByUsername(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetCustomerByUserID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM customers").WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "email", "address", "phone"}))
	if _, err := repo.GetCustomerByUserID(context.Background(), 5); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}
