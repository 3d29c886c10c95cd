package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wichananm65/marketplace-backend/internal/auth"
	"github.com/wichananm65/marketplace-backend/internal/database"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	getUserByIDQuery = `
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE id = $1
	`
	getUserByUsernameQuery = `
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE username = $1
	`
	insertUserQuery = `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	insertCustomerQuery = `
		INSERT INTO customers (user_id, name, email, address, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	insertSellerQuery = `
		INSERT INTO sellers (user_id, business_name, business_email, business_address, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	getCustomerByUserIDQuery = `
		SELECT id, user_id, name, email, address, phone
		FROM customers
		WHERE user_id = $1
	`
	getSellerByUserIDQuery = `
		SELECT id, user_id, business_name, business_email, business_address, status
		FROM sellers
		WHERE user_id = $1
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserByIDQuery, id))
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserByUsernameQuery, username))
}

func (r *PostgresRepository) Create(ctx context.Context, u User) (User, error) {
	if err := r.db.QueryRowContext(ctx, insertUserQuery, u.Username, u.PasswordHash, string(u.Role)).Scan(&u.ID, &u.CreatedAt); err != nil {
		return User{}, classify(err)
	}
	return u, nil
}

func (r *PostgresRepository) CreateCustomer(ctx context.Context, u User, c Customer) (User, Customer, error) {
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, insertUserQuery, u.Username, u.PasswordHash, string(u.Role)).Scan(&u.ID, &u.CreatedAt); err != nil {
			return classify(err)
		}
		c.UserID = u.ID
		var phone sql.NullString
		if c.Phone != "" {
			phone = sql.NullString{String: c.Phone, Valid: true}
		}
		if err := tx.QueryRowContext(ctx, insertCustomerQuery, c.UserID, c.Name, c.Email, c.Address, phone).Scan(&c.ID); err != nil {
			return classify(err)
		}
		return nil
	})
	if err != nil {
		return User{}, Customer{}, err
	}
	return u, c, nil
}

func (r *PostgresRepository) CreateSeller(ctx context.Context, u User, s Seller) (User, Seller, error) {
	if s.Status == "" {
		s.Status = SellerPending
	}
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, insertUserQuery, u.Username, u.PasswordHash, string(u.Role)).Scan(&u.ID, &u.CreatedAt); err != nil {
			return classify(err)
		}
		s.UserID = u.ID
		if err := tx.QueryRowContext(ctx, insertSellerQuery, s.UserID, s.BusinessName, s.BusinessEmail, s.BusinessAddress, string(s.Status)).Scan(&s.ID); err != nil {
			return classify(err)
		}
		return nil
	})
	if err != nil {
		return User{}, Seller{}, err
	}
	return u, s, nil
}

func (r *PostgresRepository) GetCustomerByUserID(ctx context.Context, userID int) (Customer, error) {
	var c Customer
	var phone sql.NullString
	err := r.db.QueryRowContext(ctx, getCustomerByUserIDQuery, userID).Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Address, &phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Customer{}, ErrCustomerNotFound
		}
		return Customer{}, err
	}
	c.Phone = phone.String
	return c, nil
}

func (r *PostgresRepository) GetSellerByUserID(ctx context.Context, userID int) (Seller, error) {
	var s Seller
	var status string
	err := r.db.QueryRowContext(ctx, getSellerByUserIDQuery, userID).Scan(&s.ID, &s.UserID, &s.BusinessName, &s.BusinessEmail, &s.BusinessAddress, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Seller{}, ErrSellerNotFound
		}
		return Seller{}, err
	}
	s.Status = SellerStatus(status)
	return s, nil
}

func scanUser(scanner rowScanner) (User, error) {
	var u User
	var role string
	if err := scanner.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	u.Role = auth.Role(role)
	return u, nil
}

// classify turns unique violations into the matching duplicate error.
func classify(err error) error {
	constraint, ok := database.IsUniqueViolation(err)
	if !ok {
		return err
	}
	switch constraint {
	case database.ConstraintUsername:
		return ErrUsernameExists.Wrap(err)
	case database.ConstraintCustomerEmail:
		return ErrEmailExists.Wrap(err)
	case database.ConstraintSellerBusinessMail:
		return ErrBusinessEmailExists.Wrap(err)
	default:
		return err
	}
}
