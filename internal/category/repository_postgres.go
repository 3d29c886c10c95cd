package category

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wichananm65/marketplace-backend/internal/database"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

const (
	listCategoriesQuery = `SELECT id, name FROM categories ORDER BY id`
	getCategoryQuery    = `SELECT id, name FROM categories WHERE id = $1`
	insertCategoryQuery = `INSERT INTO categories (name) VALUES ($1) RETURNING id`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, listCategoriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx, getCategoryQuery, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		return Category{}, err
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, name string) (Category, error) {
	c := Category{Name: name}
	if err := r.db.QueryRowContext(ctx, insertCategoryQuery, name).Scan(&c.ID); err != nil {
		if constraint, ok := database.IsUniqueViolation(err); ok && constraint == database.ConstraintCategoryName {
			return Category{}, ErrNameExists.Wrap(err)
		}
		return Category{}, err
	}
	return c, nil
}
