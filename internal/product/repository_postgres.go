package product

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/wichananm65/marketplace-backend/internal/database"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	productColumns = `id, seller_id, category_id, name, description, price, stock, image`

	getProductQuery     = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	listProductsQuery   = `SELECT ` + productColumns + ` FROM products ORDER BY id`
	listByCategoryQuery = `SELECT ` + productColumns + ` FROM products WHERE category_id = $1 ORDER BY id`
	listBySellerQuery   = `SELECT ` + productColumns + ` FROM products WHERE seller_id = $1 ORDER BY id`
	listByIDsQuery      = `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1::int[]) ORDER BY id`
	insertProductQuery  = `
		INSERT INTO products (seller_id, category_id, name, description, price, stock, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, getProductQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]Product, error) {
	return r.list(ctx, listProductsQuery)
}

func (r *PostgresRepository) ListByCategory(ctx context.Context, categoryID int) ([]Product, error) {
	return r.list(ctx, listByCategoryQuery, categoryID)
}

func (r *PostgresRepository) ListBySeller(ctx context.Context, sellerID int) ([]Product, error) {
	return r.list(ctx, listBySellerQuery, sellerID)
}

func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	return r.list(ctx, listByIDsQuery, pq.Array(ids))
}

func (r *PostgresRepository) Create(ctx context.Context, p Product) (Product, error) {
	err := r.db.QueryRowContext(ctx, insertProductQuery,
		p.SellerID, p.CategoryID, p.Name, nullIfEmpty(p.Description), p.Price, p.Stock, nullIfEmpty(p.Image),
	).Scan(&p.ID)
	if err != nil {
		if constraint, ok := database.IsForeignKeyViolation(err); ok && constraint == database.ConstraintProductCategory {
			return Product{}, ErrUnknownCategory.Wrap(err)
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProduct(scanner rowScanner) (Product, error) {
	var p Product
	var desc, image sql.NullString
	if err := scanner.Scan(&p.ID, &p.SellerID, &p.CategoryID, &p.Name, &desc, &p.Price, &p.Stock, &image); err != nil {
		return Product{}, err
	}
	p.Description = desc.String
	p.Image = image.String
	return p, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
