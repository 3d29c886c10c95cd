package cart

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/marketplace-backend/internal/database"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	upsertLineQuery = `
		INSERT INTO cart_lines (customer_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id, product_id)
		DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
		RETURNING id, quantity
	`
	listLinesQuery = `
		SELECT c.id, c.product_id, p.name, c.quantity, p.price
		FROM cart_lines c
		JOIN products p ON p.id = c.product_id
		WHERE c.customer_id = $1
		ORDER BY c.id
	`
	deleteLineQuery = `DELETE FROM cart_lines WHERE id = $1 AND customer_id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, customerID, productID, qty int) (Line, error) {
	l := Line{CustomerID: customerID, ProductID: productID}
	err := r.db.QueryRowContext(ctx, upsertLineQuery, customerID, productID, qty).Scan(&l.ID, &l.Quantity)
	if err != nil {
		if constraint, ok := database.IsForeignKeyViolation(err); ok && constraint == database.ConstraintCartProduct {
			return Line{}, ErrProductNotFound.Wrap(err)
		}
		if database.IsNumericOutOfRange(err) {
			return Line{}, ErrQuantityTooLarge.Wrap(err)
		}
		return Line{}, err
	}
	return l, nil
}

func (r *PostgresRepository) List(ctx context.Context, customerID int) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, listLinesQuery, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var (
			l     Line
			name  string
			price decimal.Decimal
		)
		if err := rows.Scan(&l.ID, &l.ProductID, &name, &l.Quantity, &price); err != nil {
			return nil, err
		}
		out = append(out, newItem(l, name, price))
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Remove(ctx context.Context, customerID, lineID int) error {
	res, err := r.db.ExecContext(ctx, deleteLineQuery, lineID, customerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLineNotFound
	}
	return nil
}
