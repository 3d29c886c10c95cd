package order

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/wichananm65/marketplace-backend/internal/database"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	// Locking the customer's lines serialises concurrent checkouts: the
	// second one waits, then finds the cart empty.
	lockCartQuery = `
		SELECT c.id, c.product_id, c.quantity, p.price
		FROM cart_lines c
		JOIN products p ON p.id = c.product_id
		WHERE c.customer_id = $1
		ORDER BY c.id
		FOR UPDATE OF c
	`
	insertOrderQuery = `
		INSERT INTO orders (customer_id, product_id, quantity, total_price, order_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	deleteLinesQuery = `DELETE FROM cart_lines WHERE id = ANY($1)`
	listOrdersQuery  = `
		SELECT o.id, o.customer_id, o.product_id, p.name, o.quantity, o.total_price, o.order_date, o.status
		FROM orders o
		JOIN products p ON p.id = o.product_id
		WHERE o.customer_id = $1
		ORDER BY o.id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type pendingLine struct {
	id, productID, quantity int
	price                   decimal.Decimal
}

func (r *PostgresRepository) Checkout(ctx context.Context, customerID int, now time.Time) ([]Order, error) {
	var created []Order
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		lines, err := lockLines(ctx, tx, customerID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		orders := make([]Order, 0, len(lines))
		ids := make([]int64, 0, len(lines))
		for _, l := range lines {
			total, err := lineTotal(l.price, l.quantity)
			if err != nil {
				return err
			}
			o := Order{
				CustomerID: customerID,
				ProductID:  l.productID,
				Quantity:   l.quantity,
				TotalPrice: total,
				OrderDate:  now,
				Status:     StatusPending,
			}
			if err := tx.QueryRowContext(ctx, insertOrderQuery,
				o.CustomerID, o.ProductID, o.Quantity, o.TotalPrice, o.OrderDate, o.Status,
			).Scan(&o.ID); err != nil {
				if database.IsNumericOutOfRange(err) {
					return ErrTotalTooLarge.Wrap(err)
				}
				return err
			}
			orders = append(orders, o)
			ids = append(ids, int64(l.id))
		}

		if _, err := tx.ExecContext(ctx, deleteLinesQuery, pq.Array(ids)); err != nil {
			return err
		}
		created = orders
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func lockLines(ctx context.Context, tx *sql.Tx, customerID int) ([]pendingLine, error) {
	rows, err := tx.QueryContext(ctx, lockCartQuery, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []pendingLine
	for rows.Next() {
		var l pendingLine
		if err := rows.Scan(&l.id, &l.productID, &l.quantity, &l.price); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *PostgresRepository) ListByCustomer(ctx context.Context, customerID int) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, listOrdersQuery, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.ProductID, &o.ProductName, &o.Quantity, &o.TotalPrice, &o.OrderDate, &o.Status); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
