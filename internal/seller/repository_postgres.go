package seller

import (
	"context"
	"database/sql"

	"github.com/wichananm65/marketplace-backend/internal/database"
	"github.com/wichananm65/marketplace-backend/internal/user"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listSellersQuery = `
		SELECT id, user_id, business_name, business_email, business_address, status
		FROM sellers
		ORDER BY id
	`
	approveSellerQuery = `UPDATE sellers SET status = $2 WHERE id = $1`
	deleteSellerQuery  = `DELETE FROM sellers WHERE id = $1`
	listBuyersQuery    = `
		SELECT DISTINCT c.id, c.user_id, c.name, c.email, c.address, c.phone
		FROM customers c
		JOIN orders o ON o.customer_id = c.id
		JOIN products p ON p.id = o.product_id
		WHERE p.seller_id = $1
		ORDER BY c.id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]user.Seller, error) {
	rows, err := r.db.QueryContext(ctx, listSellersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.Seller, 0)
	for rows.Next() {
		var s user.Seller
		var status string
		if err := rows.Scan(&s.ID, &s.UserID, &s.BusinessName, &s.BusinessEmail, &s.BusinessAddress, &status); err != nil {
			return nil, err
		}
		s.Status = user.SellerStatus(status)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Approve(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, approveSellerQuery, id, string(user.SellerApproved))
	if err != nil {
		return err
	}
	return expectOne(res)
}

func (r *PostgresRepository) Decline(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, deleteSellerQuery, id)
	if err != nil {
		// orders reference products and do not cascade
		if _, ok := database.IsForeignKeyViolation(err); ok {
			return ErrHasOrders.Wrap(err)
		}
		return err
	}
	return expectOne(res)
}

func (r *PostgresRepository) ListBuyers(ctx context.Context, sellerID int) ([]user.Customer, error) {
	rows, err := r.db.QueryContext(ctx, listBuyersQuery, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.Customer, 0)
	for rows.Next() {
		var c user.Customer
		var phone sql.NullString
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Address, &phone); err != nil {
			return nil, err
		}
		c.Phone = phone.String
		out = append(out, c)
	}
	return out, rows.Err()
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
