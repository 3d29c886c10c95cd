package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const StatusPending = "pending"

// Order is one purchased cart line. Checkout writes one Order per line.
type Order struct {
	ID          int             `json:"order_id"`
	CustomerID  int             `json:"customer_id"`
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	OrderDate   time.Time       `json:"order_date"`
	Status      string          `json:"status"`
}

// maxTotal is the largest value orders.total_price (NUMERIC(12, 2)) stores.
var maxTotal = decimal.RequireFromString("9999999999.99")

func lineTotal(price decimal.Decimal, qty int) (decimal.Decimal, error) {
	total := price.Mul(decimal.NewFromInt(int64(qty)))
	if total.GreaterThan(maxTotal) {
		return decimal.Zero, ErrTotalTooLarge
	}
	return total, nil
}
