package cart

import "github.com/shopspring/decimal"

// Line is one (product, quantity) entry of a customer's cart. A customer has
// at most one line per product.
type Line struct {
	ID         int `json:"id"`
	CustomerID int `json:"customer_id"`
	ProductID  int `json:"product_id"`
	Quantity   int `json:"quantity"`
}

// Item is a line joined with the product it references.
type Item struct {
	ID        int             `json:"id"`
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
}
