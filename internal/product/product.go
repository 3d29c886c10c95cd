package product

import "github.com/shopspring/decimal"

// Product is a catalog entry owned by one seller and filed under one category.
type Product struct {
	ID          int             `json:"id"`
	SellerID    int             `json:"seller_id"`
	CategoryID  int             `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
}
