package category

import "github.com/wichananm65/marketplace-backend/internal/product"

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// WithProducts is a category with its products nested, used by the
// storefront listing.
type WithProducts struct {
	Category
	Products []product.Product `json:"products"`
}

// DefaultNames are the categories created by the seed command.
var DefaultNames = []string{
	"Electronics",
	"Home Appliances",
	"Smart Devices",
	"Wearable Tech",
	"Computers & Accessories",
}
