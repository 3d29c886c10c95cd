package user

import (
	"time"

	"github.com/wichananm65/marketplace-backend/internal/auth"
)

// User is an identity row. PasswordHash never leaves the process.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         auth.Role `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Customer is the profile of a customer-role user.
type Customer struct {
	ID      int    `json:"id"`
	UserID  int    `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone_no,omitempty"`
}

type SellerStatus string

const (
	SellerPending  SellerStatus = "pending"
	SellerApproved SellerStatus = "approved"
)

// Seller is the profile of a seller-role user.
type Seller struct {
	ID              int          `json:"id"`
	UserID          int          `json:"user_id"`
	BusinessName    string       `json:"business_name"`
	BusinessEmail   string       `json:"business_email"`
	BusinessAddress string       `json:"business_address"`
	Status          SellerStatus `json:"status"`
}
