// Package auth issues and verifies bearer tokens and gates routes by role.
package auth

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/wichananm65/marketplace-backend/internal/apperr"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// Identity is the verified content of a bearer token.
type Identity struct {
	UserID int
	Role   Role
}

// ContextKey is where the jwt middleware stores the parsed token.
const ContextKey = "user"

var (
	ErrUnauthenticated = apperr.Authentication("missing or invalid token")
	ErrForbidden       = apperr.Authorization("unauthorized access")
)

// IdentityFromCtx reads the token left in c.Locals by the jwt middleware and
// validates its claims. It never trusts the claims beyond their shape.
func IdentityFromCtx(c *fiber.Ctx) (Identity, error) {
	tok, ok := c.Locals(ContextKey).(*jwt.Token)
	if !ok || tok == nil {
		return Identity{}, ErrUnauthenticated
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrUnauthenticated
	}
	return identityFromClaims(claims)
}

func identityFromClaims(claims jwt.MapClaims) (Identity, error) {
	id, ok := intClaim(claims["user_id"])
	if !ok || id <= 0 {
		return Identity{}, ErrUnauthenticated
	}
	roleStr, _ := claims["role"].(string)
	role := Role(roleStr)
	if !role.Valid() {
		return Identity{}, ErrUnauthenticated
	}
	return Identity{UserID: id, Role: role}, nil
}

func intClaim(raw any) (int, bool) {
	switch v := raw.(type) {
	case float64:
		return int(v), v == float64(int(v))
	case int:
		return v, true
	case int64:
		return int(v), true
	case string:
		id, err := strconv.Atoi(v)
		return id, err == nil
	default:
		return 0, false
	}
}

// RequireRole rejects callers whose role is not one of roles. It runs before
// the handler so the request body is never inspected for forbidden callers.
func RequireRole(roles ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := IdentityFromCtx(c)
		if err != nil {
			return apperr.Respond(c, err)
		}
		for _, r := range roles {
			if id.Role == r {
				return c.Next()
			}
		}
		return apperr.Respond(c, ErrForbidden)
	}
}
