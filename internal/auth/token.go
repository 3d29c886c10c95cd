package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/wichananm65/marketplace-backend/internal/apperr"
)

// Issuer signs HS256 tokens carrying the user id and role.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *Issuer) Issue(id Identity) (string, error) {
	if id.UserID <= 0 || !id.Role.Valid() {
		return "", errors.New("auth: refusing to sign invalid identity")
	}
	claims := jwt.MapClaims{
		"user_id": id.UserID,
		"role":    string(id.Role),
		"iat":     i.now().Unix(),
		"exp":     i.now().Add(i.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Parse verifies signature and expiry and returns the embedded identity.
func (i *Issuer) Parse(token string) (Identity, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, ErrUnauthenticated
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrUnauthenticated
	}
	return identityFromClaims(claims)
}

// Middleware verifies the bearer token on every request and stores it under
// ContextKey.
func (i *Issuer) Middleware() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    i.secret,
		SigningMethod: "HS256",
		ContextKey:    ContextKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return apperr.Respond(c, ErrUnauthenticated)
		},
		SuccessHandler: func(c *fiber.Ctx) error {
			if _, err := IdentityFromCtx(c); err != nil {
				return apperr.Respond(c, err)
			}
			return c.Next()
		},
	})
}
