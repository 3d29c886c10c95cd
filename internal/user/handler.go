package user

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/marketplace-backend/internal/apperr"
	"github.com/wichananm65/marketplace-backend/internal/auth"
	"github.com/wichananm65/marketplace-backend/internal/validate"
)

type Handler struct {
	service *Service
	issuer  *auth.Issuer
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=80"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role" validate:"required,oneof=customer seller"`

	Name    string      `json:"name" validate:"max=100"`
	Email   string      `json:"email" validate:"omitempty,email"`
	Address string      `json:"address" validate:"max=200"`
	PhoneNo phoneNumber `json:"phone_no"`

	BusinessName    string `json:"business_name" validate:"max=100"`
	BusinessEmail   string `json:"business_email" validate:"omitempty,email"`
	BusinessAddress string `json:"business_address" validate:"max=200"`
}

// phoneNumber accepts both JSON numbers and strings; older clients send the
// phone as an integer.
type phoneNumber string

func (p *phoneNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*p = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = phoneNumber(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = phoneNumber(n.String())
	return nil
}

func NewHandler(service *Service, issuer *auth.Issuer) *Handler {
	return &Handler{service: service, issuer: issuer}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Post("/login", h.login)
	app.Post("/register", h.register)
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if payload.Username == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "missing username or password"})
	}

	u, err := h.service.Authenticate(c.UserContext(), payload.Username, payload.Password)
	if err != nil {
		return apperr.Respond(c, err)
	}

	token, err := h.issuer.Issue(auth.Identity{UserID: u.ID, Role: u.Role})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}
	return c.JSON(fiber.Map{"access_token": token})
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if err := validate.Struct(payload); err != nil {
		return apperr.Respond(c, err)
	}

	_, err := h.service.Register(c.UserContext(), RegisterInput{
		Username:        payload.Username,
		Password:        payload.Password,
		Role:            auth.Role(payload.Role),
		Name:            payload.Name,
		Email:           payload.Email,
		Address:         payload.Address,
		Phone:           string(payload.PhoneNo),
		BusinessName:    payload.BusinessName,
		BusinessEmail:   payload.BusinessEmail,
		BusinessAddress: payload.BusinessAddress,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered successfully!"})
}
