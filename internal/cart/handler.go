package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/marketplace-backend/internal/apperr"
	"github.com/wichananm65/marketplace-backend/internal/auth"
	"github.com/wichananm65/marketplace-backend/internal/user"
	"github.com/wichananm65/marketplace-backend/internal/validate"
)

// Handler delegates cart operations to the cart service.
type Handler struct {
	service     *Service
	userService user.ServiceInterface
}

func NewHandler(s *Service, us user.ServiceInterface) *Handler {
	return &Handler{service: s, userService: us}
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	customer := auth.RequireRole(auth.RoleCustomer)
	app.Post("/cart", customer, h.addToCart)
	app.Get("/cart/get", customer, h.getCart)
	app.Delete("/cart/:id<int>", customer, h.removeFromCart)
}

// Quantity defaults to 1 when omitted.
type cartRequest struct {
	ProductID int  `json:"productId" validate:"gt=0"`
	Quantity  *int `json:"quantity" validate:"omitempty,min=1,max=2147483647"`
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	payload := new(cartRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if err := validate.Struct(payload); err != nil {
		return apperr.Respond(c, err)
	}
	qty := 1
	if payload.Quantity != nil {
		qty = *payload.Quantity
	}

	customerID, err := h.currentCustomer(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	line, err := h.service.Add(c.UserContext(), customerID, payload.ProductID, qty)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Product added to cart",
		"cart_item_id": line.ID,
	})
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	customerID, err := h.currentCustomer(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	items, err := h.service.List(c.UserContext(), customerID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"cart_items": items})
}

func (h *Handler) removeFromCart(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	customerID, err := h.currentCustomer(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	if err := h.service.Remove(c.UserContext(), customerID, id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product removed from cart"})
}

func (h *Handler) currentCustomer(c *fiber.Ctx) (int, error) {
	id, err := auth.IdentityFromCtx(c)
	if err != nil {
		return 0, err
	}
	cust, err := h.userService.CustomerForUser(c.UserContext(), id.UserID)
	if err != nil {
		return 0, err
	}
	return cust.ID, nil
}
