package order

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/marketplace-backend/internal/apperr"
	"github.com/wichananm65/marketplace-backend/internal/auth"
	"github.com/wichananm65/marketplace-backend/internal/user"
)

// Handler delegates order operations to the order service. The user service
// resolves the caller's customer profile.
type Handler struct {
	service     *Service
	userService user.ServiceInterface
}

func NewHandler(s *Service, us user.ServiceInterface) *Handler {
	return &Handler{service: s, userService: us}
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	customer := auth.RequireRole(auth.RoleCustomer)
	app.Post("/orders", customer, h.createOrder)
	app.Get("/orders/get", customer, h.getOrders)
	app.Get("/buyers/orders", customer, h.getOrders)
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	customerID, err := h.currentCustomer(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	orders, err := h.service.Checkout(c.UserContext(), customerID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order placed successfully",
		"orders":  orders,
	})
}

// getOrders returns all orders belonging to the authenticated customer.
func (h *Handler) getOrders(c *fiber.Ctx) error {
	customerID, err := h.currentCustomer(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	orders, err := h.service.List(c.UserContext(), customerID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders})
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
