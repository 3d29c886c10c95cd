package seller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/marketplace-backend/internal/apperr"
	"github.com/wichananm65/marketplace-backend/internal/auth"
	"github.com/wichananm65/marketplace-backend/internal/user"
)

type Handler struct {
	service     *Service
	userService user.ServiceInterface
}

func NewHandler(s *Service, us user.ServiceInterface) *Handler {
	return &Handler{service: s, userService: us}
}

// RegisterAdminRoutes mounts the approval workflow. The role check runs
// before any handler so non-admins get 403 whatever they send.
func (h *Handler) RegisterAdminRoutes(app fiber.Router) {
	admin := auth.RequireRole(auth.RoleAdmin)
	app.Get("/admin/seller", admin, h.listSellers)
	app.Put("/admin/seller/:id<int>/approve", admin, h.approve)
	app.Put("/admin/seller/:id<int>/decline", admin, h.decline)
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Get("/seller/buyers", auth.RequireRole(auth.RoleSeller), h.buyers)
}

func (h *Handler) listSellers(c *fiber.Ctx) error {
	sellers, err := h.service.List(c.UserContext())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"sellers": sellers})
}

func (h *Handler) approve(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	if err := h.service.Approve(c.UserContext(), id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Seller registration approved"})
}

func (h *Handler) decline(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	if err := h.service.Decline(c.UserContext(), id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Seller registration declined"})
}

func (h *Handler) buyers(c *fiber.Ctx) error {
	id, err := auth.IdentityFromCtx(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	s, err := h.userService.SellerForUser(c.UserContext(), id.UserID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	buyers, err := h.service.Buyers(c.UserContext(), s.ID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"buyers": buyers})
}
