package category

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/marketplace-backend/internal/apperr"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/categories", h.getCategories)
	app.Get("/categories/products", h.getCategoriesWithProducts)
	app.Get("/categories/:id<int>/products", h.getCategoryProducts)
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(items)
}

func (h *Handler) getCategoriesWithProducts(c *fiber.Ctx) error {
	items, err := h.service.ListWithProducts(c.UserContext())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(items)
}

func (h *Handler) getCategoryProducts(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	products, err := h.service.Products(c.UserContext(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(products)
}
