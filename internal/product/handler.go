package product

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/wichananm65/marketplace-backend/internal/apperr"
	"github.com/wichananm65/marketplace-backend/internal/auth"
	"github.com/wichananm65/marketplace-backend/internal/user"
	"github.com/wichananm65/marketplace-backend/internal/validate"
)

type Handler struct {
	service     *Service
	userService user.ServiceInterface
}

func NewHandler(service *Service, us user.ServiceInterface) *Handler {
	return &Handler{service: service, userService: us}
}

// RegisterProtectedRoutes expects the jwt middleware to be installed already.
func (h *Handler) RegisterProtectedRoutes(app fiber.Router) {
	app.Get("/seller/products", auth.RequireRole(auth.RoleSeller), h.getSellerProducts)
	app.Post("/seller/products", auth.RequireRole(auth.RoleSeller), h.createProduct)
	app.Get("/seller/products/:id<int>", h.getProduct)
}

type createProductRequest struct {
	Name        string           `json:"name" validate:"required,max=100"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Stock       *int             `json:"stock" validate:"required,gte=0"`
	Image       string           `json:"image" validate:"max=200"`
	CategoryID  int              `json:"category_id" validate:"required,gt=0"`
}

func (h *Handler) getSellerProducts(c *fiber.Ctx) error {
	seller, err := h.currentSeller(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	products, err := h.service.ListBySeller(c.UserContext(), seller)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(products)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	payload := new(createProductRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if err := validate.Struct(payload); err != nil {
		return apperr.Respond(c, err)
	}
	seller, err := h.currentSeller(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	created, err := h.service.Create(c.UserContext(), seller, Product{
		CategoryID:  payload.CategoryID,
		Name:        payload.Name,
		Description: payload.Description,
		Price:       *payload.Price,
		Stock:       *payload.Stock,
		Image:       payload.Image,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Product added successfully",
		"product_id": created.ID,
	})
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}
	p, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(p)
}

// currentSeller resolves the caller's seller profile id.
func (h *Handler) currentSeller(c *fiber.Ctx) (int, error) {
	id, err := auth.IdentityFromCtx(c)
	if err != nil {
		return 0, err
	}
	s, err := h.userService.SellerForUser(c.UserContext(), id.UserID)
	if err != nil {
		return 0, err
	}
	return s.ID, nil
}
