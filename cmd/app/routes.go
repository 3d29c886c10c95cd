package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/wichananm65/marketplace-backend/internal/apperr"
	"github.com/wichananm65/marketplace-backend/internal/auth"
	"github.com/wichananm65/marketplace-backend/internal/cart"
	"github.com/wichananm65/marketplace-backend/internal/category"
	"github.com/wichananm65/marketplace-backend/internal/config"
	"github.com/wichananm65/marketplace-backend/internal/order"
	"github.com/wichananm65/marketplace-backend/internal/product"
	"github.com/wichananm65/marketplace-backend/internal/seller"
	"github.com/wichananm65/marketplace-backend/internal/user"
)

type services struct {
	users      *user.Service
	products   *product.Service
	categories *category.Service
	carts      *cart.Service
	orders     *order.Service
	sellers    *seller.Service
	issuer     *auth.Issuer
}

// newApp builds the fiber app. Public routes are registered before the jwt
// middleware, so only routes registered after it require a token.
func newApp(cfg config.Config, s services) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: apperr.ErrorHandler,
		AppName:      "marketplace-backend",
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
	}))
	setupCORS(app, cfg.CORSOrigins)
	app.Use(requestTimeout(cfg.RequestTimeout))

	productHandler := product.NewHandler(s.products, s.users)
	sellerHandler := seller.NewHandler(s.sellers, s.users)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	user.NewHandler(s.users, s.issuer).RegisterPublicRoutes(app)
	category.NewHandler(s.categories).RegisterPublicRoutes(app)

	app.Use(s.issuer.Middleware())

	productHandler.RegisterProtectedRoutes(app)
	sellerHandler.RegisterProtectedRoutes(app)
	sellerHandler.RegisterAdminRoutes(app)
	cart.NewHandler(s.carts, s.users).RegisterProtectedRoutes(app)
	order.NewHandler(s.orders, s.users).RegisterProtectedRoutes(app)

	return app
}

func setupCORS(app *fiber.App, origins string) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

// requestTimeout bounds the context handed to repositories through
// c.UserContext().
func requestTimeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
