package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/marketplace-backend/internal/auth"
	"github.com/wichananm65/marketplace-backend/internal/cart"
	"github.com/wichananm65/marketplace-backend/internal/category"
	"github.com/wichananm65/marketplace-backend/internal/config"
	"github.com/wichananm65/marketplace-backend/internal/database"
	"github.com/wichananm65/marketplace-backend/internal/order"
	"github.com/wichananm65/marketplace-backend/internal/product"
	"github.com/wichananm65/marketplace-backend/internal/seller"
	"github.com/wichananm65/marketplace-backend/internal/user"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	// prices and totals go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	productService := product.NewService(product.NewPostgresRepository(db))
	app := newApp(cfg, services{
		users:      user.NewService(user.NewPostgresRepository(db)),
		products:   productService,
		categories: category.NewService(category.NewPostgresRepository(db), productService),
		carts:      cart.NewService(cart.NewPostgresRepository(db)),
		orders:     order.NewService(order.NewPostgresRepository(db), productService),
		sellers:    seller.NewService(seller.NewPostgresRepository(db)),
		issuer:     auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("starting server on %s", cfg.Addr)
		return app.Listen(cfg.Addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Printf("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})
	return g.Wait()
}
