// Command seed creates the schema, the admin account and the default
// categories. With -demo it also adds sample customers, sellers and products.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/wichananm65/marketplace-backend/internal/category"
	"github.com/wichananm65/marketplace-backend/internal/config"
	"github.com/wichananm65/marketplace-backend/internal/database"
	"github.com/wichananm65/marketplace-backend/internal/product"
	"github.com/wichananm65/marketplace-backend/internal/user"
)

func main() {
	demo := flag.Bool("demo", false, "also create demo customers, sellers and products")
	flag.Parse()

	cfg, err := config.LoadSeed()
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("seed: %v", err)
	}

	products := product.NewService(product.NewPostgresRepository(db))
	s := &seeder{
		users:      user.NewService(user.NewPostgresRepository(db)),
		categories: category.NewService(category.NewPostgresRepository(db), products),
		products:   products,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if err := s.base(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("seed: %v", err)
	}
	if *demo {
		if err := s.demo(ctx); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
	}
	log.Printf("seed complete")
}
