package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/marketplace-backend/internal/auth"
	"github.com/wichananm65/marketplace-backend/internal/category"
	"github.com/wichananm65/marketplace-backend/internal/product"
	"github.com/wichananm65/marketplace-backend/internal/user"
)

const demoAccounts = 5

type seeder struct {
	users      *user.Service
	categories *category.Service
	products   *product.Service
	rng        *rand.Rand
}

type demoProduct struct {
	name, description string
}

var demoProducts = []demoProduct{
	{"iPhone 13", "Smartphone with A15 Bionic chip and dual-camera system."},
	{"Samsung Galaxy S21", "Android smartphone with dynamic AMOLED display."},
	{"MacBook Pro", "Laptop with M1 chip and Retina display."},
	{"Dell XPS 13", "Ultra-thin laptop with 11th Gen Intel Core processor."},
	{"Apple Watch Series 7", "Smartwatch with fitness tracking and cellular connectivity."},
	{"iPad Pro", "Tablet with Liquid Retina display."},
	{"Sony WH-1000XM4", "Noise-canceling headphones."},
	{"Canon EOS R5", "Mirrorless camera with 45MP full-frame sensor."},
	{"Amazon Echo Dot", "Smart speaker with Alexa."},
	{"Google Nest Hub", "Smart display with Google Assistant and home control."},
	{"Logitech MX Master 3", "Wireless mouse."},
	{"WD My Passport SSD", "Portable SSD with high-speed transfer."},
}

// base creates the admin account and the default categories. Running it
// again leaves existing rows alone.
func (s *seeder) base(ctx context.Context, adminUser, adminPassword string) error {
	if _, err := s.users.CreateAdmin(ctx, adminUser, adminPassword); err != nil {
		if !errors.Is(err, user.ErrUsernameExists) {
			return fmt.Errorf("create admin: %w", err)
		}
		log.Printf("admin %q already exists, skipping", adminUser)
	} else {
		log.Printf("admin %q created", adminUser)
	}

	n, err := s.categories.EnsureDefaults(ctx)
	if err != nil {
		return fmt.Errorf("create categories: %w", err)
	}
	log.Printf("%d categories created", n)
	return nil
}

// demo registers demo customers and sellers and spreads the demo products
// over random sellers and categories.
func (s *seeder) demo(ctx context.Context) error {
	for i := 1; i <= demoAccounts; i++ {
		_, err := s.users.Register(ctx, user.RegisterInput{
			Username: fmt.Sprintf("customer%d", i),
			Password: fmt.Sprintf("customer%d-password", i),
			Role:     auth.RoleCustomer,
			Name:     fmt.Sprintf("Customer %d", i),
			Email:    fmt.Sprintf("customer%d@example.com", i),
			Address:  fmt.Sprintf("%d Demo Street", i),
			Phone:    fmt.Sprintf("555-01%02d", i),
		})
		if err != nil && !errors.Is(err, user.ErrUsernameExists) {
			return fmt.Errorf("customer %d: %w", i, err)
		}
	}

	var sellerIDs []int
	for i := 1; i <= demoAccounts; i++ {
		username := fmt.Sprintf("seller%d", i)
		u, err := s.users.Register(ctx, user.RegisterInput{
			Username:        username,
			Password:        username + "-password",
			Role:            auth.RoleSeller,
			BusinessName:    fmt.Sprintf("Demo Store %d", i),
			BusinessEmail:   fmt.Sprintf("store%d@example.com", i),
			BusinessAddress: fmt.Sprintf("%d Market Road", i),
		})
		if err != nil {
			if errors.Is(err, user.ErrUsernameExists) {
				continue
			}
			return fmt.Errorf("seller %d: %w", i, err)
		}
		sel, err := s.users.SellerForUser(ctx, u.ID)
		if err != nil {
			return fmt.Errorf("seller %d profile: %w", i, err)
		}
		sellerIDs = append(sellerIDs, sel.ID)
	}
	if len(sellerIDs) == 0 {
		log.Printf("demo sellers already exist, skipping products")
		return nil
	}

	cats, err := s.categories.List(ctx)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		return errors.New("no categories to attach products to")
	}

	for _, dp := range demoProducts {
		price := decimal.NewFromFloat(10 + s.rng.Float64()*990).Round(2)
		_, err := s.products.Create(ctx, sellerIDs[s.rng.Intn(len(sellerIDs))], product.Product{
			CategoryID:  cats[s.rng.Intn(len(cats))].ID,
			Name:        dp.name,
			Description: dp.description,
			Price:       price,
			Stock:       1 + s.rng.Intn(100),
		})
		if err != nil {
			return fmt.Errorf("product %q: %w", dp.name, err)
		}
	}
	log.Printf("demo data created: %d customers, %d sellers, %d products", demoAccounts, len(sellerIDs), len(demoProducts))
	return nil
}
