package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Constraint names referenced by repositories when classifying errors.
const (
	ConstraintUsername           = "users_username_key"
	ConstraintCustomerEmail      = "customers_email_key"
	ConstraintSellerBusinessMail = "sellers_business_email_key"
	ConstraintCartLine           = "cart_lines_customer_product_key"
	ConstraintCartProduct        = "cart_lines_product_id_fkey"
	ConstraintProductCategory    = "products_category_id_fkey"
	ConstraintCategoryName       = "categories_name_key"
)

// order_history is created for completeness of the ledger schema but nothing
// writes to it yet.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('customer', 'seller', 'admin')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT users_username_key UNIQUE (username)
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		address TEXT NOT NULL,
		phone TEXT,
		CONSTRAINT customers_user_id_key UNIQUE (user_id),
		CONSTRAINT customers_email_key UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS sellers (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		business_name TEXT NOT NULL,
		business_email TEXT NOT NULL,
		business_address TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		CONSTRAINT sellers_user_id_key UNIQUE (user_id),
		CONSTRAINT sellers_business_email_key UNIQUE (business_email)
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		CONSTRAINT categories_name_key UNIQUE (name)
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		seller_id INT NOT NULL REFERENCES sellers (id) ON DELETE CASCADE,
		category_id INT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		price NUMERIC(12, 2) NOT NULL CHECK (price >= 0),
		stock INT NOT NULL CHECK (stock >= 0),
		image TEXT,
		CONSTRAINT products_category_id_fkey FOREIGN KEY (category_id) REFERENCES categories (id)
	)`,
	`CREATE TABLE IF NOT EXISTS cart_lines (
		id SERIAL PRIMARY KEY,
		customer_id INT NOT NULL REFERENCES customers (id) ON DELETE CASCADE,
		product_id INT NOT NULL,
		quantity INT NOT NULL DEFAULT 1 CHECK (quantity >= 1),
		CONSTRAINT cart_lines_product_id_fkey FOREIGN KEY (product_id) REFERENCES products (id) ON DELETE CASCADE,
		CONSTRAINT cart_lines_customer_product_key UNIQUE (customer_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id SERIAL PRIMARY KEY,
		customer_id INT NOT NULL REFERENCES customers (id),
		product_id INT NOT NULL REFERENCES products (id),
		quantity INT NOT NULL CHECK (quantity >= 1),
		total_price NUMERIC(12, 2) NOT NULL,
		order_date TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending'
	)`,
	`CREATE INDEX IF NOT EXISTS orders_customer_id_idx ON orders (customer_id)`,
	`CREATE TABLE IF NOT EXISTS order_history (
		id SERIAL PRIMARY KEY,
		order_id INT NOT NULL REFERENCES orders (id),
		product_id INT NOT NULL REFERENCES products (id),
		quantity INT,
		total_price NUMERIC(12, 2)
	)`,
}

// Migrate creates any missing tables. Every statement is idempotent so it is
// safe to run on each start.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
