package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// InitDatabase initializes the database connection
func InitDatabase(databaseURL string) error {
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	var err error
	DB, err = sql.Open("postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %v", err)
	}

	log.Println("Successfully connected to database")
	return nil
}

// CreateTables creates the necessary tables if they don't exist
func CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			price DECIMAL(12,2) NOT NULL,
			image TEXT,
			category TEXT,
			url TEXT NOT NULL,
			target_date TIMESTAMP NOT NULL,
			contribution_type VARCHAR(10) NOT NULL CHECK (contribution_type IN ('monthly', 'daily')),
			contribution_amount DECIMAL(12,2) NOT NULL,
			saved_amount DECIMAL(12,2) DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS contributions (
			id SERIAL PRIMARY KEY,
			user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
			product_id INTEGER REFERENCES products(id) ON DELETE CASCADE,
			product_name TEXT NOT NULL,
			product_price DECIMAL(12,2) NOT NULL CHECK (product_price >= 0),
			total_amount DECIMAL(12,2) DEFAULT 0 CHECK (total_amount >= 0),
			remaining_amount DECIMAL(12,2) DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS contribution_entries (
			id SERIAL PRIMARY KEY,
			contribution_id INTEGER REFERENCES contributions(id) ON DELETE CASCADE,
			amount DECIMAL(12,2) NOT NULL CHECK (amount >= 0),
			date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_products_user ON products (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_contributions_user_product ON contributions (user_id, product_id)`,
	}

	for _, query := range queries {
		_, err := DB.Exec(query)
		if err != nil {
			return fmt.Errorf("failed to create table: %v", err)
		}
	}

	return nil
}

// CloseDatabase closes the database connection
func CloseDatabase() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
