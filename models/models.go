package models

import (
	"errors"
	"time"
)

// NameNotFound is the sentinel product name signalling that an extraction
// strategy could not identify the product. A record whose name equals this
// sentinel and whose price is 0 carries no usable data.
const NameNotFound = "Product Name Not Found"

// NameNotAvailable is the terminal sentinel used when every extraction
// strategy has been exhausted.
const NameNotAvailable = "Product Name Not Available"

// ProductRecord is the output of one extraction request. A record is created
// once per request and never mutated after being returned.
type ProductRecord struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Note        string  `json:"note,omitempty"`
	Error       string  `json:"error,omitempty"`
	URL         string  `json:"url,omitempty"`
}

// HasData reports whether the record carries anything beyond the sentinels.
// This is the acceptance predicate shared by all pipeline stages.
func (r *ProductRecord) HasData() bool {
	return r.Name != NameNotFound || r.Price > 0
}

// User represents a registered account.
type User struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Product is a savings goal created from an extracted product record.
type Product struct {
	ID                 int       `json:"id" db:"id"`
	UserID             int       `json:"user_id" db:"user_id"`
	Name               string    `json:"name" db:"name"`
	Price              float64   `json:"price" db:"price"`
	Image              string    `json:"image" db:"image"`
	Category           string    `json:"category" db:"category"`
	URL                string    `json:"url" db:"url"`
	TargetDate         time.Time `json:"target_date" db:"target_date"`
	ContributionType   string    `json:"contribution_type" db:"contribution_type"` // "monthly" or "daily"
	ContributionAmount float64   `json:"contribution_amount" db:"contribution_amount"`
	SavedAmount        float64   `json:"saved_amount" db:"saved_amount"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// Contribution is the per-user per-product savings ledger. The total and the
// remaining amount are derived from the entry history, never set directly.
type Contribution struct {
	ID              int                 `json:"id" db:"id"`
	UserID          int                 `json:"user_id" db:"user_id"`
	ProductID       int                 `json:"product_id" db:"product_id"`
	ProductName     string              `json:"product_name" db:"product_name"`
	ProductPrice    float64             `json:"product_price" db:"product_price"`
	TotalAmount     float64             `json:"contribution_amount" db:"total_amount"`
	RemainingAmount float64             `json:"remaining_amount" db:"remaining_amount"`
	History         []ContributionEntry `json:"contribution_history"`
	CreatedAt       time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" db:"updated_at"`
}

// ContributionEntry is one payment toward a goal.
type ContributionEntry struct {
	ID             int       `json:"id" db:"id"`
	ContributionID int       `json:"-" db:"contribution_id"`
	Amount         float64   `json:"amount" db:"amount"`
	Date           time.Time `json:"date" db:"date"`
}

// ValidateContributionAmount checks a proposed payment against the goal's
// price and the amount already contributed. A single payment must stay below
// the full price, and the running total can never exceed it. The returned
// error message is suitable to show the user directly.
func ValidateContributionAmount(productPrice, contributed, amount float64) error {
	if amount <= 0 {
		return errors.New("Contribution amount must be greater than zero")
	}
	if amount >= productPrice {
		return errors.New("Contribution amount must be less than the product price")
	}
	if contributed+amount > productPrice {
		return errors.New("Total contributions cannot exceed product price")
	}
	return nil
}

// Recalculate derives the total and remaining amounts from the history.
// Remaining never goes below zero.
func (c *Contribution) Recalculate() {
	total := 0.0
	for _, entry := range c.History {
		total += entry.Amount
	}
	c.TotalAmount = total
	c.RemainingAmount = c.ProductPrice - total
	if c.RemainingAmount < 0 {
		c.RemainingAmount = 0
	}
}

// RegisterRequest is the body for user registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body for user login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the body for changing the account's display name.
type UpdateProfileRequest struct {
	Name string `json:"name"`
}

// AddProductRequest is the body for creating a goal from a product link.
type AddProductRequest struct {
	Link               string  `json:"link"`
	TargetDate         string  `json:"target_date"`
	ContributionType   string  `json:"contribution_type"`
	ContributionAmount float64 `json:"contribution_amount"`
}

// DeleteProductsRequest carries the product IDs to delete.
type DeleteProductsRequest struct {
	IDs []int `json:"ids"`
}

// AddContributionRequest is the body for adding a payment toward a goal.
type AddContributionRequest struct {
	ProductID int     `json:"product_id"`
	Amount    float64 `json:"amount"`
}
