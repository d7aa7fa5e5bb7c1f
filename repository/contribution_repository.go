package repository

import (
	"database/sql"
	"fmt"
	"time"

	"wishfund/database"
	"wishfund/models"
)

type ContributionRepository struct{}

func NewContributionRepository() *ContributionRepository {
	return &ContributionRepository{}
}

// GetByUserAndProduct returns the ledger for one user/product pair with its
// entry history, or nil when no contribution exists yet.
func (r *ContributionRepository) GetByUserAndProduct(userID, productID int) (*models.Contribution, error) {
	query := `
		SELECT id, user_id, product_id, product_name, product_price, total_amount, remaining_amount, created_at, updated_at
		FROM contributions
		WHERE user_id = $1 AND product_id = $2
	`

	var c models.Contribution
	err := database.DB.QueryRow(query, userID, productID).Scan(
		&c.ID, &c.UserID, &c.ProductID, &c.ProductName, &c.ProductPrice,
		&c.TotalAmount, &c.RemainingAmount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contribution: %v", err)
	}

	if err := r.loadHistory(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create opens a ledger for a product with its first entry. Totals are
// derived from the history before being stored.
func (r *ContributionRepository) Create(userID int, product *models.Product, amount float64) (*models.Contribution, error) {
	c := &models.Contribution{
		UserID:       userID,
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductPrice: product.Price,
		History:      []models.ContributionEntry{{Amount: amount, Date: time.Now()}},
	}
	c.Recalculate()

	query := `
		INSERT INTO contributions (user_id, product_id, product_name, product_price, total_amount, remaining_amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := database.DB.QueryRow(query,
		c.UserID, c.ProductID, c.ProductName, c.ProductPrice, c.TotalAmount, c.RemainingAmount,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create contribution: %v", err)
	}

	if err := r.insertEntry(c.ID, amount); err != nil {
		return nil, err
	}
	return c, nil
}

// AddEntry appends a payment to an existing ledger and re-derives the
// totals from the full history.
func (r *ContributionRepository) AddEntry(c *models.Contribution, amount float64) (*models.Contribution, error) {
	if err := r.insertEntry(c.ID, amount); err != nil {
		return nil, err
	}

	c.History = append(c.History, models.ContributionEntry{Amount: amount, Date: time.Now()})
	c.Recalculate()

	query := `UPDATE contributions SET total_amount = $2, remaining_amount = $3, updated_at = $4 WHERE id = $1`
	_, err := database.DB.Exec(query, c.ID, c.TotalAmount, c.RemainingAmount, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to update contribution totals: %v", err)
	}

	return c, nil
}

// ListByUser returns all of a user's ledgers, newest first, with history.
func (r *ContributionRepository) ListByUser(userID int) ([]models.Contribution, error) {
	query := `
		SELECT id, user_id, product_id, product_name, product_price, total_amount, remaining_amount, created_at, updated_at
		FROM contributions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := database.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %v", err)
	}
	defer rows.Close()

	var contributions []models.Contribution
	for rows.Next() {
		var c models.Contribution
		err := rows.Scan(
			&c.ID, &c.UserID, &c.ProductID, &c.ProductName, &c.ProductPrice,
			&c.TotalAmount, &c.RemainingAmount, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %v", err)
		}
		contributions = append(contributions, c)
	}

	for i := range contributions {
		if err := r.loadHistory(&contributions[i]); err != nil {
			return nil, err
		}
	}

	return contributions, nil
}

// Delete removes a ledger (entries cascade) and reports whether it existed.
func (r *ContributionRepository) Delete(id int) (bool, error) {
	result, err := database.DB.Exec(`DELETE FROM contributions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete contribution: %v", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return false, nil
	}
	return count > 0, nil
}

func (r *ContributionRepository) insertEntry(contributionID int, amount float64) error {
	_, err := database.DB.Exec(
		`INSERT INTO contribution_entries (contribution_id, amount) VALUES ($1, $2)`,
		contributionID, amount,
	)
	if err != nil {
		return fmt.Errorf("failed to add contribution entry: %v", err)
	}
	return nil
}

func (r *ContributionRepository) loadHistory(c *models.Contribution) error {
	rows, err := database.DB.Query(
		`SELECT id, contribution_id, amount, date FROM contribution_entries WHERE contribution_id = $1 ORDER BY date ASC`,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to load contribution history: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.ContributionEntry
		if err := rows.Scan(&entry.ID, &entry.ContributionID, &entry.Amount, &entry.Date); err != nil {
			return fmt.Errorf("failed to scan contribution entry: %v", err)
		}
		c.History = append(c.History, entry)
	}

	return nil
}
