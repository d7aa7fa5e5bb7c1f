package repository

import (
	"database/sql"
	"fmt"
	"time"

	"wishfund/database"
	"wishfund/models"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

const productColumns = `id, user_id, name, price, image, category, url, target_date,
	contribution_type, contribution_amount, saved_amount, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Price, &p.Image, &p.Category, &p.URL,
		&p.TargetDate, &p.ContributionType, &p.ContributionAmount, &p.SavedAmount,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// AddProduct stores a new savings goal built from an extracted record.
func (r *ProductRepository) AddProduct(p *models.Product) (*models.Product, error) {
	query := `
		INSERT INTO products (user_id, name, price, image, category, url, target_date,
			contribution_type, contribution_amount, saved_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0)
		RETURNING ` + productColumns

	saved, err := scanProduct(database.DB.QueryRow(query,
		p.UserID, p.Name, p.Price, p.Image, p.Category, p.URL, p.TargetDate,
		p.ContributionType, p.ContributionAmount,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to add product: %v", err)
	}
	return saved, nil
}

// GetProductsByUser returns a user's goals, newest first.
func (r *ProductRepository) GetProductsByUser(userID int) ([]models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := database.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %v", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %v", err)
		}
		products = append(products, *p)
	}

	return products, nil
}

// GetProductByID returns one product owned by the given user.
func (r *ProductRepository) GetProductByID(id, userID int) (*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1 AND user_id = $2
	`

	p, err := scanProduct(database.DB.QueryRow(query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to get product: %v", err)
	}
	return p, nil
}

// GetAllProducts returns every stored goal; used by the scheduled price
// refresher.
func (r *ProductRepository) GetAllProducts() ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY updated_at ASC`

	rows, err := database.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %v", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %v", err)
		}
		products = append(products, *p)
	}

	return products, nil
}

// UpdateProductPrice refreshes the stored price for a goal.
func (r *ProductRepository) UpdateProductPrice(id int, price float64) error {
	query := `UPDATE products SET price = $2, updated_at = $3 WHERE id = $1`
	_, err := database.DB.Exec(query, id, price, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update product price: %v", err)
	}
	return nil
}

// UpdateSavedAmount sets the accumulated savings on a goal.
func (r *ProductRepository) UpdateSavedAmount(id int, savedAmount float64) error {
	query := `UPDATE products SET saved_amount = $2, updated_at = $3 WHERE id = $1`
	_, err := database.DB.Exec(query, id, savedAmount, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update saved amount: %v", err)
	}
	return nil
}

// DeleteProducts removes the given goals for a user and reports how many
// rows were actually deleted.
func (r *ProductRepository) DeleteProducts(ids []int, userID int) (int, error) {
	deleted := 0
	for _, id := range ids {
		result, err := database.DB.Exec(`DELETE FROM products WHERE id = $1 AND user_id = $2`, id, userID)
		if err != nil {
			return deleted, fmt.Errorf("failed to delete product %d: %v", id, err)
		}
		if count, err := result.RowsAffected(); err == nil {
			deleted += int(count)
		}
	}
	return deleted, nil
}
