package repository

import (
	"database/sql"
	"fmt"

	"wishfund/database"
	"wishfund/models"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// CreateUser inserts a new user and returns the stored row.
func (r *UserRepository) CreateUser(name, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, password_hash, created_at
	`

	var user models.User
	err := database.DB.QueryRow(query, name, email, passwordHash).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %v", err)
	}

	return &user, nil
}

// GetUserByEmail returns the user for an email, or nil when none exists.
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := database.DB.QueryRow(query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %v", err)
	}

	return &user, nil
}

// UpdateUserName changes a user's display name and returns the stored row.
func (r *UserRepository) UpdateUserName(id int, name string) (*models.User, error) {
	query := `
		UPDATE users
		SET name = $1
		WHERE id = $2
		RETURNING id, name, email, password_hash, created_at
	`

	var user models.User
	err := database.DB.QueryRow(query, name, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to update user: %v", err)
	}

	return &user, nil
}

// DeleteUser removes an account. Goals and contributions cascade with it.
func (r *UserRepository) DeleteUser(id int) (bool, error) {
	result, err := database.DB.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %v", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %v", err)
	}
	return affected > 0, nil
}

// GetUserByID returns a user by ID.
func (r *UserRepository) GetUserByID(id int) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := database.DB.QueryRow(query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %v", err)
	}

	return &user, nil
}
