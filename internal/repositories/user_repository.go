package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intconfig "dealerpos/internal/config"
	intdb "dealerpos/internal/db"
	"dealerpos/internal/domain"
	"dealerpos/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByUsername fetches a staff account for login.
func (r UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	db := r.db()
	if db == nil {
		return models.User{}, fmt.Errorf("database not connected")
	}
	var u models.User
	err := db.QueryRowContext(ctx, `
		SELECT id, name, username, password_hash, role, status, created_at
		FROM `+intdb.TableUsers+`
		WHERE username = ?
		LIMIT 1`, username,
	).Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.Role, &u.Status, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, err
	}
	return u, nil
}

// Create stores a new account; the hash must already be computed.
func (r UserRepository) Create(ctx context.Context, u models.User) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not connected")
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO `+intdb.TableUsers+` (name, username, password_hash, role, status)
		VALUES (?, ?, ?, ?, 'active')`, u.Name, u.Username, u.PasswordHash, u.Role)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
