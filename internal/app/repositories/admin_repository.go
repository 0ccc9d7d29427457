package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fulafia/esp-portal/internal/app/models"
	"github.com/fulafia/esp-portal/internal/pkg/apperrors"
)

// AdminRepository handles database operations for admin profiles
type AdminRepository struct {
	db *pgxpool.Pool
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{
		db: db,
	}
}

// Create inserts an admin profile row
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	query := `
		INSERT INTO admins (user_id, name, email)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, admin.UserID, admin.Name, admin.Email).
		Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating admin profile: %w", err)
	}

	return nil
}

// GetByUserID retrieves the admin profile linked to an identity
func (r *AdminRepository) GetByUserID(ctx context.Context, userID int64) (*models.Admin, error) {
	query := `
		SELECT id, user_id, name, email, created_at
		FROM admins
		WHERE user_id = $1
	`

	var admin models.Admin
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&admin.ID,
		&admin.UserID,
		&admin.Name,
		&admin.Email,
		&admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving admin profile: %w", err)
	}

	return &admin, nil
}
