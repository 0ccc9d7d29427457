package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fulafia/esp-portal/internal/app/models"
	"github.com/fulafia/esp-portal/internal/pkg/apperrors"
	"github.com/fulafia/esp-portal/internal/pkg/dberrors"
)

// RoleRepository handles database operations for role grants. The
// user_roles table is the only place authorization decisions read from.
type RoleRepository struct {
	db *pgxpool.Pool
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{
		db: db,
	}
}

// Grant assigns a role to a user. Granting an already held role maps to
// apperrors.ErrRoleAlreadyAssigned.
func (r *RoleRepository) Grant(ctx context.Context, userID int64, role models.Role) error {
	query := `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
	`

	_, err := r.db.Exec(ctx, query, userID, role)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "user_roles_user_role_key") {
			return apperrors.ErrRoleAlreadyAssigned
		}
		return fmt.Errorf("error granting role: %w", err)
	}

	return nil
}

// Revoke removes a role grant from a user
func (r *RoleRepository) Revoke(ctx context.Context, userID int64, role models.Role) error {
	query := `
		DELETE FROM user_roles
		WHERE user_id = $1 AND role = $2
	`

	tag, err := r.db.Exec(ctx, query, userID, role)
	if err != nil {
		return fmt.Errorf("error revoking role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// HasRole reports whether the user holds the given role
func (r *RoleRepository) HasRole(ctx context.Context, userID int64, role models.Role) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, role).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking role: %w", err)
	}

	return exists, nil
}

// GetRolesForUser returns all roles held by a user
func (r *RoleRepository) GetRolesForUser(ctx context.Context, userID int64) ([]models.Role, error) {
	query := `
		SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing roles: %w", err)
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return roles, nil
}

// ListGrants returns every role grant joined with its user identity,
// optionally filtered to one role
func (r *RoleRepository) ListGrants(ctx context.Context, role models.Role) ([]*models.UserRole, map[int64]*models.User, error) {
	query := `
		SELECT ur.id, ur.user_id, ur.role, ur.created_at,
		       u.id, u.email, u.name, u.is_active, u.created_at, u.updated_at
		FROM user_roles ur
		JOIN users u ON u.id = ur.user_id
	`
	args := []interface{}{}
	if role != "" {
		query += ` WHERE ur.role = $1`
		args = append(args, role)
	}
	query += ` ORDER BY ur.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing role grants: %w", err)
	}
	defer rows.Close()

	var grants []*models.UserRole
	users := make(map[int64]*models.User)
	for rows.Next() {
		var grant models.UserRole
		var user models.User
		if err := rows.Scan(
			&grant.ID,
			&grant.UserID,
			&grant.Role,
			&grant.CreatedAt,
			&user.ID,
			&user.Email,
			&user.Name,
			&user.IsActive,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, nil, err
		}
		user.Password = ""
		grants = append(grants, &grant)
		users[user.ID] = &user
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return grants, users, nil
}
