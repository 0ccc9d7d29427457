package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fulafia/esp-portal/internal/app/models"
	"github.com/fulafia/esp-portal/internal/pkg/apperrors"
	"github.com/fulafia/esp-portal/internal/pkg/dberrors"
)

// SkillRepository handles database operations for skill tracks
type SkillRepository struct {
	db *pgxpool.Pool
}

// NewSkillRepository creates a new skill repository
func NewSkillRepository(db *pgxpool.Pool) *SkillRepository {
	return &SkillRepository{
		db: db,
	}
}

// Create creates a new skill track
func (r *SkillRepository) Create(ctx context.Context, skill *models.Skill) error {
	query := `
		INSERT INTO skills (name, code, description, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		skill.Name,
		skill.Code,
		skill.Description,
		skill.IsActive,
	).Scan(&skill.ID, &skill.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrSkillAlreadyExists
		}
		return fmt.Errorf("error creating skill: %w", err)
	}

	return nil
}

// GetByID retrieves a skill by ID
func (r *SkillRepository) GetByID(ctx context.Context, id int64) (*models.Skill, error) {
	query := `
		SELECT id, name, code, description, is_active, created_at
		FROM skills
		WHERE id = $1
	`

	var skill models.Skill
	err := r.db.QueryRow(ctx, query, id).Scan(
		&skill.ID,
		&skill.Name,
		&skill.Code,
		&skill.Description,
		&skill.IsActive,
		&skill.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSkillNotFound
		}
		return nil, fmt.Errorf("error retrieving skill: %w", err)
	}

	return &skill, nil
}

// GetAll retrieves skill tracks ordered by name. When activeOnly is true
// only tracks open for student applications are returned.
func (r *SkillRepository) GetAll(ctx context.Context, activeOnly bool) ([]*models.Skill, error) {
	query := `
		SELECT id, name, code, description, is_active, created_at
		FROM skills
	`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []*models.Skill
	for rows.Next() {
		var skill models.Skill
		if err := rows.Scan(
			&skill.ID,
			&skill.Name,
			&skill.Code,
			&skill.Description,
			&skill.IsActive,
			&skill.CreatedAt,
		); err != nil {
			return nil, err
		}
		skills = append(skills, &skill)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return skills, nil
}

// Update modifies an existing skill track
func (r *SkillRepository) Update(ctx context.Context, skill *models.Skill) error {
	query := `
		UPDATE skills
		SET name = $1, code = $2, description = $3, is_active = $4
		WHERE id = $5
	`

	tag, err := r.db.Exec(ctx, query,
		skill.Name,
		skill.Code,
		skill.Description,
		skill.IsActive,
		skill.ID,
	)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrSkillAlreadyExists
		}
		return fmt.Errorf("error updating skill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSkillNotFound
	}

	return nil
}

// Delete removes a skill track and its trainer assignments. Tracks
// referenced by applications cannot be deleted; close them with
// SetActive instead.
func (r *SkillRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSkillHasRelations
		}
		return fmt.Errorf("error deleting skill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSkillNotFound
	}

	return nil
}

// SetActive toggles whether the skill accepts student applications
func (r *SkillRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `
		UPDATE skills
		SET is_active = $1
		WHERE id = $2
	`

	tag, err := r.db.Exec(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("error toggling skill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSkillNotFound
	}

	return nil
}
