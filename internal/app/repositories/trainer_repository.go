package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fulafia/esp-portal/internal/app/models"
	"github.com/fulafia/esp-portal/internal/pkg/apperrors"
)

// TrainerRepository handles database operations for the trainer roster.
// The roster holds exactly one row per email; invitation approvals and
// admin edits update that row in place.
type TrainerRepository struct {
	db *pgxpool.Pool
}

// NewTrainerRepository creates a new trainer repository
func NewTrainerRepository(db *pgxpool.Pool) *TrainerRepository {
	return &TrainerRepository{
		db: db,
	}
}

// Upsert inserts a roster row or, when a row with the same email already
// exists, refreshes its profile fields. The existing user_id link is
// never cleared by an upsert.
func (r *TrainerRepository) Upsert(ctx context.Context, trainer *models.Trainer) error {
	query := `
		INSERT INTO trainers (name, email, phone_number, bio)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (LOWER(email)) DO UPDATE
		SET name = EXCLUDED.name,
		    phone_number = EXCLUDED.phone_number,
		    bio = EXCLUDED.bio
		RETURNING id, user_id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		trainer.Name,
		strings.ToLower(trainer.Email),
		trainer.PhoneNumber,
		trainer.Bio,
	).Scan(&trainer.ID, &trainer.UserID, &trainer.CreatedAt)
	if err != nil {
		return fmt.Errorf("error upserting trainer: %w", err)
	}

	return nil
}

// GetByID retrieves a roster row with its assigned skills
func (r *TrainerRepository) GetByID(ctx context.Context, id int64) (*models.Trainer, error) {
	query := `
		SELECT id, name, email, phone_number, bio, user_id, created_at
		FROM trainers
		WHERE id = $1
	`

	var trainer models.Trainer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&trainer.ID,
		&trainer.Name,
		&trainer.Email,
		&trainer.PhoneNumber,
		&trainer.Bio,
		&trainer.UserID,
		&trainer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTrainerNotFound
		}
		return nil, fmt.Errorf("error retrieving trainer: %w", err)
	}

	skills, err := r.GetSkills(ctx, trainer.ID)
	if err != nil {
		return nil, err
	}
	trainer.Skills = skills

	return &trainer, nil
}

// GetByEmail retrieves a roster row by email, case-insensitively
func (r *TrainerRepository) GetByEmail(ctx context.Context, email string) (*models.Trainer, error) {
	query := `
		SELECT id, name, email, phone_number, bio, user_id, created_at
		FROM trainers
		WHERE LOWER(email) = LOWER($1)
	`

	var trainer models.Trainer
	err := r.db.QueryRow(ctx, query, email).Scan(
		&trainer.ID,
		&trainer.Name,
		&trainer.Email,
		&trainer.PhoneNumber,
		&trainer.Bio,
		&trainer.UserID,
		&trainer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTrainerNotFound
		}
		return nil, fmt.Errorf("error retrieving trainer by email: %w", err)
	}

	return &trainer, nil
}

// GetByUserID retrieves the roster row linked to an activated identity
func (r *TrainerRepository) GetByUserID(ctx context.Context, userID int64) (*models.Trainer, error) {
	query := `
		SELECT id, name, email, phone_number, bio, user_id, created_at
		FROM trainers
		WHERE user_id = $1
	`

	var trainer models.Trainer
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&trainer.ID,
		&trainer.Name,
		&trainer.Email,
		&trainer.PhoneNumber,
		&trainer.Bio,
		&trainer.UserID,
		&trainer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTrainerNotFound
		}
		return nil, fmt.Errorf("error retrieving trainer by user: %w", err)
	}

	skills, err := r.GetSkills(ctx, trainer.ID)
	if err != nil {
		return nil, err
	}
	trainer.Skills = skills

	return &trainer, nil
}

// GetAll retrieves the full roster with skills loaded
func (r *TrainerRepository) GetAll(ctx context.Context) ([]*models.Trainer, error) {
	query := `
		SELECT id, name, email, phone_number, bio, user_id, created_at
		FROM trainers
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing trainers: %w", err)
	}
	defer rows.Close()

	var trainers []*models.Trainer
	byID := make(map[int64]*models.Trainer)
	for rows.Next() {
		var trainer models.Trainer
		if err := rows.Scan(
			&trainer.ID,
			&trainer.Name,
			&trainer.Email,
			&trainer.PhoneNumber,
			&trainer.Bio,
			&trainer.UserID,
			&trainer.CreatedAt,
		); err != nil {
			return nil, err
		}
		trainer.Skills = []*models.Skill{}
		trainers = append(trainers, &trainer)
		byID[trainer.ID] = &trainer
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(trainers) == 0 {
		return trainers, nil
	}

	skillQuery := `
		SELECT ts.trainer_id, s.id, s.name, s.code, s.description, s.is_active, s.created_at
		FROM trainer_skills ts
		JOIN skills s ON s.id = ts.skill_id
		ORDER BY s.name
	`
	skillRows, err := r.db.Query(ctx, skillQuery)
	if err != nil {
		return nil, fmt.Errorf("error listing trainer skills: %w", err)
	}
	defer skillRows.Close()

	for skillRows.Next() {
		var trainerID int64
		var skill models.Skill
		if err := skillRows.Scan(
			&trainerID,
			&skill.ID,
			&skill.Name,
			&skill.Code,
			&skill.Description,
			&skill.IsActive,
			&skill.CreatedAt,
		); err != nil {
			return nil, err
		}
		if trainer, ok := byID[trainerID]; ok {
			trainer.Skills = append(trainer.Skills, &skill)
		}
	}
	if err := skillRows.Err(); err != nil {
		return nil, err
	}

	return trainers, nil
}

// UpdateProfile edits roster profile fields
func (r *TrainerRepository) UpdateProfile(ctx context.Context, trainer *models.Trainer) error {
	query := `
		UPDATE trainers
		SET name = $1, phone_number = $2, bio = $3
		WHERE id = $4
	`

	tag, err := r.db.Exec(ctx, query, trainer.Name, trainer.PhoneNumber, trainer.Bio, trainer.ID)
	if err != nil {
		return fmt.Errorf("error updating trainer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTrainerNotFound
	}

	return nil
}

// LinkUser backfills the identity link after account activation
func (r *TrainerRepository) LinkUser(ctx context.Context, trainerID, userID int64) error {
	query := `
		UPDATE trainers
		SET user_id = $1
		WHERE id = $2
	`

	tag, err := r.db.Exec(ctx, query, userID, trainerID)
	if err != nil {
		return fmt.Errorf("error linking trainer to user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTrainerNotFound
	}

	return nil
}

// Delete removes a roster row. Skill assignments cascade.
func (r *TrainerRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM trainers
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting trainer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTrainerNotFound
	}

	return nil
}

// GetSkills returns the skills assigned to one trainer
func (r *TrainerRepository) GetSkills(ctx context.Context, trainerID int64) ([]*models.Skill, error) {
	query := `
		SELECT s.id, s.name, s.code, s.description, s.is_active, s.created_at
		FROM trainer_skills ts
		JOIN skills s ON s.id = ts.skill_id
		WHERE ts.trainer_id = $1
		ORDER BY s.name
	`

	rows, err := r.db.Query(ctx, query, trainerID)
	if err != nil {
		return nil, fmt.Errorf("error listing skills for trainer: %w", err)
	}
	defer rows.Close()

	skills := []*models.Skill{}
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

// AssignSkill links a skill to a trainer. Re-assigning is a no-op.
func (r *TrainerRepository) AssignSkill(ctx context.Context, trainerID, skillID int64) error {
	query := `
		INSERT INTO trainer_skills (trainer_id, skill_id)
		VALUES ($1, $2)
		ON CONFLICT (trainer_id, skill_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, trainerID, skillID)
	if err != nil {
		return fmt.Errorf("error assigning skill: %w", err)
	}

	return nil
}

// RemoveSkill unlinks a skill from a trainer
func (r *TrainerRepository) RemoveSkill(ctx context.Context, trainerID, skillID int64) error {
	query := `
		DELETE FROM trainer_skills
		WHERE trainer_id = $1 AND skill_id = $2
	`

	tag, err := r.db.Exec(ctx, query, trainerID, skillID)
	if err != nil {
		return fmt.Errorf("error removing skill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
