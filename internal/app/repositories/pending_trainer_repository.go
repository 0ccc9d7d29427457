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

// PendingTrainerRepository handles database operations for the trainer
// invitation queue
type PendingTrainerRepository struct {
	db *pgxpool.Pool
}

// NewPendingTrainerRepository creates a new pending trainer repository
func NewPendingTrainerRepository(db *pgxpool.Pool) *PendingTrainerRepository {
	return &PendingTrainerRepository{
		db: db,
	}
}

// Create inserts a new invitation in pending status
func (r *PendingTrainerRepository) Create(ctx context.Context, pending *models.PendingTrainer) error {
	query := `
		INSERT INTO pending_trainers (name, email, phone_number, expertise, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		pending.Name,
		strings.ToLower(pending.Email),
		pending.PhoneNumber,
		pending.Expertise,
		pending.Message,
		pending.Status,
	).Scan(&pending.ID, &pending.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating trainer invitation: %w", err)
	}

	return nil
}

// GetByID retrieves one invitation
func (r *PendingTrainerRepository) GetByID(ctx context.Context, id int64) (*models.PendingTrainer, error) {
	query := `
		SELECT id, name, email, phone_number, expertise, message, status, created_at
		FROM pending_trainers
		WHERE id = $1
	`

	var pending models.PendingTrainer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&pending.ID,
		&pending.Name,
		&pending.Email,
		&pending.PhoneNumber,
		&pending.Expertise,
		&pending.Message,
		&pending.Status,
		&pending.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("error retrieving trainer invitation: %w", err)
	}

	return &pending, nil
}

// List retrieves invitations newest first, optionally filtered by status
func (r *PendingTrainerRepository) List(ctx context.Context, status models.PendingTrainerStatus) ([]*models.PendingTrainer, error) {
	query := `
		SELECT id, name, email, phone_number, expertise, message, status, created_at
		FROM pending_trainers
	`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing trainer invitations: %w", err)
	}
	defer rows.Close()

	var pendings []*models.PendingTrainer
	for rows.Next() {
		var pending models.PendingTrainer
		if err := rows.Scan(
			&pending.ID,
			&pending.Name,
			&pending.Email,
			&pending.PhoneNumber,
			&pending.Expertise,
			&pending.Message,
			&pending.Status,
			&pending.CreatedAt,
		); err != nil {
			return nil, err
		}
		pendings = append(pendings, &pending)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pendings, nil
}

// UpdateStatus records the admin decision on an invitation
func (r *PendingTrainerRepository) UpdateStatus(ctx context.Context, id int64, status models.PendingTrainerStatus) error {
	query := `
		UPDATE pending_trainers
		SET status = $1
		WHERE id = $2
	`

	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("error updating trainer invitation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvitationNotFound
	}

	return nil
}
