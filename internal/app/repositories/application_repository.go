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

// ApplicationFilter narrows List queries. Zero values mean no filtering.
type ApplicationFilter struct {
	Status  models.ApplicationStatus
	SkillID int64
}

// ApplicationRepository handles database operations for student applications
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
	}
}

const applicationColumns = `
	a.id, a.student_name, a.student_email, a.phone_number, a.matric_number,
	a.level_of_study, a.department_id, a.skill_id, a.status, a.admin_notes,
	a.esp_receipt_url, a.created_at, a.updated_at,
	d.id, d.name, d.code,
	s.id, s.name, s.code, s.description, s.is_active, s.created_at
`

func scanApplication(row pgx.Row) (*models.StudentApplication, error) {
	var app models.StudentApplication
	var dept models.Department
	var skill models.Skill

	err := row.Scan(
		&app.ID,
		&app.StudentName,
		&app.StudentEmail,
		&app.PhoneNumber,
		&app.MatricNumber,
		&app.LevelOfStudy,
		&app.DepartmentID,
		&app.SkillID,
		&app.Status,
		&app.AdminNotes,
		&app.EspReceiptURL,
		&app.CreatedAt,
		&app.UpdatedAt,
		&dept.ID,
		&dept.Name,
		&dept.Code,
		&skill.ID,
		&skill.Name,
		&skill.Code,
		&skill.Description,
		&skill.IsActive,
		&skill.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	app.Department = &dept
	app.Skill = &skill
	return &app, nil
}

// Create inserts a new application in pending status
func (r *ApplicationRepository) Create(ctx context.Context, app *models.StudentApplication) error {
	query := `
		INSERT INTO student_applications
			(student_name, student_email, phone_number, matric_number,
			 level_of_study, department_id, skill_id, status, admin_notes, esp_receipt_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		app.StudentName,
		app.StudentEmail,
		app.PhoneNumber,
		app.MatricNumber,
		app.LevelOfStudy,
		app.DepartmentID,
		app.SkillID,
		app.Status,
		app.AdminNotes,
		app.EspReceiptURL,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating application: %w", err)
	}

	return nil
}

// GetByID retrieves one application with its department and skill joined
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.StudentApplication, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM student_applications a
		JOIN departments d ON d.id = a.department_id
		JOIN skills s ON s.id = a.skill_id
		WHERE a.id = $1
	`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}

	return app, nil
}

// List retrieves applications newest first, optionally filtered by
// status and skill
func (r *ApplicationRepository) List(ctx context.Context, filter ApplicationFilter) ([]*models.StudentApplication, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM student_applications a
		JOIN departments d ON d.id = a.department_id
		JOIN skills s ON s.id = a.skill_id
		WHERE 1=1
	`
	args := []interface{}{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND a.status = $%d", len(args))
	}
	if filter.SkillID != 0 {
		args = append(args, filter.SkillID)
		query += fmt.Sprintf(" AND a.skill_id = $%d", len(args))
	}
	query += ` ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.StudentApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}

// ListBySkills retrieves applications for any of the given skill tracks,
// used for the trainer dashboard
func (r *ApplicationRepository) ListBySkills(ctx context.Context, skillIDs []int64) ([]*models.StudentApplication, error) {
	if len(skillIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + applicationColumns + `
		FROM student_applications a
		JOIN departments d ON d.id = a.department_id
		JOIN skills s ON s.id = a.skill_id
		WHERE a.skill_id = ANY($1)
		ORDER BY a.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, skillIDs)
	if err != nil {
		return nil, fmt.Errorf("error listing applications by skills: %w", err)
	}
	defer rows.Close()

	var apps []*models.StudentApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}

// UpdateStatus writes the review decision and returns the status the row
// held before the write. Callers use the previous status to decide
// whether a decision email is owed, so repeated identical reviews stay
// idempotent.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus, adminNotes string) (models.ApplicationStatus, error) {
	query := `
		UPDATE student_applications AS a
		SET status = $1, admin_notes = $2, updated_at = CURRENT_TIMESTAMP
		FROM student_applications AS prev
		WHERE a.id = $3 AND prev.id = a.id
		RETURNING prev.status
	`

	var previous models.ApplicationStatus
	err := r.db.QueryRow(ctx, query, status, adminNotes, id).Scan(&previous)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrApplicationNotFound
		}
		return "", fmt.Errorf("error updating application status: %w", err)
	}

	return previous, nil
}

// SetReceiptURL attaches the stored payment receipt to an application
func (r *ApplicationRepository) SetReceiptURL(ctx context.Context, id int64, url string) error {
	query := `
		UPDATE student_applications
		SET esp_receipt_url = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`

	tag, err := r.db.Exec(ctx, query, url, id)
	if err != nil {
		return fmt.Errorf("error setting receipt url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}

	return nil
}
