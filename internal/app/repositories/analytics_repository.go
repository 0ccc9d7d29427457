package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fulafia/esp-portal/internal/app/models/dto"
)

// AnalyticsRepository aggregates application volumes for the admin
// dashboard. All counting happens in SQL.
type AnalyticsRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CountApplications returns the total number of applications
func (r *AnalyticsRepository) CountApplications(ctx context.Context) (int64, error) {
	return r.countTable(ctx, "student_applications")
}

// CountTrainers returns the roster size
func (r *AnalyticsRepository) CountTrainers(ctx context.Context) (int64, error) {
	return r.countTable(ctx, "trainers")
}

// CountSkills returns the number of skill tracks
func (r *AnalyticsRepository) CountSkills(ctx context.Context) (int64, error) {
	return r.countTable(ctx, "skills")
}

func (r *AnalyticsRepository) countTable(ctx context.Context, table string) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}

	return count, nil
}

// CountByStatus returns application counts grouped by review status
func (r *AnalyticsRepository) CountByStatus(ctx context.Context) ([]dto.StatusCount, error) {
	sql, args, err := r.sb.Select("status", "COUNT(*)").
		From("student_applications").
		GroupBy("status").
		OrderBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build status count query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error counting by status: %w", err)
	}
	defer rows.Close()

	counts := []dto.StatusCount{}
	for rows.Next() {
		var c dto.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// CountBySkill returns application counts grouped by skill track, with
// a per-status breakdown. Tracks with no applications appear with zero
// counts.
func (r *AnalyticsRepository) CountBySkill(ctx context.Context) ([]dto.SkillCount, error) {
	sql, args, err := r.sb.Select(
		"s.id",
		"s.name",
		"COUNT(a.id)",
		"COUNT(a.id) FILTER (WHERE a.status = 'pending')",
		"COUNT(a.id) FILTER (WHERE a.status = 'accepted')",
		"COUNT(a.id) FILTER (WHERE a.status = 'rejected')").
		From("skills s").
		LeftJoin("student_applications a ON a.skill_id = s.id").
		GroupBy("s.id", "s.name").
		OrderBy("COUNT(a.id) DESC", "s.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build skill count query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error counting by skill: %w", err)
	}
	defer rows.Close()

	counts := []dto.SkillCount{}
	for rows.Next() {
		var c dto.SkillCount
		if err := rows.Scan(&c.SkillID, &c.SkillName, &c.Count, &c.Pending, &c.Accepted, &c.Rejected); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// CountByDepartment returns application counts grouped by department
func (r *AnalyticsRepository) CountByDepartment(ctx context.Context) ([]dto.DepartmentCount, error) {
	sql, args, err := r.sb.Select("d.id", "d.name", "COUNT(a.id)").
		From("departments d").
		LeftJoin("student_applications a ON a.department_id = d.id").
		GroupBy("d.id", "d.name").
		OrderBy("COUNT(a.id) DESC", "d.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build department count query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error counting by department: %w", err)
	}
	defer rows.Close()

	counts := []dto.DepartmentCount{}
	for rows.Next() {
		var c dto.DepartmentCount
		if err := rows.Scan(&c.DepartmentID, &c.DepartmentName, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
