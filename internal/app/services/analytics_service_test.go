package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulafia/esp-portal/internal/app/models/dto"
)

type fakeAnalyticsStore struct {
	applications int64
	trainers     int64
	skills       int64
	byStatus     []dto.StatusCount
	bySkill      []dto.SkillCount
	byDepartment []dto.DepartmentCount
	err          error
}

func (f *fakeAnalyticsStore) CountApplications(_ context.Context) (int64, error) {
	return f.applications, f.err
}

func (f *fakeAnalyticsStore) CountTrainers(_ context.Context) (int64, error) {
	return f.trainers, f.err
}

func (f *fakeAnalyticsStore) CountSkills(_ context.Context) (int64, error) {
	return f.skills, f.err
}

func (f *fakeAnalyticsStore) CountByStatus(_ context.Context) ([]dto.StatusCount, error) {
	return f.byStatus, f.err
}

func (f *fakeAnalyticsStore) CountBySkill(_ context.Context) ([]dto.SkillCount, error) {
	return f.bySkill, f.err
}

func (f *fakeAnalyticsStore) CountByDepartment(_ context.Context) ([]dto.DepartmentCount, error) {
	return f.byDepartment, f.err
}

func TestAnalyticsSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates counts and acceptance rate", func(t *testing.T) {
		store := &fakeAnalyticsStore{
			applications: 10,
			trainers:     3,
			skills:       4,
			byStatus: []dto.StatusCount{
				{Status: "pending", Count: 4},
				{Status: "accepted", Count: 4},
				{Status: "rejected", Count: 2},
			},
			bySkill: []dto.SkillCount{
				{SkillID: 1, SkillName: "Fashion Design", Count: 6, Pending: 2, Accepted: 3, Rejected: 1},
			},
			byDepartment: []dto.DepartmentCount{
				{DepartmentID: 1, DepartmentName: "Computer Science", Count: 10},
			},
		}
		svc := NewAnalyticsService(store)

		summary, err := svc.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(10), summary.TotalApplications)
		assert.Equal(t, int64(3), summary.TotalTrainers)
		assert.Equal(t, int64(4), summary.TotalSkills)
		assert.InDelta(t, 4.0/6.0, summary.AcceptanceRate, 1e-9)
		assert.Len(t, summary.ByStatus, 3)
		assert.Len(t, summary.BySkill, 1)
		assert.Len(t, summary.ByDepartment, 1)
	})

	t.Run("all pending reads as zero acceptance", func(t *testing.T) {
		store := &fakeAnalyticsStore{
			applications: 2,
			byStatus:     []dto.StatusCount{{Status: "pending", Count: 2}},
		}
		svc := NewAnalyticsService(store)

		summary, err := svc.Summary(ctx)
		require.NoError(t, err)
		assert.Zero(t, summary.AcceptanceRate)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		boom := errors.New("connection closed")
		svc := NewAnalyticsService(&fakeAnalyticsStore{err: boom})

		_, err := svc.Summary(ctx)
		assert.ErrorIs(t, err, boom)
	})
}
