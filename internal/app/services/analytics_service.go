package services

import (
	"context"

	"github.com/fulafia/esp-portal/internal/app/models"
	"github.com/fulafia/esp-portal/internal/app/models/dto"
	"github.com/fulafia/esp-portal/internal/app/repositories"
)

// AnalyticsService assembles the admin dashboard summary
type AnalyticsService struct {
	analyticsRepo repositories.AnalyticsStore
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(analyticsRepo repositories.AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{analyticsRepo: analyticsRepo}
}

// Summary returns application volumes grouped by status, skill and
// department alongside roster and track totals
func (s *AnalyticsService) Summary(ctx context.Context) (*dto.AnalyticsSummary, error) {
	total, err := s.analyticsRepo.CountApplications(ctx)
	if err != nil {
		return nil, err
	}

	trainers, err := s.analyticsRepo.CountTrainers(ctx)
	if err != nil {
		return nil, err
	}

	skills, err := s.analyticsRepo.CountSkills(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.analyticsRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	bySkill, err := s.analyticsRepo.CountBySkill(ctx)
	if err != nil {
		return nil, err
	}

	byDepartment, err := s.analyticsRepo.CountByDepartment(ctx)
	if err != nil {
		return nil, err
	}

	// Acceptance rate over decided applications only; an all-pending
	// queue reads as 0 rather than dividing by zero.
	var accepted, rejected int64
	for _, c := range byStatus {
		switch c.Status {
		case string(models.StatusAccepted):
			accepted = c.Count
		case string(models.StatusRejected):
			rejected = c.Count
		}
	}
	var acceptanceRate float64
	if decided := accepted + rejected; decided > 0 {
		acceptanceRate = float64(accepted) / float64(decided)
	}

	return &dto.AnalyticsSummary{
		TotalApplications: total,
		TotalTrainers:     trainers,
		TotalSkills:       skills,
		AcceptanceRate:    acceptanceRate,
		ByStatus:          byStatus,
		BySkill:           bySkill,
		ByDepartment:      byDepartment,
	}, nil
}
