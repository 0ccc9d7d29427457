package services

import (
	"context"
	"strings"

	"github.com/fulafia/esp-portal/internal/app/models"
	"github.com/fulafia/esp-portal/internal/app/models/dto"
	"github.com/fulafia/esp-portal/internal/app/repositories"
	"github.com/fulafia/esp-portal/internal/pkg/apperrors"
)

// DepartmentService handles department reference data
type DepartmentService struct {
	deptRepo repositories.DepartmentStore
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(deptRepo repositories.DepartmentStore) *DepartmentService {
	return &DepartmentService{deptRepo: deptRepo}
}

// List returns all departments
func (s *DepartmentService) List(ctx context.Context) ([]dto.DepartmentResponse, error) {
	departments, err := s.deptRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.DepartmentResponse, 0, len(departments))
	for _, dept := range departments {
		responses = append(responses, dto.FromDepartment(dept))
	}
	return responses, nil
}

// Get returns one department
func (s *DepartmentService) Get(ctx context.Context, id int64) (*dto.DepartmentResponse, error) {
	dept, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.FromDepartment(dept)
	return &resp, nil
}

// Create adds a department
func (s *DepartmentService) Create(ctx context.Context, name, code string) (*dto.DepartmentResponse, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(strings.ToUpper(code))
	if name == "" || code == "" {
		return nil, apperrors.NewValidationError("department name and code are required")
	}

	dept := &models.Department{Name: name, Code: code}
	if err := s.deptRepo.Create(ctx, dept); err != nil {
		return nil, err
	}

	resp := dto.FromDepartment(dept)
	return &resp, nil
}

// Update edits a department
func (s *DepartmentService) Update(ctx context.Context, id int64, name, code string) (*dto.DepartmentResponse, error) {
	dept, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dept.Name = strings.TrimSpace(name)
	dept.Code = strings.TrimSpace(strings.ToUpper(code))
	if dept.Name == "" || dept.Code == "" {
		return nil, apperrors.NewValidationError("department name and code are required")
	}

	if err := s.deptRepo.Update(ctx, dept); err != nil {
		return nil, err
	}

	resp := dto.FromDepartment(dept)
	return &resp, nil
}

// Delete removes a department that has no applications
func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	return s.deptRepo.Delete(ctx, id)
}
