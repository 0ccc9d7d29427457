package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fulafia/esp-portal/internal/app/models"
	"github.com/fulafia/esp-portal/internal/app/models/dto"
	"github.com/fulafia/esp-portal/internal/app/repositories"
	"github.com/fulafia/esp-portal/internal/pkg/apperrors"
	"github.com/fulafia/esp-portal/internal/pkg/email"
	"github.com/fulafia/esp-portal/internal/pkg/filestorage"
	"github.com/fulafia/esp-portal/internal/pkg/validation"
)

// receiptSubPath is where payment receipts land under the upload root
const receiptSubPath = "receipts"

// ApplicationService handles student application intake and admin review
type ApplicationService struct {
	appRepo      repositories.ApplicationStore
	skillRepo    repositories.SkillStore
	deptRepo     repositories.DepartmentStore
	emailService email.EmailService
	storage      filestorage.FileStorage
	logger       zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	appRepo repositories.ApplicationStore,
	skillRepo repositories.SkillStore,
	deptRepo repositories.DepartmentStore,
	emailService email.EmailService,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		appRepo:      appRepo,
		skillRepo:    skillRepo,
		deptRepo:     deptRepo,
		emailService: emailService,
		storage:      storage,
		logger:       logger,
	}
}

// validateSubmission checks the intake form before anything is stored
func (s *ApplicationService) validateSubmission(req *dto.SubmitApplicationRequest) error {
	if !validation.ValidName(req.StudentName) {
		return apperrors.NewValidationError("student name is required")
	}
	if !validation.ValidEmail(req.StudentEmail) {
		return apperrors.NewValidationError("invalid email format")
	}
	if !validation.CompiledPatterns.Matric.MatchString(strings.TrimSpace(req.MatricNumber)) {
		return apperrors.NewValidationError("invalid matric number format")
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		return apperrors.NewValidationError("phone number is required")
	}
	if strings.TrimSpace(req.LevelOfStudy) == "" {
		return apperrors.NewValidationError("level of study is required")
	}
	return nil
}

// Submit stores a new application. The payment receipt is optional;
// when present it is persisted before the database row so a stored row
// always points at a real file, and a failed insert cleans it back up.
func (s *ApplicationService) Submit(ctx context.Context, req *dto.SubmitApplicationRequest, receipt *multipart.FileHeader) (*dto.ApplicationResponse, error) {
	if err := s.validateSubmission(req); err != nil {
		return nil, err
	}

	dept, err := s.deptRepo.GetByID(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	skill, err := s.skillRepo.GetByID(ctx, req.SkillID)
	if err != nil {
		return nil, err
	}
	if !skill.IsActive {
		return nil, apperrors.ErrSkillInactive
	}

	var receiptURL *string
	if receipt != nil {
		url, err := s.storage.SaveFileWithPath(receipt, receiptSubPath)
		if err != nil {
			return nil, fmt.Errorf("failed to store receipt: %w", err)
		}
		receiptURL = &url
	}

	app := &models.StudentApplication{
		StudentName:   strings.TrimSpace(req.StudentName),
		StudentEmail:  validation.NormalizeEmail(req.StudentEmail),
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
		MatricNumber:  strings.ToUpper(strings.TrimSpace(req.MatricNumber)),
		LevelOfStudy:  strings.TrimSpace(req.LevelOfStudy),
		DepartmentID:  req.DepartmentID,
		SkillID:       req.SkillID,
		Status:        models.StatusPending,
		EspReceiptURL: receiptURL,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		if receiptURL != nil {
			if delErr := s.storage.DeleteFile(*receiptURL); delErr != nil {
				s.logger.Error().Err(delErr).Str("receipt", *receiptURL).Msg("Failed to clean up orphaned receipt")
			}
		}
		return nil, err
	}

	app.Department = dept
	app.Skill = skill

	s.logger.Info().
		Int64("applicationID", app.ID).
		Str("skill", skill.Code).
		Msg("Application submitted")

	resp := dto.FromApplication(app)
	return &resp, nil
}

// List returns applications for the admin review queue
func (s *ApplicationService) List(ctx context.Context, status models.ApplicationStatus, skillID int64) ([]dto.ApplicationResponse, error) {
	if status != "" && !models.ValidApplicationStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	apps, err := s.appRepo.List(ctx, repositories.ApplicationFilter{Status: status, SkillID: skillID})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, dto.FromApplication(app))
	}
	return responses, nil
}

// Get returns one application with its relations
func (s *ApplicationService) Get(ctx context.Context, id int64) (*dto.ApplicationResponse, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.FromApplication(app)
	return &resp, nil
}

// Review writes the admin decision. The decision email goes out only
// when the status actually changed to accepted or rejected, so retrying
// the same decision never emails the student twice. An email failure is
// logged but never rolls back the saved decision.
func (s *ApplicationService) Review(ctx context.Context, id int64, req *dto.ReviewApplicationRequest) (*dto.ApplicationResponse, error) {
	if !models.ValidApplicationStatus(req.Status) {
		return nil, apperrors.ErrInvalidStatus
	}

	previous, err := s.appRepo.UpdateStatus(ctx, id, req.Status, req.AdminNotes)
	if err != nil {
		return nil, err
	}

	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	decided := req.Status == models.StatusAccepted || req.Status == models.StatusRejected
	if decided && previous != req.Status {
		code := ""
		if app.Skill != nil {
			code = app.Skill.Code
		}
		if err := s.emailService.SendDecisionEmail(app.StudentEmail, app.StudentName, code, req.Status); err != nil {
			s.logger.Error().Err(err).
				Int64("applicationID", app.ID).
				Str("status", string(req.Status)).
				Msg("Failed to send decision email")
		}
	}

	resp := dto.FromApplication(app)
	return &resp, nil
}

// AttachReceipt stores a payment receipt for an application submitted
// without one, or replaces the one on file. The new file is stored
// first; the previous file is removed only after the row points at the
// replacement.
func (s *ApplicationService) AttachReceipt(ctx context.Context, id int64, receipt *multipart.FileHeader) (*dto.ApplicationResponse, error) {
	if receipt == nil {
		return nil, apperrors.NewValidationError("receipt file is required")
	}

	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	receiptURL, err := s.storage.SaveFileWithPath(receipt, receiptSubPath)
	if err != nil {
		return nil, fmt.Errorf("failed to store receipt: %w", err)
	}

	if err := s.appRepo.SetReceiptURL(ctx, id, receiptURL); err != nil {
		if delErr := s.storage.DeleteFile(receiptURL); delErr != nil {
			s.logger.Error().Err(delErr).Str("receipt", receiptURL).Msg("Failed to clean up orphaned receipt")
		}
		return nil, err
	}

	if app.EspReceiptURL != nil && *app.EspReceiptURL != "" {
		if delErr := s.storage.DeleteFile(*app.EspReceiptURL); delErr != nil {
			s.logger.Error().Err(delErr).Str("receipt", *app.EspReceiptURL).Msg("Failed to remove replaced receipt")
		}
	}

	s.logger.Info().Int64("applicationID", id).Msg("Receipt attached")

	app.EspReceiptURL = &receiptURL
	resp := dto.FromApplication(app)
	return &resp, nil
}

// OpenReceipt streams the stored payment receipt for an application
func (s *ApplicationService) OpenReceipt(ctx context.Context, id int64) (io.ReadCloser, string, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if app.EspReceiptURL == nil || *app.EspReceiptURL == "" {
		return nil, "", apperrors.NewResourceNotFoundError("application has no receipt")
	}

	reader, err := s.storage.Open(*app.EspReceiptURL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open receipt: %w", err)
	}

	return reader, *app.EspReceiptURL, nil
}
