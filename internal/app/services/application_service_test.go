package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulafia/esp-portal/internal/app/models"
	"github.com/fulafia/esp-portal/internal/app/models/dto"
	"github.com/fulafia/esp-portal/internal/pkg/apperrors"
)

type applicationFixture struct {
	apps    *fakeApplicationStore
	skills  *fakeSkillStore
	depts   *fakeDepartmentStore
	emails  *fakeEmailService
	storage *fakeFileStorage
	svc     *ApplicationService

	dept  *models.Department
	skill *models.Skill
}

func newApplicationFixture() *applicationFixture {
	f := &applicationFixture{
		apps:    newFakeApplicationStore(),
		skills:  newFakeSkillStore(),
		depts:   newFakeDepartmentStore(),
		emails:  &fakeEmailService{},
		storage: &fakeFileStorage{},
	}
	f.dept = f.depts.add("Computer Science", "CSC")
	f.skill = f.skills.add("Fashion Design", "fashion_design", true)
	f.svc = NewApplicationService(f.apps, f.skills, f.depts, f.emails, f.storage, zerolog.Nop())
	return f
}

func (f *applicationFixture) validRequest() *dto.SubmitApplicationRequest {
	return &dto.SubmitApplicationRequest{
		StudentName:  "Jane Doe",
		StudentEmail: "Jane@Student.FULafia.edu.ng",
		PhoneNumber:  "+2348012345678",
		MatricNumber: "ful/2021/0042",
		LevelOfStudy: "300",
		DepartmentID: f.dept.ID,
		SkillID:      f.skill.ID,
	}
}

func (f *applicationFixture) addPendingApplication() *models.StudentApplication {
	receiptURL := "/uploads/receipts/receipt.png"
	return f.apps.add(&models.StudentApplication{
		StudentName:   "Jane Doe",
		StudentEmail:  "jane@student.fulafia.edu.ng",
		PhoneNumber:   "+2348012345678",
		MatricNumber:  "FUL/2021/0042",
		LevelOfStudy:  "300",
		DepartmentID:  f.dept.ID,
		SkillID:       f.skill.ID,
		Status:        models.StatusPending,
		EspReceiptURL: &receiptURL,
		Department:    f.dept,
		Skill:         f.skill,
	})
}

func receiptFile() *multipart.FileHeader {
	return &multipart.FileHeader{Filename: "receipt.png", Size: 2048}
}

func TestSubmitApplication(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the receipt and the application", func(t *testing.T) {
		f := newApplicationFixture()

		resp, err := f.svc.Submit(ctx, f.validRequest(), receiptFile())
		require.NoError(t, err)

		assert.Equal(t, string(models.StatusPending), resp.Status)
		assert.Equal(t, "jane@student.fulafia.edu.ng", resp.StudentEmail)
		assert.Equal(t, "FUL/2021/0042", resp.MatricNumber, "matric numbers are stored uppercased")

		require.Len(t, f.storage.saved, 1)
		stored, err := f.apps.GetByID(ctx, resp.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.EspReceiptURL)
		assert.Equal(t, f.storage.saved[0], *stored.EspReceiptURL)
	})

	t.Run("accepts a submission without a receipt", func(t *testing.T) {
		f := newApplicationFixture()

		resp, err := f.svc.Submit(ctx, f.validRequest(), nil)
		require.NoError(t, err)
		assert.Equal(t, string(models.StatusPending), resp.Status)
		assert.Empty(t, f.storage.saved)

		stored := f.apps.apps[resp.ID]
		require.NotNil(t, stored)
		assert.Nil(t, stored.EspReceiptURL)
	})

	t.Run("rejects a closed skill track before storing anything", func(t *testing.T) {
		f := newApplicationFixture()
		closed := f.skills.add("Shoe Making", "shoe_making", false)
		req := f.validRequest()
		req.SkillID = closed.ID

		_, err := f.svc.Submit(ctx, req, receiptFile())
		assert.ErrorIs(t, err, apperrors.ErrSkillInactive)
		assert.Empty(t, f.storage.saved, "the receipt must not be stored for a rejected submission")
		assert.Empty(t, f.apps.apps)
	})

	t.Run("rejects unknown department and skill ids", func(t *testing.T) {
		f := newApplicationFixture()

		req := f.validRequest()
		req.DepartmentID = 99
		_, err := f.svc.Submit(ctx, req, receiptFile())
		assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)

		req = f.validRequest()
		req.SkillID = 99
		_, err = f.svc.Submit(ctx, req, receiptFile())
		assert.ErrorIs(t, err, apperrors.ErrSkillNotFound)
	})

	t.Run("cleans up the stored receipt when the insert fails", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.createErr = errors.New("connection reset")

		_, err := f.svc.Submit(ctx, f.validRequest(), receiptFile())
		require.Error(t, err)

		require.Len(t, f.storage.saved, 1)
		require.Len(t, f.storage.deleted, 1)
		assert.Equal(t, f.storage.saved[0], f.storage.deleted[0])
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*dto.SubmitApplicationRequest)
		}{
			{"empty name", func(r *dto.SubmitApplicationRequest) { r.StudentName = " " }},
			{"bad email", func(r *dto.SubmitApplicationRequest) { r.StudentEmail = "jane@" }},
			{"bad matric number", func(r *dto.SubmitApplicationRequest) { r.MatricNumber = "20210042" }},
			{"missing phone", func(r *dto.SubmitApplicationRequest) { r.PhoneNumber = "" }},
			{"missing level", func(r *dto.SubmitApplicationRequest) { r.LevelOfStudy = "" }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newApplicationFixture()
				req := f.validRequest()
				tt.mutate(req)

				_, err := f.svc.Submit(ctx, req, receiptFile())
				assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
				assert.Empty(t, f.storage.saved)
			})
		}
	})
}

func TestReviewApplication(t *testing.T) {
	ctx := context.Background()

	t.Run("accepting a pending application emails the student once", func(t *testing.T) {
		f := newApplicationFixture()
		app := f.addPendingApplication()

		resp, err := f.svc.Review(ctx, app.ID, &dto.ReviewApplicationRequest{
			Status:     models.StatusAccepted,
			AdminNotes: "Receipt verified.",
		})
		require.NoError(t, err)
		assert.Equal(t, string(models.StatusAccepted), resp.Status)

		require.Len(t, f.emails.decisions, 1)
		assert.Equal(t, app.StudentEmail, f.emails.decisions[0].toEmail)
		assert.Equal(t, f.skill.Code, f.emails.decisions[0].skill)
		assert.Equal(t, models.StatusAccepted, f.emails.decisions[0].status)
	})

	t.Run("repeating the same decision sends no second email", func(t *testing.T) {
		f := newApplicationFixture()
		app := f.addPendingApplication()

		_, err := f.svc.Review(ctx, app.ID, &dto.ReviewApplicationRequest{Status: models.StatusAccepted})
		require.NoError(t, err)
		_, err = f.svc.Review(ctx, app.ID, &dto.ReviewApplicationRequest{Status: models.StatusAccepted})
		require.NoError(t, err)

		assert.Len(t, f.emails.decisions, 1)
	})

	t.Run("flipping the decision emails again", func(t *testing.T) {
		f := newApplicationFixture()
		app := f.addPendingApplication()

		_, err := f.svc.Review(ctx, app.ID, &dto.ReviewApplicationRequest{Status: models.StatusAccepted})
		require.NoError(t, err)
		_, err = f.svc.Review(ctx, app.ID, &dto.ReviewApplicationRequest{Status: models.StatusRejected})
		require.NoError(t, err)

		require.Len(t, f.emails.decisions, 2)
		assert.Equal(t, models.StatusRejected, f.emails.decisions[1].status)
	})

	t.Run("moving back to pending sends nothing", func(t *testing.T) {
		f := newApplicationFixture()
		app := f.addPendingApplication()
		app.Status = models.StatusAccepted

		_, err := f.svc.Review(ctx, app.ID, &dto.ReviewApplicationRequest{Status: models.StatusPending})
		require.NoError(t, err)
		assert.Empty(t, f.emails.decisions)
	})

	t.Run("an email failure does not undo the decision", func(t *testing.T) {
		f := newApplicationFixture()
		app := f.addPendingApplication()
		f.emails.sendErr = errors.New("smtp unreachable")

		resp, err := f.svc.Review(ctx, app.ID, &dto.ReviewApplicationRequest{Status: models.StatusRejected})
		require.NoError(t, err)
		assert.Equal(t, string(models.StatusRejected), resp.Status)

		stored, err := f.apps.GetByID(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, stored.Status)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		f := newApplicationFixture()
		app := f.addPendingApplication()

		_, err := f.svc.Review(ctx, app.ID, &dto.ReviewApplicationRequest{Status: "waitlisted"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
		assert.Equal(t, models.StatusPending, app.Status)
	})

	t.Run("rejects an unknown application", func(t *testing.T) {
		f := newApplicationFixture()

		_, err := f.svc.Review(ctx, 42, &dto.ReviewApplicationRequest{Status: models.StatusAccepted})
		assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
	})
}

func TestListApplications(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by status and skill", func(t *testing.T) {
		f := newApplicationFixture()
		other := f.skills.add("Catering", "catering", true)

		first := f.addPendingApplication()
		second := f.addPendingApplication()
		second.SkillID = other.ID
		second.Skill = other
		second.Status = models.StatusAccepted

		all, err := f.svc.List(ctx, "", 0)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		pending, err := f.svc.List(ctx, models.StatusPending, 0)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, first.ID, pending[0].ID)

		bySkill, err := f.svc.List(ctx, "", other.ID)
		require.NoError(t, err)
		require.Len(t, bySkill, 1)
		assert.Equal(t, second.ID, bySkill[0].ID)
	})

	t.Run("rejects an unknown status filter", func(t *testing.T) {
		f := newApplicationFixture()

		_, err := f.svc.List(ctx, "waitlisted", 0)
		assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	})
}

func TestOpenReceipt(t *testing.T) {
	ctx := context.Background()

	t.Run("streams the stored receipt", func(t *testing.T) {
		f := newApplicationFixture()
		app := f.addPendingApplication()

		reader, url, err := f.svc.OpenReceipt(ctx, app.ID)
		require.NoError(t, err)
		defer reader.Close()
		assert.Equal(t, *app.EspReceiptURL, url)
	})

	t.Run("reports a missing receipt as not found", func(t *testing.T) {
		f := newApplicationFixture()
		app := f.addPendingApplication()
		app.EspReceiptURL = nil

		_, _, err := f.svc.OpenReceipt(ctx, app.ID)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})
}

func TestAttachReceipt(t *testing.T) {
	ctx := context.Background()

	t.Run("attaches a receipt to an application submitted without one", func(t *testing.T) {
		f := newApplicationFixture()
		app := f.addPendingApplication()
		app.EspReceiptURL = nil

		resp, err := f.svc.AttachReceipt(ctx, app.ID, receiptFile())
		require.NoError(t, err)

		require.Len(t, f.storage.saved, 1)
		require.NotNil(t, app.EspReceiptURL)
		assert.Equal(t, f.storage.saved[0], *app.EspReceiptURL)
		require.NotNil(t, resp.EspReceiptURL)
		assert.Equal(t, f.storage.saved[0], *resp.EspReceiptURL)
		assert.Empty(t, f.storage.deleted)
	})

	t.Run("replacing a receipt removes the old file after the row is updated", func(t *testing.T) {
		f := newApplicationFixture()
		app := f.addPendingApplication()
		old := *app.EspReceiptURL

		_, err := f.svc.AttachReceipt(ctx, app.ID, receiptFile())
		require.NoError(t, err)

		require.Len(t, f.storage.saved, 1)
		assert.Equal(t, f.storage.saved[0], *app.EspReceiptURL)
		assert.Equal(t, []string{old}, f.storage.deleted)
	})

	t.Run("stores nothing for an unknown application", func(t *testing.T) {
		f := newApplicationFixture()

		_, err := f.svc.AttachReceipt(ctx, 99, receiptFile())
		assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
		assert.Empty(t, f.storage.saved)
	})

	t.Run("requires a file", func(t *testing.T) {
		f := newApplicationFixture()
		app := f.addPendingApplication()

		_, err := f.svc.AttachReceipt(ctx, app.ID, nil)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}
