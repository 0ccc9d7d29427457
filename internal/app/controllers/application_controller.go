package controllers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fulafia/esp-portal/internal/app/models"
	"github.com/fulafia/esp-portal/internal/app/models/dto"
	"github.com/fulafia/esp-portal/internal/app/services"
	"github.com/fulafia/esp-portal/internal/middleware"
)

// ApplicationController handles student application endpoints
type ApplicationController struct {
	applicationService *services.ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
	}
}

// Submit handles student application submission
// @Summary Submit an application
// @Description Accepts a student's application to a skill track with an optional payment receipt upload
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Param studentName formData string true "Student name"
// @Param studentEmail formData string true "Student email"
// @Param phoneNumber formData string true "Phone number"
// @Param matricNumber formData string true "Matric number"
// @Param levelOfStudy formData string true "Level of study"
// @Param departmentId formData int true "Department ID"
// @Param skillId formData int true "Skill ID"
// @Param receipt formData file false "ESP payment receipt"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Department or skill not found"
// @Failure 422 {object} dto.ErrorResponse "Skill not open for applications"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications [post]
func (c *ApplicationController) Submit(ctx *gin.Context) {
	var req dto.SubmitApplicationRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	receipt, err := ctx.FormFile("receipt")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid receipt upload")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		receipt = nil
	}

	resp, err := c.applicationService.Submit(ctx, &req, receipt)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// List handles the admin review queue listing
// @Summary List applications
// @Description Lists applications newest first, optionally filtered by status and skill
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending, accepted, rejected)"
// @Param skillId query int false "Filter by skill ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse} "Applications retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications [get]
func (c *ApplicationController) List(ctx *gin.Context) {
	status := models.ApplicationStatus(ctx.Query("status"))

	var skillID int64
	if raw := ctx.Query("skillId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid skill ID")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		skillID = parsed
	}

	resp, err := c.applicationService.List(ctx, status, skillID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Get retrieves one application
// @Summary Get application by ID
// @Description Retrieves an application with its department and skill details
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid application ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id} [get]
func (c *ApplicationController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	resp, err := c.applicationService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Review handles the admin decision on an application
// @Summary Review an application
// @Description Writes the review decision and notes; an accept or reject decision emails the student once
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.ReviewApplicationRequest true "Review decision"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application reviewed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/review [put]
func (c *ApplicationController) Review(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.ReviewApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.applicationService.Review(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// DownloadReceipt streams the payment receipt for an application
// @Summary Download payment receipt
// @Description Streams the stored ESP payment receipt file
// @Tags applications
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {file} binary "Receipt file"
// @Failure 400 {object} dto.ErrorResponse "Invalid application ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Application or receipt not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/receipt [get]
func (c *ApplicationController) DownloadReceipt(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	reader, fileURL, err := c.applicationService.OpenReceipt(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer reader.Close()

	ctx.Header("Content-Disposition", "attachment; filename="+filepath.Base(fileURL))
	ctx.Header("Content-Type", "application/octet-stream")
	if _, err := io.Copy(ctx.Writer, reader); err != nil {
		// Headers are already out; nothing sensible left to send
		_ = ctx.Error(err)
	}
}

// AttachReceipt stores or replaces the payment receipt on an application
// @Summary Attach payment receipt
// @Description Stores a receipt uploaded after submission, replacing any previous one
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param receipt formData file true "ESP payment receipt"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse} "Receipt attached"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/receipt [put]
func (c *ApplicationController) AttachReceipt(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	receipt, err := ctx.FormFile("receipt")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Receipt file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.applicationService.AttachReceipt(ctx, id, receipt)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// parseIDParam reads the :id path parameter
func parseIDParam(ctx *gin.Context) (int64, bool) {
	id, err := parseInt64Param(ctx, "id")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID").
			WithDetails("ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

func parseInt64Param(ctx *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(ctx.Param(name), 10, 64)
}
