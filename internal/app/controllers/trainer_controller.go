package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fulafia/esp-portal/internal/app/models"
	"github.com/fulafia/esp-portal/internal/app/models/dto"
	"github.com/fulafia/esp-portal/internal/app/services"
	"github.com/fulafia/esp-portal/internal/middleware"
)

// TrainerController handles roster, invitation and dashboard endpoints
type TrainerController struct {
	trainerService *services.TrainerService
}

// NewTrainerController creates a new TrainerController
func NewTrainerController(trainerService *services.TrainerService) *TrainerController {
	return &TrainerController{
		trainerService: trainerService,
	}
}

// List lists the trainer roster
// @Summary List trainers
// @Description Lists all trainers with their assigned skills
// @Tags trainers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.TrainerResponse} "Trainers retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/trainers [get]
func (c *TrainerController) List(ctx *gin.Context) {
	resp, err := c.trainerService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Get retrieves one trainer
// @Summary Get trainer by ID
// @Description Retrieves a trainer with their assigned skills
// @Tags trainers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trainer ID"
// @Success 200 {object} dto.APIResponse{data=dto.TrainerResponse} "Trainer retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid trainer ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Trainer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/trainers/{id} [get]
func (c *TrainerController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	resp, err := c.trainerService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Create puts a trainer on the roster
// @Summary Create a trainer
// @Description Adds a trainer to the roster and emails them an activation invitation
// @Tags trainers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTrainerRequest true "Trainer information"
// @Success 201 {object} dto.APIResponse{data=dto.TrainerResponse} "Trainer created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/trainers [post]
func (c *TrainerController) Create(ctx *gin.Context) {
	var req dto.CreateTrainerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.trainerService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Update edits a trainer profile
// @Summary Update a trainer
// @Description Updates roster profile fields
// @Tags trainers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trainer ID"
// @Param request body dto.UpdateTrainerRequest true "Trainer information"
// @Success 200 {object} dto.APIResponse{data=dto.TrainerResponse} "Trainer updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Trainer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/trainers/{id} [put]
func (c *TrainerController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateTrainerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.trainerService.Update(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Delete removes a trainer from the roster
// @Summary Delete a trainer
// @Description Removes a roster entry; skill assignments go with it
// @Tags trainers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trainer ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Trainer deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid trainer ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Trainer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/trainers/{id} [delete]
func (c *TrainerController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.trainerService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Trainer deleted"},
		Timestamp: time.Now(),
	})
}

// AssignSkill links a skill to a trainer
// @Summary Assign a skill
// @Description Links a skill track to a trainer; repeating the call is harmless
// @Tags trainers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trainer ID"
// @Param request body dto.AssignSkillRequest true "Skill to assign"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Skill assigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Trainer or skill not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/trainers/{id}/skills [post]
func (c *TrainerController) AssignSkill(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.AssignSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.trainerService.AssignSkill(ctx, id, req.SkillID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Skill assigned"},
		Timestamp: time.Now(),
	})
}

// RemoveSkill unlinks a skill from a trainer
// @Summary Remove a skill
// @Description Unlinks a skill track from a trainer
// @Tags trainers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trainer ID"
// @Param skillId path int true "Skill ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Skill removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/trainers/{id}/skills/{skillId} [delete]
func (c *TrainerController) RemoveSkill(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	skillID, err := parseInt64Param(ctx, "skillId")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid skill ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.trainerService.RemoveSkill(ctx, id, skillID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Skill removed"},
		Timestamp: time.Now(),
	})
}

// SubmitInvitation records a public trainer interest submission
// @Summary Submit trainer interest
// @Description Accepts a prospective trainer's interest submission for admin review
// @Tags trainers
// @Accept json
// @Produce json
// @Param request body dto.InviteTrainerRequest true "Trainer interest"
// @Success 201 {object} dto.APIResponse{data=dto.PendingTrainerResponse} "Submission recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /trainers/interest [post]
func (c *TrainerController) SubmitInvitation(ctx *gin.Context) {
	var req dto.InviteTrainerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.trainerService.SubmitInvitation(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// ListInvitations lists the invitation queue
// @Summary List trainer invitations
// @Description Lists trainer interest submissions, optionally filtered by status
// @Tags trainers
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Success 200 {object} dto.APIResponse{data=[]dto.PendingTrainerResponse} "Invitations retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/trainer-invitations [get]
func (c *TrainerController) ListInvitations(ctx *gin.Context) {
	status := models.PendingTrainerStatus(ctx.Query("status"))

	resp, err := c.trainerService.ListInvitations(ctx, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// ApproveInvitation approves an invitation onto the roster
// @Summary Approve a trainer invitation
// @Description Accepts the invitation, puts the trainer on the roster and emails the activation invite
// @Tags trainers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID"
// @Success 200 {object} dto.APIResponse{data=dto.TrainerResponse} "Invitation approved"
// @Failure 400 {object} dto.ErrorResponse "Invalid invitation ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/trainer-invitations/{id}/approve [put]
func (c *TrainerController) ApproveInvitation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	resp, err := c.trainerService.ApproveInvitation(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// RejectInvitation declines an invitation
// @Summary Reject a trainer invitation
// @Description Declines the invitation without touching the roster
// @Tags trainers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Invitation rejected"
// @Failure 400 {object} dto.ErrorResponse "Invalid invitation ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/trainer-invitations/{id}/reject [put]
func (c *TrainerController) RejectInvitation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.trainerService.RejectInvitation(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Invitation rejected"},
		Timestamp: time.Now(),
	})
}

// Dashboard returns the signed-in trainer's view
// @Summary Trainer dashboard
// @Description Returns the trainer's profile, skills and the applications to those skills
// @Tags trainers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.TrainerDashboard} "Dashboard retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Trainer profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /trainer/dashboard [get]
func (c *TrainerController) Dashboard(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.trainerService.Dashboard(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Applications returns applications to the signed-in trainer's skills
// @Summary Trainer applications
// @Description Lists applications submitted to the trainer's skill tracks
// @Tags trainers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicationResponse} "Applications retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Trainer profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /trainer/applications [get]
func (c *TrainerController) Applications(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.trainerService.Dashboard(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp.Applications,
		Timestamp: time.Now(),
	})
}

// Skills returns the signed-in trainer's assigned skill tracks
// @Summary Trainer skills
// @Description Lists the skill tracks assigned to the trainer
// @Tags trainers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.SkillResponse} "Skills retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Trainer profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /trainer/skills [get]
func (c *TrainerController) Skills(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.trainerService.Dashboard(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp.Trainer.Skills,
		Timestamp: time.Now(),
	})
}
