package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fulafia/esp-portal/internal/app/models/dto"
	"github.com/fulafia/esp-portal/internal/app/services"
	"github.com/fulafia/esp-portal/internal/middleware"
)

// SkillController handles skill track endpoints
type SkillController struct {
	skillService *services.SkillService
}

// NewSkillController creates a new SkillController
func NewSkillController(skillService *services.SkillService) *SkillController {
	return &SkillController{
		skillService: skillService,
	}
}

// skillRequest is the create/update payload for a skill track
type skillRequest struct {
	Name        string `json:"name" binding:"required" example:"Digital Marketing"`
	Code        string `json:"code" binding:"required" example:"digital_marketing"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

func (r *skillRequest) active() bool {
	if r.IsActive == nil {
		return true
	}
	return *r.IsActive
}

// ListActive lists skill tracks open for applications
// @Summary List active skills
// @Description Lists skill tracks students can currently apply to
// @Tags skills
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.SkillResponse} "Skills retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /skills [get]
func (c *SkillController) ListActive(ctx *gin.Context) {
	resp, err := c.skillService.ListActive(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// ListAll lists every skill track for admins
// @Summary List all skills
// @Description Lists all skill tracks including closed ones
// @Tags skills
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.SkillResponse} "Skills retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/skills [get]
func (c *SkillController) ListAll(ctx *gin.Context) {
	resp, err := c.skillService.ListAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Get returns one skill track
// @Summary Get a skill
// @Description Retrieves a single skill track by ID
// @Tags skills
// @Produce json
// @Security BearerAuth
// @Param id path int true "Skill ID"
// @Success 200 {object} dto.APIResponse{data=dto.SkillResponse} "Skill retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Skill not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/skills/{id} [get]
func (c *SkillController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	resp, err := c.skillService.Get(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Create adds a skill track
// @Summary Create a skill
// @Description Creates a new skill track
// @Tags skills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body skillRequest true "Skill information"
// @Success 201 {object} dto.APIResponse{data=dto.SkillResponse} "Skill created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Skill already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/skills [post]
func (c *SkillController) Create(ctx *gin.Context) {
	var req skillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.skillService.Create(ctx, req.Name, req.Code, req.Description, req.active())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Update edits a skill track
// @Summary Update a skill
// @Description Updates an existing skill track
// @Tags skills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Skill ID"
// @Param request body skillRequest true "Skill information"
// @Success 200 {object} dto.APIResponse{data=dto.SkillResponse} "Skill updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Skill not found"
// @Failure 409 {object} dto.ErrorResponse "Skill already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/skills/{id} [put]
func (c *SkillController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req skillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.skillService.Update(ctx, id, req.Name, req.Code, req.Description, req.active())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// skillActiveRequest toggles whether a track accepts applications
type skillActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// SetActive opens or closes a track for applications
// @Summary Open or close a skill
// @Description Toggles whether a skill track accepts student applications
// @Tags skills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Skill ID"
// @Param request body skillActiveRequest true "Active flag"
// @Success 200 {object} dto.APIResponse "Skill updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Skill not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/skills/{id}/active [patch]
func (c *SkillController) SetActive(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req skillActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.skillService.SetActive(ctx, id, *req.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"message": "Skill updated successfully"},
		Timestamp: time.Now(),
	})
}

// Delete removes a skill track
// @Summary Delete a skill
// @Description Deletes a skill track with no application history
// @Tags skills
// @Produce json
// @Security BearerAuth
// @Param id path int true "Skill ID"
// @Success 200 {object} dto.APIResponse "Skill deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Skill not found"
// @Failure 422 {object} dto.ErrorResponse "Skill has associated data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/skills/{id} [delete]
func (c *SkillController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.skillService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"message": "Skill deleted successfully"},
		Timestamp: time.Now(),
	})
}
