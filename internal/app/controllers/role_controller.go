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

// RoleController handles role management endpoints
type RoleController struct {
	roleService *services.RoleService
}

// NewRoleController creates a new RoleController
func NewRoleController(roleService *services.RoleService) *RoleController {
	return &RoleController{
		roleService: roleService,
	}
}

// List lists role grants
// @Summary List role grants
// @Description Lists role grants joined with their users, optionally filtered by role
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role (admin, trainer, moderator, user)"
// @Success 200 {object} dto.APIResponse{data=[]dto.UserRoleResponse} "Grants retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/roles [get]
func (c *RoleController) List(ctx *gin.Context) {
	role := models.Role(ctx.Query("role"))

	resp, err := c.roleService.List(ctx, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Grant assigns a role
// @Summary Grant a role
// @Description Grants a role to the user identified by email
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GrantRoleRequest true "Role grant"
// @Success 201 {object} dto.APIResponse{data=dto.UserRoleResponse} "Role granted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Role already assigned"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/roles [post]
func (c *RoleController) Grant(ctx *gin.Context) {
	var req dto.GrantRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.roleService.Grant(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Revoke removes a role grant
// @Summary Revoke a role
// @Description Removes a role grant from a user
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RevokeRoleRequest true "Role revocation"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Role revoked"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Grant not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/roles [delete]
func (c *RoleController) Revoke(ctx *gin.Context) {
	var req dto.RevokeRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.roleService.Revoke(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Role revoked"},
		Timestamp: time.Now(),
	})
}
