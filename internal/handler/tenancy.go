package handler

import (
	"net/http"

	"github.com/geostack/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type TenancyHandler struct {
	svc *service.AccountService
}

func NewTenancyHandler(svc *service.AccountService) *TenancyHandler {
	return &TenancyHandler{svc: svc}
}

// ListOrganizations godoc
// @Summary List organizations owned by the current account
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.OrganizationPublic
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/organizations [get]
func (h *TenancyHandler) ListOrganizations(c *gin.Context) {
	account := GetCurrentAccount(c)
	if account == nil {
		writeAuthError(c, service.ErrInvalidCredentials)
		return
	}

	orgs, err := h.svc.Organizations(c.Request.Context(), account)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, orgs)
}

// ListProjects godoc
// @Summary List projects of an owned organization
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Param publicID path string true "Organization public id"
// @Success 200 {array} model.ProjectPublic
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/organizations/{publicID}/projects [get]
func (h *TenancyHandler) ListProjects(c *gin.Context) {
	account := GetCurrentAccount(c)
	if account == nil {
		writeAuthError(c, service.ErrInvalidCredentials)
		return
	}

	projects, err := h.svc.OrganizationProjects(c.Request.Context(), account, c.Param("publicID"))
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}
