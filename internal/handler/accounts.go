package handler

import (
	"net/http"

	"github.com/geostack/backend/internal/model"
	"github.com/geostack/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	svc *service.AccountService
}

func NewAccountHandler(svc *service.AccountService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// Register godoc
// @Summary Register a new account
// @Description Creates the account with a default organization and project.
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Registration data"
// @Success 201 {object} model.AccountPublic
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/accounts [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	account, err := h.svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account.Public())
}

// Me godoc
// @Summary Get the current account profile
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.AccountProfileMe
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /api/v1/accounts/me [get]
func (h *AccountHandler) Me(c *gin.Context) {
	account := GetCurrentAccount(c)
	if account == nil {
		writeAuthError(c, service.ErrInvalidCredentials)
		return
	}

	profile, err := h.svc.Profile(c.Request.Context(), account)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
