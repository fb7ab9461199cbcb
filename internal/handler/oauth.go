package handler

import (
	"net/http"

	"github.com/geostack/backend/internal/service"
	"github.com/gin-gonic/gin"
)

const oauthStateCookie = "oauth_state"

type OAuthHandler struct {
	svc *service.OAuthService
}

func NewOAuthHandler(svc *service.OAuthService) *OAuthHandler {
	return &OAuthHandler{svc: svc}
}

// GoogleLogin godoc
// @Summary Redirect to the Google consent screen
// @Tags auth
// @Success 307
// @Failure 501 {object} model.ErrorResponse
// @Router /api/v1/auth/google/login [get]
func (h *OAuthHandler) GoogleLogin(c *gin.Context) {
	if !h.svc.GoogleEnabled() {
		writeAuthError(c, service.ErrFeatureDisabled)
		return
	}

	state, err := service.RandomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.svc.GoogleLoginURL(state))
}

// GoogleCallback godoc
// @Summary Google OAuth callback
// @Description Exchanges the authorization code, links the identity and returns a bearer token.
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "CSRF state"
// @Success 200 {object} model.Token
// @Failure 401 {object} model.ErrorResponse
// @Failure 501 {object} model.ErrorResponse
// @Router /api/v1/auth/google/callback [get]
func (h *OAuthHandler) GoogleCallback(c *gin.Context) {
	if !h.svc.GoogleEnabled() {
		writeAuthError(c, service.ErrFeatureDisabled)
		return
	}

	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		writeAuthError(c, service.ErrInvalidCredentials)
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		writeAuthError(c, service.ErrInvalidCredentials)
		return
	}

	token, err := h.svc.GoogleCallback(c.Request.Context(), code)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}
