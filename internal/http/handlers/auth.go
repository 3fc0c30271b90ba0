package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simlrfm/simlr-backend/internal/http/response"
	"github.com/simlrfm/simlr-backend/internal/services"
)

const refreshCookieName = "refresh_token"

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, pair, err := ah.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	ah.setRefreshCookie(c, pair.RefreshToken)
	response.RespondOK(c, gin.H{
		"user":          user.Public(),
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_in":    int(ah.authService.AccessTTL().Seconds()),
	})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, pair, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	ah.setRefreshCookie(c, pair.RefreshToken)
	response.RespondOK(c, gin.H{
		"user":          user.Public(),
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_in":    int(ah.authService.AccessTTL().Seconds()),
	})
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := ah.extractRefreshToken(c)
	pair, err := ah.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	ah.setRefreshCookie(c, pair.RefreshToken)
	response.RespondOK(c, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_in":    int(ah.authService.AccessTTL().Seconds()),
	})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	refreshToken := ah.extractRefreshToken(c)
	if err := ah.authService.Logout(c.Request.Context(), refreshToken); err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.SetCookie(refreshCookieName, "", -1, "/", "", false, true)
	response.RespondOK(c, gin.H{"ok": true})
}

// extractRefreshToken prefers the JSON body and falls back to the HTTP-only
// cookie set on login, so browser clients never have to store the token.
func (ah *AuthHandler) extractRefreshToken(c *gin.Context) string {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken
	}
	if cookie, err := c.Cookie(refreshCookieName); err == nil {
		return cookie
	}
	return ""
}

func (ah *AuthHandler) setRefreshCookie(c *gin.Context, refreshToken string) {
	maxAge := int(ah.authService.RefreshTTL().Seconds())
	c.SetCookie(refreshCookieName, refreshToken, maxAge, "/", "", false, true)
}
