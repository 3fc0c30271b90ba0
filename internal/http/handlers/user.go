package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/simlrfm/simlr-backend/internal/http/response"
	"github.com/simlrfm/simlr-backend/internal/pkg/ctxutil"
	"github.com/simlrfm/simlr-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /me
func (uh *UserHandler) GetMe(c *gin.Context) {
	userID := ctxutil.UserID(c.Request.Context())
	user, err := uh.userService.GetMe(c.Request.Context(), userID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"me": user.Public()})
}

// PATCH /me
// body: { "username": "...", "display_name": "...", "avatar_url": "..." }
// Absent fields are left untouched.
func (uh *UserHandler) UpdateMe(c *gin.Context) {
	var req struct {
		Username    *string `json:"username"`
		DisplayName *string `json:"display_name"`
		AvatarURL   *string `json:"avatar_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	userID := ctxutil.UserID(c.Request.Context())
	user, err := uh.userService.UpdateProfile(c.Request.Context(), userID, services.ProfileUpdate{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"me": user.Public()})
}

// GET /me/ratings
func (uh *UserHandler) MyRatings(c *gin.Context) {
	userID := ctxutil.UserID(c.Request.Context())
	entries, err := uh.userService.MyRatings(c.Request.Context(), userID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ratings": entries})
}

// GET /me/rushmore
func (uh *UserHandler) Rushmore(c *gin.Context) {
	userID := ctxutil.UserID(c.Request.Context())
	entries, err := uh.userService.Rushmore(c.Request.Context(), userID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"rushmore": entries})
}

// PUT /me/rushmore/:slot
// body: { "albumId": "<mbid or catalog id>" }
func (uh *UserHandler) SetRushmoreSlot(c *gin.Context) {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_slot", err)
		return
	}
	var req struct {
		AlbumID string `json:"albumId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	userID := ctxutil.UserID(c.Request.Context())
	entries, err := uh.userService.SetRushmoreSlot(c.Request.Context(), userID, slot, req.AlbumID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"rushmore": entries})
}

// DELETE /me/rushmore/:slot
func (uh *UserHandler) ClearRushmoreSlot(c *gin.Context) {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_slot", err)
		return
	}
	userID := ctxutil.UserID(c.Request.Context())
	entries, err := uh.userService.ClearRushmoreSlot(c.Request.Context(), userID, slot)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"rushmore": entries})
}
