package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simlrfm/simlr-backend/internal/http/response"
	"github.com/simlrfm/simlr-backend/internal/pkg/ctxutil"
	"github.com/simlrfm/simlr-backend/internal/services"
)

type SimlrHandler struct {
	simlrService services.SimlrService
}

func NewSimlrHandler(simlrService services.SimlrService) *SimlrHandler {
	return &SimlrHandler{simlrService: simlrService}
}

// GET /simlrs/list?albumId=...&sort=new|top|hot
func (sh *SimlrHandler) List(c *gin.Context) {
	albumIdentifier := c.Query("albumId")
	if albumIdentifier == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_album", errMissingAlbum)
		return
	}
	userID := ctxutil.UserID(c.Request.Context())
	entries, err := sh.simlrService.List(c.Request.Context(), userID, albumIdentifier, c.Query("sort"))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"simlrs": entries})
}

// POST /simlrs
// body: { "sourceAlbumId": "...", "targetAlbumId": "...", "reason": "..." }
func (sh *SimlrHandler) Submit(c *gin.Context) {
	var req struct {
		SourceAlbumID string `json:"sourceAlbumId"`
		TargetAlbumID string `json:"targetAlbumId"`
		Reason        string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	userID := ctxutil.UserID(c.Request.Context())
	sub, err := sh.simlrService.Submit(c.Request.Context(), userID, req.SourceAlbumID, req.TargetAlbumID, req.Reason)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"simlr": sub})
}
