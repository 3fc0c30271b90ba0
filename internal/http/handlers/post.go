package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simlrfm/simlr-backend/internal/http/response"
	"github.com/simlrfm/simlr-backend/internal/pkg/ctxutil"
	"github.com/simlrfm/simlr-backend/internal/services"
)

var errMissingAlbum = errors.New("query parameter albumId is required")

type PostHandler struct {
	postService services.PostService
}

func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// GET /posts?albumId=...&sort=new|top|hot
func (ph *PostHandler) List(c *gin.Context) {
	albumIdentifier := c.Query("albumId")
	if albumIdentifier == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_album", errMissingAlbum)
		return
	}
	userID := ctxutil.UserID(c.Request.Context())
	entries, err := ph.postService.List(c.Request.Context(), userID, albumIdentifier, c.Query("sort"))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"posts": entries})
}

// POST /posts
// body: { "albumId": "<mbid or catalog id>", "title": "...", "body": "..." }
func (ph *PostHandler) Create(c *gin.Context) {
	var req struct {
		AlbumID string `json:"albumId"`
		Title   string `json:"title"`
		Body    string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	userID := ctxutil.UserID(c.Request.Context())
	post, err := ph.postService.Create(c.Request.Context(), userID, req.AlbumID, req.Title, req.Body)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"post": post})
}
