package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/simlrfm/simlr-backend/internal/http/response"
	"github.com/simlrfm/simlr-backend/internal/pkg/ctxutil"
	"github.com/simlrfm/simlr-backend/internal/services"
)

var errMissingPost = errors.New("query parameter postId is required")

type CommentHandler struct {
	commentService services.CommentService
}

func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// GET /comments?postId=...&sort=new|top
func (ch *CommentHandler) List(c *gin.Context) {
	raw := c.Query("postId")
	if raw == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_post_id", errMissingPost)
		return
	}
	postID, err := uuid.Parse(raw)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_post_id", err)
		return
	}
	userID := ctxutil.UserID(c.Request.Context())
	entries, err := ch.commentService.List(c.Request.Context(), userID, postID, c.Query("sort"))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"comments": entries})
}

// POST /comments
// body: { "postId": "...", "parentId": "<optional comment id>", "body": "..." }
func (ch *CommentHandler) Create(c *gin.Context) {
	var req struct {
		PostID   string  `json:"postId"`
		ParentID *string `json:"parentId"`
		Body     string  `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_post_id", err)
		return
	}
	var parentID *uuid.UUID
	if req.ParentID != nil && *req.ParentID != "" {
		parsed, err := uuid.Parse(*req.ParentID)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_parent_id", err)
			return
		}
		parentID = &parsed
	}
	userID := ctxutil.UserID(c.Request.Context())
	comment, err := ch.commentService.Create(c.Request.Context(), userID, postID, parentID, req.Body)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"comment": comment})
}
