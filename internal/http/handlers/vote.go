package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/http/response"
	"github.com/simlrfm/simlr-backend/internal/pkg/ctxutil"
	"github.com/simlrfm/simlr-backend/internal/services"
)

type VoteHandler struct {
	voteService services.VoteService
}

func NewVoteHandler(voteService services.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// POST /votes
// body: { "entityType": "SIMLR_EDGE"|"POST"|"COMMENT", "entityId": "...", "value": 1|-1 }
// Casting the same value twice removes the vote.
func (vh *VoteHandler) Cast(c *gin.Context) {
	var req struct {
		EntityType string `json:"entityType"`
		EntityID   string `json:"entityId"`
		Value      int    `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	entityID, err := uuid.Parse(req.EntityID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_entity_id", err)
		return
	}
	userID := ctxutil.UserID(c.Request.Context())
	result, err := vh.voteService.Cast(c.Request.Context(), userID, types.VoteEntityType(req.EntityType), entityID, req.Value)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, result)
}
