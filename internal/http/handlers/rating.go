package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/simlrfm/simlr-backend/internal/http/response"
	"github.com/simlrfm/simlr-backend/internal/pkg/ctxutil"
	"github.com/simlrfm/simlr-backend/internal/services"
)

var errMissingQuery = errors.New("query parameter q is required")

type RatingHandler struct {
	ratingService services.RatingService
	albumService  services.AlbumService
}

func NewRatingHandler(ratingService services.RatingService, albumService services.AlbumService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService, albumService: albumService}
}

// POST /ratings
// body: { "albumId": "<mbid or catalog id>", "score": 1..10 }
func (rh *RatingHandler) Submit(c *gin.Context) {
	var req struct {
		AlbumID string `json:"albumId"`
		Score   int    `json:"score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	album, err := services.ResolveAlbumForWrite(c.Request.Context(), rh.albumService, req.AlbumID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	userID := ctxutil.UserID(c.Request.Context())
	rating, agg, err := rh.ratingService.Submit(c.Request.Context(), userID, album.ID, req.Score)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"rating": rating, "stats": agg})
}

// GET /top?min=...&limit=...
func (rh *RatingHandler) TopAlbums(c *gin.Context) {
	minCount, _ := strconv.Atoi(c.Query("min"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := rh.ratingService.TopAlbums(c.Request.Context(), minCount, limit)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"albums": entries})
}
