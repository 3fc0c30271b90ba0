package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/simlrfm/simlr-backend/internal/http/response"
	"github.com/simlrfm/simlr-backend/internal/pkg/ctxutil"
	"github.com/simlrfm/simlr-backend/internal/services"
)

const (
	searchDefaultLimit = 12
	searchMaxLimit     = 50
)

type AlbumHandler struct {
	albumService  services.AlbumService
	ratingService services.RatingService
}

func NewAlbumHandler(albumService services.AlbumService, ratingService services.RatingService) *AlbumHandler {
	return &AlbumHandler{albumService: albumService, ratingService: ratingService}
}

// GET /albums/search?q=...&limit=...
func (alh *AlbumHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_query", errMissingQuery)
		return
	}
	limit := parseLimit(c, searchDefaultLimit, searchMaxLimit)
	results, err := alh.albumService.Search(c.Request.Context(), query, limit)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"results": results})
}

// GET /albums/spotify/search?q=...&limit=...
func (alh *AlbumHandler) SearchSpotify(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_query", errMissingQuery)
		return
	}
	limit := parseLimit(c, searchDefaultLimit, searchMaxLimit)
	results, err := alh.albumService.SearchSpotify(c.Request.Context(), query, limit)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"results": results})
}

// GET /albums/:id
// :id is an external identifier, either a registry MBID or a legacy catalog ID.
func (alh *AlbumHandler) Get(c *gin.Context) {
	album, err := alh.albumService.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	agg, err := alh.ratingService.Stats(c.Request.Context(), album.ID, ctxutil.UserID(c.Request.Context()))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"album": album.Summary(), "stats": agg})
}

// GET /albums/:id/stats
func (alh *AlbumHandler) Stats(c *gin.Context) {
	album, err := alh.albumService.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	agg, err := alh.ratingService.Stats(c.Request.Context(), album.ID, ctxutil.UserID(c.Request.Context()))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"album": album.Summary(), "stats": agg})
}

// POST /albums/:id/upsert
// Forces a metadata refresh from the external catalog.
func (alh *AlbumHandler) Upsert(c *gin.Context) {
	album, err := alh.albumService.Upsert(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"album": album.Summary()})
}

func parseLimit(c *gin.Context, fallback, max int) int {
	raw := c.Query("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	if n > max {
		return max
	}
	return n
}
