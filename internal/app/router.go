package app

import (
	"github.com/gin-gonic/gin"

	simlrhttp "github.com/simlrfm/simlr-backend/internal/http"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return simlrhttp.NewRouter(simlrhttp.RouterConfig{
		Log:            log,
		CORSOrigins:    cfg.CORSOrigins,
		AuthMiddleware: middleware.Auth,

		AuthHandler:    handlers.Auth,
		AlbumHandler:   handlers.Album,
		RatingHandler:  handlers.Rating,
		PostHandler:    handlers.Post,
		CommentHandler: handlers.Comment,
		VoteHandler:    handlers.Vote,
		SimlrHandler:   handlers.Simlr,
		UserHandler:    handlers.User,

		HealthHandler: handlers.Health,
	})
}
