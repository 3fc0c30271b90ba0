package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/simlrfm/simlr-backend/internal/http/handlers"
	httpMW "github.com/simlrfm/simlr-backend/internal/http/middleware"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	CORSOrigins    []string
	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler    *httpH.AuthHandler
	AlbumHandler   *httpH.AlbumHandler
	RatingHandler  *httpH.RatingHandler
	PostHandler    *httpH.PostHandler
	CommentHandler *httpH.CommentHandler
	VoteHandler    *httpH.VoteHandler
	SimlrHandler   *httpH.SimlrHandler
	UserHandler    *httpH.UserHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
			api.POST("/logout", cfg.AuthHandler.Logout)
		}
	}

	// Public reads. Optional auth fills in my_vote and mine for signed-in
	// callers without rejecting anonymous ones.
	public := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			public.Use(cfg.AuthMiddleware.OptionalAuth())
		}

		if cfg.AlbumHandler != nil {
			public.GET("/albums/search", cfg.AlbumHandler.Search)
			public.GET("/spotify/search", cfg.AlbumHandler.SearchSpotify)
			public.GET("/albums/:id", cfg.AlbumHandler.Get)
			public.GET("/albums/:id/stats", cfg.AlbumHandler.Stats)
			public.POST("/albums/:id/upsert", cfg.AlbumHandler.Upsert)
		}

		if cfg.RatingHandler != nil {
			public.GET("/top", cfg.RatingHandler.TopAlbums)
		}

		if cfg.PostHandler != nil {
			public.GET("/posts", cfg.PostHandler.List)
		}

		if cfg.CommentHandler != nil {
			public.GET("/comments", cfg.CommentHandler.List)
		}

		if cfg.SimlrHandler != nil {
			public.GET("/simlrs/list", cfg.SimlrHandler.List)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.RatingHandler != nil {
			protected.POST("/ratings", cfg.RatingHandler.Submit)
		}

		if cfg.PostHandler != nil {
			protected.POST("/posts", cfg.PostHandler.Create)
		}

		if cfg.CommentHandler != nil {
			protected.POST("/comments", cfg.CommentHandler.Create)
		}

		if cfg.VoteHandler != nil {
			protected.POST("/votes", cfg.VoteHandler.Cast)
		}

		if cfg.SimlrHandler != nil {
			protected.POST("/simlrs", cfg.SimlrHandler.Submit)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PATCH("/me", cfg.UserHandler.UpdateMe)
			protected.GET("/me/ratings", cfg.UserHandler.MyRatings)
			protected.GET("/me/rushmore", cfg.UserHandler.Rushmore)
			protected.PUT("/me/rushmore/:slot", cfg.UserHandler.SetRushmoreSlot)
			protected.DELETE("/me/rushmore/:slot", cfg.UserHandler.ClearRushmoreSlot)
		}
	}

	return r
}
