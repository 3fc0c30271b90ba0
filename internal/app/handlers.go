package app

import (
	"github.com/simlrfm/simlr-backend/internal/http/handlers"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Album   *handlers.AlbumHandler
	Rating  *handlers.RatingHandler
	Post    *handlers.PostHandler
	Comment *handlers.CommentHandler
	Vote    *handlers.VoteHandler
	Simlr   *handlers.SimlrHandler
	User    *handlers.UserHandler

	Health *handlers.HealthHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:    handlers.NewAuthHandler(services.Auth),
		Album:   handlers.NewAlbumHandler(services.Album, services.Rating),
		Rating:  handlers.NewRatingHandler(services.Rating, services.Album),
		Post:    handlers.NewPostHandler(services.Post),
		Comment: handlers.NewCommentHandler(services.Comment),
		Vote:    handlers.NewVoteHandler(services.Vote),
		Simlr:   handlers.NewSimlrHandler(services.Simlr),
		User:    handlers.NewUserHandler(services.User),

		Health: handlers.NewHealthHandler(),
	}
}
