package app

import (
	"gorm.io/gorm"

	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
	"github.com/simlrfm/simlr-backend/internal/services"
)

type Services struct {
	Auth    services.AuthService
	Album   services.AlbumService
	Rating  services.RatingService
	Vote    services.VoteService
	Simlr   services.SimlrService
	Post    services.PostService
	Comment services.CommentService
	User    services.UserService
	Seed    services.SeedService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")

	authService := services.NewAuthService(
		db, log,
		repos.User,
		repos.UserToken,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	albumService := services.NewAlbumService(db, log, repos.Album, clients.MusicBrainz, clients.CoverArt, clients.Spotify)
	ratingService := services.NewRatingService(db, log, repos.Rating, repos.Album)
	voteService := services.NewVoteService(db, log, repos.Vote, repos.Post, repos.Comment, repos.Simlr)
	simlrService := services.NewSimlrService(
		db, log,
		repos.Simlr,
		repos.Rating,
		repos.Album,
		repos.Vote,
		albumService,
		cfg.Rank,
		cfg.ReasonMinLen,
		cfg.ReasonMaxLen,
	)
	postService := services.NewPostService(db, log, repos.Post, repos.Comment, repos.Vote, albumService, cfg.Rank)
	commentService := services.NewCommentService(db, log, repos.Comment, repos.Post, repos.Vote)
	userService := services.NewUserService(db, log, repos.User, repos.Rating, repos.Album, repos.Rushmore, albumService)
	seedService := services.NewSeedService(db, log, repos.Album)

	return Services{
		Auth:    authService,
		Album:   albumService,
		Rating:  ratingService,
		Vote:    voteService,
		Simlr:   simlrService,
		Post:    postService,
		Comment: commentService,
		User:    userService,
		Seed:    seedService,
	}
}
