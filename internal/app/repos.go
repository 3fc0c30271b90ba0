package app

import (
	"gorm.io/gorm"

	"github.com/simlrfm/simlr-backend/internal/data/repos"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	Album     repos.AlbumRepo
	Rating    repos.RatingRepo
	Rushmore  repos.RushmoreRepo
	Post      repos.PostRepo
	Comment   repos.CommentRepo
	Vote      repos.VoteRepo
	Simlr     repos.SimlrRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		Album:     repos.NewAlbumRepo(db, log),
		Rating:    repos.NewRatingRepo(db, log),
		Rushmore:  repos.NewRushmoreRepo(db, log),
		Post:      repos.NewPostRepo(db, log),
		Comment:   repos.NewCommentRepo(db, log),
		Vote:      repos.NewVoteRepo(db, log),
		Simlr:     repos.NewSimlrRepo(db, log),
	}
}
