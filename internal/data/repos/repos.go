package repos

import (
	"github.com/simlrfm/simlr-backend/internal/data/repos/auth"
	"github.com/simlrfm/simlr-backend/internal/data/repos/music"
	"github.com/simlrfm/simlr-backend/internal/data/repos/social"
	"github.com/simlrfm/simlr-backend/internal/data/repos/user"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
	"gorm.io/gorm"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type AlbumRepo = music.AlbumRepo
type RatingRepo = music.RatingRepo
type RushmoreRepo = music.RushmoreRepo
type TopAlbumRow = music.TopAlbumRow

type PostRepo = social.PostRepo
type CommentRepo = social.CommentRepo
type VoteRepo = social.VoteRepo
type SimlrRepo = social.SimlrRepo
type EntityKey = social.EntityKey

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewAlbumRepo(db *gorm.DB, baseLog *logger.Logger) AlbumRepo {
	return music.NewAlbumRepo(db, baseLog)
}
func NewRatingRepo(db *gorm.DB, baseLog *logger.Logger) RatingRepo {
	return music.NewRatingRepo(db, baseLog)
}
func NewRushmoreRepo(db *gorm.DB, baseLog *logger.Logger) RushmoreRepo {
	return music.NewRushmoreRepo(db, baseLog)
}

func NewPostRepo(db *gorm.DB, baseLog *logger.Logger) PostRepo {
	return social.NewPostRepo(db, baseLog)
}
func NewCommentRepo(db *gorm.DB, baseLog *logger.Logger) CommentRepo {
	return social.NewCommentRepo(db, baseLog)
}
func NewVoteRepo(db *gorm.DB, baseLog *logger.Logger) VoteRepo {
	return social.NewVoteRepo(db, baseLog)
}
func NewSimlrRepo(db *gorm.DB, baseLog *logger.Logger) SimlrRepo {
	return social.NewSimlrRepo(db, baseLog)
}
