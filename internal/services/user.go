package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simlrfm/simlr-backend/internal/data/repos"
	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/pkg/apperr"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

const myRatingsPageSize = 100

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// ProfileUpdate carries the PATCH /me fields; nil means leave unchanged.
type ProfileUpdate struct {
	Username    *string
	DisplayName *string
	AvatarURL   *string
}

// MyRatingEntry is one row of the caller's rating history.
type MyRatingEntry struct {
	Album     types.AlbumSummary `json:"album"`
	Score     int                `json:"score"`
	UpdatedAt int64              `json:"updated_at"`
}

// RushmoreEntry is one of the caller's four showcase slots.
type RushmoreEntry struct {
	Slot  int                `json:"slot"`
	Album types.AlbumSummary `json:"album"`
}

type UserService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*types.User, error)
	MyRatings(ctx context.Context, userID uuid.UUID) ([]MyRatingEntry, error)
	Rushmore(ctx context.Context, userID uuid.UUID) ([]RushmoreEntry, error)
	SetRushmoreSlot(ctx context.Context, userID uuid.UUID, slot int, albumIdentifier string) ([]RushmoreEntry, error)
	ClearRushmoreSlot(ctx context.Context, userID uuid.UUID, slot int) ([]RushmoreEntry, error)
}

type userService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	ratingRepo   repos.RatingRepo
	albumRepo    repos.AlbumRepo
	rushmoreRepo repos.RushmoreRepo
	albumService AlbumService
}

func NewUserService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	ratingRepo repos.RatingRepo,
	albumRepo repos.AlbumRepo,
	rushmoreRepo repos.RushmoreRepo,
	albumService AlbumService,
) UserService {
	serviceLog := baseLog.With("service", "UserService")
	return &userService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		ratingRepo:   ratingRepo,
		albumRepo:    albumRepo,
		rushmoreRepo: rushmoreRepo,
		albumService: albumService,
	}
}

func (s *userService) GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	users, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(users) == 0 {
		return nil, apperr.NotFound("user_not_found", "no user with that id")
	}
	return users[0], nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*types.User, error) {
	fields := map[string]any{}

	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if !usernamePattern.MatchString(username) {
			return nil, apperr.BadRequest("invalid_username", "username must be 3 to 20 characters of letters, digits or underscore")
		}

		me, err := s.GetMe(ctx, userID)
		if err != nil {
			return nil, err
		}
		if me.Username == nil || *me.Username != username {
			taken, err := s.userRepo.UsernameExists(ctx, nil, username)
			if err != nil {
				return nil, apperr.Internal(err)
			}
			if taken {
				return nil, apperr.Conflict("username_taken", "that username is already in use")
			}
		}
		fields["username"] = username
	}
	if update.DisplayName != nil {
		fields["display_name"] = strings.TrimSpace(*update.DisplayName)
	}
	if update.AvatarURL != nil {
		fields["avatar_url"] = strings.TrimSpace(*update.AvatarURL)
	}

	if err := s.userRepo.UpdateProfile(ctx, nil, userID, fields); err != nil {
		return nil, apperr.Internal(err)
	}
	return s.GetMe(ctx, userID)
}

func (s *userService) MyRatings(ctx context.Context, userID uuid.UUID) ([]MyRatingEntry, error) {
	ratings, err := s.ratingRepo.ListByUser(ctx, nil, userID, myRatingsPageSize)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(ratings) == 0 {
		return []MyRatingEntry{}, nil
	}

	albumIDs := make([]uuid.UUID, 0, len(ratings))
	for _, r := range ratings {
		albumIDs = append(albumIDs, r.AlbumID)
	}
	albums, err := s.albumRepo.GetByIDs(ctx, nil, albumIDs)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	byID := make(map[uuid.UUID]*types.Album, len(albums))
	for _, a := range albums {
		byID[a.ID] = a
	}

	entries := make([]MyRatingEntry, 0, len(ratings))
	for _, r := range ratings {
		album, ok := byID[r.AlbumID]
		if !ok {
			continue
		}
		entries = append(entries, MyRatingEntry{
			Album:     album.Summary(),
			Score:     r.Score,
			UpdatedAt: r.UpdatedAt.Unix(),
		})
	}
	return entries, nil
}

func (s *userService) Rushmore(ctx context.Context, userID uuid.UUID) ([]RushmoreEntry, error) {
	slots, err := s.rushmoreRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(slots) == 0 {
		return []RushmoreEntry{}, nil
	}

	albumIDs := make([]uuid.UUID, 0, len(slots))
	for _, slot := range slots {
		albumIDs = append(albumIDs, slot.AlbumID)
	}
	albums, err := s.albumRepo.GetByIDs(ctx, nil, albumIDs)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	byID := make(map[uuid.UUID]*types.Album, len(albums))
	for _, a := range albums {
		byID[a.ID] = a
	}

	entries := make([]RushmoreEntry, 0, len(slots))
	for _, slot := range slots {
		album, ok := byID[slot.AlbumID]
		if !ok {
			continue
		}
		entries = append(entries, RushmoreEntry{Slot: slot.Slot, Album: album.Summary()})
	}
	return entries, nil
}

func (s *userService) SetRushmoreSlot(ctx context.Context, userID uuid.UUID, slot int, albumIdentifier string) ([]RushmoreEntry, error) {
	if slot < 1 || slot > 4 {
		return nil, apperr.BadRequest("invalid_slot", "slot must be 1 to 4")
	}

	album, err := s.albumService.Resolve(ctx, albumIdentifier)
	if err != nil {
		return nil, err
	}

	if _, err := s.rushmoreRepo.UpsertSlot(ctx, nil, &types.RushmoreSlot{
		ID:      uuid.New(),
		UserID:  userID,
		Slot:    slot,
		AlbumID: album.ID,
	}); err != nil {
		return nil, apperr.Internal(err)
	}

	return s.Rushmore(ctx, userID)
}

func (s *userService) ClearRushmoreSlot(ctx context.Context, userID uuid.UUID, slot int) ([]RushmoreEntry, error) {
	if slot < 1 || slot > 4 {
		return nil, apperr.BadRequest("invalid_slot", "slot must be 1 to 4")
	}
	if err := s.rushmoreRepo.ClearSlot(ctx, nil, userID, slot); err != nil {
		return nil, apperr.Internal(err)
	}
	return s.Rushmore(ctx, userID)
}
