package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simlrfm/simlr-backend/internal/data/repos"
	types "github.com/simlrfm/simlr-backend/internal/domain"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
)

// seedAlbum is one deterministic fixture row. MBIDs are fixed so repeated
// seeding upserts in place instead of multiplying rows.
type seedAlbum struct {
	mbid   string
	title  string
	artist string
	year   int
}

var seedAlbums = []seedAlbum{
	{"7f1a2b3c-1111-4aaa-8bbb-000000000001", "Kind of Blue", "Miles Davis", 1959},
	{"7f1a2b3c-1111-4aaa-8bbb-000000000002", "Pet Sounds", "The Beach Boys", 1966},
	{"7f1a2b3c-1111-4aaa-8bbb-000000000003", "The Dark Side of the Moon", "Pink Floyd", 1973},
	{"7f1a2b3c-1111-4aaa-8bbb-000000000004", "Remain in Light", "Talking Heads", 1980},
	{"7f1a2b3c-1111-4aaa-8bbb-000000000005", "Purple Rain", "Prince", 1984},
	{"7f1a2b3c-1111-4aaa-8bbb-000000000006", "Paul's Boutique", "Beastie Boys", 1989},
	{"7f1a2b3c-1111-4aaa-8bbb-000000000007", "Loveless", "My Bloody Valentine", 1991},
	{"7f1a2b3c-1111-4aaa-8bbb-000000000008", "Illmatic", "Nas", 1994},
	{"7f1a2b3c-1111-4aaa-8bbb-000000000009", "OK Computer", "Radiohead", 1997},
	{"7f1a2b3c-1111-4aaa-8bbb-00000000000a", "Madvillainy", "Madvillain", 2004},
	{"7f1a2b3c-1111-4aaa-8bbb-00000000000b", "Blonde", "Frank Ocean", 2016},
	{"7f1a2b3c-1111-4aaa-8bbb-00000000000c", "To Pimp a Butterfly", "Kendrick Lamar", 2015},
}

type SeedService interface {
	// EnsureSeeded populates fixture albums exactly once, keyed on the album
	// table being empty. It is safe to call on every boot.
	EnsureSeeded(ctx context.Context) error
}

type seedService struct {
	db        *gorm.DB
	log       *logger.Logger
	albumRepo repos.AlbumRepo
}

func NewSeedService(db *gorm.DB, baseLog *logger.Logger, albumRepo repos.AlbumRepo) SeedService {
	serviceLog := baseLog.With("service", "SeedService")
	return &seedService{db: db, log: serviceLog, albumRepo: albumRepo}
}

func (s *seedService) EnsureSeeded(ctx context.Context) error {
	count, err := s.albumRepo.CountAll(ctx, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	s.log.Info("album table empty, seeding fixture albums", "count", len(seedAlbums))
	for _, sa := range seedAlbums {
		mbid := sa.mbid
		year := sa.year
		album := &types.Album{
			ID:          uuid.New(),
			MBID:        &mbid,
			Title:       sa.title,
			Artists:     types.ArtistsJSON([]types.Artist{{ID: sa.mbid, Name: sa.artist}}),
			ReleaseYear: &year,
		}
		if _, err := s.albumRepo.UpsertByMBID(ctx, nil, album); err != nil {
			return err
		}
	}
	return nil
}
