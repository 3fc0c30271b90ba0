package db

import (
	types "github.com/simlrfm/simlr-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// Identity + auth
		&types.User{},
		&types.UserToken{},

		// Catalog + ratings
		&types.Album{},
		&types.Rating{},
		&types.RushmoreSlot{},

		// Similarity graph
		&types.SimlrEdge{},
		&types.SimlrReason{},

		// Forum
		&types.Post{},
		&types.Comment{},
		&types.Vote{},
	)
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}
