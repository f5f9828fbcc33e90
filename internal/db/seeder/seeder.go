package seeder

import (
	"winntalks/internal/app/board"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSeeder(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{
		db:     db,
		logger: logger,
	}
}

func (s *Seeder) Seed() error {
	s.logger.Info("Running database seeders...")

	if err := s.seedBoards(); err != nil {
		return err
	}

	s.logger.Info("Database seeders completed successfully")
	return nil
}

func (s *Seeder) seedBoards() error {
	var count int64
	s.db.Model(&board.Board{}).Count(&count)
	if count > 0 {
		s.logger.Info("Boards already exist, skipping seed")
		return nil
	}

	boards := []board.Board{
		{Slug: "general", Name: "The Town Square", Description: ptr("General chatter about Winnfield and the surrounding area"), Icon: "🏛️", IsActive: true, SortOrder: 1},
		{Slug: "gossip", Name: "Tea & Shade", Description: ptr("Spill it. Who's doing what and with who."), Icon: "☕", IsActive: true, SortOrder: 2},
		{Slug: "callouts", Name: "Put Em On Blast", Description: ptr("Exposing the fools, frauds, and phonies of Winnfield"), Icon: "🔦", IsActive: true, SortOrder: 3},
		{Slug: "politics", Name: "City Hall Drama", Description: ptr("Local government, elections, and the people running this town"), Icon: "🏛️", IsActive: true, SortOrder: 4},
		{Slug: "classifieds", Name: "Buy, Sell & Trade", Description: ptr("Local marketplace for Winnfield residents"), Icon: "🛒", IsActive: true, SortOrder: 5},
		{Slug: "jobs", Name: "Jobs & Hustles", Description: ptr("Employment, gigs, and side hustles around Winn Parish"), Icon: "💼", IsActive: true, SortOrder: 6},
	}

	if err := s.db.Create(&boards).Error; err != nil {
		return err
	}

	s.logger.Info("Seeded boards", zap.Int("count", len(boards)))
	return nil
}

func ptr(s string) *string {
	return &s
}
