package db

import (
	"winntalks/internal/app/board"
	"winntalks/internal/app/post"
	"winntalks/internal/app/reply"
	"winntalks/internal/app/report"
	"winntalks/internal/app/user"
	"winntalks/internal/config"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	dsn := cfg.PostgresDSN()
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	logger.Info("Connected to PostgreSQL",
		zap.String("host", cfg.DBHost),
		zap.String("database", cfg.DBName),
	)

	return db, nil
}

func Migrate(db *gorm.DB, logger *zap.Logger) error {
	if err := db.AutoMigrate(
		&user.User{},
		&user.Session{},
		&board.Board{},
		&post.Post{},
		&post.Vote{},
		&reply.Reply{},
		&report.Report{},
	); err != nil {
		return err
	}

	// The feed paths sort on these; AutoMigrate only covers tag-declared
	// indexes.
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_posts_board ON posts (board_id)",
		"CREATE INDEX IF NOT EXISTS idx_posts_last_reply ON posts (last_reply_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_posts_created ON posts (created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_replies_post ON replies (post_id)",
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	logger.Info("Database migrated")
	return nil
}
