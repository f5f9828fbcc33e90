package board

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	GetActiveBoards() ([]*Board, error)
	GetBoardBySlug(slug string) (*Board, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetActiveBoards() ([]*Board, error) {
	var boards []*Board
	err := r.db.Table("boards").
		Select(`boards.*,
			(SELECT COUNT(*) FROM posts WHERE posts.board_id = boards.id AND posts.is_removed = ?) AS post_count`, false).
		Where("boards.is_active = ?", true).
		Order("boards.sort_order ASC").
		Find(&boards).Error
	return boards, err
}

func (r *repository) GetBoardBySlug(slug string) (*Board, error) {
	var board Board
	err := r.db.Where("slug = ? AND is_active = ?", slug, true).First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}
