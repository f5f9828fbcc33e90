package feed

import (
	"fmt"
	"strings"
	"time"

	"winntalks/internal/app/post"

	"gorm.io/gorm"
)

type Repository interface {
	Recent(limit int) ([]*post.Post, error)
	Trending(since time.Time, replyWeight, limit int) ([]*post.Post, error)
	BoardPage(boardID uint64, sort string, replyWeight, page, pageSize int) ([]*post.Post, int64, error)
	Search(query string, limit int) ([]*post.Post, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// visiblePosts applies the visibility filter before any ordering or
// limiting; every feed query starts here.
func (r *repository) visiblePosts() *gorm.DB {
	return r.db.Table("posts").
		Select(`posts.*,
			users.username AS author,
			boards.name AS board_name,
			boards.slug AS board_slug`).
		Joins("JOIN users ON users.id = posts.user_id").
		Joins("JOIN boards ON boards.id = posts.board_id").
		Where("posts.is_removed = ? AND boards.is_active = ?", false, true)
}

// heatOrder ranks by reply_count*replyWeight + view_count; the weight is
// policy, injected from config, and interpolated as an integer only.
func heatOrder(replyWeight int) string {
	return fmt.Sprintf("(posts.reply_count * %d + posts.view_count) DESC, posts.created_at DESC", replyWeight)
}

func (r *repository) Recent(limit int) ([]*post.Post, error) {
	var posts []*post.Post
	err := r.visiblePosts().
		Order("posts.is_pinned DESC, posts.last_reply_at DESC, posts.id ASC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *repository) Trending(since time.Time, replyWeight, limit int) ([]*post.Post, error) {
	var posts []*post.Post
	err := r.visiblePosts().
		Where("posts.created_at > ?", since).
		Order(heatOrder(replyWeight)).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *repository) BoardPage(boardID uint64, sort string, replyWeight, page, pageSize int) ([]*post.Post, int64, error) {
	var total int64
	err := r.db.Table("posts").
		Joins("JOIN boards ON boards.id = posts.board_id").
		Where("posts.board_id = ? AND posts.is_removed = ? AND boards.is_active = ?", boardID, false, true).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	order := "posts.is_pinned DESC, posts.last_reply_at DESC, posts.id ASC"
	if sort == SortHot {
		order = "posts.is_pinned DESC, " + heatOrder(replyWeight)
	}

	var posts []*post.Post
	err = r.visiblePosts().
		Where("posts.board_id = ?", boardID).
		Order(order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *repository) Search(query string, limit int) ([]*post.Post, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var posts []*post.Post
	err := r.visiblePosts().
		Where("(LOWER(posts.title) LIKE ? OR LOWER(posts.body) LIKE ?)", pattern, pattern).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}
