package reply

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ParentPost is the slice of the posts row the reply path needs; the
// reply package deliberately does not depend on the post package.
type ParentPost struct {
	ID        uint64
	UserID    uint64
	IsLocked  bool
	CreatedAt time.Time
}

type Repository interface {
	GetVisibleParent(postUUID string) (*ParentPost, error)
	CreateWithCounterBump(r *Reply) error
	GetVisibleByPostID(postID uint64) ([]*Reply, error)
	RemoveWithCounterRecount(replyUUID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetVisibleParent(postUUID string) (*ParentPost, error) {
	var parent ParentPost
	err := r.db.Table("posts").
		Select("posts.id, posts.user_id, posts.is_locked, posts.created_at").
		Joins("JOIN boards ON boards.id = posts.board_id").
		Where("posts.uuid = ? AND posts.is_removed = ? AND boards.is_active = ?", postUUID, false, true).
		Take(&parent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &parent, nil
}

// CreateWithCounterBump inserts the reply and bumps the parent's
// reply_count and last_reply_at in one transaction. Readers observe the
// reply row and the incremented counter together or not at all.
func (r *repository) CreateWithCounterBump(reply *Reply) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reply).Error; err != nil {
			return err
		}
		return tx.Exec(`
			UPDATE posts SET reply_count = reply_count + 1, last_reply_at = ?
			WHERE id = ?
		`, reply.CreatedAt, reply.PostID).Error
	})
}

func (r *repository) GetVisibleByPostID(postID uint64) ([]*Reply, error) {
	var replies []*Reply
	err := r.db.Table("replies").
		Select(`replies.*,
			users.username AS author,
			CASE WHEN replies.user_id = posts.user_id THEN TRUE ELSE FALSE END AS is_op`).
		Joins("JOIN users ON users.id = replies.user_id").
		Joins("JOIN posts ON posts.id = replies.post_id").
		Where("replies.post_id = ? AND replies.is_removed = ?", postID, false).
		Order("replies.created_at ASC, replies.id ASC").
		Find(&replies).Error
	return replies, err
}

// RemoveWithCounterRecount soft-deletes the reply and recomputes the
// parent's reply_count and last_reply_at from the surviving rows, all in
// one transaction. Idempotent: a second removal leaves the counters
// untouched.
func (r *repository) RemoveWithCounterRecount(replyUUID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var reply Reply
		err := tx.Where("uuid = ?", replyUUID).Take(&reply).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		if err != nil {
			return err
		}
		if reply.IsRemoved {
			return nil
		}

		if err := tx.Model(&Reply{}).Where("id = ?", reply.ID).Update("is_removed", true).Error; err != nil {
			return err
		}

		return tx.Exec(`
			UPDATE posts SET
				reply_count = (SELECT COUNT(*) FROM replies WHERE replies.post_id = posts.id AND replies.is_removed = ?),
				last_reply_at = COALESCE(
					(SELECT MAX(replies.created_at) FROM replies WHERE replies.post_id = posts.id AND replies.is_removed = ?),
					posts.created_at
				)
			WHERE posts.id = ?
		`, false, false, reply.PostID).Error
	})
}
