package post

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(p *Post) error
	GetVisibleByUUID(uuid string) (*Post, error)
	IncrementViewCount(id uint64) error
	UpsertVote(postID, userID uint64, value int, at time.Time) error
	SetRemoved(uuid string) error
	SetPinned(uuid string, pinned bool) error
	SetLocked(uuid string, locked bool) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(p *Post) error {
	return r.db.Create(p).Error
}

func (r *repository) GetVisibleByUUID(uuid string) (*Post, error) {
	var p Post
	err := r.db.Table("posts").
		Select(`posts.*,
			users.username AS author,
			boards.name AS board_name,
			boards.slug AS board_slug,
			COALESCE((SELECT SUM(pv.vote) FROM post_votes pv WHERE pv.post_id = posts.id), 0) AS score`).
		Joins("JOIN users ON users.id = posts.user_id").
		Joins("JOIN boards ON boards.id = posts.board_id").
		Where("posts.uuid = ? AND posts.is_removed = ? AND boards.is_active = ?", uuid, false, true).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// IncrementViewCount runs outside any transaction. View counts are a
// popularity signal, not an audited metric; a lost update under race is
// acceptable and must never serialize the read path.
func (r *repository) IncrementViewCount(id uint64) error {
	return r.db.Exec(`UPDATE posts SET view_count = view_count + 1 WHERE id = ?`, id).Error
}

// UpsertVote keeps exactly one row per (post, user); re-voting replaces
// the stored value.
func (r *repository) UpsertVote(postID, userID uint64, value int, at time.Time) error {
	return r.db.Exec(`
		INSERT INTO post_votes (post_id, user_id, vote, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (post_id, user_id) DO UPDATE SET vote = EXCLUDED.vote
	`, postID, userID, value, at).Error
}

func (r *repository) SetRemoved(uuid string) error {
	return r.setFlag(uuid, "is_removed", true)
}

func (r *repository) SetPinned(uuid string, pinned bool) error {
	return r.setFlag(uuid, "is_pinned", pinned)
}

func (r *repository) SetLocked(uuid string, locked bool) error {
	return r.setFlag(uuid, "is_locked", locked)
}

func (r *repository) setFlag(uuid, column string, value bool) error {
	res := r.db.Model(&Post{}).Where("uuid = ?", uuid).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
