package reply

import "time"

type Reply struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	UUID      string    `json:"uuid" gorm:"uniqueIndex;not null"`
	PostID    uint64    `json:"post_id" gorm:"not null;index"`
	UserID    uint64    `json:"-" gorm:"not null"`
	Body      string    `json:"body" gorm:"not null"`
	IsRemoved bool      `json:"-" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`

	// Derived at read time: the reply author is the post author. Never
	// stored, so it can not drift.
	Author string `json:"author,omitempty" gorm:"->;-:migration"`
	IsOP   bool   `json:"is_op" gorm:"->;-:migration"`
}

type CreateReplyRequest struct {
	Body string `json:"body" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
