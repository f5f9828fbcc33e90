package post

import (
	"time"

	"winntalks/internal/app/reply"
)

type Post struct {
	ID      uint64 `json:"id" gorm:"primaryKey"`
	UUID    string `json:"uuid" gorm:"uniqueIndex;not null"`
	BoardID uint64 `json:"board_id" gorm:"not null;index"`
	UserID  uint64 `json:"-" gorm:"not null"`
	Title   string `json:"title" gorm:"not null"`
	Body    string `json:"body" gorm:"not null"`

	// Denormalized aggregates. ReplyCount and LastReplyAt are maintained
	// in the same transaction as the reply rows they summarize; ViewCount
	// is best-effort and may lose updates under race.
	ReplyCount  int       `json:"reply_count" gorm:"not null;default:0"`
	ViewCount   int       `json:"view_count" gorm:"not null;default:0"`
	LastReplyAt time.Time `json:"last_reply_at" gorm:"not null"`

	IsPinned  bool `json:"is_pinned" gorm:"not null;default:false"`
	IsLocked  bool `json:"is_locked" gorm:"not null;default:false"`
	IsRemoved bool `json:"-" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`

	// Read-time projections, populated by joins and never stored.
	Author    string `json:"author,omitempty" gorm:"->;-:migration"`
	BoardName string `json:"board_name,omitempty" gorm:"->;-:migration"`
	BoardSlug string `json:"board_slug,omitempty" gorm:"->;-:migration"`
	Score     int    `json:"score" gorm:"->;-:migration"`
}

type Vote struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	PostID    uint64    `json:"post_id" gorm:"not null;uniqueIndex:idx_post_votes_post_user"`
	UserID    uint64    `json:"user_id" gorm:"not null;uniqueIndex:idx_post_votes_post_user"`
	Value     int       `json:"value" gorm:"column:vote;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (Vote) TableName() string {
	return "post_votes"
}

type CreatePostRequest struct {
	BoardSlug string `json:"board_slug" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Body      string `json:"body" binding:"required"`
}

type VoteRequest struct {
	Value int `json:"value" binding:"required"`
}

type ReportRequest struct {
	Reason string `json:"reason"`
}

type PostDetailResponse struct {
	Post    *Post          `json:"post"`
	Replies []*reply.Reply `json:"replies"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
