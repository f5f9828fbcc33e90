package board

import "time"

type Board struct {
	ID          uint64    `json:"id" gorm:"primaryKey"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description *string   `json:"description,omitempty"`
	Icon        string    `json:"icon"`
	// No default tag: gorm drops zero-valued fields carrying one from
	// INSERTs, which would flip a deliberately inactive board to active.
	// The seeder sets the flag explicitly on every row.
	IsActive    bool      `json:"is_active" gorm:"not null"`
	SortOrder   int       `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Derived on the list path from visible posts, never persisted.
	PostCount int64 `json:"post_count" gorm:"->;-:migration"`
}

type BoardListResponse struct {
	Boards []*Board `json:"boards"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
