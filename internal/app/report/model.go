package report

import "time"

const (
	ContentTypePost  = "post"
	ContentTypeReply = "reply"
)

type Report struct {
	ID          uint64    `json:"id" gorm:"primaryKey"`
	ReporterID  *uint64   `json:"reporter_id,omitempty"`
	ContentType string    `json:"content_type" gorm:"not null"`
	ContentID   uint64    `json:"content_id" gorm:"not null"`
	Reason      string    `json:"reason" gorm:"not null"`
	Resolved    bool      `json:"resolved" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReportListResponse struct {
	Reports []*Report `json:"reports"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
