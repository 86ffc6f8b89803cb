package domain

import "time"

// Report é uma denúncia contra exatamente um serviço ou um comentário.
type Report struct {
	ID         int64     `json:"id"`
	ReporterID int64     `json:"reporter_id"`
	ServiceID  *int64    `json:"service_id,omitempty"`
	CommentID  *int64    `json:"comment_id,omitempty"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReportDraft é o payload de criação de uma denúncia.
type ReportDraft struct {
	ServiceID *int64 `json:"service_id,omitempty"`
	CommentID *int64 `json:"comment_id,omitempty"`
	Reason    string `json:"reason"`
}
