package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Comment é a avaliação de um cliente sobre um serviço.
type Comment struct {
	ID        int64     `json:"id"`
	ServiceID int64     `json:"service_id"`
	AuthorID  int64     `json:"author_id"`
	Rating    int       `json:"rating"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentDraft é o payload esperado para a criação de um comentário.
type CommentDraft struct {
	Rating int    `json:"rating"`
	Body   string `json:"body"`
}
