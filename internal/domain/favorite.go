package domain

import "time"

// Favorite liga um usuário a um serviço salvo. No máximo um por par (usuário, serviço).
type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ServiceID int64     `json:"service_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteRequest é o payload de POST /v1/favorites.
type FavoriteRequest struct {
	ServiceID int64 `json:"service_id"`
}
