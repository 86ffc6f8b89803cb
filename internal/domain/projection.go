package domain

import "time"

// Projeções de resposta. Cada contexto usa um tipo próprio para que campos
// sensíveis (email, telefone) só apareçam onde o tipo permite.

// UserSummary é a projeção de listagem: nunca carrega email ou telefone.
type UserSummary struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
	Avatar   string `json:"avatar"`
}

// UserDetail é a projeção de detalhe (detalhe do serviço e perfil autenticado).
type UserDetail struct {
	UserSummary
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// CommentAuthor é a projeção mínima do autor de um comentário.
type CommentAuthor struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}

// ServiceListing é um serviço em contexto de lista.
type ServiceListing struct {
	Service
	Rating float64      `json:"rating"`
	Owner  *UserSummary `json:"owner,omitempty"`
}

// CommentView é um comentário com seu autor.
type CommentView struct {
	Comment
	Author *CommentAuthor `json:"author,omitempty"`
}

// ServiceDetail é a resposta de GET /v1/services/{id}.
type ServiceDetail struct {
	Service
	Rating   float64       `json:"rating"`
	Owner    *UserDetail   `json:"owner,omitempty"`
	Comments []CommentView `json:"comments"`
}

// FavoriteView é um favorito com o serviço alvo.
type FavoriteView struct {
	Favorite
	Service *ServiceListing `json:"service,omitempty"`
}

// Profile é a resposta de GET /v1/profile.
type Profile struct {
	UserDetail
	Role         UserRole         `json:"role"`
	RegisteredAt time.Time        `json:"registered_at"`
	IsActive     bool             `json:"is_active"`
	Services     []ServiceListing `json:"services"`
	Favorites    []FavoriteView   `json:"favorites"`
}
