package domain

import "time"

// Service é um serviço publicado por um provedor no catálogo.
type Service struct {
	ID             int64     `json:"id"`
	OwnerID        int64     `json:"owner_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Subcategory    string    `json:"subcategory,omitempty"`
	Location       string    `json:"location"`
	EstimatedPrice float64   `json:"estimated_price"`
	Schedule       string    `json:"schedule,omitempty"`
	Available      bool      `json:"available"`
	PublishedAt    time.Time `json:"published_at"`
	Images         []string  `json:"images"`
}

// ServiceDraft é o payload de criação de um serviço. O dono é sempre o usuário autenticado.
type ServiceDraft struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Subcategory    string   `json:"subcategory,omitempty"`
	Location       string   `json:"location"`
	EstimatedPrice float64  `json:"estimated_price"`
	Schedule       string   `json:"schedule,omitempty"`
	Available      *bool    `json:"available,omitempty"`
	Images         []string `json:"images,omitempty"`
}

// AccessRecord registra que um usuário autenticado abriu o detalhe de um serviço.
// Serve apenas como evidência para liberar comentários.
type AccessRecord struct {
	ID         int64     `json:"id"`
	ServiceID  int64     `json:"service_id"`
	UserID     int64     `json:"user_id"`
	AccessedAt time.Time `json:"accessed_at"`
}
