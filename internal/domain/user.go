package domain

import "time"

// DefaultAvatar é a imagem atribuída a usuários que não enviam um avatar.
const DefaultAvatar = "/images/default-avatar.png"

// User representa a entidade do usuário no sistema.
type User struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	Role         UserRole  `json:"role"`
	Country      string    `json:"country,omitempty"`
	City         string    `json:"city,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
	IsActive     bool      `json:"is_active"`
	Avatar       string    `json:"avatar"`
}

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

const (
	RoleClient   UserRole = "client"
	RoleProvider UserRole = "provider"
	RoleAdmin    UserRole = "admin"
)

// Valid informa se o papel é um dos papéis conhecidos.
func (r UserRole) Valid() bool {
	switch r {
	case RoleClient, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role,omitempty"`
	Country  string   `json:"country,omitempty"`
	City     string   `json:"city,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Avatar   string   `json:"avatar,omitempty"`
}

// Identity é o usuário corrente já resolvido pela camada de autenticação.
// Um *Identity nil significa requisição anônima.
type Identity struct {
	UserID int64
	Role   UserRole
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse é devolvido por um login bem-sucedido.
type AuthResponse struct {
	Token string     `json:"token"`
	Role  UserRole   `json:"role"`
	User  UserDetail `json:"user"`
}
