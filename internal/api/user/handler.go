package user

import (
	"context"
	"net/http"

	"servilink/internal/api/respond"
	"servilink/internal/domain"
	"servilink/internal/pkg/logger"
	"servilink/internal/pkg/middleware"
)

// UserService define o contrato para registro, login e perfil.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error)
	Login(ctx context.Context, email string, password string) (domain.AuthResponse, error)
	Profile(ctx context.Context, identity *domain.Identity) (domain.Profile, error)
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// RegisterUserHandler lida com a requisição POST /v1/register.
// @Summary Registra um novo usuário
// @Description Cria um cliente ou provedor, hasheia a senha e salva.
// @Tags users
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Dados de registro"
// @Success 201 {object} domain.User "Usuário criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /register [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := respond.DecodeJSON(r, &reg); err != nil {
		respond.ServiceResponse(w, h.Logger, nil, err, http.StatusCreated)
		return
	}

	// PasswordHash não é serializado (tag json:"-").
	newUser, err := h.Service.Register(r.Context(), reg)
	respond.ServiceResponse(w, h.Logger, newUser, err, http.StatusCreated)
}

// LoginUserHandler lida com a requisição POST /v1/login.
// @Summary Autentica um usuário e retorna um JWT
// @Description Recebe email/senha, verifica a validade e emite um JSON Web Token.
// @Tags users
// @Accept json
// @Produce json
// @Param login body domain.LoginRequest true "Credenciais do usuário (email e senha)"
// @Success 200 {object} domain.AuthResponse "Token JWT emitido"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 403 {object} domain.ErrorResponse "Conta desativada"
// @Router /login [post]
func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var loginReq domain.LoginRequest
	if err := respond.DecodeJSON(r, &loginReq); err != nil {
		respond.ServiceResponse(w, h.Logger, nil, err, http.StatusOK)
		return
	}

	resp, err := h.Service.Login(r.Context(), loginReq.Email, loginReq.Password)
	respond.ServiceResponse(w, h.Logger, resp, err, http.StatusOK)
}

// ProfileHandler lida com GET /v1/profile.
// @Summary Perfil do usuário autenticado
// @Description Dados de contato, serviços publicados e favoritos.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Profile
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Router /profile [get]
func (h *Handler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Service.Profile(r.Context(), middleware.IdentityFromContext(r.Context()))
	respond.ServiceResponse(w, h.Logger, profile, err, http.StatusOK)
}
