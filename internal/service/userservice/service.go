package userservice

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"servilink/internal/domain"
	"servilink/internal/enrich"
	apperror "servilink/internal/errors"
	"servilink/internal/pkg/logger"
)

const (
	minNameLength     = 2
	minPasswordLength = 6
)

// UserRepository define o contrato de persistência usado pelo serviço de usuários.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) (domain.User, error)
	FindUserByID(ctx context.Context, id int64) (domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (domain.User, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token)
type TokenService interface {
	GenerateToken(userID int64, userRole string) (string, error)
}

// ServiceLister devolve os serviços publicados por um provedor.
type ServiceLister interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.ServiceListing, error)
}

// FavoriteLister devolve os favoritos de uma identidade.
type FavoriteLister interface {
	ListFavorites(ctx context.Context, identity *domain.Identity) ([]domain.FavoriteView, error)
}

// UserService define o serviço de lógica de negócio para a entidade User.
type UserService struct {
	UserRepo  UserRepository
	TokenSvc  TokenService
	Services  ServiceLister
	Favorites FavoriteLister
	Logger    logger.Logger
}

// NewService cria uma nova instância do UserService.
func NewService(repo UserRepository, tokenSvc TokenService, services ServiceLister, favorites FavoriteLister, log logger.Logger) *UserService {
	return &UserService{
		UserRepo:  repo,
		TokenSvc:  tokenSvc,
		Services:  services,
		Favorites: favorites,
		Logger:    log,
	}
}

// Register valida o cadastro, gera o hash da senha e persiste o usuário.
// O papel padrão é client; admin não pode se autocadastrar.
func (s *UserService) Register(ctx context.Context, reg domain.UserRegistration) (domain.User, error) {
	if err := validateRegistration(&reg); err != nil {
		s.Logger.Warn("Cadastro rejeitado na validação.", map[string]interface{}{"email": reg.Email, "error": err.Error()})
		return domain.User{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	avatar := strings.TrimSpace(reg.Avatar)
	if avatar == "" {
		avatar = domain.DefaultAvatar
	}

	user, err := s.UserRepo.SaveUser(ctx, domain.User{
		FullName:     strings.TrimSpace(reg.FullName),
		Email:        reg.Email,
		PasswordHash: string(hashedPassword),
		Role:         reg.Role,
		Country:      strings.TrimSpace(reg.Country),
		City:         strings.TrimSpace(reg.City),
		Phone:        strings.TrimSpace(reg.Phone),
		IsActive:     true,
		Avatar:       avatar,
	})
	if err != nil {
		if !apperror.IsConflict(err) {
			s.Logger.Error("Falha ao salvar usuário.", err)
		}
		return domain.User{}, apperror.Internalize("Falha interna ao registrar usuário.", err)
	}

	s.Logger.Info("Usuário registrado.", map[string]interface{}{"id": user.ID, "role": string(user.Role)})
	return user, nil
}

// Login autentica um usuário, verifica a senha e gera um JWT.
func (s *UserService) Login(ctx context.Context, email string, password string) (domain.AuthResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.AuthResponse{}, apperror.NewUnauthorizedError("Email e senha são obrigatórios.")
	}

	user, err := s.UserRepo.FindUserByEmail(ctx, email)
	if err != nil {
		// NotFound vira 401 para não revelar quais emails existem.
		if apperror.IsNotFound(err) {
			return domain.AuthResponse{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return domain.AuthResponse{}, apperror.Internalize("Falha ao buscar usuário.", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.AuthResponse{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	if !user.IsActive {
		return domain.AuthResponse{}, apperror.NewForbiddenError("Conta desativada.")
	}

	tokenString, err := s.TokenSvc.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		s.Logger.Error("Falha ao gerar token.", err)
		return domain.AuthResponse{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	s.Logger.Debug("Login realizado.", map[string]interface{}{"id": user.ID})
	return domain.AuthResponse{Token: tokenString, Role: user.Role, User: enrich.Detail(user)}, nil
}

// Profile devolve o perfil do usuário autenticado, com seus serviços (se provedor) e favoritos.
func (s *UserService) Profile(ctx context.Context, identity *domain.Identity) (domain.Profile, error) {
	if identity == nil {
		return domain.Profile{}, apperror.NewUnauthorizedError("É necessário estar autenticado.")
	}

	user, err := s.UserRepo.FindUserByID(ctx, identity.UserID)
	if err != nil {
		return domain.Profile{}, apperror.Internalize("Falha ao buscar usuário.", err)
	}

	var services []domain.ServiceListing
	if user.Role == domain.RoleProvider {
		services, err = s.Services.ListByOwner(ctx, user.ID)
		if err != nil {
			return domain.Profile{}, err
		}
	}

	favorites, err := s.Favorites.ListFavorites(ctx, identity)
	if err != nil {
		return domain.Profile{}, err
	}

	return enrich.ProfileOf(user, services, favorites), nil
}

func validateRegistration(reg *domain.UserRegistration) error {
	if utf8.RuneCountInString(strings.TrimSpace(reg.FullName)) < minNameLength {
		return apperror.NewValidationError(fmt.Sprintf("O nome deve ter pelo menos %d caracteres.", minNameLength))
	}

	reg.Email = strings.TrimSpace(reg.Email)
	addr, err := mail.ParseAddress(reg.Email)
	if err != nil || addr.Address != reg.Email {
		return apperror.NewValidationError("Email inválido.")
	}

	if utf8.RuneCountInString(reg.Password) < minPasswordLength {
		return apperror.NewValidationError(fmt.Sprintf("A senha deve ter pelo menos %d caracteres.", minPasswordLength))
	}

	switch reg.Role {
	case "":
		reg.Role = domain.RoleClient
	case domain.RoleClient, domain.RoleProvider:
	default:
		return apperror.NewValidationError("Papel inválido: use 'client' ou 'provider'.")
	}
	return nil
}
