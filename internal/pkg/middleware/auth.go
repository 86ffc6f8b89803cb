package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"servilink/internal/domain"
	apperror "servilink/internal/errors"
	"servilink/internal/pkg/logger"
	"servilink/internal/pkg/token"
)

// ContextKey é o tipo das chaves que este pacote grava no contexto.
type ContextKey int

const (
	IdentityKey ContextKey = iota
	RequestIDKey
)

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// Auth resolve a identidade do chamador a partir do header Authorization: Bearer <token>.
type Auth struct {
	tokens TokenService
	logger logger.Logger
}

func NewAuth(tokens TokenService, log logger.Logger) *Auth {
	return &Auth{tokens: tokens, logger: log}
}

// Required rejeita com 401 requisições sem token válido.
func (a *Auth) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			writeError(w, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
			return
		}

		id, err := a.resolve(raw)
		if err != nil {
			a.logger.Debug("Token rejeitado.", map[string]interface{}{"error": err.Error(), "path": r.URL.Path})
			writeError(w, apperror.NewUnauthorizedError("Token inválido ou expirado."))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// Optional anexa a identidade quando há um token válido e segue como anônimo caso contrário.
// Um token presente mas inválido também é rejeitado com 401.
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		id, err := a.resolve(raw)
		if err != nil {
			writeError(w, apperror.NewUnauthorizedError("Token inválido ou expirado."))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

func (a *Auth) resolve(raw string) (*domain.Identity, error) {
	claims, err := a.tokens.ValidateToken(raw)
	if err != nil {
		return nil, err
	}
	role := domain.UserRole(claims.Role)
	if !role.Valid() || claims.UserID <= 0 {
		return nil, apperror.NewUnauthorizedError("Claims inválidas.")
	}
	return &domain.Identity{UserID: claims.UserID, Role: role}, nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(header[len("Bearer "):])
	return raw, raw != ""
}

// WithIdentity grava a identidade resolvida no contexto.
func WithIdentity(ctx context.Context, id *domain.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

// IdentityFromContext devolve a identidade corrente ou nil para requisições anônimas.
func IdentityFromContext(ctx context.Context) *domain.Identity {
	id, _ := ctx.Value(IdentityKey).(*domain.Identity)
	return id
}

// RequireRoles rejeita identidades cujo papel não esteja na lista. Deve vir depois de Required.
func RequireRoles(roles ...domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := IdentityFromContext(r.Context())
			if id == nil {
				writeError(w, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."))
				return
			}
			for _, role := range roles {
				if id.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, apperror.NewForbiddenError("Você não tem a permissão necessária."))
		})
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}
