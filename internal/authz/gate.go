// Package authz decide se uma identidade pode executar uma mutação.
// Os predicados só leem do repositório; nunca gravam.
package authz

import (
	"context"
	"fmt"
	"strings"

	"servilink/internal/domain"
	apperror "servilink/internal/errors"
)

// Facts é o subconjunto somente-leitura do repositório consultado pelo Gate.
// domain.Store satisfaz esta interface.
type Facts interface {
	FindServiceByID(ctx context.Context, id int64) (domain.Service, error)
	FindCommentByID(ctx context.Context, id int64) (domain.Comment, error)
	HasAccess(ctx context.Context, userID, serviceID int64) (bool, error)
	FavoriteExists(ctx context.Context, userID, serviceID int64) (bool, error)
}

// Gate agrupa os predicados de autorização.
// Cada método devolve nil quando a ação é permitida ou um AppError categorizado.
type Gate struct {
	facts Facts
}

func NewGate(facts Facts) *Gate {
	return &Gate{facts: facts}
}

func requireIdentity(id *domain.Identity) error {
	if id == nil {
		return apperror.NewUnauthorizedError("É necessário estar autenticado.")
	}
	return nil
}

// CanPublishService exige uma identidade com papel de provedor.
func (g *Gate) CanPublishService(id *domain.Identity) error {
	if err := requireIdentity(id); err != nil {
		return err
	}
	if id.Role != domain.RoleProvider {
		return apperror.NewForbiddenError("Somente provedores podem publicar serviços.")
	}
	return nil
}

// CanComment exige que o serviço exista e que a identidade já tenha aberto o detalhe dele.
func (g *Gate) CanComment(ctx context.Context, id *domain.Identity, serviceID int64) error {
	if err := requireIdentity(id); err != nil {
		return err
	}
	if err := g.serviceExists(ctx, serviceID); err != nil {
		return err
	}
	ok, err := g.facts.HasAccess(ctx, id.UserID, serviceID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewForbiddenError("Só é possível comentar serviços que você já visualizou.")
	}
	return nil
}

// CanFavorite exige que o serviço exista e que o par ainda não esteja nos favoritos.
func (g *Gate) CanFavorite(ctx context.Context, id *domain.Identity, serviceID int64) error {
	if err := requireIdentity(id); err != nil {
		return err
	}
	if err := g.serviceExists(ctx, serviceID); err != nil {
		return err
	}
	exists, err := g.facts.FavoriteExists(ctx, id.UserID, serviceID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewConflictError("O serviço já está nos favoritos.")
	}
	return nil
}

// CanUnfavorite exige um favorito existente para o par.
func (g *Gate) CanUnfavorite(ctx context.Context, id *domain.Identity, serviceID int64) error {
	if err := requireIdentity(id); err != nil {
		return err
	}
	exists, err := g.facts.FavoriteExists(ctx, id.UserID, serviceID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewNotFoundError("O serviço não está nos favoritos.")
	}
	return nil
}

// CanReport exige motivo, exatamente um alvo (serviço ou comentário) e que o alvo exista.
func (g *Gate) CanReport(ctx context.Context, id *domain.Identity, draft domain.ReportDraft) error {
	if err := requireIdentity(id); err != nil {
		return err
	}
	if strings.TrimSpace(draft.Reason) == "" {
		return apperror.NewValidationError("O motivo da denúncia é obrigatório.")
	}
	if (draft.ServiceID == nil) == (draft.CommentID == nil) {
		return apperror.NewValidationError("Informe exatamente um alvo: service_id ou comment_id.")
	}
	if draft.ServiceID != nil {
		return g.serviceExists(ctx, *draft.ServiceID)
	}
	if _, err := g.facts.FindCommentByID(ctx, *draft.CommentID); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFoundError(fmt.Sprintf("Comentário com ID %d não encontrado.", *draft.CommentID))
		}
		return err
	}
	return nil
}

func (g *Gate) serviceExists(ctx context.Context, serviceID int64) error {
	if _, err := g.facts.FindServiceByID(ctx, serviceID); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFoundError(fmt.Sprintf("Serviço com ID %d não encontrado.", serviceID))
		}
		return err
	}
	return nil
}
