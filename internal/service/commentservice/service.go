package commentservice

import (
	"context"
	"fmt"
	"strings"

	"servilink/internal/domain"
	"servilink/internal/enrich"
	apperror "servilink/internal/errors"
	"servilink/internal/pkg/logger"
	"servilink/internal/pkg/metrics"
)

// Repository define o contrato que o Serviço de Comentários espera da persistência.
type Repository interface {
	FindServiceByID(ctx context.Context, id int64) (domain.Service, error)
	SaveComment(ctx context.Context, comment domain.Comment) (domain.Comment, error)
	FindCommentsByService(ctx context.Context, serviceID int64) ([]domain.Comment, error)
	FindUsersByIDs(ctx context.Context, ids []int64) (map[int64]domain.User, error)
}

// Gate é a parte do authz.Gate usada aqui.
type Gate interface {
	CanComment(ctx context.Context, id *domain.Identity, serviceID int64) error
}

// FeaturedInvalidator descarta os destaques em cache quando uma nota muda.
type FeaturedInvalidator interface {
	InvalidateFeatured(ctx context.Context)
}

type Service struct {
	repo     Repository
	gate     Gate
	featured FeaturedInvalidator
	logger   logger.Logger
}

func NewService(repo Repository, gate Gate, featured FeaturedInvalidator, log logger.Logger) *Service {
	return &Service{repo: repo, gate: gate, featured: featured, logger: log}
}

// ListComments devolve os comentários do serviço em ordem de criação, com o autor.
func (s *Service) ListComments(ctx context.Context, serviceID int64) ([]domain.CommentView, error) {
	if _, err := s.repo.FindServiceByID(ctx, serviceID); err != nil {
		return nil, apperror.Internalize("Falha ao buscar serviço.", err)
	}

	comments, err := s.repo.FindCommentsByService(ctx, serviceID)
	if err != nil {
		s.logger.Error("Falha ao listar comentários.", err)
		return nil, apperror.Internalize("Falha ao listar comentários.", err)
	}

	users, err := s.repo.FindUsersByIDs(ctx, enrich.UserIDs(nil, comments))
	if err != nil {
		return nil, apperror.Internalize("Falha ao buscar autores.", err)
	}

	return enrich.Comments(comments, users), nil
}

// CreateComment exige acesso prévio ao detalhe do serviço, nota entre 1 e 5 e texto.
func (s *Service) CreateComment(ctx context.Context, identity *domain.Identity, serviceID int64, draft domain.CommentDraft) (domain.CommentView, error) {
	if err := s.gate.CanComment(ctx, identity, serviceID); err != nil {
		if appErr, ok := apperror.AsAppError(err); ok {
			metrics.RecordAuthzDenial("comment", appErr.Category())
		}
		return domain.CommentView{}, err
	}

	if err := validateDraft(draft); err != nil {
		s.logger.Warn("Comentário rejeitado na validação.", map[string]interface{}{"service_id": serviceID, "error": err.Error()})
		return domain.CommentView{}, err
	}

	created, err := s.repo.SaveComment(ctx, domain.Comment{
		ServiceID: serviceID,
		AuthorID:  identity.UserID,
		Rating:    draft.Rating,
		Body:      strings.TrimSpace(draft.Body),
	})
	if err != nil {
		s.logger.Error("Falha ao salvar comentário.", err)
		return domain.CommentView{}, apperror.Internalize("Falha interna ao criar comentário.", err)
	}

	s.featured.InvalidateFeatured(ctx)
	s.logger.Info("Comentário criado.", map[string]interface{}{"id": created.ID, "service_id": serviceID, "rating": created.Rating})

	users, err := s.repo.FindUsersByIDs(ctx, []int64{identity.UserID})
	if err != nil {
		return domain.CommentView{}, apperror.Internalize("Falha ao buscar autor.", err)
	}
	return enrich.Comments([]domain.Comment{created}, users)[0], nil
}

func validateDraft(d domain.CommentDraft) error {
	if d.Rating < domain.MinRating || d.Rating > domain.MaxRating {
		return apperror.NewValidationError(fmt.Sprintf("A nota deve estar entre %d e %d.", domain.MinRating, domain.MaxRating))
	}
	if strings.TrimSpace(d.Body) == "" {
		return apperror.NewValidationError("O comentário não pode ser vazio.")
	}
	return nil
}
