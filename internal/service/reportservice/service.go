package reportservice

import (
	"context"
	"strings"

	"servilink/internal/domain"
	apperror "servilink/internal/errors"
	"servilink/internal/pkg/logger"
	"servilink/internal/pkg/metrics"
)

// Repository define o contrato que o Serviço de Denúncias espera da persistência.
type Repository interface {
	SaveReport(ctx context.Context, report domain.Report) (domain.Report, error)
	FindAllReports(ctx context.Context) ([]domain.Report, error)
}

// Gate é a parte do authz.Gate usada aqui.
type Gate interface {
	CanReport(ctx context.Context, id *domain.Identity, draft domain.ReportDraft) error
}

type Service struct {
	repo   Repository
	gate   Gate
	logger logger.Logger
}

func NewService(repo Repository, gate Gate, log logger.Logger) *Service {
	return &Service{repo: repo, gate: gate, logger: log}
}

// CreateReport registra uma denúncia contra exatamente um serviço ou comentário.
func (s *Service) CreateReport(ctx context.Context, identity *domain.Identity, draft domain.ReportDraft) (domain.Report, error) {
	if err := s.gate.CanReport(ctx, identity, draft); err != nil {
		if appErr, ok := apperror.AsAppError(err); ok {
			metrics.RecordAuthzDenial("report", appErr.Category())
		}
		return domain.Report{}, err
	}

	report, err := s.repo.SaveReport(ctx, domain.Report{
		ReporterID: identity.UserID,
		ServiceID:  draft.ServiceID,
		CommentID:  draft.CommentID,
		Reason:     strings.TrimSpace(draft.Reason),
	})
	if err != nil {
		s.logger.Error("Falha ao salvar denúncia.", err)
		return domain.Report{}, apperror.Internalize("Falha interna ao registrar denúncia.", err)
	}

	s.logger.Info("Denúncia registrada.", map[string]interface{}{"id": report.ID, "reporter_id": report.ReporterID})
	return report, nil
}

// ListReports devolve todas as denúncias (painel administrativo).
func (s *Service) ListReports(ctx context.Context) ([]domain.Report, error) {
	reports, err := s.repo.FindAllReports(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar denúncias.", err)
		return nil, apperror.Internalize("Falha ao listar denúncias.", err)
	}
	return reports, nil
}
