package report

import (
	"context"
	"net/http"

	"servilink/internal/api/respond"
	"servilink/internal/domain"
	"servilink/internal/pkg/logger"
	"servilink/internal/pkg/middleware"
)

type ReportService interface {
	CreateReport(ctx context.Context, identity *domain.Identity, draft domain.ReportDraft) (domain.Report, error)
	ListReports(ctx context.Context) ([]domain.Report, error)
}

type Handler struct {
	Service ReportService
	Logger  logger.Logger
}

func NewHandler(svc ReportService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// CreateReportHandler lida com POST /v1/reports.
// @Summary Denuncia um serviço ou comentário
// @Description Informe exatamente um alvo (service_id ou comment_id) e um motivo.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param report body domain.ReportDraft true "Alvo e motivo"
// @Success 201 {object} domain.Report
// @Failure 400 {object} domain.ErrorResponse "Motivo vazio ou alvo ambíguo"
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Failure 404 {object} domain.ErrorResponse "Alvo não encontrado"
// @Router /reports [post]
func (h *Handler) CreateReportHandler(w http.ResponseWriter, r *http.Request) {
	var draft domain.ReportDraft
	if err := respond.DecodeJSON(r, &draft); err != nil {
		respond.ServiceResponse(w, h.Logger, nil, err, http.StatusCreated)
		return
	}

	rep, err := h.Service.CreateReport(r.Context(), middleware.IdentityFromContext(r.Context()), draft)
	respond.ServiceResponse(w, h.Logger, rep, err, http.StatusCreated)
}

// ListReportsHandler lida com GET /v1/admin/reports.
// @Summary Lista as denúncias (painel administrativo)
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Report
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Failure 403 {object} domain.ErrorResponse "Somente administradores"
// @Router /admin/reports [get]
func (h *Handler) ListReportsHandler(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Service.ListReports(r.Context())
	respond.ServiceResponse(w, h.Logger, reports, err, http.StatusOK)
}
