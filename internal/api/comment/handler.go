package comment

import (
	"context"
	"net/http"

	"servilink/internal/api/respond"
	"servilink/internal/domain"
	"servilink/internal/pkg/logger"
	"servilink/internal/pkg/middleware"
)

// CommentService define o contrato para leitura e criação de comentários.
type CommentService interface {
	ListComments(ctx context.Context, serviceID int64) ([]domain.CommentView, error)
	CreateComment(ctx context.Context, identity *domain.Identity, serviceID int64, draft domain.CommentDraft) (domain.CommentView, error)
}

type Handler struct {
	Service CommentService
	Logger  logger.Logger
}

func NewHandler(svc CommentService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// ListCommentsHandler lida com GET /v1/services/{id}/comments.
// @Summary Comentários de um serviço
// @Tags comments
// @Produce json
// @Param id path int true "ID do serviço"
// @Success 200 {array} domain.CommentView
// @Failure 404 {object} domain.ErrorResponse "Serviço não encontrado"
// @Router /services/{id}/comments [get]
func (h *Handler) ListCommentsHandler(w http.ResponseWriter, r *http.Request) {
	serviceID, err := respond.PathID(r, "id")
	if err != nil {
		respond.ServiceResponse(w, h.Logger, nil, err, http.StatusOK)
		return
	}

	comments, err := h.Service.ListComments(r.Context(), serviceID)
	respond.ServiceResponse(w, h.Logger, comments, err, http.StatusOK)
}

// CreateCommentHandler lida com POST /v1/services/{id}/comments.
// @Summary Comenta e avalia um serviço
// @Description Exige que o usuário tenha aberto o detalhe do serviço antes.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do serviço"
// @Param comment body domain.CommentDraft true "Nota (1 a 5) e texto"
// @Success 201 {object} domain.CommentView
// @Failure 400 {object} domain.ErrorResponse "Nota ou texto inválidos"
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Failure 403 {object} domain.ErrorResponse "Sem acesso registrado ao serviço"
// @Failure 404 {object} domain.ErrorResponse "Serviço não encontrado"
// @Router /services/{id}/comments [post]
func (h *Handler) CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	serviceID, err := respond.PathID(r, "id")
	if err != nil {
		respond.ServiceResponse(w, h.Logger, nil, err, http.StatusCreated)
		return
	}

	var draft domain.CommentDraft
	if err := respond.DecodeJSON(r, &draft); err != nil {
		respond.ServiceResponse(w, h.Logger, nil, err, http.StatusCreated)
		return
	}

	view, err := h.Service.CreateComment(r.Context(), middleware.IdentityFromContext(r.Context()), serviceID, draft)
	respond.ServiceResponse(w, h.Logger, view, err, http.StatusCreated)
}
