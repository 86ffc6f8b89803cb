package favorite

import (
	"context"
	"net/http"

	"servilink/internal/api/respond"
	"servilink/internal/domain"
	"servilink/internal/pkg/logger"
	"servilink/internal/pkg/middleware"
)

type FavoriteService interface {
	ListFavorites(ctx context.Context, identity *domain.Identity) ([]domain.FavoriteView, error)
	AddFavorite(ctx context.Context, identity *domain.Identity, serviceID int64) (domain.FavoriteView, error)
	RemoveFavorite(ctx context.Context, identity *domain.Identity, serviceID int64) error
}

type Handler struct {
	Service FavoriteService
	Logger  logger.Logger
}

func NewHandler(svc FavoriteService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// ListFavoritesHandler lida com GET /v1/favorites.
// @Summary Favoritos do usuário autenticado
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.FavoriteView
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Router /favorites [get]
func (h *Handler) ListFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	favs, err := h.Service.ListFavorites(r.Context(), middleware.IdentityFromContext(r.Context()))
	respond.ServiceResponse(w, h.Logger, favs, err, http.StatusOK)
}

// AddFavoriteHandler lida com POST /v1/favorites.
// @Summary Adiciona um serviço aos favoritos
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param favorite body domain.FavoriteRequest true "Serviço a favoritar"
// @Success 201 {object} domain.FavoriteView
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Failure 404 {object} domain.ErrorResponse "Serviço não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Serviço já favoritado"
// @Router /favorites [post]
func (h *Handler) AddFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.FavoriteRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.ServiceResponse(w, h.Logger, nil, err, http.StatusCreated)
		return
	}

	fav, err := h.Service.AddFavorite(r.Context(), middleware.IdentityFromContext(r.Context()), req.ServiceID)
	respond.ServiceResponse(w, h.Logger, fav, err, http.StatusCreated)
}

// RemoveFavoriteHandler lida com DELETE /v1/favorites/{serviceID}.
// @Summary Remove um serviço dos favoritos
// @Tags favorites
// @Security BearerAuth
// @Param serviceID path int true "ID do serviço favoritado"
// @Success 204
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Failure 404 {object} domain.ErrorResponse "Favorito não encontrado"
// @Router /favorites/{serviceID} [delete]
func (h *Handler) RemoveFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	serviceID, err := respond.PathID(r, "serviceID")
	if err != nil {
		respond.NoContent(w, h.Logger, err)
		return
	}

	respond.NoContent(w, h.Logger, h.Service.RemoveFavorite(r.Context(), middleware.IdentityFromContext(r.Context()), serviceID))
}
