package catalog

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"servilink/internal/api/respond"
	"servilink/internal/catalog"
	"servilink/internal/domain"
	apperror "servilink/internal/errors"
	"servilink/internal/pkg/logger"
	"servilink/internal/pkg/middleware"
)

// CatalogService define o contrato das operações de catálogo usadas pelo Handler.
type CatalogService interface {
	ListServices(ctx context.Context, f catalog.Filter) ([]domain.ServiceListing, error)
	ListFeatured(ctx context.Context) ([]domain.ServiceListing, error)
	GetServiceDetail(ctx context.Context, id int64, identity *domain.Identity) (domain.ServiceDetail, error)
	CreateService(ctx context.Context, identity *domain.Identity, draft domain.ServiceDraft) (domain.Service, error)
	ListCategories(ctx context.Context) []domain.Category
}

// Handler agrupa os endpoints de catálogo.
type Handler struct {
	Service CatalogService
	Logger  logger.Logger
}

func NewHandler(svc CatalogService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// ListServicesHandler lida com GET /v1/services.
// @Summary Lista serviços do catálogo
// @Description Filtros combinados com AND. A busca textual ignora maiúsculas e olha título e descrição.
// @Tags services
// @Produce json
// @Param category query string false "Categoria (igualdade exata)"
// @Param subcategory query string false "Subcategoria (igualdade exata)"
// @Param location query string false "Trecho da localização"
// @Param search query string false "Trecho do título ou descrição"
// @Param price_min query number false "Preço mínimo (inclusivo)"
// @Param price_max query number false "Preço máximo (inclusivo)"
// @Param sort query string false "recent | rating | price_asc | price_desc"
// @Success 200 {array} domain.ServiceListing
// @Failure 400 {object} domain.ErrorResponse "Filtro inválido"
// @Router /services [get]
func (h *Handler) ListServicesHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respond.ServiceResponse(w, h.Logger, nil, err, http.StatusOK)
		return
	}

	listings, err := h.Service.ListServices(r.Context(), filter)
	respond.ServiceResponse(w, h.Logger, listings, err, http.StatusOK)
}

// FeaturedHandler lida com GET /v1/services/featured.
// @Summary Serviços em destaque
// @Description Até 4 serviços com maior avaliação média.
// @Tags services
// @Produce json
// @Success 200 {array} domain.ServiceListing
// @Router /services/featured [get]
func (h *Handler) FeaturedHandler(w http.ResponseWriter, r *http.Request) {
	listings, err := h.Service.ListFeatured(r.Context())
	respond.ServiceResponse(w, h.Logger, listings, err, http.StatusOK)
}

// GetServiceHandler lida com GET /v1/services/{id}.
// @Summary Detalhe de um serviço
// @Description Inclui contato do provedor e comentários. Usuários autenticados têm o acesso registrado.
// @Tags services
// @Produce json
// @Param id path int true "ID do serviço"
// @Success 200 {object} domain.ServiceDetail
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Serviço não encontrado"
// @Router /services/{id} [get]
func (h *Handler) GetServiceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.ServiceResponse(w, h.Logger, nil, err, http.StatusOK)
		return
	}

	detail, err := h.Service.GetServiceDetail(r.Context(), id, middleware.IdentityFromContext(r.Context()))
	respond.ServiceResponse(w, h.Logger, detail, err, http.StatusOK)
}

// CreateServiceHandler lida com POST /v1/services.
// @Summary Publica um serviço
// @Description Somente provedores. O dono é sempre o usuário autenticado.
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param service body domain.ServiceDraft true "Dados do serviço"
// @Success 201 {object} domain.Service
// @Failure 400 {object} domain.ErrorResponse "Dados inválidos"
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Failure 403 {object} domain.ErrorResponse "Usuário não é provedor"
// @Router /services [post]
func (h *Handler) CreateServiceHandler(w http.ResponseWriter, r *http.Request) {
	var draft domain.ServiceDraft
	if err := respond.DecodeJSON(r, &draft); err != nil {
		respond.ServiceResponse(w, h.Logger, nil, err, http.StatusCreated)
		return
	}

	svc, err := h.Service.CreateService(r.Context(), middleware.IdentityFromContext(r.Context()), draft)
	respond.ServiceResponse(w, h.Logger, svc, err, http.StatusCreated)
}

// CategoriesHandler lida com GET /v1/categories.
// @Summary Registro de categorias
// @Tags services
// @Produce json
// @Success 200 {array} domain.Category
// @Router /categories [get]
func (h *Handler) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	respond.ServiceResponse(w, h.Logger, h.Service.ListCategories(r.Context()), nil, http.StatusOK)
}

func parseFilter(r *http.Request) (catalog.Filter, error) {
	q := r.URL.Query()
	f := catalog.Filter{
		Category:    strings.TrimSpace(q.Get("category")),
		Subcategory: strings.TrimSpace(q.Get("subcategory")),
		Location:    strings.TrimSpace(q.Get("location")),
		Search:      strings.TrimSpace(q.Get("search")),
		Sort:        catalog.SortOrder(q.Get("sort")),
	}

	var err error
	if f.PriceMin, err = parsePrice(q.Get("price_min"), "price_min"); err != nil {
		return catalog.Filter{}, err
	}
	if f.PriceMax, err = parsePrice(q.Get("price_max"), "price_max"); err != nil {
		return catalog.Filter{}, err
	}
	return f, nil
}

// parsePrice devolve nil para parâmetro ausente.
func parsePrice(raw, name string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, apperror.NewValidationError(fmt.Sprintf("%s deve ser numérico.", name))
	}
	return &v, nil
}
