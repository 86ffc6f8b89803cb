package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"servilink/internal/catalog"
	"servilink/internal/domain"
	"servilink/internal/enrich"
	apperror "servilink/internal/errors"
	"servilink/internal/pkg/cache"
	"servilink/internal/pkg/logger"
	"servilink/internal/pkg/metrics"
)

// FeaturedCacheKey guarda a lista de destaques serializada.
const FeaturedCacheKey = "catalog:featured"

// Repository é o que o catálogo precisa da camada de persistência.
type Repository interface {
	SaveService(ctx context.Context, service domain.Service) (domain.Service, error)
	FindServiceByID(ctx context.Context, id int64) (domain.Service, error)
	FindAllServices(ctx context.Context) ([]domain.Service, error)
	FindServicesByOwner(ctx context.Context, ownerID int64) ([]domain.Service, error)
	FindCommentsByService(ctx context.Context, serviceID int64) ([]domain.Comment, error)
	RatingsByService(ctx context.Context) (map[int64][]int, error)
	FindUsersByIDs(ctx context.Context, ids []int64) (map[int64]domain.User, error)
	SaveAccess(ctx context.Context, access domain.AccessRecord) (domain.AccessRecord, error)
}

// Gate é a parte do authz.Gate usada aqui.
type Gate interface {
	CanPublishService(id *domain.Identity) error
}

// Service implementa as operações de leitura e publicação do catálogo.
type Service struct {
	repo     Repository
	gate     Gate
	cache    cache.Client // nil desliga o cache de destaques
	cacheTTL time.Duration
	logger   logger.Logger
}

// NewService cria o serviço de catálogo. cacheClient pode ser nil.
func NewService(repo Repository, gate Gate, cacheClient cache.Client, cacheTTL time.Duration, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		gate:     gate,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

// ListServices filtra e ordena o catálogo completo.
func (s *Service) ListServices(ctx context.Context, f catalog.Filter) ([]domain.ServiceListing, error) {
	s.logger.Debug("Listando serviços.", map[string]interface{}{"category": f.Category, "sort": string(f.Sort)})

	if err := f.Validate(); err != nil {
		return nil, err
	}

	services, averages, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	filtered, err := catalog.Apply(services, averages, f)
	if err != nil {
		return nil, err
	}

	return s.listings(ctx, filtered, averages)
}

// ListFeatured devolve os destaques, servidos do cache quando disponível.
func (s *Service) ListFeatured(ctx context.Context) ([]domain.ServiceListing, error) {
	if cached, ok := s.cachedFeatured(ctx); ok {
		return cached, nil
	}

	services, averages, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	featured, err := s.listings(ctx, catalog.Featured(services, averages), averages)
	if err != nil {
		return nil, err
	}

	s.storeFeatured(ctx, featured)
	return featured, nil
}

// GetServiceDetail devolve o serviço com dono, comentários e nota.
// Com identidade presente, registra o acesso que libera comentários.
func (s *Service) GetServiceDetail(ctx context.Context, id int64, identity *domain.Identity) (domain.ServiceDetail, error) {
	svc, err := s.repo.FindServiceByID(ctx, id)
	if err != nil {
		return domain.ServiceDetail{}, apperror.Internalize("Falha ao buscar serviço.", err)
	}

	comments, err := s.repo.FindCommentsByService(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao buscar comentários do serviço.", err)
		return domain.ServiceDetail{}, apperror.Internalize("Falha ao buscar comentários.", err)
	}

	users, err := s.repo.FindUsersByIDs(ctx, enrich.UserIDs([]domain.Service{svc}, comments))
	if err != nil {
		return domain.ServiceDetail{}, apperror.Internalize("Falha ao buscar usuários.", err)
	}

	if identity != nil {
		if _, err := s.repo.SaveAccess(ctx, domain.AccessRecord{ServiceID: id, UserID: identity.UserID}); err != nil {
			s.logger.Error("Falha ao registrar acesso ao serviço.", err)
			return domain.ServiceDetail{}, apperror.Internalize("Falha ao registrar acesso.", err)
		}
	}

	return enrich.DetailView(svc, comments, users), nil
}

// CreateService publica um serviço em nome do provedor autenticado.
func (s *Service) CreateService(ctx context.Context, identity *domain.Identity, draft domain.ServiceDraft) (domain.Service, error) {
	if err := s.gate.CanPublishService(identity); err != nil {
		metrics.RecordAuthzDenial("publish_service", categoryOf(err))
		return domain.Service{}, err
	}

	svc, err := newServiceFromDraft(identity.UserID, draft)
	if err != nil {
		s.logger.Warn("Serviço rejeitado na validação.", map[string]interface{}{"owner_id": identity.UserID, "error": err.Error()})
		return domain.Service{}, err
	}

	created, err := s.repo.SaveService(ctx, svc)
	if err != nil {
		s.logger.Error("Falha ao salvar serviço.", err)
		return domain.Service{}, apperror.Internalize("Falha interna ao criar serviço.", err)
	}

	s.InvalidateFeatured(ctx)
	s.logger.Info("Serviço publicado.", map[string]interface{}{"id": created.ID, "owner_id": created.OwnerID})
	return created, nil
}

// ListCategories devolve o registro fixo de categorias.
func (s *Service) ListCategories(ctx context.Context) []domain.Category {
	return domain.Categories()
}

// ListByOwner devolve os serviços de um provedor em projeção de lista.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]domain.ServiceListing, error) {
	services, err := s.repo.FindServicesByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.Internalize("Falha ao buscar serviços do provedor.", err)
	}
	return s.Listings(ctx, services)
}

// Listings enriquece serviços já carregados com nota média e resumo do dono.
func (s *Service) Listings(ctx context.Context, services []domain.Service) ([]domain.ServiceListing, error) {
	ratings, err := s.repo.RatingsByService(ctx)
	if err != nil {
		return nil, apperror.Internalize("Falha ao calcular notas.", err)
	}
	return s.listings(ctx, services, catalog.Averages(services, ratings))
}

// InvalidateFeatured descarta a lista de destaques em cache. Falhas só são logadas.
func (s *Service) InvalidateFeatured(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, FeaturedCacheKey); err != nil {
		s.logger.Warn("Falha ao invalidar cache de destaques.", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) loadCatalog(ctx context.Context) ([]domain.Service, map[int64]float64, error) {
	services, err := s.repo.FindAllServices(ctx)
	if err != nil {
		s.logger.Error("Falha ao carregar serviços.", err)
		return nil, nil, apperror.Internalize("Falha ao carregar serviços.", err)
	}
	ratings, err := s.repo.RatingsByService(ctx)
	if err != nil {
		s.logger.Error("Falha ao carregar notas.", err)
		return nil, nil, apperror.Internalize("Falha ao calcular notas.", err)
	}
	return services, catalog.Averages(services, ratings), nil
}

func (s *Service) listings(ctx context.Context, services []domain.Service, averages map[int64]float64) ([]domain.ServiceListing, error) {
	users, err := s.repo.FindUsersByIDs(ctx, enrich.UserIDs(services, nil))
	if err != nil {
		return nil, apperror.Internalize("Falha ao buscar provedores.", err)
	}
	return enrich.Listings(services, averages, users), nil
}

func (s *Service) cachedFeatured(ctx context.Context) ([]domain.ServiceListing, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, FeaturedCacheKey)
	if err == cache.ErrCacheMiss {
		metrics.RecordCacheLookup(FeaturedCacheKey, "miss")
		return nil, false
	}
	if err != nil {
		metrics.RecordCacheLookup(FeaturedCacheKey, "error")
		s.logger.Warn("Cache de destaques indisponível.", map[string]interface{}{"error": err.Error()})
		return nil, false
	}

	var out []domain.ServiceListing
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		metrics.RecordCacheLookup(FeaturedCacheKey, "error")
		s.logger.Warn("Cache de destaques corrompido.", map[string]interface{}{"error": err.Error()})
		return nil, false
	}

	metrics.RecordCacheLookup(FeaturedCacheKey, "hit")
	return out, true
}

func (s *Service) storeFeatured(ctx context.Context, featured []domain.ServiceListing) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(featured)
	if err != nil {
		s.logger.Warn("Falha ao serializar destaques.", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.cache.Set(ctx, FeaturedCacheKey, string(raw), s.cacheTTL); err != nil {
		s.logger.Warn("Falha ao gravar destaques no cache.", map[string]interface{}{"error": err.Error()})
	}
}

func newServiceFromDraft(ownerID int64, d domain.ServiceDraft) (domain.Service, error) {
	required := []struct {
		field, value string
	}{
		{"title", d.Title},
		{"description", d.Description},
		{"category", d.Category},
		{"location", d.Location},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return domain.Service{}, apperror.NewValidationError(fmt.Sprintf("O campo '%s' é obrigatório.", r.field))
		}
	}
	if d.EstimatedPrice < 0 {
		return domain.Service{}, apperror.NewValidationError("O preço estimado não pode ser negativo.")
	}

	available := true
	if d.Available != nil {
		available = *d.Available
	}
	images := d.Images
	if images == nil {
		images = []string{}
	}

	return domain.Service{
		OwnerID:        ownerID,
		Title:          strings.TrimSpace(d.Title),
		Description:    strings.TrimSpace(d.Description),
		Category:       d.Category,
		Subcategory:    d.Subcategory,
		Location:       strings.TrimSpace(d.Location),
		EstimatedPrice: d.EstimatedPrice,
		Schedule:       d.Schedule,
		Available:      available,
		Images:         images,
	}, nil
}

func categoryOf(err error) string {
	if appErr, ok := apperror.AsAppError(err); ok {
		return appErr.Category()
	}
	return "UNKNOWN_ERROR"
}
