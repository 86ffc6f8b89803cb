package favoriteservice

import (
	"context"

	"servilink/internal/domain"
	"servilink/internal/enrich"
	apperror "servilink/internal/errors"
	"servilink/internal/pkg/logger"
	"servilink/internal/pkg/metrics"
)

// Repository define o contrato que o Serviço de Favoritos espera da persistência.
type Repository interface {
	SaveFavorite(ctx context.Context, favorite domain.Favorite) (domain.Favorite, error)
	DeleteFavorite(ctx context.Context, userID, serviceID int64) error
	FindFavoritesByUser(ctx context.Context, userID int64) ([]domain.Favorite, error)
	FindServiceByID(ctx context.Context, id int64) (domain.Service, error)
}

// Gate é a parte do authz.Gate usada aqui.
type Gate interface {
	CanFavorite(ctx context.Context, id *domain.Identity, serviceID int64) error
	CanUnfavorite(ctx context.Context, id *domain.Identity, serviceID int64) error
}

// ListingBuilder monta a projeção de lista dos serviços favoritados.
type ListingBuilder interface {
	Listings(ctx context.Context, services []domain.Service) ([]domain.ServiceListing, error)
}

type Service struct {
	repo     Repository
	gate     Gate
	listings ListingBuilder
	logger   logger.Logger
}

func NewService(repo Repository, gate Gate, listings ListingBuilder, log logger.Logger) *Service {
	return &Service{repo: repo, gate: gate, listings: listings, logger: log}
}

// ListFavorites devolve os favoritos da identidade com o serviço alvo anexado.
func (s *Service) ListFavorites(ctx context.Context, identity *domain.Identity) ([]domain.FavoriteView, error) {
	if identity == nil {
		return nil, apperror.NewUnauthorizedError("É necessário estar autenticado.")
	}

	favs, err := s.repo.FindFavoritesByUser(ctx, identity.UserID)
	if err != nil {
		s.logger.Error("Falha ao listar favoritos.", err)
		return nil, apperror.Internalize("Falha ao listar favoritos.", err)
	}

	services := make([]domain.Service, 0, len(favs))
	for _, f := range favs {
		svc, err := s.repo.FindServiceByID(ctx, f.ServiceID)
		if apperror.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, apperror.Internalize("Falha ao buscar serviço favoritado.", err)
		}
		services = append(services, svc)
	}

	return s.views(ctx, favs, services)
}

// AddFavorite salva o serviço nos favoritos da identidade.
func (s *Service) AddFavorite(ctx context.Context, identity *domain.Identity, serviceID int64) (domain.FavoriteView, error) {
	if err := s.gate.CanFavorite(ctx, identity, serviceID); err != nil {
		recordDenial("favorite", err)
		return domain.FavoriteView{}, err
	}

	// O repositório revalida a unicidade: duas requisições simultâneas podem passar pelo gate.
	fav, err := s.repo.SaveFavorite(ctx, domain.Favorite{UserID: identity.UserID, ServiceID: serviceID})
	if err != nil {
		if !apperror.IsConflict(err) {
			s.logger.Error("Falha ao salvar favorito.", err)
		}
		return domain.FavoriteView{}, apperror.Internalize("Falha interna ao salvar favorito.", err)
	}

	svc, err := s.repo.FindServiceByID(ctx, serviceID)
	if err != nil {
		return domain.FavoriteView{}, apperror.Internalize("Falha ao buscar serviço favoritado.", err)
	}

	views, err := s.views(ctx, []domain.Favorite{fav}, []domain.Service{svc})
	if err != nil {
		return domain.FavoriteView{}, err
	}

	s.logger.Info("Favorito adicionado.", map[string]interface{}{"user_id": identity.UserID, "service_id": serviceID})
	return views[0], nil
}

// RemoveFavorite apaga o favorito do par (identidade, serviço).
func (s *Service) RemoveFavorite(ctx context.Context, identity *domain.Identity, serviceID int64) error {
	if err := s.gate.CanUnfavorite(ctx, identity, serviceID); err != nil {
		recordDenial("unfavorite", err)
		return err
	}

	if err := s.repo.DeleteFavorite(ctx, identity.UserID, serviceID); err != nil {
		if !apperror.IsNotFound(err) {
			s.logger.Error("Falha ao remover favorito.", err)
		}
		return apperror.Internalize("Falha interna ao remover favorito.", err)
	}

	s.logger.Info("Favorito removido.", map[string]interface{}{"user_id": identity.UserID, "service_id": serviceID})
	return nil
}

func (s *Service) views(ctx context.Context, favs []domain.Favorite, services []domain.Service) ([]domain.FavoriteView, error) {
	listings, err := s.listings.Listings(ctx, services)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.ServiceListing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}
	return enrich.Favorites(favs, byID), nil
}

func recordDenial(action string, err error) {
	if appErr, ok := apperror.AsAppError(err); ok {
		metrics.RecordAuthzDenial(action, appErr.Category())
	}
}
