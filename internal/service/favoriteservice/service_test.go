package favoriteservice_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servilink/internal/authz"
	"servilink/internal/domain"
	apperror "servilink/internal/errors"
	"servilink/internal/pkg/logger"
	"servilink/internal/repository/memrepo"
	"servilink/internal/service/catalogservice"
	"servilink/internal/service/favoriteservice"
)

type env struct {
	store    *memrepo.Store
	svc      *favoriteservice.Service
	user     *domain.Identity
	provider domain.User
	service  domain.Service
}

func newEnv(t *testing.T) env {
	t.Helper()
	ctx := context.Background()
	store := memrepo.NewStore(logger.NewNop())
	gate := authz.NewGate(store)

	provider, err := store.SaveUser(ctx, domain.User{FullName: "María López", Email: "maria@servilink.com", Phone: "600", Role: domain.RoleProvider})
	require.NoError(t, err)
	client, err := store.SaveUser(ctx, domain.User{FullName: "Juan", Email: "juan@servilink.com", Role: domain.RoleClient})
	require.NoError(t, err)
	svc, err := store.SaveService(ctx, domain.Service{OwnerID: provider.ID, Title: "Limpieza", EstimatedPrice: 25})
	require.NoError(t, err)

	catalog := catalogservice.NewService(store, gate, nil, time.Minute, logger.NewNop())
	return env{
		store:    store,
		svc:      favoriteservice.NewService(store, gate, catalog, logger.NewNop()),
		user:     &domain.Identity{UserID: client.ID, Role: client.Role},
		provider: provider,
		service:  svc,
	}
}

func TestAddFavorite_TwiceIsConflict(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	view, err := e.svc.AddFavorite(ctx, e.user, e.service.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Service)
	assert.Equal(t, e.service.ID, view.Service.ID)

	_, err = e.svc.AddFavorite(ctx, e.user, e.service.ID)
	assert.IsType(t, &apperror.ConflictError{}, err)

	favs, err := e.store.FindFavoritesByUser(ctx, e.user.UserID)
	require.NoError(t, err)
	assert.Len(t, favs, 1)
}

func TestAddFavorite_Rejections(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.AddFavorite(ctx, nil, e.service.ID)
	assert.IsType(t, &apperror.UnauthorizedError{}, err)

	_, err = e.svc.AddFavorite(ctx, e.user, 404)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestRemoveFavorite(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	err := e.svc.RemoveFavorite(ctx, e.user, e.service.ID)
	assert.IsType(t, &apperror.NotFoundError{}, err)

	_, err = e.svc.AddFavorite(ctx, e.user, e.service.ID)
	require.NoError(t, err)
	require.NoError(t, e.svc.RemoveFavorite(ctx, e.user, e.service.ID))

	favs, err := e.svc.ListFavorites(ctx, e.user)
	require.NoError(t, err)
	assert.Empty(t, favs)

	err = e.svc.RemoveFavorite(ctx, nil, e.service.ID)
	assert.IsType(t, &apperror.UnauthorizedError{}, err)
}

func TestListFavorites_UsesSummaryProjection(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, err := e.svc.AddFavorite(ctx, e.user, e.service.ID)
	require.NoError(t, err)

	favs, err := e.svc.ListFavorites(ctx, e.user)

	require.NoError(t, err)
	require.Len(t, favs, 1)
	require.NotNil(t, favs[0].Service.Owner)
	assert.Equal(t, e.provider.FullName, favs[0].Service.Owner.FullName)

	raw, err := json.Marshal(favs)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), e.provider.Email)

	_, err = e.svc.ListFavorites(ctx, nil)
	assert.IsType(t, &apperror.UnauthorizedError{}, err)
}
