package catalogservice_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"servilink/internal/authz"
	"servilink/internal/catalog"
	"servilink/internal/domain"
	apperror "servilink/internal/errors"
	"servilink/internal/pkg/cache"
	"servilink/internal/pkg/logger"
	"servilink/internal/repository/memrepo"
	"servilink/internal/service/catalogservice"
)

// MockCache é uma implementação mock de cache.Client.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	args := m.Called(ctx, key, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type env struct {
	store    *memrepo.Store
	svc      *catalogservice.Service
	provider domain.User
	client   domain.User
}

func newEnv(t *testing.T, c cache.Client) env {
	t.Helper()
	ctx := context.Background()
	store := memrepo.NewStore(logger.NewNop())

	provider, err := store.SaveUser(ctx, domain.User{FullName: "María López", Email: "maria@servilink.com", Phone: "600", Role: domain.RoleProvider, City: "Madrid"})
	require.NoError(t, err)
	client, err := store.SaveUser(ctx, domain.User{FullName: "Juan Pérez", Email: "juan@servilink.com", Phone: "605", Role: domain.RoleClient})
	require.NoError(t, err)

	svc := catalogservice.NewService(store, authz.NewGate(store), c, time.Minute, logger.NewNop())
	return env{store: store, svc: svc, provider: provider, client: client}
}

func (e env) publish(t *testing.T, title string, price float64) domain.Service {
	t.Helper()
	created, err := e.svc.CreateService(context.Background(), &domain.Identity{UserID: e.provider.ID, Role: domain.RoleProvider}, domain.ServiceDraft{
		Title: title, Description: "desc", Category: "limpieza", Location: "Madrid, España", EstimatedPrice: price,
	})
	require.NoError(t, err)
	return created
}

func (e env) comment(t *testing.T, serviceID int64, rating int) {
	t.Helper()
	_, err := e.store.SaveComment(context.Background(), domain.Comment{ServiceID: serviceID, AuthorID: e.client.ID, Rating: rating, Body: "ok"})
	require.NoError(t, err)
}

func float(f float64) *float64 { return &f }

// --- CreateService ---

func TestCreateService_Success(t *testing.T) {
	e := newEnv(t, nil)

	created := e.publish(t, "Limpieza profesional de hogares", 25)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, e.provider.ID, created.OwnerID)
	assert.True(t, created.Available)
	assert.NotNil(t, created.Images)
}

func TestCreateService_RespectsExplicitAvailability(t *testing.T) {
	e := newEnv(t, nil)
	no := false

	created, err := e.svc.CreateService(context.Background(), &domain.Identity{UserID: e.provider.ID, Role: domain.RoleProvider}, domain.ServiceDraft{
		Title: "t", Description: "d", Category: "salud", Location: "Madrid", Available: &no,
	})

	require.NoError(t, err)
	assert.False(t, created.Available)
}

func TestCreateService_Rejections(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	valid := domain.ServiceDraft{Title: "t", Description: "d", Category: "salud", Location: "Madrid", EstimatedPrice: 10}
	providerID := &domain.Identity{UserID: e.provider.ID, Role: domain.RoleProvider}

	_, err := e.svc.CreateService(ctx, nil, valid)
	assert.IsType(t, &apperror.UnauthorizedError{}, err)

	_, err = e.svc.CreateService(ctx, &domain.Identity{UserID: e.client.ID, Role: domain.RoleClient}, valid)
	assert.IsType(t, &apperror.ForbiddenError{}, err)

	missingTitle := valid
	missingTitle.Title = "  "
	_, err = e.svc.CreateService(ctx, providerID, missingTitle)
	assert.IsType(t, &apperror.ValidationError{}, err)
	assert.Contains(t, err.Error(), "title")

	negative := valid
	negative.EstimatedPrice = -1
	_, err = e.svc.CreateService(ctx, providerID, negative)
	assert.IsType(t, &apperror.ValidationError{}, err)

	all, err := e.store.FindAllServices(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateService_InvalidatesFeaturedCache(t *testing.T) {
	m := new(MockCache)
	m.On("Delete", mock.Anything, catalogservice.FeaturedCacheKey).Return(nil).Once()
	e := newEnv(t, m)

	e.publish(t, "Electricista", 40)

	m.AssertExpectations(t)
}

// --- ListServices ---

func TestListServices_PriceWindowScenario(t *testing.T) {
	e := newEnv(t, nil)
	svc := e.publish(t, "Limpieza", 25)
	e.comment(t, svc.ID, 5)

	got, err := e.svc.ListServices(context.Background(), catalog.Filter{PriceMin: float(20), PriceMax: float(30)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, svc.ID, got[0].ID)
	assert.Equal(t, 5.0, got[0].Rating)
	require.NotNil(t, got[0].Owner)
	assert.Equal(t, e.provider.FullName, got[0].Owner.FullName)

	got, err = e.svc.ListServices(context.Background(), catalog.Filter{PriceMin: float(30)})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListServices_ListingsNeverCarryContact(t *testing.T) {
	e := newEnv(t, nil)
	e.publish(t, "Limpieza", 25)

	got, err := e.svc.ListServices(context.Background(), catalog.Filter{})
	require.NoError(t, err)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), e.provider.Email)
	assert.NotContains(t, string(raw), `"phone"`)
}

func TestListServices_InvalidFilter(t *testing.T) {
	e := newEnv(t, nil)

	_, err := e.svc.ListServices(context.Background(), catalog.Filter{Sort: "popular"})
	assert.IsType(t, &apperror.ValidationError{}, err)

	_, err = e.svc.ListServices(context.Background(), catalog.Filter{PriceMin: float(50), PriceMax: float(10)})
	assert.IsType(t, &apperror.ValidationError{}, err)
}

// --- ListFeatured ---

func TestListFeatured_CacheMissComputesAndStores(t *testing.T) {
	m := new(MockCache)
	m.On("Delete", mock.Anything, catalogservice.FeaturedCacheKey).Return(nil)
	e := newEnv(t, m)
	for i, rating := range []int{3, 5, 4, 2, 1} {
		svc := e.publish(t, "Servicio", float64(10*(i+1)))
		e.comment(t, svc.ID, rating)
	}

	m.On("Get", mock.Anything, catalogservice.FeaturedCacheKey).Return("", cache.ErrCacheMiss).Once()
	m.On("Set", mock.Anything, catalogservice.FeaturedCacheKey, mock.AnythingOfType("string"), time.Minute).Return(nil).Once()

	got, err := e.svc.ListFeatured(context.Background())
	require.NoError(t, err)

	require.Len(t, got, catalog.FeaturedLimit)
	ids := []int64{got[0].ID, got[1].ID, got[2].ID, got[3].ID}
	assert.Equal(t, []int64{2, 3, 1, 4}, ids)
	m.AssertExpectations(t)
}

func TestListFeatured_CacheHitSkipsStore(t *testing.T) {
	m := new(MockCache)
	cached := []domain.ServiceListing{{Service: domain.Service{ID: 99, Title: "Cacheado"}, Rating: 4.5}}
	raw, err := json.Marshal(cached)
	require.NoError(t, err)
	m.On("Get", mock.Anything, catalogservice.FeaturedCacheKey).Return(string(raw), nil).Once()
	e := newEnv(t, m)

	got, err := e.svc.ListFeatured(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(99), got[0].ID)
	m.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListFeatured_CacheErrorFallsBackToStore(t *testing.T) {
	m := new(MockCache)
	m.On("Delete", mock.Anything, mock.Anything).Return(nil)
	e := newEnv(t, m)
	e.publish(t, "Servicio", 10)

	m.On("Get", mock.Anything, catalogservice.FeaturedCacheKey).Return("", errors.New("connection refused")).Once()
	m.On("Set", mock.Anything, catalogservice.FeaturedCacheKey, mock.Anything, time.Minute).Return(errors.New("connection refused")).Once()

	got, err := e.svc.ListFeatured(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// --- GetServiceDetail ---

func TestGetServiceDetail_RegistersAccessForIdentity(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	svc := e.publish(t, "Limpieza", 25)

	_, err := e.svc.GetServiceDetail(ctx, svc.ID, nil)
	require.NoError(t, err)
	has, err := e.store.HasAccess(ctx, e.client.ID, svc.ID)
	require.NoError(t, err)
	assert.False(t, has)

	detail, err := e.svc.GetServiceDetail(ctx, svc.ID, &domain.Identity{UserID: e.client.ID, Role: domain.RoleClient})
	require.NoError(t, err)
	has, err = e.store.HasAccess(ctx, e.client.ID, svc.ID)
	require.NoError(t, err)
	assert.True(t, has)

	require.NotNil(t, detail.Owner)
	assert.Equal(t, e.provider.Email, detail.Owner.Email)
}

func TestGetServiceDetail_CommentsAndRating(t *testing.T) {
	e := newEnv(t, nil)
	svc := e.publish(t, "Limpieza", 25)
	for _, r := range []int{5, 4, 3} {
		e.comment(t, svc.ID, r)
	}

	detail, err := e.svc.GetServiceDetail(context.Background(), svc.ID, nil)

	require.NoError(t, err)
	assert.Equal(t, 4.0, detail.Rating)
	require.Len(t, detail.Comments, 3)
	assert.Equal(t, e.client.FullName, detail.Comments[0].Author.FullName)

	raw, err := json.Marshal(detail.Comments)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), e.client.Email)
}

func TestGetServiceDetail_NotFound(t *testing.T) {
	e := newEnv(t, nil)

	_, err := e.svc.GetServiceDetail(context.Background(), 42, &domain.Identity{UserID: e.client.ID, Role: domain.RoleClient})

	assert.IsType(t, &apperror.NotFoundError{}, err)
	has, hasErr := e.store.HasAccess(context.Background(), e.client.ID, 42)
	require.NoError(t, hasErr)
	assert.False(t, has)
}

// --- Categories / ListByOwner ---

func TestListCategories(t *testing.T) {
	e := newEnv(t, nil)

	cats := e.svc.ListCategories(context.Background())

	require.Len(t, cats, 6)
	assert.Equal(t, "limpieza", cats[0].ID)
	assert.Equal(t, 124, cats[0].Count)
}

func TestListByOwner(t *testing.T) {
	e := newEnv(t, nil)
	e.publish(t, "Uno", 10)
	e.publish(t, "Dos", 20)

	got, err := e.svc.ListByOwner(context.Background(), e.provider.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = e.svc.ListByOwner(context.Background(), e.client.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}
