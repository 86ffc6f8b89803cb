package userservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"servilink/internal/authz"
	"servilink/internal/domain"
	apperror "servilink/internal/errors"
	"servilink/internal/pkg/logger"
	"servilink/internal/pkg/token"
	"servilink/internal/repository/memrepo"
	"servilink/internal/service/catalogservice"
	"servilink/internal/service/favoriteservice"
	"servilink/internal/service/userservice"
)

// MockUserRepository é uma implementação mock do repositório de usuários.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, id int64) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func newTestLogger() logger.Logger {
	return logger.NewNop()
}

func newMockedService(repo *MockUserRepository) *userservice.UserService {
	return userservice.NewService(repo, token.NewService("segredo", time.Hour), nil, nil, newTestLogger())
}

// --- Register ---

func TestRegister_Success(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newMockedService(repo)

	repo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "ana@servilink.com" &&
			u.Role == domain.RoleClient &&
			u.Avatar == domain.DefaultAvatar &&
			u.IsActive &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
	})).Return(domain.User{ID: 7, Email: "ana@servilink.com", Role: domain.RoleClient}, nil)

	user, err := svc.Register(context.Background(), domain.UserRegistration{
		FullName: "Ana Martínez",
		Email:    " ana@servilink.com ",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	repo.AssertExpectations(t)
}

func TestRegister_ValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		reg  domain.UserRegistration
	}{
		{"short name", domain.UserRegistration{FullName: "A", Email: "a@b.com", Password: "password123"}},
		{"bad email", domain.UserRegistration{FullName: "Ana", Email: "ana-at-servilink", Password: "password123"}},
		{"display-name email", domain.UserRegistration{FullName: "Ana", Email: "Ana <ana@servilink.com>", Password: "password123"}},
		{"short password", domain.UserRegistration{FullName: "Ana", Email: "ana@servilink.com", Password: "12345"}},
		{"admin self-register", domain.UserRegistration{FullName: "Ana", Email: "ana@servilink.com", Password: "password123", Role: domain.RoleAdmin}},
		{"unknown role", domain.UserRegistration{FullName: "Ana", Email: "ana@servilink.com", Password: "password123", Role: "guest"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			svc := newMockedService(repo)

			_, err := svc.Register(context.Background(), c.reg)

			assert.IsType(t, &apperror.ValidationError{}, err)
			repo.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
		})
	}
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newMockedService(repo)
	repo.On("SaveUser", mock.Anything, mock.Anything).Return(domain.User{}, apperror.NewConflictError("O email já está em uso."))

	_, err := svc.Register(context.Background(), domain.UserRegistration{FullName: "Ana", Email: "ana@servilink.com", Password: "password123", Role: domain.RoleProvider})

	assert.IsType(t, &apperror.ConflictError{}, err)
}

func TestRegister_RepoError(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newMockedService(repo)
	repo.On("SaveUser", mock.Anything, mock.Anything).Return(domain.User{}, errors.New("database connection failed"))

	_, err := svc.Register(context.Background(), domain.UserRegistration{FullName: "Ana", Email: "ana@servilink.com", Password: "password123"})

	assert.IsType(t, &apperror.InternalError{}, err)
	assert.Contains(t, err.Error(), "Falha interna ao registrar usuário")
}

// --- Login ---

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin_Success(t *testing.T) {
	repo := new(MockUserRepository)
	tokens := token.NewService("segredo", time.Hour)
	svc := userservice.NewService(repo, tokens, nil, nil, newTestLogger())

	stored := domain.User{ID: 5, FullName: "Juan", Email: "juan@servilink.com", PasswordHash: hashed(t, "password123"), Role: domain.RoleClient, IsActive: true}
	repo.On("FindUserByEmail", mock.Anything, "juan@servilink.com").Return(stored, nil)

	resp, err := svc.Login(context.Background(), "juan@servilink.com", "password123")

	require.NoError(t, err)
	assert.Equal(t, domain.RoleClient, resp.Role)
	assert.Equal(t, "juan@servilink.com", resp.User.Email)

	claims, err := tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(5), claims.UserID)
}

func TestLogin_Failures(t *testing.T) {
	stored := domain.User{ID: 5, Email: "juan@servilink.com", PasswordHash: hashed(t, "password123"), Role: domain.RoleClient, IsActive: true}
	inactive := stored
	inactive.IsActive = false

	t.Run("missing fields", func(t *testing.T) {
		repo := new(MockUserRepository)
		_, err := newMockedService(repo).Login(context.Background(), "", "")
		assert.IsType(t, &apperror.UnauthorizedError{}, err)
		repo.AssertNotCalled(t, "FindUserByEmail", mock.Anything, mock.Anything)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindUserByEmail", mock.Anything, "nadie@servilink.com").Return(domain.User{}, apperror.NewNotFoundError("x"))
		_, err := newMockedService(repo).Login(context.Background(), "nadie@servilink.com", "password123")
		assert.IsType(t, &apperror.UnauthorizedError{}, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindUserByEmail", mock.Anything, stored.Email).Return(stored, nil)
		_, err := newMockedService(repo).Login(context.Background(), stored.Email, "errada")
		assert.IsType(t, &apperror.UnauthorizedError{}, err)
	})

	t.Run("inactive account", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindUserByEmail", mock.Anything, stored.Email).Return(inactive, nil)
		_, err := newMockedService(repo).Login(context.Background(), stored.Email, "password123")
		assert.IsType(t, &apperror.ForbiddenError{}, err)
	})
}

// --- Profile ---

func TestProfile_ProviderSeesServicesAndFavorites(t *testing.T) {
	ctx := context.Background()
	store := memrepo.NewStore(logger.NewNop())
	gate := authz.NewGate(store)
	catalog := catalogservice.NewService(store, gate, nil, time.Minute, newTestLogger())
	favorites := favoriteservice.NewService(store, gate, catalog, newTestLogger())
	svc := userservice.NewService(store, token.NewService("segredo", time.Hour), catalog, favorites, newTestLogger())

	provider, err := svc.Register(ctx, domain.UserRegistration{FullName: "María López", Email: "maria@servilink.com", Password: "password123", Role: domain.RoleProvider, Phone: "600"})
	require.NoError(t, err)
	id := &domain.Identity{UserID: provider.ID, Role: provider.Role}

	published, err := catalog.CreateService(ctx, id, domain.ServiceDraft{Title: "Limpieza", Description: "d", Category: "limpieza", Location: "Madrid", EstimatedPrice: 25})
	require.NoError(t, err)
	_, err = favorites.AddFavorite(ctx, id, published.ID)
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, "maria@servilink.com", profile.Email)
	assert.Equal(t, "600", profile.Phone)
	assert.Equal(t, domain.RoleProvider, profile.Role)
	require.Len(t, profile.Services, 1)
	assert.Equal(t, published.ID, profile.Services[0].ID)
	require.Len(t, profile.Favorites, 1)
	assert.Equal(t, published.ID, profile.Favorites[0].ServiceID)
}

func TestProfile_ClientHasNoServices(t *testing.T) {
	ctx := context.Background()
	store := memrepo.NewStore(logger.NewNop())
	gate := authz.NewGate(store)
	catalog := catalogservice.NewService(store, gate, nil, time.Minute, newTestLogger())
	favorites := favoriteservice.NewService(store, gate, catalog, newTestLogger())
	svc := userservice.NewService(store, token.NewService("segredo", time.Hour), catalog, favorites, newTestLogger())

	client, err := svc.Register(ctx, domain.UserRegistration{FullName: "Juan", Email: "juan@servilink.com", Password: "password123"})
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, &domain.Identity{UserID: client.ID, Role: client.Role})

	require.NoError(t, err)
	assert.Empty(t, profile.Services)
	assert.NotNil(t, profile.Services)
	assert.Empty(t, profile.Favorites)

	_, err = svc.Profile(ctx, nil)
	assert.IsType(t, &apperror.UnauthorizedError{}, err)
}
