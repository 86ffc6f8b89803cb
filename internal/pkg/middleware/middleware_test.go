package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"servilink/internal/domain"
	"servilink/internal/pkg/cache"
	"servilink/internal/pkg/logger"
	"servilink/internal/pkg/middleware"
	"servilink/internal/pkg/token"
)

func identityEcho(t *testing.T, got **domain.Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = middleware.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRequired(t *testing.T) {
	tokens := token.NewService("segredo", time.Hour)
	auth := middleware.NewAuth(tokens, logger.NewNop())

	var got *domain.Identity
	h := auth.Required(identityEcho(t, &got))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category":"UNAUTHENTICATED"`)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer lixo")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	signed, err := tokens.GenerateToken(5, "client")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(5), got.UserID)
	assert.Equal(t, domain.RoleClient, got.Role)
}

func TestAuthRequired_RejectsUnknownRole(t *testing.T) {
	tokens := token.NewService("segredo", time.Hour)
	auth := middleware.NewAuth(tokens, logger.NewNop())

	signed, err := tokens.GenerateToken(5, "superuser")
	require.NoError(t, err)

	var got *domain.Identity
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	auth.Required(identityEcho(t, &got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, got)
}

func TestAuthOptional(t *testing.T) {
	tokens := token.NewService("segredo", time.Hour)
	auth := middleware.NewAuth(tokens, logger.NewNop())

	var got *domain.Identity
	h := auth.Optional(identityEcho(t, &got))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, got)

	signed, err := tokens.GenerateToken(2, "provider")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, domain.RoleProvider, got.Role)
}

func TestRequireRoles(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := middleware.RequireRoles(domain.RoleAdmin)(ok)

	cases := []struct {
		name string
		id   *domain.Identity
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"client", &domain.Identity{UserID: 5, Role: domain.RoleClient}, http.StatusForbidden},
		{"admin", &domain.Identity{UserID: 1, Role: domain.RoleAdmin}, http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if c.id != nil {
				req = req.WithContext(middleware.WithIdentity(req.Context(), c.id))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, c.want, rec.Code)
		})
	}
}

func TestRequestIDAndAccessLog(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "info")

	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusCreated)
	})
	h := middleware.RequestID(middleware.AccessLog(log)(inner))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/services", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), seen)
	assert.Contains(t, buf.String(), `"status":201`)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
}

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := middleware.CORS([]string{"http://localhost:5173"})(ok)

	req := httptest.NewRequest(http.MethodOptions, "/v1/services", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/services", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLocalRateLimiter(t *testing.T) {
	limiter := middleware.NewLocalRateLimiter(2, time.Hour, logger.NewNop())
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := limiter.Handler(ok)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// MockCache simula o cache.Client.
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

func TestRedisRateLimiter(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	key := "rate-limit:10.0.0.1"

	serve := func(m *MockCache) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		middleware.RateLimiter(m, 3, time.Minute, logger.NewNop())(ok).ServeHTTP(rec, req)
		return rec
	}

	t.Run("first request opens window", func(t *testing.T) {
		m := new(MockCache)
		m.On("Incr", mock.Anything, key).Return(int64(1), nil).Once()
		m.On("Expire", mock.Anything, key, time.Minute).Return(nil).Once()

		rec := serve(m)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Remaining"))
		m.AssertExpectations(t)
	})

	t.Run("within limit keeps TTL", func(t *testing.T) {
		m := new(MockCache)
		m.On("Incr", mock.Anything, key).Return(int64(3), nil).Once()

		rec := serve(m)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		m.AssertNotCalled(t, "Expire", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("over limit rejects", func(t *testing.T) {
		m := new(MockCache)
		m.On("Incr", mock.Anything, key).Return(int64(4), nil).Once()

		rec := serve(m)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "RATE_LIMITED")
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("cache down lets request through", func(t *testing.T) {
		m := new(MockCache)
		m.On("Incr", mock.Anything, key).Return(int64(0), errors.New("connection refused")).Once()

		rec := serve(m)

		assert.Equal(t, http.StatusOK, rec.Code)
		m.AssertNotCalled(t, "Expire", mock.Anything, mock.Anything, mock.Anything)
	})
}

// counterCache é um cache.Client em memória com INCR atômico, como o Redis.
type counterCache struct {
	mu      sync.Mutex
	counts  map[string]int64
	expires int
}

func (c *counterCache) Get(ctx context.Context, key string) (string, error) {
	return "", cache.ErrCacheMiss
}

func (c *counterCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (c *counterCache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key], nil
}

func (c *counterCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expires++
	return nil
}

func (c *counterCache) Delete(ctx context.Context, key string) error { return nil }

func TestRedisRateLimiter_ConcurrentFirstRequestsShareWindow(t *testing.T) {
	const limit = 5
	const requests = 40
	c := &counterCache{counts: map[string]int64{}}
	h := middleware.RateLimiter(c, limit, time.Minute, logger.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }),
	)

	var wg sync.WaitGroup
	var mu sync.Mutex
	codes := map[int]int{}
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.0.0.9:5000"
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			mu.Lock()
			codes[rec.Code]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, codes[http.StatusOK])
	assert.Equal(t, requests-limit, codes[http.StatusTooManyRequests])
	assert.Equal(t, 1, c.expires)
}
