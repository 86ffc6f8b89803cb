package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	apperror "servilink/internal/errors"
	"servilink/internal/pkg/cache"
	"servilink/internal/pkg/logger"
)

// RateLimiter limita requisições por IP com uma janela fixa no Redis,
// compartilhada entre todas as instâncias da API.
func RateLimiter(client cache.Client, limit int, window time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "rate-limit:" + clientIP(r)
			ctx := r.Context()

			count, err := client.Incr(ctx, key)
			if err != nil {
				// Redis indisponível não derruba a API.
				log.Warn("Rate limit ignorado: cache indisponível.", map[string]interface{}{"error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				// Primeira requisição da janela: só ela define o TTL.
				if err := client.Expire(ctx, key, window); err != nil {
					log.Warn("Falha ao iniciar janela de rate limit.", map[string]interface{}{"error": err.Error()})
				}
			}

			if count > int64(limit) {
				w.Header().Set("X-RateLimit-Remaining", "0")
				writeError(w, newRateLimitError())
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(limit)-count, 10))
			next.ServeHTTP(w, r)
		})
	}
}

// LocalRateLimiter é o limitador em processo usado quando o Redis está desligado.
// Cada IP recebe um token bucket que repõe limit tokens por janela.
type LocalRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	logger   logger.Logger
}

func NewLocalRateLimiter(limit int, window time.Duration, log logger.Logger) *LocalRateLimiter {
	return &LocalRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(float64(limit) / window.Seconds()),
		burst:    limit,
		logger:   log,
	}
}

func (l *LocalRateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters[key] = lim
	}
	return lim
}

// Handler aplica o limite por IP.
func (l *LocalRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !l.limiter(ip).Allow() {
			l.logger.Debug("Rate limit excedido.", map[string]interface{}{"ip": ip, "path": r.URL.Path})
			writeError(w, newRateLimitError())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Cleanup descarta os limitadores quando o mapa cresce demais.
func (l *LocalRateLimiter) Cleanup(maxKeys int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.limiters) > maxKeys {
		l.limiters = make(map[string]*rate.Limiter)
	}
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// rateLimitError é o único erro da API que mapeia para 429.
type rateLimitError struct{}

func newRateLimitError() apperror.AppError { return &rateLimitError{} }
func (e *rateLimitError) Error() string    { return "Limite de requisições excedido." }
func (e *rateLimitError) Category() string { return "RATE_LIMITED" }
func (e *rateLimitError) HTTPStatus() int  { return http.StatusTooManyRequests }
func (e *rateLimitError) Unwrap() error    { return nil }
