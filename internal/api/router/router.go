package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "servilink/docs"
	"servilink/internal/api/catalog"
	"servilink/internal/api/comment"
	"servilink/internal/api/favorite"
	"servilink/internal/api/report"
	"servilink/internal/api/user"
	"servilink/internal/domain"
	"servilink/internal/pkg/logger"
	"servilink/internal/pkg/metrics"
	"servilink/internal/pkg/middleware"
)

// Handlers reúne os Handlers já inicializados por injeção de dependências.
type Handlers struct {
	Catalog  *catalog.Handler
	Comment  *comment.Handler
	Favorite *favorite.Handler
	Report   *report.Handler
	User     *user.Handler
}

// Options configura os middlewares globais.
type Options struct {
	Auth           *middleware.Auth
	RateLimit      func(http.Handler) http.Handler // nil desliga o limite
	AllowedOrigins []string
	Logger         logger.Logger
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(opts.Logger))
	r.Use(metrics.InstrumentHandler)
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.Get("/ping", PingHandler)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/v1", func(r chi.Router) {
		if opts.RateLimit != nil {
			r.Use(opts.RateLimit)
		}

		r.Post("/register", h.User.RegisterUserHandler)
		r.Post("/login", h.User.LoginUserHandler)
		r.Get("/categories", h.Catalog.CategoriesHandler)

		r.Route("/services", func(r chi.Router) {
			r.Get("/", h.Catalog.ListServicesHandler)
			r.Get("/featured", h.Catalog.FeaturedHandler)
			r.With(opts.Auth.Required).Post("/", h.Catalog.CreateServiceHandler)

			r.Route("/{id}", func(r chi.Router) {
				r.With(opts.Auth.Optional).Get("/", h.Catalog.GetServiceHandler)
				r.Get("/comments", h.Comment.ListCommentsHandler)
				r.With(opts.Auth.Required).Post("/comments", h.Comment.CreateCommentHandler)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(opts.Auth.Required)

			r.Get("/profile", h.User.ProfileHandler)
			r.Get("/favorites", h.Favorite.ListFavoritesHandler)
			r.Post("/favorites", h.Favorite.AddFavoriteHandler)
			r.Delete("/favorites/{serviceID}", h.Favorite.RemoveFavoriteHandler)
			r.Post("/reports", h.Report.CreateReportHandler)

			r.With(middleware.RequireRoles(domain.RoleAdmin)).Get("/admin/reports", h.Report.ListReportsHandler)
		})
	})

	return r
}

// PingHandler é o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
