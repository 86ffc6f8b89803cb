package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"servilink/config"
	"servilink/internal/domain"
	"servilink/internal/pkg/cache"
	"servilink/internal/pkg/database"
	"servilink/internal/pkg/logger"
	"servilink/internal/pkg/middleware"
	"servilink/internal/pkg/token"

	"servilink/internal/api/catalog"
	"servilink/internal/api/comment"
	"servilink/internal/api/favorite"
	"servilink/internal/api/report"
	"servilink/internal/api/router"
	"servilink/internal/api/user"
	"servilink/internal/authz"
	"servilink/internal/repository/memrepo"
	"servilink/internal/repository/pgrepo"
	"servilink/internal/seed"
	"servilink/internal/service/catalogservice"
	"servilink/internal/service/commentservice"
	"servilink/internal/service/favoriteservice"
	"servilink/internal/service/reportservice"
	"servilink/internal/service/userservice"
)

// @title Servilink API
// @version 1.0
// @description Marketplace de serviços: catálogo, comentários, favoritos e denúncias.
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		stdlog.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		stdlog.Fatalf("❌ Erro de Configuração: %v", err)
	}

	log := logger.NewDevelopmentLogger(cfg.LogLevel)
	if cfg.IsProduction() {
		log = logger.NewLogger(cfg.LogLevel)
	}
	log.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment, "storage": cfg.StorageDriver})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Armazenamento
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Falha ao inicializar o armazenamento.", err)
	}
	defer closeStore()

	if cfg.SeedDemoData {
		if err := seed.Load(ctx, store, bcrypt.DefaultCost, log); err != nil {
			log.Fatal("Falha ao carregar dados de demonstração.", err)
		}
	}

	// 2. Cache (Redis). Sem REDIS_ADDR o cache fica desligado e o rate limit é local.
	var cacheClient cache.Client
	var rateLimit func(http.Handler) http.Handler
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.CacheTimeout)
		if err != nil {
			log.Fatal("Falha ao conectar ao Redis.", err)
		}
		defer redisClient.Close()
		cacheClient = redisClient
		rateLimit = middleware.RateLimiter(redisClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod, log)
		log.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
	} else {
		local := middleware.NewLocalRateLimiter(cfg.RateLimitMaxRequests, cfg.RateLimitPeriod, log)
		go cleanupLoop(ctx, local, cfg.RateLimitPeriod)
		rateLimit = local.Handler
		log.Warn("REDIS_ADDR vazio: cache de destaques desligado, rate limit em memória.", nil)
	}

	// 3. Injeção de dependências: Repository -> Gate -> Service -> Handler
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	gate := authz.NewGate(store)

	catalogSvc := catalogservice.NewService(store, gate, cacheClient, cfg.FeaturedCacheTTL, log)
	commentSvc := commentservice.NewService(store, gate, catalogSvc, log)
	favoriteSvc := favoriteservice.NewService(store, gate, catalogSvc, log)
	reportSvc := reportservice.NewService(store, gate, log)
	userSvc := userservice.NewService(store, tokenSvc, catalogSvc, favoriteSvc, log)
	log.Debug("Serviços inicializados.", nil)

	handler := router.NewRouter(router.Handlers{
		Catalog:  catalog.NewHandler(catalogSvc, log),
		Comment:  comment.NewHandler(commentSvc, log),
		Favorite: favorite.NewHandler(favoriteSvc, log),
		Report:   report.NewHandler(reportSvc, log),
		User:     user.NewHandler(userSvc, log),
	}, router.Options{
		Auth:           middleware.NewAuth(tokenSvc, log),
		RateLimit:      rateLimit,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 4. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor Servilink ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	<-ctx.Done()
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}

// openStore escolhe o backend pelo STORAGE_DRIVER. O closer devolvido é sempre não-nil.
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (domain.Store, func(), error) {
	if cfg.StorageDriver != config.StoragePostgres {
		log.Info("Usando armazenamento em memória.", nil)
		return memrepo.NewStore(log), func() {}, nil
	}

	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, cfg.DBTimeout, log)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if err := db.Close(); err != nil {
			log.Error("Falha ao fechar o banco de dados.", err)
		}
	}
	return pgrepo.NewRepository(db, cfg.DBTimeout, log), closer, nil
}

// cleanupLoop descarta periodicamente os limitadores por IP do rate limit local.
func cleanupLoop(ctx context.Context, l *middleware.LocalRateLimiter, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup(10000)
		}
	}
}
