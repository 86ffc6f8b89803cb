package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Drivers de armazenamento suportados.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config armazena todas as configurações da API Servilink.
type Config struct {
	// Geral
	Port           string
	Environment    string
	LogLevel       string
	AllowedOrigins []string

	// Armazenamento
	StorageDriver string
	DatabaseURL   string
	DBTimeout     time.Duration
	SeedDemoData  bool

	// Cache (Redis). RedisAddr vazio desliga o cache e usa o rate limiter local.
	RedisAddr        string
	CacheTimeout     time.Duration
	FeaturedCacheTTL time.Duration

	// Segurança (JWT)
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		// 1. Geral
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),

		// 2. Armazenamento
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DBTimeout:     getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,
		SeedDemoData:  getBoolEnv("SEED_DEMO_DATA", true),

		// 3. Cache (Redis)
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		CacheTimeout:     getDurationEnv("CACHE_TIMEOUT_SEC", 10) * time.Second,
		FeaturedCacheTTL: getDurationEnv("FEATURED_CACHE_TTL_SEC", 60) * time.Second,

		// 4. Segurança (JWT)
		JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
		TokenExpiry:  getDurationEnv("JWT_EXPIRY_MIN", 60) * time.Minute,

		// 5. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecretKey == "" {
		return fmt.Errorf("a variável de ambiente JWT_SECRET_KEY deve ser definida")
	}
	switch c.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL é obrigatória quando STORAGE_DRIVER=%s", StoragePostgres)
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER desconhecido: %q", c.StorageDriver)
	}
	if c.RateLimitMaxRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX_REQUESTS deve ser positivo")
	}
	durations := []struct {
		env   string
		value time.Duration
	}{
		{"RATE_LIMIT_PERIOD_MIN", c.RateLimitPeriod},
		{"DB_TIMEOUT_SEC", c.DBTimeout},
		{"CACHE_TIMEOUT_SEC", c.CacheTimeout},
		{"FEATURED_CACHE_TTL_SEC", c.FeaturedCacheTTL},
		{"JWT_EXPIRY_MIN", c.TokenExpiry},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%s deve ser positivo", d.env)
		}
	}
	return nil
}

// IsProduction indica ENV=production (logs JSON em vez de console).
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func getBoolEnv(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é booleano. Usando padrão (%t).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// splitList separa uma lista por vírgulas, descartando itens vazios.
func splitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
