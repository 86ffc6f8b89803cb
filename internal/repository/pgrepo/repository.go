// Package pgrepo implementa domain.Store sobre PostgreSQL (lib/pq).
// Identificadores vêm de BIGSERIAL e timestamps do DEFAULT now() do servidor;
// unicidade de email e de favoritos é garantida por índices únicos.
package pgrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"servilink/internal/domain"
	apperror "servilink/internal/errors"
	"servilink/internal/pkg/logger"
)

// Códigos SQLSTATE tratados explicitamente.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Repository implementa domain.Store.
type Repository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewRepository cria o repositório Postgres, injetando o pool de conexões.
func NewRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *Repository {
	return &Repository{DB: db, DBTimeout: dbTimeout, logger: log}
}

func (r *Repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.DBTimeout)
}

// pqCode devolve o SQLSTATE de um erro do driver, ou "" se não for um *pq.Error.
func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// scanner abstrai *sql.Row e *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// int64Set agrupa IDs únicos para consultas com ANY($1).
func int64Set(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (r *Repository) dbError(msg string, err error) error {
	r.logger.Error(msg, err)
	return apperror.NewDBError(msg, err)
}

var _ domain.Store = (*Repository)(nil)
