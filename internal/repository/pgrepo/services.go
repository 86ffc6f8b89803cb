package pgrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"servilink/internal/domain"
	apperror "servilink/internal/errors"
)

const serviceColumns = `id, owner_id, title, description, category, subcategory, location, estimated_price, schedule, available, published_at, images`

func scanService(s scanner) (domain.Service, error) {
	var svc domain.Service
	var images pq.StringArray
	err := s.Scan(&svc.ID, &svc.OwnerID, &svc.Title, &svc.Description, &svc.Category, &svc.Subcategory,
		&svc.Location, &svc.EstimatedPrice, &svc.Schedule, &svc.Available, &svc.PublishedAt, &images)
	svc.Images = append([]string{}, images...)
	return svc, err
}

// SaveService confere o dono e insere o serviço na mesma transação.
func (r *Repository) SaveService(ctx context.Context, service domain.Service) (domain.Service, error) {
	r.logger.Debug("Iniciando SaveService no repositório.", map[string]interface{}{"owner_id": service.OwnerID})

	ctxTimeout, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return domain.Service{}, r.dbError("failed to start tx", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var role domain.UserRole
	err = tx.QueryRowContext(ctxTimeout, `SELECT role FROM users WHERE id = $1 FOR SHARE`, service.OwnerID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Service{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %d não encontrado.", service.OwnerID))
	}
	if err != nil {
		return domain.Service{}, r.dbError("failed to load service owner", err)
	}
	if role != domain.RoleProvider {
		err = apperror.NewForbiddenError("Somente provedores podem publicar serviços.")
		return domain.Service{}, err
	}

	if service.Images == nil {
		service.Images = []string{}
	}

	const insertSQL = `INSERT INTO services (owner_id, title, description, category, subcategory, location, estimated_price, schedule, available, images)
                       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                       RETURNING id, published_at`

	err = tx.QueryRowContext(ctxTimeout, insertSQL,
		service.OwnerID, service.Title, service.Description, service.Category, service.Subcategory,
		service.Location, service.EstimatedPrice, service.Schedule, service.Available, pq.Array(service.Images),
	).Scan(&service.ID, &service.PublishedAt)
	if err != nil {
		return domain.Service{}, r.dbError("failed to insert service", err)
	}

	if err = tx.Commit(); err != nil {
		return domain.Service{}, r.dbError("failed to commit service", err)
	}

	r.logger.Info("Serviço salvo no repositório.", map[string]interface{}{"service_id": service.ID})
	return service, nil
}

func (r *Repository) FindServiceByID(ctx context.Context, id int64) (domain.Service, error) {
	ctxTimeout, cancel := r.withTimeout(ctx)
	defer cancel()

	svc, err := scanService(r.DB.QueryRowContext(ctxTimeout, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Service{}, apperror.NewNotFoundError(fmt.Sprintf("Serviço com ID %d não encontrado.", id))
		}
		return domain.Service{}, r.dbError("failed to find service", err)
	}
	return svc, nil
}

func (r *Repository) FindAllServices(ctx context.Context) ([]domain.Service, error) {
	return r.queryServices(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY id`)
}

func (r *Repository) FindServicesByOwner(ctx context.Context, ownerID int64) ([]domain.Service, error) {
	return r.queryServices(ctx, `SELECT `+serviceColumns+` FROM services WHERE owner_id = $1 ORDER BY id`, ownerID)
}

func (r *Repository) queryServices(ctx context.Context, query string, args ...interface{}) ([]domain.Service, error) {
	ctxTimeout, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		return nil, r.dbError("failed to query services", err)
	}
	defer rows.Close()

	out := make([]domain.Service, 0)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, r.dbError("failed to scan service", err)
		}
		out = append(out, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, r.dbError("failed to iterate services", err)
	}
	return out, nil
}
