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

const userColumns = `id, full_name, email, password_hash, role, country, city, phone, registered_at, is_active, avatar`

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	err := s.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &u.Country, &u.City, &u.Phone, &u.RegisteredAt, &u.IsActive, &u.Avatar)
	return u, err
}

// SaveUser insere o usuário. Email duplicado (sem diferenciar maiúsculas) vira ConflictError.
func (r *Repository) SaveUser(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando SaveUser no repositório.", map[string]interface{}{"email": user.Email})

	ctxTimeout, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `INSERT INTO users (full_name, email, password_hash, role, country, city, phone, is_active, avatar)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING id, registered_at`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		user.FullName, user.Email, user.PasswordHash, user.Role,
		user.Country, user.City, user.Phone, user.IsActive, user.Avatar,
	).Scan(&user.ID, &user.RegisteredAt)
	if err != nil {
		if pqCode(err) == uniqueViolation {
			return domain.User{}, apperror.NewConflictError(fmt.Sprintf("O email '%s' já está em uso.", user.Email))
		}
		return domain.User{}, r.dbError("failed to insert user", err)
	}

	return user, nil
}

func (r *Repository) FindUserByID(ctx context.Context, id int64) (domain.User, error) {
	ctxTimeout, cancel := r.withTimeout(ctx)
	defer cancel()

	user, err := scanUser(r.DB.QueryRowContext(ctxTimeout, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %d não encontrado.", id))
		}
		return domain.User{}, r.dbError("failed to find user by id", err)
	}
	return user, nil
}

func (r *Repository) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	ctxTimeout, cancel := r.withTimeout(ctx)
	defer cancel()

	user, err := scanUser(r.DB.QueryRowContext(ctxTimeout, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com email '%s' não encontrado", email))
		}
		return domain.User{}, r.dbError("failed to find user by email", err)
	}
	return user, nil
}

func (r *Repository) FindUsersByIDs(ctx context.Context, ids []int64) (map[int64]domain.User, error) {
	out := make(map[int64]domain.User, len(ids))
	ids = int64Set(ids)
	if len(ids) == 0 {
		return out, nil
	}

	ctxTimeout, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, r.dbError("failed to find users by ids", err)
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, r.dbError("failed to scan user", err)
		}
		out[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, r.dbError("failed to iterate users", err)
	}
	return out, nil
}
