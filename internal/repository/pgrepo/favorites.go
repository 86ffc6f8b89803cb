package pgrepo

import (
	"context"
	"fmt"

	"servilink/internal/domain"
	apperror "servilink/internal/errors"
)

func (r *Repository) SaveFavorite(ctx context.Context, favorite domain.Favorite) (domain.Favorite, error) {
	ctxTimeout, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `INSERT INTO favorites (user_id, service_id)
                   VALUES ($1, $2)
                   RETURNING id, created_at`

	err := r.DB.QueryRowContext(ctxTimeout, query, favorite.UserID, favorite.ServiceID).
		Scan(&favorite.ID, &favorite.CreatedAt)
	if err != nil {
		switch pqCode(err) {
		case uniqueViolation:
			return domain.Favorite{}, apperror.NewConflictError("O serviço já está nos favoritos.")
		case foreignKeyViolation:
			return domain.Favorite{}, apperror.NewNotFoundError(fmt.Sprintf("Serviço %d ou usuário %d do favorito não encontrado.", favorite.ServiceID, favorite.UserID))
		}
		return domain.Favorite{}, r.dbError("failed to insert favorite", err)
	}
	return favorite, nil
}

func (r *Repository) DeleteFavorite(ctx context.Context, userID, serviceID int64) error {
	ctxTimeout, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM favorites WHERE user_id = $1 AND service_id = $2`, userID, serviceID)
	if err != nil {
		return r.dbError("failed to delete favorite", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return r.dbError("failed to read affected rows", err)
	}
	if affected == 0 {
		return apperror.NewNotFoundError("O serviço não está nos favoritos.")
	}
	return nil
}

func (r *Repository) FindFavoritesByUser(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	ctxTimeout, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT id, user_id, service_id, created_at FROM favorites WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, r.dbError("failed to query favorites", err)
	}
	defer rows.Close()

	out := make([]domain.Favorite, 0)
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.ServiceID, &f.CreatedAt); err != nil {
			return nil, r.dbError("failed to scan favorite", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, r.dbError("failed to iterate favorites", err)
	}
	return out, nil
}

func (r *Repository) FavoriteExists(ctx context.Context, userID, serviceID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND service_id = $2)`, userID, serviceID)
}

func (r *Repository) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	ctxTimeout, cancel := r.withTimeout(ctx)
	defer cancel()

	var ok bool
	if err := r.DB.QueryRowContext(ctxTimeout, query, args...).Scan(&ok); err != nil {
		return false, r.dbError("failed to check existence", err)
	}
	return ok, nil
}
