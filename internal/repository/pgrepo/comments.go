package pgrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"servilink/internal/domain"
	apperror "servilink/internal/errors"
)

const commentColumns = `id, service_id, author_id, rating, body, created_at`

func scanComment(s scanner) (domain.Comment, error) {
	var c domain.Comment
	err := s.Scan(&c.ID, &c.ServiceID, &c.AuthorID, &c.Rating, &c.Body, &c.CreatedAt)
	return c, err
}

func (r *Repository) SaveComment(ctx context.Context, comment domain.Comment) (domain.Comment, error) {
	ctxTimeout, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `INSERT INTO comments (service_id, author_id, rating, body)
                   VALUES ($1, $2, $3, $4)
                   RETURNING id, created_at`

	err := r.DB.QueryRowContext(ctxTimeout, query, comment.ServiceID, comment.AuthorID, comment.Rating, comment.Body).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.Comment{}, apperror.NewNotFoundError(fmt.Sprintf("Serviço com ID %d não encontrado.", comment.ServiceID))
		}
		return domain.Comment{}, r.dbError("failed to insert comment", err)
	}
	return comment, nil
}

func (r *Repository) FindCommentByID(ctx context.Context, id int64) (domain.Comment, error) {
	ctxTimeout, cancel := r.withTimeout(ctx)
	defer cancel()

	c, err := scanComment(r.DB.QueryRowContext(ctxTimeout, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Comment{}, apperror.NewNotFoundError(fmt.Sprintf("Comentário com ID %d não encontrado.", id))
		}
		return domain.Comment{}, r.dbError("failed to find comment", err)
	}
	return c, nil
}

func (r *Repository) FindCommentsByService(ctx context.Context, serviceID int64) ([]domain.Comment, error) {
	ctxTimeout, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT `+commentColumns+` FROM comments WHERE service_id = $1 ORDER BY id`, serviceID)
	if err != nil {
		return nil, r.dbError("failed to query comments", err)
	}
	defer rows.Close()

	out := make([]domain.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, r.dbError("failed to scan comment", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, r.dbError("failed to iterate comments", err)
	}
	return out, nil
}

// RatingsByService lê apenas (service_id, rating); a média fica com o catálogo.
func (r *Repository) RatingsByService(ctx context.Context) (map[int64][]int, error) {
	ctxTimeout, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT service_id, rating FROM comments ORDER BY id`)
	if err != nil {
		return nil, r.dbError("failed to query ratings", err)
	}
	defer rows.Close()

	out := make(map[int64][]int)
	for rows.Next() {
		var serviceID int64
		var rating int
		if err := rows.Scan(&serviceID, &rating); err != nil {
			return nil, r.dbError("failed to scan rating", err)
		}
		out[serviceID] = append(out[serviceID], rating)
	}
	if err := rows.Err(); err != nil {
		return nil, r.dbError("failed to iterate ratings", err)
	}
	return out, nil
}
