package pgrepo

import (
	"context"
	"database/sql"

	"servilink/internal/domain"
	apperror "servilink/internal/errors"
)

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func (r *Repository) SaveReport(ctx context.Context, report domain.Report) (domain.Report, error) {
	ctxTimeout, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `INSERT INTO reports (reporter_id, service_id, comment_id, reason)
                   VALUES ($1, $2, $3, $4)
                   RETURNING id, created_at`

	err := r.DB.QueryRowContext(ctxTimeout, query,
		report.ReporterID, nullInt64(report.ServiceID), nullInt64(report.CommentID), report.Reason,
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.Report{}, apperror.NewNotFoundError("O alvo da denúncia não existe.")
		}
		return domain.Report{}, r.dbError("failed to insert report", err)
	}
	return report, nil
}

func (r *Repository) FindAllReports(ctx context.Context) ([]domain.Report, error) {
	ctxTimeout, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT id, reporter_id, service_id, comment_id, reason, created_at FROM reports ORDER BY id`)
	if err != nil {
		return nil, r.dbError("failed to query reports", err)
	}
	defer rows.Close()

	out := make([]domain.Report, 0)
	for rows.Next() {
		var rep domain.Report
		var serviceID, commentID sql.NullInt64
		if err := rows.Scan(&rep.ID, &rep.ReporterID, &serviceID, &commentID, &rep.Reason, &rep.CreatedAt); err != nil {
			return nil, r.dbError("failed to scan report", err)
		}
		rep.ServiceID = int64Ptr(serviceID)
		rep.CommentID = int64Ptr(commentID)
		out = append(out, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, r.dbError("failed to iterate reports", err)
	}
	return out, nil
}

// --- Acessos ---

func (r *Repository) SaveAccess(ctx context.Context, access domain.AccessRecord) (domain.AccessRecord, error) {
	ctxTimeout, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.DB.QueryRowContext(ctxTimeout,
		`INSERT INTO service_accesses (service_id, user_id) VALUES ($1, $2) RETURNING id, accessed_at`,
		access.ServiceID, access.UserID,
	).Scan(&access.ID, &access.AccessedAt)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.AccessRecord{}, apperror.NewNotFoundError("Serviço ou usuário do acesso não encontrado.")
		}
		return domain.AccessRecord{}, r.dbError("failed to insert access", err)
	}
	return access, nil
}

func (r *Repository) HasAccess(ctx context.Context, userID, serviceID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM service_accesses WHERE user_id = $1 AND service_id = $2)`, userID, serviceID)
}
