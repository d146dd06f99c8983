package store

import (
	"context"
	"fmt"

	"frutbras-service/internal/models"
)

// AuditLogFilter narrows the admin audit listing. Zero values mean "all".
type AuditLogFilter struct {
	Table     string
	Operation string
	Limit     int
}

// ListAuditLogs retrieves audit rows newest first. The audit trail is
// append-only; this is the only read path the application exposes.
func (s *Store) ListAuditLogs(ctx context.Context, filter AuditLogFilter) ([]models.AuditLog, error) {
	query := "SELECT * FROM audit_logs WHERE 1=1"
	args := []interface{}{}

	if filter.Table != "" {
		args = append(args, filter.Table)
		query += fmt.Sprintf(" AND table_name = $%d", len(args))
	}
	if filter.Operation != "" {
		args = append(args, filter.Operation)
		query += fmt.Sprintf(" AND operation = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	var logs []models.AuditLog
	err := s.db.SelectContext(ctx, &logs, query, args...)
	return logs, err
}
