package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"frutbras-service/internal/util"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// Probe issues the lightweight read the connectivity monitor polls. It is the
// same "select one settings id" check the admin UI runs every 30 seconds.
func (s *Store) Probe(ctx context.Context) error {
	var id string
	err := s.db.GetContext(ctx, &id, "SELECT id FROM settings LIMIT 1")
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("connectivity probe failed: %w", err)
	}
	return nil
}

type actorKey struct{}

// WithActor attaches the acting admin's email to the context so mutations can
// record it in the audit trail.
func WithActor(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, actorKey{}, email)
}

func actorFrom(ctx context.Context) *string {
	if email, ok := ctx.Value(actorKey{}).(string); ok && email != "" {
		return &email
	}
	return nil
}

// recordAudit appends one audit row for a mutation. Old and new are the row
// snapshots before and after; either may be nil. Audit failures are logged
// and do not fail the mutation itself.
func (s *Store) recordAudit(ctx context.Context, table, operation, recordID string, old, new interface{}) {
	var oldJSON, newJSON []byte
	var err error

	if old != nil {
		if oldJSON, err = json.Marshal(old); err != nil {
			util.GetLogger().Error("Failed to marshal audit old data",
				zap.String("table", table),
				zap.String("record_id", recordID),
				zap.Error(err))
			return
		}
	}
	if new != nil {
		if newJSON, err = json.Marshal(new); err != nil {
			util.GetLogger().Error("Failed to marshal audit new data",
				zap.String("table", table),
				zap.String("record_id", recordID),
				zap.Error(err))
			return
		}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO audit_logs (table_name, operation, record_id, old_data, new_data, user_email)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		table, operation, recordID, nullable(oldJSON), nullable(newJSON), actorFrom(ctx))
	if err != nil {
		util.GetLogger().Error("Failed to record audit row",
			zap.String("table", table),
			zap.String("operation", operation),
			zap.String("record_id", recordID),
			zap.Error(err))
	}
}

func nullable(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}
