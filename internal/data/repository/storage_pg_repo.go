package repository

import (
	"context"
	"errors"
	"fmt"

	"pitch-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type pgStorage struct {
	db  database.Querier
	log *zap.Logger
}

// NewPostgresStorage stores visitor keys in the client_storage table.
func NewPostgresStorage(db database.Querier, log *zap.Logger) StorageRepository {
	return &pgStorage{
		db:  db,
		log: log.With(zap.String("repository", "storage"), zap.String("driver", "postgres")),
	}
}

func (r *pgStorage) Get(ctx context.Context, sid, key string) (string, bool, error) {
	query := `
		SELECT value
		FROM client_storage
		WHERE sid = $1 AND key = $2
	`

	var value string
	err := r.db.QueryRow(ctx, query, sid, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		r.log.Error("Failed to read storage key",
			zap.Error(err),
			zap.String("key", key),
		)
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}

	return value, true, nil
}

func (r *pgStorage) Set(ctx context.Context, sid, key, value string) error {
	query := `
		INSERT INTO client_storage (sid, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (sid, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, sid, key, value); err != nil {
		r.log.Error("Failed to write storage key",
			zap.Error(err),
			zap.String("key", key),
		)
		return fmt.Errorf("write %s: %w", key, err)
	}

	return nil
}

func (r *pgStorage) Delete(ctx context.Context, sid string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query := `
		DELETE FROM client_storage
		WHERE sid = $1 AND key = ANY($2)
	`

	if _, err := r.db.Exec(ctx, query, sid, keys); err != nil {
		r.log.Error("Failed to delete storage keys",
			zap.Error(err),
			zap.Strings("keys", keys),
		)
		return fmt.Errorf("delete keys: %w", err)
	}

	return nil
}
