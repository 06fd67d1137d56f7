package storage

import (
	"context"
	"database/sql"
	"log/slog"
)

// SQLiteStore implements Store on a local SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	kv     *KVRepo
	log    *LogRepo
	logger *slog.Logger
}

// NewSQLiteStore opens the database at path and applies the schema.
func NewSQLiteStore(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	logger = logger.With("component", "store", "backend", "sqlite")
	logger.Debug("sqlite store opened", "path", path)
	return &SQLiteStore{
		db:     db,
		kv:     NewKVRepo(db),
		log:    NewLogRepo(db, logger),
		logger: logger,
	}, nil
}

func (s *SQLiteStore) DB() *sql.DB { return s.db }

func (s *SQLiteStore) LoadFields(ctx context.Context) (map[string]string, error) {
	return s.kv.All(ctx)
}

func (s *SQLiteStore) SaveFields(ctx context.Context, fields map[string]string, appended []LogRecord) error {
	err := WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := NewKVRepo(tx).PutAll(ctx, fields); err != nil {
			return err
		}
		logs := NewLogRepo(tx, s.logger)
		for _, rec := range appended {
			if err := logs.Insert(ctx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("progress saved", "fields", len(fields), "log_entries", len(appended))
	return nil
}

func (s *SQLiteStore) ListLog(ctx context.Context, limit int) ([]LogRecord, error) {
	return s.log.Recent(ctx, limit)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
