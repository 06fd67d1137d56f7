package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces both keys, e.g. "studyquest:".
	Prefix string
}

// RedisStore implements Store on a Redis hash (fields) and list (log).
type RedisStore struct {
	client   *redis.Client
	fieldKey string
	logKey   string
	logger   *slog.Logger
}

func NewRedisStore(ctx context.Context, opts RedisOptions, logger *slog.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	logger = logger.With("component", "store", "backend", "redis")
	logger.Debug("redis store opened", "addr", opts.Addr, "prefix", opts.Prefix)
	return &RedisStore{
		client:   client,
		fieldKey: opts.Prefix + "progress",
		logKey:   opts.Prefix + "log",
		logger:   logger,
	}, nil
}

func (s *RedisStore) LoadFields(ctx context.Context) (map[string]string, error) {
	fields, err := s.client.HGetAll(ctx, s.fieldKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis load fields: %w", err)
	}
	return fields, nil
}

func (s *RedisStore) SaveFields(ctx context.Context, fields map[string]string, appended []LogRecord) error {
	entries := make([]any, 0, len(appended))
	for _, rec := range appended {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal log record: %w", err)
		}
		entries = append(entries, string(data))
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(fields) > 0 {
			pairs := make([]any, 0, len(fields)*2)
			for k, v := range fields {
				pairs = append(pairs, k, v)
			}
			pipe.HSet(ctx, s.fieldKey, pairs...)
		}
		if len(entries) > 0 {
			pipe.RPush(ctx, s.logKey, entries...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save fields: %w", err)
	}
	s.logger.Debug("progress saved", "fields", len(fields), "log_entries", len(appended))
	return nil
}

func (s *RedisStore) ListLog(ctx context.Context, limit int) ([]LogRecord, error) {
	start := int64(0)
	if limit > 0 {
		start = -int64(limit)
	}
	raw, err := s.client.LRange(ctx, s.logKey, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list log: %w", err)
	}
	out := make([]LogRecord, 0, len(raw))
	for _, item := range raw {
		var rec LogRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			s.logger.Warn("skipping unreadable log entry", "raw", item, "err", err)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
