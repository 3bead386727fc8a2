package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/bucket-sync/internal/config"
	"github.com/MKhiriev/bucket-sync/internal/logger"
)

// NewStorage opens the PersistentStore selected by cfg.DSN:
//   - "" or ":memory:" keeps everything in process memory;
//   - "redis://..." and "rediss://..." use a Redis server;
//   - anything else is a path to a SQLite database file.
func NewStorage(ctx context.Context, cfg config.Storage, log *logger.Logger) (PersistentStore, error) {
	dsn := strings.TrimSpace(cfg.DSN)

	switch {
	case dsn == "" || dsn == ":memory:":
		log.Info().Str("func", "store.NewStorage").Msg("using in-memory storage")
		return NewMemoryStore(cfg.MaxValueSize, cfg.Quota), nil
	case strings.HasPrefix(dsn, "redis://") || strings.HasPrefix(dsn, "rediss://"):
		log.Info().Str("func", "store.NewStorage").Msg("using redis storage")
		return NewRedisStore(ctx, dsn, cfg.MaxValueSize, cfg.Quota)
	case strings.Contains(dsn, "://"):
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, dsn)
	}

	db, err := NewConnectSQLite(ctx, dsn, log)
	if err != nil {
		return nil, err
	}
	if err = db.Migrate(ctx); err != nil {
		_ = db.Close()
		log.Err(err).Str("func", "store.NewStorage").Msg("error migrating sqlite database")
		return nil, fmt.Errorf("migrate sqlite storage: %w", err)
	}

	log.Info().Str("func", "store.NewStorage").Str("dsn", dsn).Msg("using sqlite storage")
	return NewBlobRepository(db, cfg.MaxValueSize, cfg.Quota), nil
}
