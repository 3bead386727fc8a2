package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/migrations"
)

// DB is the connection behind the SQLite backend.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate brings the blob schema up to date.
func (db *DB) Migrate(ctx context.Context) error {
	applied, err := migrations.Up(ctx, db.DB)
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		db.logger.Info().Str("func", "DB.Migrate").Ints64("versions", applied).Msg("applied schema migrations")
	}
	return nil
}
