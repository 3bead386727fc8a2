package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/bucket-sync/internal/logger"
)

type blobRepository struct {
	*DB
	maxValueSize int
	quota        int
}

// NewBlobRepository returns a PersistentStore backed by the blobs table of db.
// A quota of 0 disables the total size limit.
func NewBlobRepository(db *DB, maxValueSize, quota int) PersistentStore {
	if maxValueSize <= 0 {
		maxValueSize = MaxValueSize
	}
	return &blobRepository{DB: db, maxValueSize: maxValueSize, quota: quota}
}

func (b *blobRepository) Exists(ctx context.Context, key Key) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := existsBlobQuery(key)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = b.DB.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "blobRepository.Exists").Uint32("key", uint32(key)).Msg("error checking key")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return true, nil
}

func (b *blobRepository) Read(ctx context.Context, key Key, maxLen int) ([]byte, error) {
	log := logger.FromContext(ctx)

	query, args, err := readBlobQuery(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var data []byte
	err = b.DB.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read key %d: %w", key, ErrNotFound)
	}
	if err != nil {
		log.Err(err).Str("func", "blobRepository.Read").Uint32("key", uint32(key)).Msg("error reading blob")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if maxLen >= 0 && len(data) > maxLen {
		data = data[:maxLen]
	}
	return data, nil
}

func (b *blobRepository) Write(ctx context.Context, key Key, data []byte) error {
	log := logger.FromContext(ctx)

	if len(data) > b.maxValueSize {
		return fmt.Errorf("write key %d (%d bytes): %w", key, len(data), ErrValueTooLarge)
	}
	// go-sqlite3 stores a nil []byte as NULL
	if data == nil {
		data = []byte{}
	}

	upsert, upsertArgs, err := upsertBlobQuery(key, data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if b.quota <= 0 {
		if _, err = b.DB.ExecContext(ctx, upsert, upsertArgs...); err != nil {
			log.Err(err).Str("func", "blobRepository.Write").Uint32("key", uint32(key)).Msg("error writing blob")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	}

	used, usedArgs, err := usedBytesQuery(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	// begin transaction
	tx, err := b.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "blobRepository.Write").Msg("error during opening transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var usedBytes int
	if err = tx.QueryRowContext(ctx, used, usedArgs...).Scan(&usedBytes); err != nil {
		log.Err(err).Str("func", "blobRepository.Write").Msg("error summing stored bytes")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if usedBytes+len(data) > b.quota {
		return fmt.Errorf("write key %d (%d bytes, %d used of %d): %w", key, len(data), usedBytes, b.quota, ErrStorageFull)
	}

	if _, err = tx.ExecContext(ctx, upsert, upsertArgs...); err != nil {
		log.Err(err).Str("func", "blobRepository.Write").Uint32("key", uint32(key)).Msg("error writing blob")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

func (b *blobRepository) Delete(ctx context.Context, key Key) error {
	log := logger.FromContext(ctx)

	query, args, err := deleteBlobQuery(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = b.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "blobRepository.Delete").Uint32("key", uint32(key)).Msg("error deleting blob")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (b *blobRepository) SizeOf(ctx context.Context, key Key) (int, error) {
	query, args, err := sizeOfBlobQuery(key)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var size int
	err = b.DB.QueryRowContext(ctx, query, args...).Scan(&size)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return size, nil
}

// Close releases the database connection.
func (b *blobRepository) Close() error {
	return b.DB.Close()
}
