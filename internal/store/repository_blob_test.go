package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/bucket-sync/internal/logger"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newTestRepo(db *sql.DB, quota int) PersistentStore {
	return NewBlobRepository(&DB{DB: db, logger: logger.Nop()}, MaxValueSize, quota)
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func TestBlobRepository_Exists(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM blobs WHERE blob_key = ? LIMIT 1")).
			WithArgs(int64(1000)).
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

		ok, err := newTestRepo(db, 0).Exists(testContext(), KeyBucketList)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM blobs")).
			WithArgs(int64(1000)).
			WillReturnRows(sqlmock.NewRows([]string{"1"}))

		ok, err := newTestRepo(db, 0).Exists(testContext(), KeyBucketList)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("query error", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM blobs")).
			WillReturnError(errors.New("disk I/O error"))

		_, err := newTestRepo(db, 0).Exists(testContext(), KeyBucketList)
		assert.ErrorIs(t, err, ErrExecutingQuery)
	})
}

func TestBlobRepository_Read(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM blobs WHERE blob_key = ?")).
			WithArgs(int64(2001)).
			WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte{0xAA, 0xBB, 0xCC}))

		got, err := newTestRepo(db, 0).Read(testContext(), BucketKey(1), 2)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xAA, 0xBB}, got)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT data FROM blobs")).
			WithArgs(int64(2001)).
			WillReturnRows(sqlmock.NewRows([]string{"data"}))

		_, err := newTestRepo(db, 0).Read(testContext(), BucketKey(1), MaxValueSize)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestBlobRepository_Write(t *testing.T) {
	const upsert = "INSERT INTO blobs (blob_key,data) VALUES (?,?) ON CONFLICT(blob_key) DO UPDATE SET data = excluded.data"

	t.Run("without quota", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectExec(regexp.QuoteMeta(upsert)).
			WithArgs(int64(1001), []byte{0, 3}).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, newTestRepo(db, 0).Write(testContext(), KeySyncVersion, []byte{0, 3}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("too large", func(t *testing.T) {
		db, mock := newTestDB(t)
		err := newTestRepo(db, 0).Write(testContext(), BucketKey(1), make([]byte, MaxValueSize+1))
		assert.ErrorIs(t, err, ErrValueTooLarge)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("within quota", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(length(data)), 0) FROM blobs WHERE blob_key <> ?")).
			WithArgs(int64(2001)).
			WillReturnRows(sqlmock.NewRows([]string{"used"}).AddRow(10))
		mock.ExpectExec(regexp.QuoteMeta(upsert)).
			WithArgs(int64(2001), []byte{1, 2, 3}).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, newTestRepo(db, 16).Write(testContext(), BucketKey(1), []byte{1, 2, 3}))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("quota exceeded", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(length(data)), 0) FROM blobs")).
			WithArgs(int64(2001)).
			WillReturnRows(sqlmock.NewRows([]string{"used"}).AddRow(15))
		mock.ExpectRollback()

		err := newTestRepo(db, 16).Write(testContext(), BucketKey(1), []byte{1, 2})
		assert.ErrorIs(t, err, ErrStorageFull)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec error", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectExec(regexp.QuoteMeta(upsert)).WillReturnError(errors.New("readonly database"))

		err := newTestRepo(db, 0).Write(testContext(), BucketKey(1), []byte{1})
		assert.ErrorIs(t, err, ErrExecutingStatement)
	})
}

func TestBlobRepository_DeleteAndSize(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM blobs WHERE blob_key = ?")).
		WithArgs(int64(2004)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT length(data) FROM blobs WHERE blob_key = ?")).
		WithArgs(int64(2004)).
		WillReturnRows(sqlmock.NewRows([]string{"length"}))

	repo := newTestRepo(db, 0)
	require.NoError(t, repo.Delete(testContext(), BucketKey(4)))

	size, err := repo.SizeOf(testContext(), BucketKey(4))
	require.NoError(t, err)
	assert.Zero(t, size)
	assert.NoError(t, mock.ExpectationsWereMet())
}
