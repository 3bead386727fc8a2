package store

import "errors"

// Sentinel errors returned by PersistentStore implementations. Callers should
// use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned by Read when nothing is stored under the key.
	ErrNotFound = errors.New("key not found")

	// ErrValueTooLarge is returned when a value exceeds the per-key capacity.
	ErrValueTooLarge = errors.New("value exceeds per-key capacity")

	// ErrStorageFull is returned when a write would exceed the total quota.
	ErrStorageFull = errors.New("storage is full")

	// ErrUnsupportedDSN is returned when no backend understands the DSN.
	ErrUnsupportedDSN = errors.New("unsupported storage dsn")
)

// Low-level database operation errors wrapped by the SQLite backend.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when a transaction cannot start.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan blob row")
)
