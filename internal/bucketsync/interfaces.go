package bucketsync

import (
	"context"

	"github.com/MKhiriev/bucket-sync/models"
)

// BucketRegistry is the part of the registry the protocol drives.
type BucketRegistry interface {
	Reconcile(ctx context.Context, next models.BucketList) error
	Lookup(id uint8) (models.BucketMetadata, bool)
	Commit(ctx context.Context, version uint16) error
}

// Events receives protocol notifications.
type Events interface {
	FireDataChanged(meta models.BucketMetadata)
	FireSyncingStatusChanged(syncing bool)
}

// UICloser closes every open screen once an auto-close request is honored.
type UICloser interface {
	CloseAll()
}

// ErrorReporter shows a message to the user.
type ErrorReporter interface {
	ShowError(msg string)
}

// IDGenerator returns a new unique id for each sync session.
type IDGenerator interface {
	Generate() string
}
