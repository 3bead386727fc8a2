package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/bucket-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldActiveBuckets targets the full active bucket list of an update.
	FieldActiveBuckets = "active_buckets"

	// FieldBuckets targets the changed bucket contents of an update.
	FieldBuckets = "buckets"
)

// maxChunkData is the largest payload one chunk length byte can describe.
const maxChunkData = 0xFF

type BucketUpdateValidator struct {
	maxDataSize int
}

// NewBucketUpdateValidator returns a Validator for models.BucketUpdate and
// models.BucketList values. maxDataSize bounds the content of one bucket;
// zero or anything above a chunk's limit means the chunk limit.
func NewBucketUpdateValidator(maxDataSize int) Validator {
	if maxDataSize <= 0 || maxDataSize > maxChunkData {
		maxDataSize = maxChunkData
	}
	return &BucketUpdateValidator{maxDataSize: maxDataSize}
}

func (v *BucketUpdateValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.BucketUpdate:
		return v.validateBucketUpdate(ctx, value, fields...)
	case *models.BucketUpdate:
		return v.validateBucketUpdate(ctx, *value, fields...)

	case models.BucketList:
		return v.validateBucketList(value)
	case []models.BucketMetadata:
		return v.validateBucketList(value)

	default:
		return ErrUnsupportedType
	}
}

func (v *BucketUpdateValidator) validateBucketUpdate(ctx context.Context, update models.BucketUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldActiveBuckets, FieldBuckets}
	}

	for _, f := range fields {
		switch f {
		case FieldActiveBuckets:
			if err := v.validateBucketList(update.ActiveBuckets); err != nil {
				return err
			}
		case FieldBuckets:
			if err := v.validateBuckets(update); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *BucketUpdateValidator) validateBucketList(list models.BucketList) error {
	if len(list) > models.MaxActiveBuckets {
		return fmt.Errorf("%d buckets: %w", len(list), ErrTooManyBuckets)
	}

	seen := make(map[uint8]struct{}, len(list))
	for _, b := range list {
		if _, ok := seen[b.ID]; ok {
			return fmt.Errorf("active bucket %d: %w", b.ID, ErrDuplicateBucketID)
		}
		seen[b.ID] = struct{}{}
	}
	return nil
}

func (v *BucketUpdateValidator) validateBuckets(update models.BucketUpdate) error {
	active := models.BucketList(update.ActiveBuckets)
	seen := make(map[uint8]struct{}, len(update.Buckets))

	for i, b := range update.Buckets {
		if _, ok := seen[b.ID]; ok {
			return fmt.Errorf("validation error at index %d: %w", i, ErrDuplicateBucketID)
		}
		seen[b.ID] = struct{}{}

		switch {
		case !active.Contains(b.ID):
			return fmt.Errorf("validation error at index %d (bucket %d): %w", i, b.ID, ErrInactiveBucket)
		case len(b.Data) > v.maxDataSize:
			return fmt.Errorf("validation error at index %d (bucket %d, %d bytes): %w", i, b.ID, len(b.Data), ErrBucketDataTooLarge)
		}
	}
	return nil
}
