// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/bucket-sync/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validUpdate() models.BucketUpdate {
	return models.BucketUpdate{
		ToVersion: 2,
		ActiveBuckets: []models.BucketMetadata{
			{ID: 1, Flags: 0},
			{ID: 9, Flags: 3},
		},
		Buckets: []models.Bucket{
			{ID: 9, Data: []byte("hello")},
		},
	}
}

// ---------------------------------------------------------------------------
// TestValidate_Dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := NewBucketUpdateValidator(0)
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, "a string"), ErrUnsupportedType)
	})

	t.Run("BucketUpdate value", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, validUpdate()))
	})

	t.Run("BucketUpdate pointer", func(t *testing.T) {
		u := validUpdate()
		require.NoError(t, v.Validate(ctx, &u))
	})

	t.Run("BucketList", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, models.BucketList{{ID: 1}, {ID: 2}}))
	})

	t.Run("unknown field", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, validUpdate(), "to_version"), ErrUnknownField)
	})
}

// ---------------------------------------------------------------------------
// TestValidateActiveBuckets
// ---------------------------------------------------------------------------

func TestValidateActiveBuckets(t *testing.T) {
	v := NewBucketUpdateValidator(0)
	ctx := context.Background()

	t.Run("empty list is valid", func(t *testing.T) {
		u := models.BucketUpdate{ToVersion: 1}
		require.NoError(t, v.Validate(ctx, u))
	})

	t.Run("fifteen buckets", func(t *testing.T) {
		u := models.BucketUpdate{}
		for i := range models.MaxActiveBuckets {
			u.ActiveBuckets = append(u.ActiveBuckets, models.BucketMetadata{ID: uint8(i)})
		}
		require.NoError(t, v.Validate(ctx, u, FieldActiveBuckets))
	})

	t.Run("sixteen buckets", func(t *testing.T) {
		u := models.BucketUpdate{}
		for i := range models.MaxActiveBuckets + 1 {
			u.ActiveBuckets = append(u.ActiveBuckets, models.BucketMetadata{ID: uint8(i)})
		}
		require.ErrorIs(t, v.Validate(ctx, u, FieldActiveBuckets), ErrTooManyBuckets)
	})

	t.Run("duplicate id", func(t *testing.T) {
		u := validUpdate()
		u.ActiveBuckets = append(u.ActiveBuckets, models.BucketMetadata{ID: 1, Flags: 7})
		require.ErrorIs(t, v.Validate(ctx, u, FieldActiveBuckets), ErrDuplicateBucketID)
	})
}

// ---------------------------------------------------------------------------
// TestValidateBuckets
// ---------------------------------------------------------------------------

func TestValidateBuckets(t *testing.T) {
	ctx := context.Background()

	t.Run("inactive bucket", func(t *testing.T) {
		u := validUpdate()
		u.Buckets = append(u.Buckets, models.Bucket{ID: 4, Data: []byte{1}})
		require.ErrorIs(t, NewBucketUpdateValidator(0).Validate(ctx, u, FieldBuckets), ErrInactiveBucket)
	})

	t.Run("duplicate bucket", func(t *testing.T) {
		u := validUpdate()
		u.Buckets = append(u.Buckets, models.Bucket{ID: 9, Data: []byte{1}})
		require.ErrorIs(t, NewBucketUpdateValidator(0).Validate(ctx, u, FieldBuckets), ErrDuplicateBucketID)
	})

	t.Run("empty data is allowed", func(t *testing.T) {
		u := validUpdate()
		u.Buckets[0].Data = nil
		require.NoError(t, NewBucketUpdateValidator(0).Validate(ctx, u, FieldBuckets))
	})

	t.Run("data above configured size", func(t *testing.T) {
		u := validUpdate()
		require.ErrorIs(t, NewBucketUpdateValidator(4).Validate(ctx, u), ErrBucketDataTooLarge)
	})

	t.Run("data above chunk limit", func(t *testing.T) {
		u := validUpdate()
		u.Buckets[0].Data = make([]byte, 256)
		err := NewBucketUpdateValidator(1024).Validate(ctx, u)
		assert.ErrorIs(t, err, ErrBucketDataTooLarge)
	})
}
