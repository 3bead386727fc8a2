// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package registry keeps the authoritative list of active buckets and the
// last committed sync version, and mirrors both to persistent storage.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/bucket-sync/internal/codec"
	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/internal/store"
	"github.com/MKhiriev/bucket-sync/models"
)

// Events receives registry side effects.
type Events interface {
	FireBucketDeleted(id uint8)
	FireListChanged()
}

// Registry is not safe for concurrent use; callers serialize access.
type Registry struct {
	store        store.PersistentStore
	events       Events
	maxValueSize int

	buckets       models.BucketList
	syncedVersion uint16
	// listDirty is set while the active list differs from the persisted one.
	listDirty bool
}

// New returns an empty registry. Call Load before processing packets.
func New(st store.PersistentStore, events Events, maxValueSize int) *Registry {
	if maxValueSize <= 0 {
		maxValueSize = store.MaxValueSize
	}
	return &Registry{
		store:        st,
		events:       events,
		maxValueSize: maxValueSize,
		buckets:      models.BucketList{},
	}
}

// Load restores the list and synced version from storage. When nothing was
// persisted yet the registry stays empty. When the stored protocol marker is
// missing or differs from models.ProtocolVersion every previously active
// bucket is deleted and the version and list records are erased.
func (r *Registry) Load(ctx context.Context) error {
	log := logger.FromContext(ctx)

	r.buckets = models.BucketList{}
	r.syncedVersion = 0

	exists, err := r.store.Exists(ctx, store.KeyBucketList)
	if err != nil {
		return fmt.Errorf("check bucket list: %w", err)
	}
	if !exists {
		log.Info().Str("func", "Registry.Load").Msg("no persisted bucket list, starting empty")
		return nil
	}

	version, err := r.readUint16(ctx, store.KeySyncVersion)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("read synced version: %w", err)
	}

	raw, err := r.store.Read(ctx, store.KeyBucketList, 1+models.MaxActiveBuckets*2)
	if err != nil {
		return fmt.Errorf("read bucket list: %w", err)
	}
	list, decodeErr := codec.DecodeBucketList(raw)

	marker, markerErr := r.readUint16(ctx, store.KeyProtocolVersion)
	// a missing or truncated marker counts as a mismatch
	if markerErr != nil && !errors.Is(markerErr, store.ErrNotFound) && !errors.Is(markerErr, codec.ErrShortBuffer) {
		return fmt.Errorf("read protocol marker: %w", markerErr)
	}

	switch {
	case decodeErr != nil:
		log.Warn().Err(decodeErr).Str("func", "Registry.Load").Msg("persisted bucket list is corrupt, invalidating all buckets")
		return r.invalidate(ctx, nil)
	case markerErr != nil || marker != models.ProtocolVersion:
		log.Warn().Str("func", "Registry.Load").
			Uint16("stored_marker", marker).
			Uint16("protocol_version", models.ProtocolVersion).
			Msg("protocol marker mismatch, invalidating synced buckets")
		return r.invalidate(ctx, list)
	}

	r.buckets = list
	r.syncedVersion = version
	log.Info().Str("func", "Registry.Load").
		Uint16("version", version).
		Int("buckets", len(list)).
		Msg("bucket registry loaded")
	return nil
}

// invalidate deletes the content of every bucket in list and erases the
// version and list records. A nil list means the ids are unknown and every
// possible bucket key is swept.
func (r *Registry) invalidate(ctx context.Context, list models.BucketList) error {
	var ids []uint8
	if list != nil {
		ids = list.IDs()
	} else {
		for id := 0; id <= 0xFF; id++ {
			ok, err := r.store.Exists(ctx, store.BucketKey(uint8(id)))
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidate, err)
			}
			if ok {
				ids = append(ids, uint8(id))
			}
		}
	}

	for _, id := range ids {
		if err := r.store.Delete(ctx, store.BucketKey(id)); err != nil {
			return fmt.Errorf("%w: bucket %d: %w", ErrInvalidate, id, err)
		}
		r.events.FireBucketDeleted(id)
	}

	r.buckets = models.BucketList{}
	r.syncedVersion = 0

	if err := r.store.Delete(ctx, store.KeySyncVersion); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidate, err)
	}
	if err := r.store.Delete(ctx, store.KeyBucketList); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidate, err)
	}
	return nil
}

// Reconcile makes next the active list. Buckets missing from next are
// deleted (one bucket-deleted event each) before the list is replaced and
// persisted; list-changed fires last.
func (r *Registry) Reconcile(ctx context.Context, next models.BucketList) error {
	log := logger.FromContext(ctx)

	for _, old := range r.buckets {
		if next.Contains(old.ID) {
			continue
		}
		// the bucket is unreadable once it leaves the list, so a failed
		// delete only leaks storage
		if err := r.store.Delete(ctx, store.BucketKey(old.ID)); err != nil {
			log.WithBucket(old.ID).Err(err).Str("func", "Registry.Reconcile").Msg("error deleting dropped bucket")
		}
		r.events.FireBucketDeleted(old.ID)
	}

	r.buckets = next.Clone()

	persistErr := r.persistList(ctx)
	if persistErr != nil {
		log.Err(persistErr).Str("func", "Registry.Reconcile").Msg("error persisting bucket list")
	}

	r.events.FireListChanged()
	return persistErr
}

func (r *Registry) persistList(ctx context.Context) error {
	raw, err := codec.EncodeBucketList(r.buckets)
	if err == nil {
		err = r.store.Write(ctx, store.KeyBucketList, raw)
	}
	if err != nil {
		r.listDirty = true
		return fmt.Errorf("%w: %w", ErrPersistList, err)
	}
	r.listDirty = false
	return nil
}

// Lookup returns the metadata of an active bucket.
func (r *Registry) Lookup(id uint8) (models.BucketMetadata, bool) {
	return r.buckets.Find(id)
}

// Buckets returns a copy of the active list.
func (r *Registry) Buckets() models.BucketList {
	return r.buckets.Clone()
}

// SyncedVersion returns the last committed version.
func (r *Registry) SyncedVersion() uint16 {
	return r.syncedVersion
}

// Commit persists version as the synced version together with the protocol
// marker. A list that Reconcile failed to persist is written again first,
// and the commit fails while it cannot be. The in-memory version only
// advances once the version write succeeded.
func (r *Registry) Commit(ctx context.Context, version uint16) error {
	// a version is only recorded on top of a persisted list
	if r.listDirty {
		if err := r.persistList(ctx); err != nil {
			return err
		}
	}

	if err := r.store.Write(ctx, store.KeySyncVersion, codec.Uint16Bytes(version)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistVersion, err)
	}
	r.syncedVersion = version

	if err := r.store.Write(ctx, store.KeyProtocolVersion, codec.Uint16Bytes(models.ProtocolVersion)); err != nil {
		return fmt.Errorf("%w: protocol marker: %w", ErrPersistVersion, err)
	}
	return nil
}

// LoadBucket returns the stored content of an active bucket. Absent content
// and ids outside the active list yield ok == false without an error.
func (r *Registry) LoadBucket(ctx context.Context, id uint8) ([]byte, bool, error) {
	if !r.buckets.Contains(id) {
		return nil, false, nil
	}

	data, err := r.store.Read(ctx, store.BucketKey(id), r.maxValueSize)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load bucket %d: %w", id, err)
	}
	return data, true, nil
}

// BucketSize returns the stored size of an active bucket, 0 when absent.
func (r *Registry) BucketSize(ctx context.Context, id uint8) (int, error) {
	if !r.buckets.Contains(id) {
		return 0, nil
	}
	return r.store.SizeOf(ctx, store.BucketKey(id))
}

// Status returns one BucketStatus per active bucket in list order.
func (r *Registry) Status(ctx context.Context) ([]models.BucketStatus, error) {
	out := make([]models.BucketStatus, 0, len(r.buckets))
	for _, b := range r.buckets {
		size, err := r.BucketSize(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, models.BucketStatus{ID: b.ID, Flags: b.Flags, Size: size})
	}
	return out, nil
}

func (r *Registry) readUint16(ctx context.Context, key store.Key) (uint16, error) {
	raw, err := r.store.Read(ctx, key, 2)
	if err != nil {
		return 0, err
	}
	return codec.ReadUint16(raw, 0)
}
