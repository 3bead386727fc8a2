// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package bucketsync implements the packet state machine that applies bucket
// updates sent by the companion.
//
// A sync session starts with a start packet carrying the new active bucket
// list and optionally chunk entries; continuation packets carry chunk entries
// only. The packet whose status is models.StatusLastPacket commits the
// announced version.
package bucketsync

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/bucket-sync/internal/codec"
	"github.com/MKhiriev/bucket-sync/internal/logger"
	"github.com/MKhiriev/bucket-sync/internal/store"
	"github.com/MKhiriev/bucket-sync/internal/utils"
	"github.com/MKhiriev/bucket-sync/models"
)

// StorageErrorMessage is shown to the user when a bucket write fails.
const StorageErrorMessage = "Storage is full or failing. Synced data may be incomplete."

// Options tune a Protocol.
type Options struct {
	// AwaitInitialSync reports "syncing" from construction until the first
	// session ends, so an auto-close request made at startup waits for it.
	AwaitInitialSync bool
}

// Protocol is not safe for concurrent use. Every call must come from the
// same goroutine or be serialized by the caller.
type Protocol struct {
	registry BucketRegistry
	store    store.PersistentStore
	events   Events
	ui       UICloser
	errs     ErrorReporter
	ids      IDGenerator

	state          State
	syncing        bool
	pendingVersion uint16
	autoClose      bool
	session        string
}

// New wires a protocol. ui and errs may be nil.
func New(reg BucketRegistry, st store.PersistentStore, events Events, ui UICloser, errs ErrorReporter, ids IDGenerator, opts Options) *Protocol {
	if ids == nil {
		ids = utils.NewSessionIDGenerator()
	}
	return &Protocol{
		registry: reg,
		store:    st,
		events:   events,
		ui:       ui,
		errs:     errs,
		ids:      ids,
		state:    Idle,
		syncing:  opts.AwaitInitialSync,
	}
}

// HandlePacket dispatches p by kind.
func (p *Protocol) HandlePacket(ctx context.Context, pkt models.Packet) error {
	switch pkt.Kind {
	case models.PacketStart:
		return p.HandleStart(ctx, pkt.Payload)
	case models.PacketContinuation:
		return p.HandleContinuation(ctx, pkt.Payload)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownPacketKind, pkt.Kind)
	}
}

// HandleStart applies a start packet. A malformed header is rejected before
// anything changes. A start packet received while Syncing abandons the
// running session.
func (p *Protocol) HandleStart(ctx context.Context, packet []byte) error {
	hdr, err := codec.DecodeStartHeader(packet)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "Protocol.HandleStart").Msg("rejecting start packet")
		return fmt.Errorf("%w: %w", ErrMalformedPacket, err)
	}

	if p.state == Syncing {
		logger.FromContext(ctx).Warn().Str("func", "Protocol.HandleStart").
			Str("sync_session", p.session).
			Uint16("version", p.pendingVersion).
			Msg("start packet supersedes unfinished session")
	}

	p.session = p.ids.Generate()
	ctx = p.sessionContext(ctx)
	log := logger.FromContext(ctx)

	if hdr.Status == models.StatusUpToDate {
		log.Info().Str("func", "Protocol.HandleStart").Msg("companion reports no changes")
		p.state = Idle
		p.finish()
		return nil
	}

	p.state = Syncing
	p.pendingVersion = hdr.NextVersion
	p.syncing = true
	p.events.FireSyncingStatusChanged(true)

	log.Info().Str("func", "Protocol.HandleStart").
		Stringer("status", hdr.Status).
		Uint16("version", hdr.NextVersion).
		Int("buckets", len(hdr.Buckets)).
		Msg("sync session started")

	// the new list is active in memory even when it could not be persisted;
	// the commit retries the write and fails while it still cannot
	if err = p.registry.Reconcile(ctx, hdr.Buckets); err != nil {
		log.Err(err).Str("func", "Protocol.HandleStart").Msg("error persisting bucket list, applying chunks anyway")
		p.reportStorageError()
	}

	if err = p.applyChunks(ctx, packet, hdr.ChunkOffset); err != nil {
		return err
	}

	if hdr.Status == models.StatusLastPacket {
		return p.commit(ctx)
	}
	return nil
}

// HandleContinuation applies a continuation packet of the running session.
func (p *Protocol) HandleContinuation(ctx context.Context, packet []byte) error {
	if p.state != Syncing {
		logger.FromContext(ctx).Warn().Str("func", "Protocol.HandleContinuation").Msg("continuation packet while idle")
		return ErrNotSyncing
	}

	status, err := codec.DecodeContinuationStatus(packet)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedPacket, err)
	}

	ctx = p.sessionContext(ctx)
	if err = p.applyChunks(ctx, packet, codec.ContinuationChunkOffset); err != nil {
		return err
	}

	if status == models.StatusLastPacket {
		return p.commit(ctx)
	}
	return nil
}

// applyChunks writes every chunk entry from offset on, firing data-changed
// after each successful write. The first failure stops the packet; chunks
// already written stay.
func (p *Protocol) applyChunks(ctx context.Context, packet []byte, offset int) error {
	log := logger.FromContext(ctx)
	reader := codec.NewChunkReader(packet, offset)

	for {
		chunk, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			log.Warn().Err(err).Str("func", "Protocol.applyChunks").Int("offset", reader.Offset()).Msg("dropping rest of packet")
			return fmt.Errorf("%w: %w", ErrMalformedPacket, err)
		}

		if err = p.store.Write(ctx, store.BucketKey(chunk.ID), chunk.Payload); err != nil {
			log.WithBucket(chunk.ID).Err(err).Str("func", "Protocol.applyChunks").
				Int("size", len(chunk.Payload)).
				Msg("error writing bucket")
			p.reportStorageError()
			return fmt.Errorf("%w: bucket %d: %w", ErrStorage, chunk.ID, err)
		}

		log.WithBucket(chunk.ID).Debug().Str("func", "Protocol.applyChunks").Int("size", len(chunk.Payload)).Msg("bucket written")

		if meta, ok := p.registry.Lookup(chunk.ID); ok {
			p.events.FireDataChanged(meta)
		}
	}
}

func (p *Protocol) commit(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if err := p.registry.Commit(ctx, p.pendingVersion); err != nil {
		log.Err(err).Str("func", "Protocol.commit").Uint16("version", p.pendingVersion).Msg("error committing version")
		p.reportStorageError()
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	log.Info().Str("func", "Protocol.commit").Uint16("version", p.pendingVersion).Msg("sync session committed")
	p.state = Idle
	p.finish()
	return nil
}

// finish ends a session: syncing goes false and a pending auto-close fires.
func (p *Protocol) finish() {
	p.syncing = false
	p.events.FireSyncingStatusChanged(false)

	if p.autoClose {
		p.autoClose = false
		p.closeUI()
	}
}

// RequestAutoClose closes the UI now when no sync is running, otherwise when
// the running sync completes.
func (p *Protocol) RequestAutoClose() {
	if !p.syncing {
		p.closeUI()
		return
	}
	p.autoClose = true
}

func (p *Protocol) closeUI() {
	if p.ui != nil {
		p.ui.CloseAll()
	}
}

func (p *Protocol) reportStorageError() {
	if p.errs != nil {
		p.errs.ShowError(StorageErrorMessage)
	}
}

func (p *Protocol) sessionContext(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, utils.SyncSessionCtxKey, p.session)
	return logger.FromContext(ctx).WithSession(p.session).WithContext(ctx)
}

// State returns the current state.
func (p *Protocol) State() State { return p.state }

// IsSyncing reports whether a sync is in progress from the UI's point of
// view.
func (p *Protocol) IsSyncing() bool { return p.syncing }

// PendingVersion returns the version announced by the last start packet.
func (p *Protocol) PendingVersion() uint16 { return p.pendingVersion }

// AutoClosePending reports whether an auto-close waits for the running sync.
func (p *Protocol) AutoClosePending() bool { return p.autoClose }

// Session returns the id of the last started session.
func (p *Protocol) Session() string { return p.session }
