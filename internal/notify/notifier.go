// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"sync"

	"github.com/MKhiriev/bucket-sync/models"
)

// Subscription identifies one data-changed registration.
type Subscription uint64

// Notifier owns the callback slots. Callbacks are invoked outside the
// internal lock, so a callback may register or clear slots itself.
type Notifier struct {
	mu sync.Mutex

	listChanged       func()
	dataChanged       func(meta models.BucketMetadata, ctx any)
	dataCtx           any
	dataSub           Subscription
	lastSub           Subscription
	syncingChanged    func(syncing bool)
	bucketDeleted     func(id uint8)
	reconnectRequired func()
	sendingError      func()
	connectionChanged func(connected bool)
	sendingNowChanged func(sending bool)

	sendFinished []func(ok bool)
}

// New returns a Notifier with every slot empty.
func New() *Notifier {
	return &Notifier{}
}

func (n *Notifier) SetListChanged(fn func()) {
	n.mu.Lock()
	n.listChanged = fn
	n.mu.Unlock()
}

// SetDataChanged registers fn together with an opaque ctx passed back on
// every call. The returned Subscription can later clear exactly this
// registration.
func (n *Notifier) SetDataChanged(fn func(meta models.BucketMetadata, ctx any), ctx any) Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.lastSub++
	n.dataChanged = fn
	n.dataCtx = ctx
	n.dataSub = n.lastSub
	return n.dataSub
}

// ClearDataChanged empties the data-changed slot if sub is still the current
// registration and reports whether it did.
func (n *Notifier) ClearDataChanged(sub Subscription) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.dataChanged == nil || n.dataSub != sub {
		return false
	}
	n.dataChanged = nil
	n.dataCtx = nil
	return true
}

func (n *Notifier) SetSyncingStatusChanged(fn func(syncing bool)) {
	n.mu.Lock()
	n.syncingChanged = fn
	n.mu.Unlock()
}

func (n *Notifier) SetBucketDeleted(fn func(id uint8)) {
	n.mu.Lock()
	n.bucketDeleted = fn
	n.mu.Unlock()
}

func (n *Notifier) SetReconnectRequired(fn func()) {
	n.mu.Lock()
	n.reconnectRequired = fn
	n.mu.Unlock()
}

func (n *Notifier) SetSendingError(fn func()) {
	n.mu.Lock()
	n.sendingError = fn
	n.mu.Unlock()
}

func (n *Notifier) SetConnectionChanged(fn func(connected bool)) {
	n.mu.Lock()
	n.connectionChanged = fn
	n.mu.Unlock()
}

func (n *Notifier) SetSendingNowChanged(fn func(sending bool)) {
	n.mu.Lock()
	n.sendingNowChanged = fn
	n.mu.Unlock()
}

// RegisterSendFinished appends fn to the current send-finished batch.
func (n *Notifier) RegisterSendFinished(fn func(ok bool)) {
	if fn == nil {
		return
	}
	n.mu.Lock()
	n.sendFinished = append(n.sendFinished, fn)
	n.mu.Unlock()
}

// PendingSendFinished returns the size of the current batch.
func (n *Notifier) PendingSendFinished() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sendFinished)
}
