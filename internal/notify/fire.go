package notify

import "github.com/MKhiriev/bucket-sync/models"

func (n *Notifier) FireListChanged() {
	n.mu.Lock()
	fn := n.listChanged
	n.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// FireDataChanged passes meta and the context given at registration.
func (n *Notifier) FireDataChanged(meta models.BucketMetadata) {
	n.mu.Lock()
	fn, ctx := n.dataChanged, n.dataCtx
	n.mu.Unlock()

	if fn != nil {
		fn(meta, ctx)
	}
}

func (n *Notifier) FireSyncingStatusChanged(syncing bool) {
	n.mu.Lock()
	fn := n.syncingChanged
	n.mu.Unlock()

	if fn != nil {
		fn(syncing)
	}
}

func (n *Notifier) FireBucketDeleted(id uint8) {
	n.mu.Lock()
	fn := n.bucketDeleted
	n.mu.Unlock()

	if fn != nil {
		fn(id)
	}
}

func (n *Notifier) FireReconnectRequired() {
	n.mu.Lock()
	fn := n.reconnectRequired
	n.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (n *Notifier) FireSendingError() {
	n.mu.Lock()
	fn := n.sendingError
	n.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (n *Notifier) FireConnectionChanged(connected bool) {
	n.mu.Lock()
	fn := n.connectionChanged
	n.mu.Unlock()

	if fn != nil {
		fn(connected)
	}
}

func (n *Notifier) FireSendingNowChanged(sending bool) {
	n.mu.Lock()
	fn := n.sendingNowChanged
	n.mu.Unlock()

	if fn != nil {
		fn(sending)
	}
}

// FireSendFinished invokes every subscriber of the current batch once, in
// registration order. The batch is detached before the first call, so
// subscribers registered from inside a callback start the next batch.
func (n *Notifier) FireSendFinished(ok bool) {
	n.mu.Lock()
	batch := n.sendFinished
	n.sendFinished = nil
	n.mu.Unlock()

	for _, fn := range batch {
		fn(ok)
	}
}
