package models

// BucketStatus describes one active bucket in a status snapshot.
type BucketStatus struct {
	ID    uint8 `json:"id"`
	Flags uint8 `json:"flags"`
	Size  int   `json:"size"`
}

// PeerStatus is a point-in-time snapshot of the peer, served over HTTP and
// rendered by the monitor UI.
type PeerStatus struct {
	State          string         `json:"state"`
	Syncing        bool           `json:"syncing"`
	SyncedVersion  uint16         `json:"synced_version"`
	PendingVersion uint16         `json:"pending_version"`
	Connected      bool           `json:"connected"`
	Sending        bool           `json:"sending"`
	SendError      bool           `json:"send_error"`
	Buckets        []BucketStatus `json:"buckets"`
}

// ConnectionRequest is the body of POST /api/connection.
type ConnectionRequest struct {
	Connected bool `json:"connected"`
}

// SendOutcomeRequest is the body of POST /api/send-outcome. An empty Error
// reports a successful send.
type SendOutcomeRequest struct {
	Error string `json:"error"`
}
