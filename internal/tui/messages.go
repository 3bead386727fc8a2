package tui

import "github.com/MKhiriev/bucket-sync/models"

type statusMsg struct {
	status models.PeerStatus
	err    error
}

type refreshMsg struct{}

type showErrorMsg struct {
	message string
}

type closeAllMsg struct{}
