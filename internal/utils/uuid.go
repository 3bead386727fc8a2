package utils

import "github.com/google/uuid"

// SessionIDGenerator issues the ids that tag every log line of one sync
// session. Ids are UUIDv7 so that they sort by session start.
type SessionIDGenerator struct{}

func NewSessionIDGenerator() *SessionIDGenerator {
	return &SessionIDGenerator{}
}

// Generate returns a new session id. It falls back to a random UUIDv4 when
// the clock-based generator fails.
func (g *SessionIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
