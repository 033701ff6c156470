// Package history keeps the per-session log of picked colors.
package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/codr1/chromapick/internal/models"
)

var ErrSessionRequired = errors.New("session id is required")

// Record is one sample recorded for a session. Records are append-only.
type Record struct {
	SessionID  string              `json:"sessionId"`
	Seq        int64               `json:"seq"`
	Color      models.DerivedColor `json:"color"`
	RecordedAt time.Time           `json:"recordedAt"`
}

// Stats summarizes everything a store holds.
type Stats struct {
	Sessions int `json:"sessions"`
	Records  int `json:"records"`
}

// Store persists session history. List returns records in recording order.
type Store interface {
	Append(ctx context.Context, record Record) (Record, error)
	List(ctx context.Context, sessionID string) ([]Record, error)
	Stats(ctx context.Context) (Stats, error)
}

func validateSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrSessionRequired
	}
	return nil
}
