package core

import (
	"context"
	"time"
)

const (
	TripStatusGathering = "gathering"
	TripStatusPlanning  = "planning"
	TripStatusComplete  = "complete"
)

type Trip struct {
	ID          int64
	UserID      int64
	Destination string
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      int
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Conversation is the per-trip dialogue record. Messages holds the full
// ordered history; MessageCount mirrors len(Messages) and doubles as the
// optimistic-concurrency token on updates.
type Conversation struct {
	ID                  int64
	TripID              int64
	UserID              int64
	Messages            []Message
	Facts               TripFacts
	Summary             string
	MessageCount        int
	LastSummarizedIndex int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type TripsRepository interface {
	Create(ctx context.Context, trip *Trip) error
	Get(ctx context.Context, id int64) (*Trip, error)
}

type ConversationsRepository interface {
	// GetByTrip returns ErrNotFound when the trip has no conversation yet.
	GetByTrip(ctx context.Context, tripID int64) (*Conversation, error)
	Create(ctx context.Context, conv *Conversation) error
	// AppendTurn appends the user/assistant message pair and stores the new
	// facts, summary and summarization index. expectedCount is the message
	// count the caller based the turn on; a mismatch returns ErrConflict and
	// nothing is written.
	AppendTurn(ctx context.Context, convID int64, expectedCount int, userMsg, assistantMsg Message, facts TripFacts, summary string, lastSummarizedIndex int) error
}
