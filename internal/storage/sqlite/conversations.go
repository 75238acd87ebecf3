package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sandevgo/wayfarer/internal/core"
)

type ConversationsRepo struct {
	db *sql.DB
}

func NewConversationsRepo(db *sql.DB) *ConversationsRepo {
	return &ConversationsRepo{db: db}
}

func (r *ConversationsRepo) GetByTrip(ctx context.Context, tripID int64) (*core.Conversation, error) {
	conv := &core.Conversation{}
	var messagesJSON, factsJSON string

	err := r.db.QueryRowContext(ctx, `
		SELECT id, trip_id, user_id, messages, facts, summary, message_count, last_summarized_index, created_at, updated_at
		FROM conversations WHERE trip_id = ?`, tripID,
	).Scan(
		&conv.ID, &conv.TripID, &conv.UserID, &messagesJSON, &factsJSON,
		&conv.Summary, &conv.MessageCount, &conv.LastSummarizedIndex,
		&conv.CreatedAt, &conv.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("conversation for trip %d: %w", tripID, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch conversation: %w", err)
	}

	if err := json.Unmarshal([]byte(messagesJSON), &conv.Messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	if err := json.Unmarshal([]byte(factsJSON), &conv.Facts); err != nil {
		return nil, fmt.Errorf("decode facts: %w", err)
	}
	return conv, nil
}

func (r *ConversationsRepo) Create(ctx context.Context, conv *core.Conversation) error {
	messagesJSON, err := json.Marshal(conv.Messages)
	if err != nil {
		return fmt.Errorf("encode messages: %w", err)
	}
	factsJSON, err := json.Marshal(conv.Facts)
	if err != nil {
		return fmt.Errorf("encode facts: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO conversations (trip_id, user_id, messages, facts, summary, message_count, last_summarized_index)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		conv.TripID, conv.UserID, string(messagesJSON), string(factsJSON),
		conv.Summary, len(conv.Messages), conv.LastSummarizedIndex,
	)
	if err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("conversation id: %w", err)
	}
	conv.ID = id
	conv.MessageCount = len(conv.Messages)
	return nil
}

// AppendTurn writes the turn's outcome in one transaction, guarded by the
// message count the caller read. A concurrent writer makes the guard miss
// and the whole turn is rejected with ErrConflict. last_summarized_index
// never moves backwards.
func (r *ConversationsRepo) AppendTurn(ctx context.Context, convID int64, expectedCount int, userMsg, assistantMsg core.Message, facts core.TripFacts, summary string, lastSummarizedIndex int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var messagesJSON string
	var currentCount, currentLastIdx int
	err = tx.QueryRowContext(ctx, `
		SELECT messages, message_count, last_summarized_index
		FROM conversations WHERE id = ?`, convID,
	).Scan(&messagesJSON, &currentCount, &currentLastIdx)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("conversation %d: %w", convID, core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("fetch conversation: %w", err)
	}

	if currentCount != expectedCount {
		return fmt.Errorf("conversation %d changed (have %d messages, expected %d): %w",
			convID, currentCount, expectedCount, core.ErrConflict)
	}

	var messages []core.Message
	if err := json.Unmarshal([]byte(messagesJSON), &messages); err != nil {
		return fmt.Errorf("decode messages: %w", err)
	}
	messages = append(messages, userMsg, assistantMsg)

	updatedMessages, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encode messages: %w", err)
	}
	factsJSON, err := json.Marshal(facts)
	if err != nil {
		return fmt.Errorf("encode facts: %w", err)
	}

	if lastSummarizedIndex < currentLastIdx {
		lastSummarizedIndex = currentLastIdx
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE conversations
		SET messages = ?, facts = ?, summary = ?, message_count = ?, last_summarized_index = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND message_count = ?`,
		string(updatedMessages), string(factsJSON), summary, len(messages),
		lastSummarizedIndex, convID, expectedCount,
	)
	if err != nil {
		return fmt.Errorf("update conversation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("conversation %d update lost race: %w", convID, core.ErrConflict)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
