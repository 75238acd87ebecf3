// Package memory keeps conversation context small enough to prompt with:
// a sliding window of recent messages plus a compounding summary of
// everything older.
package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/wayfarer/internal/config"
	"github.com/sandevgo/wayfarer/internal/core"
)

const (
	summaryTemperature = 0.3
	summaryMaxTokens   = 200
)

const summaryPrompt = `Summarize this travel planning conversation into 2-3 concise sentences. Focus on key facts: destination, dates, budget, preferences, and any decisions made.

Conversation:
%s

Previous summary (if any):
%s

Concise summary:`

type Manager struct {
	windowSize         int
	summarizeThreshold int
	ai                 core.AIProvider
}

func NewManager(cfg *config.AppConfig, ai core.AIProvider) *Manager {
	return &Manager{
		windowSize:         cfg.ContextWindowSize,
		summarizeThreshold: cfg.SummarizeThreshold,
		ai:                 ai,
	}
}

// SelectWindow returns the last windowSize messages, or all of them when
// the history is shorter.
func (m *Manager) SelectWindow(messages []core.Message) []core.Message {
	if len(messages) <= m.windowSize {
		return messages
	}
	return messages[len(messages)-m.windowSize:]
}

// BuildContextBlock joins the summary and formatted facts into the
// prompt's conversation-context section. Either part may be absent.
func (m *Manager) BuildContextBlock(summary string, facts core.TripFacts) string {
	var parts []string
	if summary != "" {
		parts = append(parts, "Previous conversation summary: "+summary)
	}
	if factsStr := FormatFacts(facts); factsStr != "" {
		parts = append(parts, "Known information: "+factsStr)
	}
	return strings.Join(parts, "\n\n")
}

// ShouldSummarize reports whether enough messages have accumulated since
// the last summarization.
func (m *Manager) ShouldSummarize(messageCount, lastSummarizedIndex int) bool {
	return messageCount-lastSummarizedIndex >= m.summarizeThreshold
}

// Summarize folds every message except the last window into a 2-3
// sentence summary, given the prior summary so summaries compound
// instead of resetting. With nothing old enough to fold in, the existing
// summary is returned unchanged.
func (m *Manager) Summarize(ctx context.Context, messages []core.Message, existingSummary string) (string, error) {
	if len(messages) <= m.windowSize {
		return existingSummary, nil
	}

	older := messages[:len(messages)-m.windowSize]
	lines := make([]string, len(older))
	for i, msg := range older {
		lines[i] = strings.ToUpper(msg.Role) + ": " + msg.Content
	}

	prior := existingSummary
	if prior == "" {
		prior = "None"
	}
	prompt := fmt.Sprintf(summaryPrompt, strings.Join(lines, "\n"), prior)

	reply, err := m.ai.Chat(ctx, []core.Message{{Role: core.RoleUser, Content: prompt}}, core.ChatOptions{
		Temperature: summaryTemperature,
		MaxTokens:   summaryMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("summarize conversation: %w", err)
	}

	return strings.TrimSpace(reply), nil
}
