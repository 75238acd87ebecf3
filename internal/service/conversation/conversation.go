// Package conversation orchestrates one chat turn: extract facts, build
// context, retrieve knowledge, prompt the model, and decide whether the
// history needs summarizing.
package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sandevgo/wayfarer/internal/config"
	"github.com/sandevgo/wayfarer/internal/core"
	"github.com/sandevgo/wayfarer/internal/service/extract"
	"github.com/sandevgo/wayfarer/internal/service/memory"
	"github.com/sandevgo/wayfarer/internal/service/query"
	"github.com/sandevgo/wayfarer/internal/service/retrieval"
	"github.com/sandevgo/wayfarer/pkg/log"
	"github.com/sandevgo/wayfarer/pkg/tokens"
)

// TurnResult is everything a turn changed. The service itself persists
// nothing; the caller writes the result atomically or not at all.
type TurnResult struct {
	Reply               string
	Facts               core.TripFacts
	Summary             string
	LastSummarizedIndex int
}

type Service struct {
	ai        core.AIProvider
	memory    *memory.Manager
	retrieval *retrieval.Service

	topK        int
	temperature float64
	maxTokens   int

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewService(cfg *config.AppConfig, ai core.AIProvider, mem *memory.Manager, ret *retrieval.Service) *Service {
	return &Service{
		ai:          ai,
		memory:      mem,
		retrieval:   ret,
		topK:        cfg.RAGTopK,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		locks:       make(map[int64]*sync.Mutex),
	}
}

// lockFor serializes turns per conversation; turns on different
// conversations run concurrently.
func (s *Service) lockFor(convID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[convID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[convID] = lock
	}
	return lock
}

// ProcessTurn runs a single turn against the given conversation state.
//
// A failed reply generation fails the whole turn. A failed summary
// update after a successful reply does not: the previous summary and
// index are carried forward.
func (s *Service) ProcessTurn(ctx context.Context, conv *core.Conversation, trip *core.Trip, userMessage string) (*TurnResult, error) {
	if strings.TrimSpace(userMessage) == "" {
		return nil, fmt.Errorf("%w: empty user message", core.ErrInvalidMessage)
	}

	lock := s.lockFor(conv.ID)
	lock.Lock()
	defer lock.Unlock()

	logger := log.FromCtx(ctx)

	userMsg := core.Message{Role: core.RoleUser, Content: userMessage}
	all := make([]core.Message, 0, len(conv.Messages)+1)
	all = append(all, conv.Messages...)
	all = append(all, userMsg)

	extracted, err := extract.Extract(all)
	if err != nil {
		return nil, fmt.Errorf("extract facts: %w", err)
	}
	facts := conv.Facts.Merge(extracted)

	window := s.memory.SelectWindow(conv.Messages)
	contextBlock := s.memory.BuildContextBlock(conv.Summary, facts)

	enhanced := query.Enhance(userMessage, facts)
	if enhanced != userMessage {
		logger.Debug().Str("query", enhanced).Msg("retrieval query enhanced")
	}
	candidates := s.retrieval.Search(ctx, enhanced, s.topK, query.Filter(facts))

	docs := make([]string, len(candidates))
	for i, c := range candidates {
		docs[i] = c.Document
	}
	ragContext := strings.Join(docs, "\n\n")

	systemPrompt := buildSystemPrompt(contextBlock, facts, ragContext, trip)

	history := make([]core.Message, 0, len(window)+2)
	history = append(history, core.Message{Role: core.RoleSystem, Content: systemPrompt})
	history = append(history, window...)
	history = append(history, userMsg)

	promptTokens := 0
	for _, m := range history {
		promptTokens += tokens.Estimate(m.Content)
	}
	logger.Debug().
		Int("messages", len(history)).
		Int("documents", len(candidates)).
		Int("approx_tokens", promptTokens).
		Msg("prompting model")

	reply, err := s.ai.Chat(ctx, history, core.ChatOptions{
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}

	summary := conv.Summary
	lastIdx := conv.LastSummarizedIndex
	messageCount := len(all)
	if s.memory.ShouldSummarize(messageCount, lastIdx) {
		newSummary, sumErr := s.memory.Summarize(ctx, all, conv.Summary)
		if sumErr != nil {
			logger.Warn().Err(sumErr).Msg("summary update failed, keeping previous summary")
		} else {
			summary = newSummary
			lastIdx = messageCount
		}
	}

	return &TurnResult{
		Reply:               reply,
		Facts:               facts,
		Summary:             summary,
		LastSummarizedIndex: lastIdx,
	}, nil
}
