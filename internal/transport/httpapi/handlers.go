package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sandevgo/wayfarer/internal/core"
	"github.com/sandevgo/wayfarer/internal/service/conversation"
	"github.com/sandevgo/wayfarer/pkg/log"
)

const dateLayout = "2006-01-02"

type TurnProcessor interface {
	ProcessTurn(ctx context.Context, conv *core.Conversation, trip *core.Trip, userMessage string) (*conversation.TurnResult, error)
}

type Handlers struct {
	trips core.TripsRepository
	convs core.ConversationsRepository
	turns TurnProcessor
}

func NewHandlers(trips core.TripsRepository, convs core.ConversationsRepository, turns TurnProcessor) *Handlers {
	return &Handlers{trips: trips, convs: convs, turns: turns}
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createTripRequest struct {
	UserID      int64  `json:"user_id"`
	Destination string `json:"destination"`
	Budget      int    `json:"budget"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type tripResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Destination string `json:"destination,omitempty"`
	Budget      int    `json:"budget,omitempty"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

func (h *Handlers) createTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == 0 {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	trip := &core.Trip{
		UserID:      req.UserID,
		Destination: req.Destination,
		Budget:      req.Budget,
	}
	for _, d := range []struct {
		value string
		dst   **time.Time
	}{
		{req.StartDate, &trip.StartDate},
		{req.EndDate, &trip.EndDate},
	} {
		if d.value == "" {
			continue
		}
		parsed, err := time.Parse(dateLayout, d.value)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", d.value))
			return
		}
		*d.dst = &parsed
	}

	if err := h.trips.Create(r.Context(), trip); err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("failed to create trip")
		respondError(w, http.StatusInternalServerError, "failed to create trip")
		return
	}

	respondJSON(w, http.StatusCreated, toTripResponse(trip))
}

func (h *Handlers) getTrip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid trip id")
		return
	}

	trip, err := h.trips.Get(r.Context(), id)
	if errors.Is(err, core.ErrNotFound) {
		respondError(w, http.StatusNotFound, "trip not found")
		return
	}
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("failed to fetch trip")
		respondError(w, http.StatusInternalServerError, "failed to fetch trip")
		return
	}

	respondJSON(w, http.StatusOK, toTripResponse(trip))
}

type chatRequest struct {
	TripID  int64  `json:"trip_id"`
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

type chatResponse struct {
	Message        string `json:"message"`
	ConversationID int64  `json:"conversation_id"`
}

func (h *Handlers) chatMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromCtx(ctx)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trip, err := h.trips.Get(ctx, req.TripID)
	if errors.Is(err, core.ErrNotFound) {
		respondError(w, http.StatusNotFound, "trip not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch trip")
		respondError(w, http.StatusInternalServerError, "failed to fetch trip")
		return
	}
	if trip.UserID != req.UserID {
		respondError(w, http.StatusForbidden, "trip belongs to another user")
		return
	}

	conv, err := h.convs.GetByTrip(ctx, trip.ID)
	if errors.Is(err, core.ErrNotFound) {
		conv = &core.Conversation{TripID: trip.ID, UserID: trip.UserID}
		if err := h.convs.Create(ctx, conv); err != nil {
			logger.Error().Err(err).Msg("failed to create conversation")
			respondError(w, http.StatusInternalServerError, "failed to create conversation")
			return
		}
	} else if err != nil {
		logger.Error().Err(err).Msg("failed to fetch conversation")
		respondError(w, http.StatusInternalServerError, "failed to fetch conversation")
		return
	}

	result, err := h.turns.ProcessTurn(ctx, conv, trip, req.Message)
	if errors.Is(err, core.ErrInvalidMessage) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logger.Error().Err(err).Int64("conversation_id", conv.ID).Msg("turn failed")
		respondError(w, http.StatusBadGateway, "failed to generate reply")
		return
	}

	err = h.convs.AppendTurn(ctx, conv.ID, conv.MessageCount,
		core.Message{Role: core.RoleUser, Content: req.Message},
		core.Message{Role: core.RoleAssistant, Content: result.Reply},
		result.Facts, result.Summary, result.LastSummarizedIndex,
	)
	if errors.Is(err, core.ErrConflict) {
		respondError(w, http.StatusConflict, "conversation changed, retry")
		return
	}
	if err != nil {
		logger.Error().Err(err).Int64("conversation_id", conv.ID).Msg("failed to persist turn")
		respondError(w, http.StatusInternalServerError, "failed to persist turn")
		return
	}

	respondJSON(w, http.StatusOK, chatResponse{
		Message:        result.Reply,
		ConversationID: conv.ID,
	})
}

func toTripResponse(trip *core.Trip) tripResponse {
	resp := tripResponse{
		ID:          trip.ID,
		UserID:      trip.UserID,
		Destination: trip.Destination,
		Budget:      trip.Budget,
		Status:      trip.Status,
	}
	if trip.StartDate != nil {
		resp.StartDate = trip.StartDate.Format(dateLayout)
	}
	if trip.EndDate != nil {
		resp.EndDate = trip.EndDate.Format(dateLayout)
	}
	return resp
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
