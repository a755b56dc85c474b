package ws

import (
	"encoding/json"
	"fmt"

	"roulette-lab/domain"

	"github.com/go-playground/validator/v10"
)

// Inbound event names.
const (
	EventSoloJoin       = "solo-join"
	EventSoloSpin       = "solo-spin"
	EventTableJoin      = "table-join"
	EventTableBetUpdate = "table-bet-update"
	EventTableSpin      = "table-spin"
	EventTableLeave     = "table-leave"
)

// Outbound event names.
const (
	EventSoloJoined    = "solo-joined"
	EventSpinResult    = "spin-result"
	EventTableJoined   = "table-joined"
	EventPlayerJoined  = "player-joined"
	EventPlayerUpdated = "player-updated"
	EventPlayerLeft    = "player-left"
	EventOutcome       = "outcome"
	EventGameOver      = "game-over"
	EventError         = "error"
)

// Envelope is the wire frame for both directions: an event name plus an
// event-specific JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

var validate = validator.New()

// Payloads are distinct tagged structs validated at the transport
// boundary; nothing untyped reaches the coordinator.

type SoloSpinRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

type TableJoinRequest struct {
	Name string `json:"name" validate:"required,min=1,max=32"`
}

type BetUpdateRequest struct {
	Name       string `json:"name" validate:"required"`
	Balance    int    `json:"balance"`
	BetsPlaced int    `json:"betsPlaced" validate:"gte=0"`
}

func decodePayload[T any](raw json.RawMessage) (T, error) {
	var payload T
	if len(raw) == 0 {
		return payload, fmt.Errorf("missing payload")
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, fmt.Errorf("malformed payload: %w", err)
	}
	if err := validate.Struct(&payload); err != nil {
		return payload, fmt.Errorf("invalid payload: %w", err)
	}
	return payload, nil
}

// Reply payloads.

type SoloJoinedReply struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type SpinResultReply struct {
	Message string         `json:"message"`
	Outcome domain.Outcome `json:"outcome"`
}

type TableJoinedReply struct {
	TableID string                  `json:"tableId"`
	Players []domain.PlayerSnapshot `json:"players"`
}

type PlayerReply struct {
	Player domain.PlayerSnapshot `json:"player"`
}

type PlayerLeftReply struct {
	Name string `json:"name"`
}

type OutcomeReply struct {
	Outcome domain.Outcome `json:"outcome"`
}

type GameOverReply struct {
	Players []domain.PlayerSnapshot `json:"players"`
}

type ErrorReply struct {
	Message string `json:"message"`
}

func newEnvelope(eventName string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: eventName, Data: data}, nil
}
