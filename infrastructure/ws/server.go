// Package ws is the WebSocket transport: it upgrades connections, decodes
// typed event payloads and routes them into the runtime coordinator. Core
// errors become reply-error frames here; nothing crosses this boundary
// untyped and nothing here is fatal to other connections.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	apperrors "roulette-lab/errors"

	"roulette-lab/domain"
	"roulette-lab/domain/event"
	"roulette-lab/runtime"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Server struct {
	log         *slog.Logger
	coordinator *runtime.Coordinator
	bufferSize  int
	upgrader    websocket.Upgrader
}

func NewServer(log *slog.Logger, coordinator *runtime.Coordinator, bufferSize int) *Server {
	return &Server{
		log:         log,
		coordinator: coordinator,
		bufferSize:  bufferSize,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "error", err)
		return
	}

	sess := &session{
		log:         s.log,
		coordinator: s.coordinator,
		conn:        conn,
		connID:      uuid.NewString(),
		sink:        NewSink(s.log, s.bufferSize),
	}
	sess.run(r.Context())
}

// session is the per-connection state: a stable identity, the outbound
// sink and at most one bound table for the connection's lifetime.
type session struct {
	log         *slog.Logger
	coordinator *runtime.Coordinator
	conn        *websocket.Conn
	connID      string
	sink        *Sink
	table       *domain.Table

	writeMu sync.Mutex
}

// run blocks until the client disconnects. The read loop processes frames
// one at a time, so every handler execution is atomic with respect to this
// connection; a writer pump delivers broadcasts concurrently.
func (s *session) run(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	defer func() {
		s.coordinator.Disconnect(ctx, s.connID, s.table)
		_ = s.conn.Close()
		s.log.Debug("connection closed", "conn_id", s.connID)
	}()

	go s.pump(ctx)

	for {
		_, frame, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("connection dropped", "conn_id", s.connID, "error", err)
			}
			return
		}

		var env Envelope
		if err := unmarshalEnvelope(frame, &env); err != nil {
			s.replyError(fmt.Sprintf("malformed frame: %v", err))
			continue
		}
		s.route(ctx, env)
	}
}

func unmarshalEnvelope(frame []byte, env *Envelope) error {
	if err := json.Unmarshal(frame, env); err != nil {
		return err
	}
	if env.Event == "" {
		return fmt.Errorf("missing event name")
	}
	return nil
}

// route dispatches one inbound event. Errors are converted to reply-error
// frames; they never tear the connection down.
func (s *session) route(ctx context.Context, env Envelope) {
	switch env.Event {
	case EventSoloJoin:
		sessionID := s.coordinator.JoinSolo(s.connID)
		s.reply(EventSoloJoined, SoloJoinedReply{Message: "solo session ready", SessionID: sessionID})

	case EventSoloSpin:
		req, err := decodePayload[SoloSpinRequest](env.Data)
		if err != nil {
			s.replyError(err.Error())
			return
		}
		outcome, err := s.coordinator.SpinSolo(req.SessionID)
		if err != nil {
			s.replyError(err.Error())
			return
		}
		s.reply(EventSpinResult, SpinResultReply{Message: "wheel spun", Outcome: outcome})

	case EventTableJoin:
		if s.table != nil {
			s.replyError("already seated at a table")
			return
		}
		req, err := decodePayload[TableJoinRequest](env.Data)
		if err != nil {
			s.replyError(err.Error())
			return
		}
		table, players, err := s.coordinator.JoinTable(ctx, s.connID, req.Name, s.sink)
		if err != nil {
			s.replyError(err.Error())
			return
		}
		s.table = table
		s.reply(EventTableJoined, TableJoinedReply{TableID: table.ID, Players: players})

	case EventTableBetUpdate:
		if s.table == nil {
			s.replyError(apperrors.ErrNoTableBound.Error())
			return
		}
		req, err := decodePayload[BetUpdateRequest](env.Data)
		if err != nil {
			s.replyError(err.Error())
			return
		}
		if err := s.coordinator.BetUpdate(ctx, s.table, s.connID, req.Balance, req.BetsPlaced); err != nil {
			s.replyError(err.Error())
		}

	case EventTableSpin:
		if s.table == nil {
			s.replyError(apperrors.ErrNoTableBound.Error())
			return
		}
		outcome, err := s.coordinator.SpinTable(ctx, s.table, s.connID)
		if err != nil {
			s.replyError(err.Error())
			return
		}
		s.reply(EventOutcome, OutcomeReply{Outcome: outcome})

	case EventTableLeave:
		if s.table == nil {
			return
		}
		s.coordinator.LeaveTable(ctx, s.table, s.connID)
		s.table = nil

	default:
		s.replyError(fmt.Sprintf("unknown event %q", env.Event))
	}
}

// pump drains the sink and writes broadcast frames until the connection
// context ends.
func (s *session) pump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-s.sink.Events:
			name, payload := translate(evt)
			if name == "" {
				continue
			}
			s.reply(name, payload)
		}
	}
}

// translate maps a domain event onto its wire representation.
func translate(e event.DomainEvent) (string, any) {
	switch evt := e.(type) {
	case event.PlayerJoined:
		return EventPlayerJoined, PlayerReply{Player: evt.Player}
	case event.PlayerUpdated:
		return EventPlayerUpdated, PlayerReply{Player: evt.Player}
	case event.PlayerLeft:
		return EventPlayerLeft, PlayerLeftReply{Name: evt.Name}
	case event.OutcomeRevealed:
		return EventOutcome, OutcomeReply{Outcome: evt.Outcome}
	case event.GameOver:
		return EventGameOver, GameOverReply{Players: evt.Standings}
	default:
		return "", nil
	}
}

func (s *session) reply(eventName string, payload any) {
	env, err := newEnvelope(eventName, payload)
	if err != nil {
		s.log.Error("failed to encode reply", "event", eventName, "error", err)
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(env); err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		s.log.Warn("failed to write frame", "conn_id", s.connID, "error", err)
	}
}

func (s *session) replyError(message string) {
	s.reply(EventError, ErrorReply{Message: message})
}
