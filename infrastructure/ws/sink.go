package ws

import (
	"context"
	"log/slog"

	"roulette-lab/domain/event"
)

// Sink buffers broadcast events for one connection. The session's writer
// pump drains Events and puts them on the wire.
type Sink struct {
	log    *slog.Logger
	Events chan event.DomainEvent
}

func NewSink(log *slog.Logger, bufferSize int) *Sink {
	return &Sink{log: log, Events: make(chan event.DomainEvent, bufferSize)}
}

// Consume is called by the coordinator's fan-out. A full buffer means the
// client is not keeping up; the event is dropped rather than blocking the
// broadcast for everyone else.
func (s *Sink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		s.log.Warn("connection buffer full, dropping event", "table_id", e.TableID())
		return nil
	}
}
