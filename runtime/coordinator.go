package runtime

import (
	"context"
	"log/slog"

	"roulette-lab/contract"
	"roulette-lab/domain"
	"roulette-lab/domain/event"
)

// Coordinator translates per-connection client events into directory and
// table operations and fans the resulting snapshots out to the other
// occupants. The transport owns the connection-to-table binding and hands
// it back in on every call; the coordinator itself is stateless.
type Coordinator struct {
	log       *slog.Logger
	directory *Directory
	registry  contract.IRegistry
	recorder  contract.OutcomeRecorder
}

func NewCoordinator(log *slog.Logger, directory *Directory,
	registry contract.IRegistry, recorder contract.OutcomeRecorder) *Coordinator {
	return &Coordinator{
		log:       log,
		directory: directory,
		registry:  registry,
		recorder:  recorder,
	}
}

// JoinSolo registers a practice session keyed by the connection id and
// returns that id as the session id.
func (c *Coordinator) JoinSolo(connID string) string {
	c.directory.JoinSolo(connID)
	return connID
}

// SpinSolo consumes the session's next committed outcome and records it
// in the audit trail.
func (c *Coordinator) SpinSolo(sessionID string) (domain.Outcome, error) {
	outcome, err := c.directory.SpinSolo(sessionID)
	if err != nil {
		return domain.Outcome{}, err
	}
	c.record(sessionID, outcome)
	return outcome, nil
}

// JoinTable seats the connection at a table, registers its sink for
// broadcasts and announces the new player to the other occupants.
// The reply value is the current snapshot list of the joined table.
func (c *Coordinator) JoinTable(ctx context.Context, connID, name string,
	sink contract.EventSink) (*domain.Table, []domain.PlayerSnapshot, error) {
	table, player, err := c.directory.JoinTable(connID, name)
	if err != nil {
		return nil, nil, err
	}

	c.registry.Subscribe(connID, table.ID, sink)
	c.broadcast(ctx, event.PlayerJoined{Table: table.ID, Player: player.Snapshot()}, connID)
	return table, table.Snapshots(), nil
}

// BetUpdate applies a client-reported balance/bet-count total. A
// non-terminal update is announced to the other occupants; the update
// that finishes the game triggers the single game-over broadcast to the
// whole table instead.
func (c *Coordinator) BetUpdate(ctx context.Context, table *domain.Table,
	connID string, balance, bets int) error {
	snapshot, standings, err := c.directory.ApplyBetUpdate(table, connID, balance, bets)
	if err != nil {
		return err
	}

	if standings != nil {
		c.broadcast(ctx, event.GameOver{Table: table.ID, Standings: standings})
		return nil
	}
	c.broadcast(ctx, event.PlayerUpdated{Table: table.ID, Player: snapshot}, connID)
	return nil
}

// SpinTable consumes the table's next outcome, records it and reveals it
// to the whole table, requester included.
func (c *Coordinator) SpinTable(ctx context.Context, table *domain.Table,
	connID string) (domain.Outcome, error) {
	outcome, err := c.directory.SpinTable(table, connID)
	if err != nil {
		return domain.Outcome{}, err
	}
	c.record(table.ID, outcome)
	c.broadcast(ctx, event.OutcomeRevealed{Table: table.ID, Outcome: outcome})
	return outcome, nil
}

// LeaveTable unseats the connection, announces the departure and drops
// the sink registration.
func (c *Coordinator) LeaveTable(ctx context.Context, table *domain.Table, connID string) {
	player, ok, closed := c.directory.LeaveTable(table, connID)
	c.registry.Unsubscribe(connID, table.ID)
	if !ok {
		return
	}
	if closed {
		c.log.Debug("table torn down after departure", "table_id", table.ID)
	}
	c.broadcast(ctx, event.PlayerLeft{Table: table.ID, Name: player.Name})
}

// Disconnect is the implicit cleanup path: any solo session keyed by the
// connection id is dropped, and a bound table gets the leave treatment.
func (c *Coordinator) Disconnect(ctx context.Context, connID string, table *domain.Table) {
	c.directory.DropSolo(connID)
	if table != nil {
		c.LeaveTable(ctx, table, connID)
	}
}

// broadcast fans an event out to every sink of its table, minus the
// excluded originators. Best effort: a slow or gone consumer is logged,
// never propagated.
func (c *Coordinator) broadcast(ctx context.Context, e event.DomainEvent, exclude ...string) {
	for _, sink := range c.registry.SinksForTable(e.TableID(), exclude...) {
		if err := sink.Consume(ctx, e); err != nil {
			c.log.Warn("dropping event for slow consumer",
				"table_id", e.TableID(), "error", err)
		}
	}
}

func (c *Coordinator) record(sessionID string, outcome domain.Outcome) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(sessionID, outcome); err != nil {
		c.log.Warn("audit trail write failed", "session_id", sessionID, "error", err)
	}
}
