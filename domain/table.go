package domain

import (
	"roulette-lab/errors"

	"github.com/samber/lo"
)

// DefaultTableCapacity is the number of seats at a tournament table.
const DefaultTableCapacity = 3

// Table is a tournament room: an ordered set of seated players sharing one
// wheel. It moves through three phases: open (accepting players), started
// (full, no further joins) and finished (every player exhausted).
//
// started is monotonic. A player leaving a started table vacates the seat
// but never reopens the table to new entrants.
//
// Table carries no lock of its own; the Directory serializes all access.
type Table struct {
	ID       string
	players  []*Player
	started  bool
	finished bool
	capacity int
	wheel    *Wheel
}

func NewTable(id string, capacity, lookahead int) *Table {
	if capacity <= 0 {
		capacity = DefaultTableCapacity
	}
	return &Table{ID: id, capacity: capacity, wheel: NewWheel(lookahead)}
}

// AddPlayer seats a player. Seating the last free seat flips the table to
// started in the same operation.
func (t *Table) AddPlayer(p *Player) error {
	if len(t.players) >= t.capacity {
		return errors.ErrTableFull
	}
	if t.started {
		return errors.ErrTableStarted
	}
	t.players = append(t.players, p)
	if len(t.players) == t.capacity {
		t.started = true
	}
	return nil
}

// RemovePlayer unseats by connection identity. Allowed in any phase.
func (t *Table) RemovePlayer(id string) (*Player, bool) {
	for i, p := range t.players {
		if p.ID == id {
			t.players = append(t.players[:i], t.players[i+1:]...)
			return p, true
		}
	}
	return nil, false
}

func (t *Table) Player(id string) (*Player, bool) {
	for _, p := range t.players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func (t *Table) Players() []*Player {
	players := make([]*Player, len(t.players))
	copy(players, t.players)
	return players
}

func (t *Table) Len() int { return len(t.players) }

func (t *Table) Started() bool { return t.started }

// Start flips the table to started before it is full. Joins are rejected
// from this point on.
func (t *Table) Start() { t.started = true }

// SeatAvailable reports whether matchmaking may place a new player here.
func (t *Table) SeatAvailable() bool {
	return !t.started && len(t.players) < t.capacity
}

// Over reports the terminal condition: every seated player has exhausted
// either their bets or their balance. An empty table is never "over"; the
// Directory removes it through the departure policy instead.
//
// Over must be re-evaluated after every player update. Balances can be
// rewritten by client updates, so the condition is not monotonic.
func (t *Table) Over() bool {
	if len(t.players) == 0 {
		return false
	}
	for _, p := range t.players {
		if !p.Exhausted() {
			return false
		}
	}
	return true
}

// Finish marks the terminal phase exactly once. Returns false if the table
// had already finished, letting callers emit a single game-over broadcast
// even when late updates race the teardown.
func (t *Table) Finish() bool {
	if t.finished {
		return false
	}
	t.finished = true
	return true
}

func (t *Table) Wheel() *Wheel { return t.wheel }

func (t *Table) Snapshots() []PlayerSnapshot {
	return lo.Map(t.players, func(p *Player, _ int) PlayerSnapshot {
		return p.Snapshot()
	})
}
