package runtime

import (
	"fmt"
	"log/slog"
	"sync"

	"roulette-lab/domain"
	"roulette-lab/errors"
)

// Settings carries the per-game constants the directory seeds new
// sessions and tables with. Zero values fall back to the defaults below.
type Settings struct {
	Lookahead       int
	TableCapacity   int
	StartingBalance int
	BetLimit        int
}

const (
	defaultStartingBalance = 1000
	defaultBetLimit        = 5
)

func (s Settings) withDefaults() Settings {
	if s.Lookahead <= 0 {
		s.Lookahead = domain.DefaultLookahead
	}
	if s.TableCapacity <= 0 {
		s.TableCapacity = domain.DefaultTableCapacity
	}
	if s.StartingBalance <= 0 {
		s.StartingBalance = defaultStartingBalance
	}
	if s.BetLimit <= 0 {
		s.BetLimit = defaultBetLimit
	}
	return s
}

// Directory owns the two process-wide registries: solo session wheels
// keyed by session id, and the ordered collection of tournament tables.
// It is constructed once at process start and injected where needed;
// there is no ambient global state.
//
// One mutex guards both registries and every table they contain. Each
// exported operation is atomic under it, which is what makes the
// lock-free domain types safe on a multi-threaded runtime.
type Directory struct {
	mu       sync.Mutex
	log      *slog.Logger
	settings Settings
	solo     map[string]*domain.Wheel
	tables   []*domain.Table
	tableSeq int
}

func NewDirectory(log *slog.Logger, settings Settings) *Directory {
	return &Directory{
		log:      log,
		settings: settings.withDefaults(),
		solo:     make(map[string]*domain.Wheel),
	}
}

// JoinSolo ensures a lookahead wheel exists for the session. Idempotent:
// joining an existing session keeps its committed queue intact.
func (d *Directory) JoinSolo(sessionID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.solo[sessionID]; ok {
		return
	}
	d.solo[sessionID] = domain.NewWheel(d.settings.Lookahead)
	d.log.Debug("solo session registered", "session_id", sessionID)
}

// SpinSolo pops the head outcome of a registered session's wheel.
func (d *Directory) SpinSolo(sessionID string) (domain.Outcome, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	wheel, ok := d.solo[sessionID]
	if !ok {
		return domain.Outcome{}, fmt.Errorf("session %q: %w", sessionID, errors.ErrSessionNotFound)
	}
	return wheel.Spin(), nil
}

// DropSolo discards a session's wheel, if any. Called on disconnect.
func (d *Directory) DropSolo(sessionID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.solo, sessionID)
}

// SoloUpcoming exposes the committed future outcomes of a session for
// the admin inspection endpoint.
func (d *Directory) SoloUpcoming(sessionID string) ([]domain.Outcome, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	wheel, ok := d.solo[sessionID]
	if !ok {
		return nil, false
	}
	return wheel.Upcoming(), true
}

// JoinTable is first-fit matchmaking: a linear scan for the first table
// with an open seat, creating a fresh one when none accepts. Table ids
// come from a monotonically increasing sequence and are never reused.
func (d *Directory) JoinTable(connID, name string) (*domain.Table, *domain.Player, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	player := domain.NewPlayer(connID, name, d.settings.StartingBalance, d.settings.BetLimit)

	for _, table := range d.tables {
		if !table.SeatAvailable() {
			continue
		}
		if err := table.AddPlayer(player); err != nil {
			return nil, nil, err
		}
		return table, player, nil
	}

	d.tableSeq++
	table := domain.NewTable(fmt.Sprintf("table-%d", d.tableSeq), d.settings.TableCapacity, d.settings.Lookahead)
	if err := table.AddPlayer(player); err != nil {
		return nil, nil, err
	}
	d.tables = append(d.tables, table)
	d.log.Info("table created", "table_id", table.ID)
	return table, player, nil
}

// LeaveTable unseats a connection and applies the departure policy: a
// table is torn down when it empties, or when a departure from a started
// game leaves at most one occupant behind.
func (d *Directory) LeaveTable(table *domain.Table, connID string) (*domain.Player, bool, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	player, ok := table.RemovePlayer(connID)
	if !ok {
		return nil, false, false
	}

	closed := table.Len() == 0 || (table.Started() && table.Len() <= 1)
	if closed {
		d.removeTableLocked(table.ID)
		d.log.Info("table closed", "table_id", table.ID, "remaining", table.Len())
	}
	return player, true, closed
}

// ApplyBetUpdate overwrites a player's client-reported totals and
// re-evaluates the terminal condition. The returned standings are non-nil
// exactly once per table, on the update that finishes the game; the table
// is deregistered in the same operation.
func (d *Directory) ApplyBetUpdate(table *domain.Table, connID string, balance, bets int) (domain.PlayerSnapshot, []domain.PlayerSnapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	player, ok := table.Player(connID)
	if !ok {
		return domain.PlayerSnapshot{}, nil, errors.ErrPlayerNotSeated
	}
	if err := player.SetBetsPlaced(bets); err != nil {
		return domain.PlayerSnapshot{}, nil, err
	}
	player.SetBalance(balance)

	if table.Over() && table.Finish() {
		standings := table.Snapshots()
		d.removeTableLocked(table.ID)
		d.log.Info("game over", "table_id", table.ID)
		return player.Snapshot(), standings, nil
	}
	return player.Snapshot(), nil, nil
}

// SpinTable consumes the table's next committed outcome on behalf of one
// player, counting it against their bet limit.
func (d *Directory) SpinTable(table *domain.Table, connID string) (domain.Outcome, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	player, ok := table.Player(connID)
	if !ok {
		return domain.Outcome{}, errors.ErrPlayerNotSeated
	}
	if err := player.PlaceBet(); err != nil {
		return domain.Outcome{}, err
	}
	return table.Wheel().Spin(), nil
}

// Tables returns a copy of the live table collection for inspection.
func (d *Directory) Tables() []*domain.Table {
	d.mu.Lock()
	defer d.mu.Unlock()

	tables := make([]*domain.Table, len(d.tables))
	copy(tables, d.tables)
	return tables
}

// Counts reports the number of live solo sessions, tables and seated players.
func (d *Directory) Counts() (solo, tables, seated int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, t := range d.tables {
		seated += t.Len()
	}
	return len(d.solo), len(d.tables), seated
}

func (d *Directory) removeTableLocked(id string) {
	for i, t := range d.tables {
		if t.ID == id {
			d.tables = append(d.tables[:i], d.tables[i+1:]...)
			return
		}
	}
}
