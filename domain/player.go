package domain

import "roulette-lab/errors"

// Player tracks one seated participant's state within a single game.
// The ID is the transport connection identity; Balance and BetsPlaced
// are client-reported totals (see SetBalance / SetBetsPlaced).
type Player struct {
	ID              string
	Name            string
	Balance         int
	BetsPlaced      int
	betLimit        int
	startingBalance int
}

func NewPlayer(id, name string, startingBalance, betLimit int) *Player {
	return &Player{
		ID:              id,
		Name:            name,
		Balance:         startingBalance,
		betLimit:        betLimit,
		startingBalance: startingBalance,
	}
}

// PlaceBet increments the bet counter, failing once the limit is reached.
func (p *Player) PlaceBet() error {
	if p.BetsPlaced >= p.betLimit {
		return errors.ErrBetLimitReached
	}
	p.BetsPlaced++
	return nil
}

// Reset restores the starting balance and zeroes the counter so the seat
// can be reused for a fresh game.
func (p *Player) Reset() {
	p.Balance = p.startingBalance
	p.BetsPlaced = 0
}

// SetBalance overwrites the balance with a client-reported total.
// The server stays authoritative over outcomes only; accounting follows
// what the client asserts.
func (p *Player) SetBalance(balance int) {
	p.Balance = balance
}

// SetBetsPlaced overwrites the counter with a client-reported total,
// rejecting totals beyond the limit.
func (p *Player) SetBetsPlaced(bets int) error {
	if bets > p.betLimit {
		return errors.ErrBetLimitReached
	}
	p.BetsPlaced = bets
	return nil
}

func (p *Player) BetLimitReached() bool {
	return p.BetsPlaced >= p.betLimit
}

// Exhausted reports whether this player is done for the game, either by
// spending all allowed bets or by running out of chips.
func (p *Player) Exhausted() bool {
	return p.BetLimitReached() || p.Balance <= 0
}

// PlayerSnapshot is the externally visible projection of a Player.
type PlayerSnapshot struct {
	Name       string `json:"name"`
	Balance    int    `json:"balance"`
	BetsPlaced int    `json:"betsPlaced"`
}

func (p *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{Name: p.Name, Balance: p.Balance, BetsPlaced: p.BetsPlaced}
}
