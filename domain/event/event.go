package event

import "roulette-lab/domain"

// DomainEvent is anything the coordinator fans out to the sinks of a table.
type DomainEvent interface {
	TableID() string
}

// PlayerJoined is broadcast to the other occupants when a seat is taken.
type PlayerJoined struct {
	Table  string
	Player domain.PlayerSnapshot
}

func (e PlayerJoined) TableID() string { return e.Table }

// PlayerLeft is broadcast to the other occupants on leave or disconnect.
type PlayerLeft struct {
	Table string
	Name  string
}

func (e PlayerLeft) TableID() string { return e.Table }

// PlayerUpdated carries a non-terminal balance/bet-count change.
type PlayerUpdated struct {
	Table  string
	Player domain.PlayerSnapshot
}

func (e PlayerUpdated) TableID() string { return e.Table }

// OutcomeRevealed is broadcast to the whole table, requester included.
type OutcomeRevealed struct {
	Table   string
	Outcome domain.Outcome
}

func (e OutcomeRevealed) TableID() string { return e.Table }

// GameOver carries the final standings. Emitted exactly once per table.
type GameOver struct {
	Table     string
	Standings []domain.PlayerSnapshot
}

func (e GameOver) TableID() string { return e.Table }
