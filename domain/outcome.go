// Package domain contains core concepts of the roulette system.
// This file defines Outcomes and the Wheel that pre-generates them.
// No runtime, network, or UI logic should be added here.
package domain

import "math/rand/v2"

// WheelSize is the number of pockets on a European wheel.
const WheelSize = 37

// DefaultLookahead is how many future outcomes a wheel keeps committed ahead of play.
const DefaultLookahead = 10

type Color string

const (
	ColorGreen Color = "green"
	ColorRed   Color = "red"
	ColorBlack Color = "black"
)

// redPockets is the standard European color table. Pocket 0 is green,
// the remaining 36 split into 18 red and 18 black.
var redPockets = map[int]struct{}{
	1: {}, 3: {}, 5: {}, 7: {}, 9: {}, 12: {}, 14: {}, 16: {}, 18: {},
	19: {}, 21: {}, 23: {}, 25: {}, 27: {}, 30: {}, 32: {}, 34: {}, 36: {},
}

// ColorOf maps a pocket value to its color. Clients display this mapping
// directly, so it must stay in lockstep with their color table.
func ColorOf(value int) Color {
	if value == 0 {
		return ColorGreen
	}
	if _, ok := redPockets[value]; ok {
		return ColorRed
	}
	return ColorBlack
}

// Outcome is one immutable spin result.
type Outcome struct {
	Value int   `json:"value"`
	Color Color `json:"color"`
}

func NewOutcome(value int) Outcome {
	return Outcome{Value: value, Color: ColorOf(value)}
}

// Wheel owns an ordered queue of pre-generated outcomes. Outcomes are
// committed before they are revealed: the queue is topped up to the
// lookahead size on construction and after every spin, so the next
// `lookahead` results can always be audited without affecting play.
//
// Wheel is not safe for concurrent use; callers serialize access
// (the Directory holds the lock for every table and solo session).
type Wheel struct {
	lookahead int
	queue     []Outcome
}

func NewWheel(lookahead int) *Wheel {
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}
	w := &Wheel{lookahead: lookahead}
	w.refill()
	return w
}

// Spin removes and returns the head of the queue, then refills it back
// to the lookahead size.
func (w *Wheel) Spin() Outcome {
	head := w.queue[0]
	w.queue = w.queue[1:]
	w.refill()
	return head
}

// Upcoming returns a read-only snapshot of the committed future outcomes.
// It never mutates queue order.
func (w *Wheel) Upcoming() []Outcome {
	upcoming := make([]Outcome, len(w.queue))
	copy(upcoming, w.queue)
	return upcoming
}

func (w *Wheel) refill() {
	for len(w.queue) < w.lookahead {
		w.queue = append(w.queue, NewOutcome(rand.IntN(WheelSize)))
	}
}
