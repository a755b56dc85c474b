package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColorOf_ExhaustiveTable(t *testing.T) {
	req := require.New(t)

	red := map[int]struct{}{
		1: {}, 3: {}, 5: {}, 7: {}, 9: {}, 12: {}, 14: {}, 16: {}, 18: {},
		19: {}, 21: {}, 23: {}, 25: {}, 27: {}, 30: {}, 32: {}, 34: {}, 36: {},
	}

	counts := map[Color]int{}
	for value := 0; value < WheelSize; value++ {
		got := ColorOf(value)
		counts[got]++

		switch {
		case value == 0:
			req.Equal(ColorGreen, got)
		default:
			if _, ok := red[value]; ok {
				req.Equal(ColorRed, got, "pocket %d", value)
			} else {
				req.Equal(ColorBlack, got, "pocket %d", value)
			}
		}
	}

	// 1 green, then an equal 18/18 split.
	req.Equal(1, counts[ColorGreen])
	req.Equal(18, counts[ColorRed])
	req.Equal(18, counts[ColorBlack])
}

func TestNewWheel_QueueCommittedUpfront(t *testing.T) {
	req := require.New(t)

	wheel := NewWheel(10)
	req.Len(wheel.Upcoming(), 10)

	for _, outcome := range wheel.Upcoming() {
		req.GreaterOrEqual(outcome.Value, 0)
		req.Less(outcome.Value, WheelSize)
		req.Equal(ColorOf(outcome.Value), outcome.Color)
	}
}

func TestWheel_SpinReturnsHeadAndRefills(t *testing.T) {
	req := require.New(t)

	wheel := NewWheel(10)
	head := wheel.Upcoming()[0]

	got := wheel.Spin()
	req.Equal(head, got)
	req.Len(wheel.Upcoming(), 10)
}

func TestWheel_UpcomingDoesNotAffectOrder(t *testing.T) {
	req := require.New(t)

	wheel := NewWheel(10)
	before := wheel.Upcoming()
	_ = wheel.Upcoming()

	for i, expected := range before {
		req.Equal(expected, wheel.Spin(), "spin %d", i)
	}
}

func TestWheel_ManySpinsKeepInvariant(t *testing.T) {
	req := require.New(t)

	wheel := NewWheel(10)
	for i := 0; i < 100; i++ {
		outcome := wheel.Spin()
		req.GreaterOrEqual(outcome.Value, 0)
		req.Less(outcome.Value, WheelSize)
		req.Len(wheel.Upcoming(), 10)
	}
}
