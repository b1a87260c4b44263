// Package slots assigns detected devices to the lights of a two-tier LED grid.
//
// The strong tier is the inner ring of a 5x5 grid and only takes devices heard at or
// above RSSIThreshold; the any tier is the outer ring and takes everything else,
// including strong devices once the inner ring is full.
package slots

import (
	"strconv"

	"github.com/robertof/go-beacon-radar/radio"
)

const (
	StrongCapacity = 8
	AnyCapacity    = 16

	// RSSIThreshold is inclusive.
	RSSIThreshold radio.Signal = -90
)

type Tier uint8

const (
	TierStrong Tier = iota
	TierAny
)

func (t Tier) String() string {
	switch t {
	case TierStrong:
		return "strong"
	case TierAny:
		return "any"
	default:
		panic("unknown tier: " + strconv.Itoa(int(t)))
	}
}

func (t Tier) Capacity() int {
	return len(t.layout())
}

// Coord is a grid position: a row index and a single-bit column mask, bit 0 being the
// leftmost column.
type Coord struct {
	Row    int
	ColBit uint8
}

// Coord returns the grid position of slot i.
func (t Tier) Coord(i int) Coord {
	return t.layout()[i]
}

func (t Tier) layout() []Coord {
	switch t {
	case TierStrong:
		return strongLayout[:]
	case TierAny:
		return anyLayout[:]
	default:
		panic("unknown tier: " + strconv.Itoa(int(t)))
	}
}

func bit(n int) uint8 {
	return 1 << n
}

var strongLayout = [StrongCapacity]Coord{
	{1, bit(1)}, {1, bit(2)}, {1, bit(3)},
	{2, bit(1)}, {2, bit(3)},
	{3, bit(1)}, {3, bit(2)}, {3, bit(3)},
}

var anyLayout = [AnyCapacity]Coord{
	{0, bit(0)}, {0, bit(1)}, {0, bit(2)}, {0, bit(3)}, {0, bit(4)},
	{1, bit(0)}, {1, bit(4)},
	{2, bit(0)}, {2, bit(4)},
	{3, bit(0)}, {3, bit(4)},
	{4, bit(0)}, {4, bit(1)}, {4, bit(2)}, {4, bit(3)}, {4, bit(4)},
}
