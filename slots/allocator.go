package slots

import (
	"fmt"

	"github.com/robertof/go-beacon-radar/radio"
)

// hashByte is the identity octet both tiers hash on.
const hashByte = 0

// Outcome is the result of Allocate. The zero value is AlreadyFull.
type Outcome struct {
	Tier  Tier
	Index int
	Lit   bool
}

var AlreadyFull = Outcome{}

func (o Outcome) String() string {
	if !o.Lit {
		return "full"
	}

	return fmt.Sprintf("%v[%d]", o.Tier, o.Index)
}

// Allocate lights one slot for a detected device. Devices at or above RSSIThreshold try
// the strong tier first and fall through to the any tier when it is full; weaker ones
// only try the any tier. Within a tier the probe starts at the identity hash and moves
// forward, wrapping, until a free slot is found.
//
// Allocate has no memory of which device lit which slot: seeing the same device twice
// consumes two slots.
func (s *State) Allocate(id radio.Identity, signal radio.Signal) Outcome {
	if signal >= RSSIThreshold {
		if idx, ok := s.probe(TierStrong, id); ok {
			return Outcome{Tier: TierStrong, Index: idx, Lit: true}
		}
	}

	if idx, ok := s.probe(TierAny, id); ok {
		return Outcome{Tier: TierAny, Index: idx, Lit: true}
	}

	return AlreadyFull
}

func (s *State) probe(t Tier, id radio.Identity) (int, bool) {
	slots := s.tier(t)
	h := int(id[hashByte]) % len(slots)

	for i := range slots {
		idx := (h + i) % len(slots)

		if slots[idx] {
			continue
		}

		slots[idx] = true
		return idx, true
	}

	return 0, false
}
