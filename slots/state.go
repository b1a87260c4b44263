package slots

import "fmt"

// State holds the lit slots of both tiers and the number of target detections of the
// current scan cycle. The zero value is a freshly reset state.
type State struct {
	strong [StrongCapacity]bool
	any    [AnyCapacity]bool

	count int
}

func NewState() *State {
	return &State{}
}

// Reset unlights every slot and zeroes the detection counter.
func (s *State) Reset() {
	*s = State{}
}

// Detected increments the detection counter and returns the new value.
func (s *State) Detected() int {
	s.count += 1
	return s.count
}

func (s *State) Count() int {
	return s.count
}

func (s *State) Lit(t Tier, i int) bool {
	return s.tier(t)[i]
}

func (s *State) LitCount(t Tier) (n int) {
	for _, on := range s.tier(t) {
		if on {
			n += 1
		}
	}

	return n
}

// EachLit calls fn for every lit slot, strong tier first.
func (s *State) EachLit(fn func(t Tier, i int)) {
	for _, t := range []Tier{TierStrong, TierAny} {
		for i, on := range s.tier(t) {
			if on {
				fn(t, i)
			}
		}
	}
}

func (s *State) String() string {
	return fmt.Sprintf("State[Count=%d,Strong=%d/%d,Any=%d/%d]",
		s.count,
		s.LitCount(TierStrong), StrongCapacity,
		s.LitCount(TierAny), AnyCapacity)
}

func (s *State) tier(t Tier) []bool {
	switch t {
	case TierStrong:
		return s.strong[:]
	case TierAny:
		return s.any[:]
	default:
		panic(fmt.Sprintf("unknown tier: %d", t))
	}
}
