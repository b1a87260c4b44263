package grid

import "github.com/robertof/go-beacon-radar/slots"

// Compose lights the coordinate of every lit slot of s. The result only depends on which
// slots are lit, never on the order they were lit in.
func Compose(s *slots.State) (f Frame) {
	s.EachLit(func(t slots.Tier, i int) {
		c := t.Coord(i)
		f.Set(c.Row, c.ColBit)
	})

	return f
}
