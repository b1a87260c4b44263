package display

import (
	"github.com/rs/zerolog/log"

	"github.com/robertof/go-beacon-radar/grid"
)

// Log is a Panel for headless runs: frames end up in the debug log.
type Log struct {
	last grid.Frame
}

func (l *Log) Show(f grid.Frame) error {
	if f == l.last {
		return nil
	}

	l.last = f

	log.Debug().Stringer("Frame", f).Int("Lit", f.Count()).Msg("display: frame")
	return nil
}

func (l *Log) Clear() error {
	return l.Show(grid.Blank)
}
