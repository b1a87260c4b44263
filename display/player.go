// Package display shows grid frames on an LED panel with the blocking timing contract
// the scan cycle relies on.
package display

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robertof/go-beacon-radar/grid"
)

// Panel is something able to show a single frame until told otherwise.
type Panel interface {
	Show(f grid.Frame) error
	Clear() error
}

// Player plays frames on a Panel. Both play methods block for
// frameDuration * len(frames) * repeat, or until ctx is done, then clear the panel.
// Panel errors are logged and never shorten the wait.
type Player struct {
	panel Panel
}

func NewPlayer(p Panel) *Player {
	return &Player{panel: p}
}

func (p *Player) PlayAnimation(ctx context.Context, frames []grid.Frame, frameDuration time.Duration, repeat int) {
	log.Trace().
		Int("Frames", len(frames)).
		Dur("FrameDuration", frameDuration).
		Int("Repeat", repeat).
		Msg("display: playing animation")

	defer p.stop()

	for j := 0; j < repeat; j++ {
		for _, f := range frames {
			if err := p.panel.Show(f); err != nil {
				log.Warn().Err(err).Stringer("Frame", f).Msg("display: failed to show frame")
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(frameDuration):
			}
		}
	}
}

func (p *Player) RenderStatic(ctx context.Context, frame grid.Frame, frameDuration time.Duration, repeat int) {
	p.PlayAnimation(ctx, []grid.Frame{frame}, frameDuration, repeat)
}

func (p *Player) stop() {
	if err := p.panel.Clear(); err != nil {
		log.Warn().Err(err).Msg("display: failed to clear panel")
	}
}
