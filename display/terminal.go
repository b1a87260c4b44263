package display

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/robertof/go-beacon-radar/grid"
)

const ledRune = '●'

// Terminal draws the grid on a terminal screen, one LED per character cell pair.
//
// The screen puts the tty in raw mode, so Ctrl-C no longer raises SIGINT: the key is
// read from the screen's event queue and reported to onInterrupt instead, as is Esc.
type Terminal struct {
	screen tcell.Screen
	on     tcell.Style
	off    tcell.Style

	onInterrupt func()
	events      chan struct{}
}

// NewTerminal takes over the controlling terminal. Call Close to give it back.
func NewTerminal(onInterrupt func()) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "display: failed to create terminal screen")
	}

	return NewTerminalWithScreen(screen, onInterrupt)
}

// NewTerminalWithScreen initializes and uses the given screen.
func NewTerminalWithScreen(screen tcell.Screen, onInterrupt func()) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "display: failed to initialize terminal screen")
	}

	screen.HideCursor()

	t := &Terminal{
		screen:      screen,
		on:          tcell.StyleDefault.Foreground(tcell.ColorRed),
		off:         tcell.StyleDefault.Foreground(tcell.ColorDarkGray),
		onInterrupt: onInterrupt,
		events:      make(chan struct{}),
	}

	go t.pollEvents()

	return t, nil
}

// pollEvents runs until the screen is finalized.
func (t *Terminal) pollEvents() {
	defer close(t.events)

	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			if ev.Key() != tcell.KeyCtrlC && ev.Key() != tcell.KeyEscape {
				continue
			}

			log.Info().Str("Key", ev.Name()).Msg("display: interrupted from the terminal")

			if t.onInterrupt != nil {
				t.onInterrupt()
			}
		}
	}
}

func (t *Terminal) Show(f grid.Frame) error {
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			style := t.off
			if f.At(r, c) {
				style = t.on
			}

			t.screen.SetContent(c*2, r, ledRune, nil, style)
		}
	}

	t.screen.Show()
	return nil
}

func (t *Terminal) Clear() error {
	return t.Show(grid.Blank)
}

// Close gives the terminal back and stops reading its events.
func (t *Terminal) Close() error {
	t.screen.Fini()
	<-t.events
	return nil
}
