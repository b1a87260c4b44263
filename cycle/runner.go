package cycle

import (
  "context"
  "sync"

  "github.com/rs/zerolog/log"

  "github.com/robertof/go-beacon-radar/platform"
  "github.com/robertof/go-beacon-radar/radio"
  "github.com/robertof/go-beacon-radar/slots"
)

// Runner runs scan cycles back to back, each on a fresh Machine and fresh state, and
// keeps the result of the last completed one.
type Runner struct {
  // OnResult, if set, is called with every cycle result before the restart.
  OnResult func(Result)

  radio    radio.Radio
  display  Display
  platform platform.Restarter

  latest Result
  cycles int
  mu     sync.Mutex

  // runner has been Start()ed
  started bool
}

func NewRunner(r radio.Radio, d Display, p platform.Restarter) *Runner {
  return &Runner{
    radio: r,
    display: d,
    platform: p,
  }
}

// Latest returns the result of the last completed cycle, if any.
func (s *Runner) Latest() (Result, bool) {
  s.mu.Lock()
  defer s.mu.Unlock()

  return s.latest, s.cycles > 0
}

func (s *Runner) Cycles() int {
  s.mu.Lock()
  defer s.mu.Unlock()

  return s.cycles
}

func (s *Runner) update(res Result) {
  s.mu.Lock()
  s.latest = res
  s.cycles += 1
  s.mu.Unlock()

  log.Debug().
    Stringer("Result", res).
    Str("Outcome", res.Label()).
    Dur("DurationSec", res.Duration).
    Msg("Scan cycle finished")

  if s.OnResult != nil {
    s.OnResult(res)
  }
}

// Start runs cycles until ctx is done. The context is also handed to the display, so
// cancelling it cuts the running animation short and lets the cycle wind down.
func (s *Runner) Start(ctx context.Context) error {
  if s.started {
    panic("attempted to call cycle.Runner.Start() twice")
  }

  s.started = true

  log.Info().Msg("Starting scan cycles")

  for {
    select {
    case <-ctx.Done():
      log.Info().Int("Cycles", s.Cycles()).Msg("Scan cycles shutting down")
      return ctx.Err()
    default:
    }

    m := NewMachine(s.radio, s.display, s.platform, slots.NewState())
    m.Report = s.update

    m.RunCycle(ctx)
  }
}
