// Package cycle runs the scan cycle: bring the radio up, scan while the searching
// animation plays, show what was found, restart.
package cycle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robertof/go-beacon-radar/adv"
	"github.com/robertof/go-beacon-radar/grid"
	"github.com/robertof/go-beacon-radar/platform"
	"github.com/robertof/go-beacon-radar/radio"
	"github.com/robertof/go-beacon-radar/slots"
)

// Display is the LED side of the cycle. Both methods block for
// frameDuration * len(frames) * repeat.
type Display interface {
	PlayAnimation(ctx context.Context, frames []grid.Frame, frameDuration time.Duration, repeat int)
	RenderStatic(ctx context.Context, frame grid.Frame, frameDuration time.Duration, repeat int)
}

// Machine sequences a single scan cycle over an explicitly owned slots.State:
//
//	Init -> Reset -> ScanStart -> Searching -> ScanStop -> Render -> Restart
//
// with Init and ScanStart diverting to InitFailed / ScanFailed, which play their failure
// animation and go straight to Restart. Every path ends in Restart.
type Machine struct {
	// Report, if set, receives the result right before the restart.
	Report func(Result)

	radio    radio.Radio
	display  Display
	platform platform.Restarter

	// mu guards everything below. The radio delivers advertisements on its own
	// goroutine, so the handler and Render must not overlap.
	mu       sync.Mutex
	state    *slots.State
	scanning bool
	seen     int
	dropped  int
}

func NewMachine(r radio.Radio, d Display, p platform.Restarter, state *slots.State) *Machine {
	return &Machine{
		radio:    r,
		display:  d,
		platform: p,
		state:    state,
	}
}

// RunCycle runs the cycle to its end. With a restarter that replaces the process it
// never returns.
func (m *Machine) RunCycle(ctx context.Context) Result {
	res := Result{Started: time.Now()}

	m.scan(ctx, &res)

	res.Duration = time.Since(res.Started)

	if m.Report != nil {
		m.Report(res)
	}

	m.enter(&res, PhaseRestart)
	m.platform.RestartWarm()

	return res
}

func (m *Machine) scan(ctx context.Context, res *Result) {
	m.enter(res, PhaseInit)

	if err := m.radio.Enable(); err != nil {
		res.Err = err
		m.fail(ctx, res, PhaseInitFailed, grid.InitFailure)
		return
	}

	log.Debug().Msg("Bluetooth initialized")

	m.enter(res, PhaseReset)
	m.reset()

	m.enter(res, PhaseScanStart)

	m.mu.Lock()
	m.scanning = true
	m.mu.Unlock()

	if err := m.radio.StartPassiveScan(m.handle); err != nil {
		m.mu.Lock()
		m.scanning = false
		m.mu.Unlock()

		res.Err = err
		m.fail(ctx, res, PhaseScanFailed, grid.ScanFailure)
		return
	}

	log.Debug().Msg("Scanning successfully started")

	m.enter(res, PhaseSearching)
	m.play(ctx, grid.Searching)

	m.enter(res, PhaseScanStop)
	m.radio.StopScan()

	m.enter(res, PhaseRender)

	m.mu.Lock()
	m.scanning = false
	frame := grid.Compose(m.state)
	m.summarize(res)
	m.mu.Unlock()

	res.Frame = frame

	log.Info().
		Int("Count", res.Count).
		Int("Advertisements", res.Advertisements).
		Int("Strong", res.Strong).
		Int("Any", res.Any).
		Int("Dropped", res.Dropped).
		Stringer("Frame", frame).
		Msg("Stopped scanning")

	m.display.RenderStatic(ctx, frame, grid.ResultFrameDuration, grid.ResultRepeat)
}

// handle runs on the radio's delivery goroutine, once per advertisement.
func (m *Machine) handle(id radio.Identity, signal radio.Signal, record adv.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// the stack may still deliver in-flight advertisements after StopScan.
	if !m.scanning {
		return
	}

	m.seen += 1

	if !adv.MatchesTarget(record) {
		log.Trace().
			Stringer("Addr", id).
			Int("RSSI", int(signal)).
			Hex("Data", record).
			Msg("Ignoring advertisement without target service")
		return
	}

	count := m.state.Detected()
	outcome := m.state.Allocate(id, signal)

	if !outcome.Lit {
		m.dropped += 1
	}

	log.Info().
		Int("Count", count).
		Stringer("Addr", id).
		Int("RSSI", int(signal)).
		Stringer("Slot", outcome).
		Msg("Target beacon found")
}

func (m *Machine) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Reset()
	m.seen = 0
	m.dropped = 0
}

func (m *Machine) fail(ctx context.Context, res *Result, phase Phase, anim grid.Animation) {
	m.enter(res, phase)

	m.mu.Lock()
	m.summarize(res)
	m.mu.Unlock()

	log.Error().Err(res.Err).Stringer("Phase", phase).Msg("Scan cycle failed")

	m.play(ctx, anim)
}

// callers hold mu.
func (m *Machine) summarize(res *Result) {
	res.Advertisements = m.seen
	res.Count = m.state.Count()
	res.Dropped = m.dropped
	res.Strong = m.state.LitCount(slots.TierStrong)
	res.Any = m.state.LitCount(slots.TierAny)
}

func (m *Machine) play(ctx context.Context, a grid.Animation) {
	m.display.PlayAnimation(ctx, a.Frames, a.FrameDuration, a.Repeat)
}

func (m *Machine) enter(res *Result, p Phase) {
	res.Phases = append(res.Phases, p)
	log.Debug().Stringer("Phase", p).Msg("Entering phase")
}

func (m *Machine) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return fmt.Sprintf("Machine[%v,Scanning=%v]", m.state, m.scanning)
}
