package cycle

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robertof/go-beacon-radar/grid"
)

type Phase uint8

const (
	PhaseInit Phase = iota
	PhaseInitFailed
	PhaseReset
	PhaseScanStart
	PhaseScanFailed
	PhaseSearching
	PhaseScanStop
	PhaseRender
	PhaseRestart
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "Init"
	case PhaseInitFailed:
		return "InitFailed"
	case PhaseReset:
		return "Reset"
	case PhaseScanStart:
		return "ScanStart"
	case PhaseScanFailed:
		return "ScanFailed"
	case PhaseSearching:
		return "Searching"
	case PhaseScanStop:
		return "ScanStop"
	case PhaseRender:
		return "Render"
	case PhaseRestart:
		return "Restart"
	default:
		panic("unknown phase: " + strconv.Itoa(int(p)))
	}
}

// Result summarizes one scan cycle.
type Result struct {
	Started  time.Time
	Duration time.Duration

	// Phases lists every phase entered, in order.
	Phases []Phase
	// Err wraps radio.ErrRadioInit or radio.ErrScanStart when the cycle failed.
	Err error

	// Advertisements counts every advertisement delivered during the scan window.
	Advertisements int
	// Count is the detection counter: advertisements carrying the target signature.
	Count int
	// Dropped counts detections that found every slot already lit.
	Dropped int

	Strong, Any int
	Frame       grid.Frame
}

// Label is a short, stable name for the way the cycle ended.
func (r Result) Label() string {
	switch r.lastPhaseBefore(PhaseRestart) {
	case PhaseInitFailed:
		return "init_failed"
	case PhaseScanFailed:
		return "scan_failed"
	default:
		return "ok"
	}
}

func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("result:error(%v)", r.Err)
	}

	phases := make([]string, len(r.Phases))
	for i, p := range r.Phases {
		phases[i] = p.String()
	}

	return fmt.Sprintf("result:success(Count=%d,Strong=%d,Any=%d,Dropped=%d,Frame=%v,Phases=%s)",
		r.Count, r.Strong, r.Any, r.Dropped, r.Frame, strings.Join(phases, ">"))
}

func (r Result) lastPhaseBefore(p Phase) Phase {
	for i := len(r.Phases) - 1; i >= 0; i-- {
		if r.Phases[i] != p {
			return r.Phases[i]
		}
	}

	return PhaseInit
}
