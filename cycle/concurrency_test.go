package cycle_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertof/go-beacon-radar/cycle"
	"github.com/robertof/go-beacon-radar/grid"
	"github.com/robertof/go-beacon-radar/radio"
	"github.com/robertof/go-beacon-radar/slots"
)

// goroutineRadio delivers every advertisement on its own goroutine, like go-ble does
// underneath. late advertisements are sent once the result has been rendered.
type goroutineRadio struct {
	fakeRadio

	late     []advertisement
	rendered chan struct{}
	lateWg   sync.WaitGroup
}

func (r *goroutineRadio) StopScan() {
	r.fakeRadio.StopScan()

	for _, a := range r.late {
		a := a // per-iteration copy; module targets go 1.21 loop semantics
		r.lateWg.Add(1)

		go func() {
			defer r.lateWg.Done()
			<-r.rendered
			r.handler(a.id, a.signal, a.record)
		}()
	}
}

func (r *goroutineRadio) deliverConcurrently() {
	var wg sync.WaitGroup

	for _, a := range r.adverts {
		a := a // per-iteration copy; module targets go 1.21 loop semantics
		wg.Add(1)

		go func() {
			defer wg.Done()
			r.handler(a.id, a.signal, a.record)
		}()
	}

	wg.Wait()
}

type renderSignalDisplay struct {
	radio *goroutineRadio
	frame grid.Frame
}

func (d *renderSignalDisplay) PlayAnimation(ctx context.Context, frames []grid.Frame, frameDuration time.Duration, repeat int) {
	if len(frames) == len(grid.Searching.Frames) {
		d.radio.deliverConcurrently()
	}
}

func (d *renderSignalDisplay) RenderStatic(ctx context.Context, frame grid.Frame, frameDuration time.Duration, repeat int) {
	d.frame = frame
	close(d.radio.rendered)
}

func TestRunCycle_ConcurrentDeliveries(t *testing.T) {
	r := &goroutineRadio{rendered: make(chan struct{})}

	for i := 0; i < 200; i++ {
		r.adverts = append(r.adverts, advertisement{radio.Identity{byte(i), byte(i >> 8)}, -50, target()})
	}

	for i := 0; i < 50; i++ {
		r.late = append(r.late, advertisement{radio.Identity{byte(i), 0xee}, -40, target()})
	}

	d := &renderSignalDisplay{radio: r}
	state := slots.NewState()

	res := cycle.NewMachine(r, d, &fakeRestarter{}, state).RunCycle(context.Background())
	r.lateWg.Wait()

	require.NoError(t, res.Err)

	assert.Equal(t, 200, res.Count)
	assert.Equal(t, 200, res.Advertisements)
	assert.Equal(t, slots.StrongCapacity, res.Strong)
	assert.Equal(t, slots.AnyCapacity, res.Any)
	assert.Equal(t, 200-slots.StrongCapacity-slots.AnyCapacity, res.Dropped)

	// late deliveries left the state alone
	assert.Equal(t, res.Count, state.Count())
	assert.Equal(t, res.Frame, grid.Compose(state))
	assert.Equal(t, res.Frame, d.frame)
}
