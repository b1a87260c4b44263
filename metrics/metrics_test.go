package metrics

import (
  "strings"
  "testing"
  "time"

  "github.com/prometheus/client_golang/prometheus"
  "github.com/prometheus/client_golang/prometheus/testutil"
  "github.com/stretchr/testify/assert"

  "github.com/robertof/go-beacon-radar/cycle"
)

func TestCollector_NoCycleYet(t *testing.T) {
  c := &collector{func() (cycle.Result, bool) { return cycle.Result{}, false }}

  assert.Equal(t, 0, testutil.CollectAndCount(c))
}

func TestCollector_LastCycle(t *testing.T) {
  res := cycle.Result{
    Started:  time.Unix(1700000000, 0),
    Duration: 15 * time.Second,
    Count:    3,
    Strong:   1,
    Any:      2,
  }

  c := &collector{func() (cycle.Result, bool) { return res, true }}

  // count + two tiers + duration
  assert.Equal(t, 4, testutil.CollectAndCount(c))
  assert.Equal(t, 2, testutil.CollectAndCount(c, "beacon_radar_last_cycle_lit_slots"))

  want := `
# HELP beacon_radar_last_cycle_lit_slots Slots lit at the end of the last completed cycle.
# TYPE beacon_radar_last_cycle_lit_slots gauge
beacon_radar_last_cycle_lit_slots{tier="any"} 2 1700000015000
beacon_radar_last_cycle_lit_slots{tier="strong"} 1 1700000015000
`

  err := testutil.CollectAndCompare(c, strings.NewReader(want), "beacon_radar_last_cycle_lit_slots")
  assert.NoError(t, err)
}

func TestObserve(t *testing.T) {
  before := testutil.ToFloat64(detectionsCounter)
  beforeDropped := testutil.ToFloat64(droppedCounter)
  beforeOk := testutil.ToFloat64(cyclesCounter.WithLabelValues("ok"))

  Observe(cycle.Result{
    Phases:  []cycle.Phase{cycle.PhaseInit, cycle.PhaseReset, cycle.PhaseRender, cycle.PhaseRestart},
    Count:   30,
    Dropped: 6,
  })

  assert.Equal(t, before+30, testutil.ToFloat64(detectionsCounter))
  assert.Equal(t, beforeDropped+6, testutil.ToFloat64(droppedCounter))
  assert.Equal(t, beforeOk+1, testutil.ToFloat64(cyclesCounter.WithLabelValues("ok")))
}

func TestRegisterCollector(t *testing.T) {
  reg := prometheus.NewPedanticRegistry()

  RegisterCollector(func() (cycle.Result, bool) { return cycle.Result{}, false }, reg)

  _, err := reg.Gather()
  assert.NoError(t, err)
}
