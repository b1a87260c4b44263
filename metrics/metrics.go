package metrics

import (
  "github.com/prometheus/client_golang/prometheus"

  "github.com/robertof/go-beacon-radar/cycle"
  "github.com/robertof/go-beacon-radar/slots"
)

var (
  descCount = prometheus.NewDesc(
    "beacon_radar_last_cycle_detections",
    "Target advertisements counted during the last completed cycle.",
    nil,
    nil,
  )

  descLit = prometheus.NewDesc(
    "beacon_radar_last_cycle_lit_slots",
    "Slots lit at the end of the last completed cycle.",
    []string{"tier"},
    nil,
  )

  descDuration = prometheus.NewDesc(
    "beacon_radar_last_cycle_duration_seconds",
    "Wall time of the last completed cycle.",
    nil,
    nil,
  )

  cyclesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
    Name: "beacon_radar_cycles_total",
    Help: "Completed scan cycles by outcome.",
  }, []string{"outcome"})

  detectionsCounter = prometheus.NewCounter(prometheus.CounterOpts{
    Name: "beacon_radar_detections_total",
    Help: "Advertisements carrying the target service signature.",
  })

  droppedCounter = prometheus.NewCounter(prometheus.CounterOpts{
    Name: "beacon_radar_dropped_detections_total",
    Help: "Detections that found every slot already lit.",
  })
)

// CollectFunc returns the last completed cycle, or false if none completed yet.
type CollectFunc func() (cycle.Result, bool)

type collector struct {
  CollectFunc
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
  prometheus.DescribeByCollect(c, ch)
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
  res, ok := c.CollectFunc()

  if !ok {
    return
  }

  ts := res.Started.Add(res.Duration)

  count := prometheus.MustNewConstMetric(descCount, prometheus.GaugeValue, float64(res.Count))
  ch <- prometheus.NewMetricWithTimestamp(ts, count)

  for _, tier := range []slots.Tier{slots.TierStrong, slots.TierAny} {
    lit := res.Strong

    if tier == slots.TierAny {
      lit = res.Any
    }

    m := prometheus.MustNewConstMetric(descLit, prometheus.GaugeValue, float64(lit), tier.String())
    ch <- prometheus.NewMetricWithTimestamp(ts, m)
  }

  duration := prometheus.MustNewConstMetric(descDuration, prometheus.GaugeValue, res.Duration.Seconds())
  ch <- prometheus.NewMetricWithTimestamp(ts, duration)
}

// Observe folds a finished cycle into the running counters.
func Observe(res cycle.Result) {
  cyclesCounter.WithLabelValues(res.Label()).Inc()
  detectionsCounter.Add(float64(res.Count))
  droppedCounter.Add(float64(res.Dropped))
}

func RegisterCollector(f CollectFunc, reg prometheus.Registerer) {
  c := &collector{f}

  reg.MustRegister(c, cyclesCounter, detectionsCounter, droppedCounter)
}
