package ble

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	radioInitFailuresCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "beacon_radar_ble_init_failures_total",
	})
	scansStartedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "beacon_radar_ble_scans_started_total",
	})
	scanFailuresCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "beacon_radar_ble_scan_failures_total",
	})
	advertisementsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "beacon_radar_ble_advertisements_total",
	})
	unparsableAddressCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "beacon_radar_ble_unparsable_addresses_total",
	})
)

func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(
		radioInitFailuresCounter,
		scansStartedCounter,
		scanFailuresCounter,
		advertisementsCounter,
		unparsableAddressCounter,
	)
}
